package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mediloon/refill-core/config"
	"github.com/mediloon/refill-core/data"
	"github.com/mediloon/refill-core/entities"
	"github.com/mediloon/refill-core/forecaster"
	"github.com/mediloon/refill-core/health"
	"github.com/mediloon/refill-core/intakeparser"
	"github.com/mediloon/refill-core/interfaces"
	"github.com/mediloon/refill-core/logging"
	"github.com/mediloon/refill-core/reminder"
	"github.com/mediloon/refill-core/scheduler"
	"github.com/mediloon/refill-core/validation"
)

func init() {
	// Get the working directory and read the env variables
	err := godotenv.Load()
	if err != nil {
		// If failed, try loading from executable directory
		ex, err := os.Executable()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to get executable path:", err)
			os.Exit(1)
		}

		exPath := filepath.Dir(ex)

		if err = os.Chdir(exPath); err != nil {
			fmt.Fprintln(os.Stderr, "Failed to change directory:", err)
			os.Exit(1)
		}
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Invalid configuration:", err)
		os.Exit(1)
	}

	logging.InitLogger(cfg.LogLevel)
	logging.Info("Starting refill core", "env", cfg.Env)

	store := data.NewHistoryContainer()
	validator := validation.NewHistoryValidator()
	parser := intakeparser.NewParser(cfg.DefaultPackSize)
	fc := forecaster.New(forecaster.Options{
		MinOrders:               cfg.MinOrders,
		HighConfidenceThreshold: cfg.HighConfidenceThreshold,
		ReorderLeadDays:         cfg.ReorderLeadDays,
		NotifyWindowDays:        cfg.NotifyWindowDays,
	})

	throttle := reminder.NewThrottle(
		time.Duration(cfg.ReminderCooldownHours)*time.Hour,
		func(key string, p *entities.DepletionPrediction) {
			fmt.Printf("Reminder: reorder %s by %s (suggested quantity %d, %s confidence)\n",
				p.MedicineName, p.SuggestedReorderDate.Format("2006-01-02"),
				p.SuggestedQuantity, p.Confidence)
		})
	defer throttle.Close()

	if cfg.Env == "dev" {
		seedDemoHistory(store, validator)
	}

	sched := scheduler.NewScheduler(store, fc, throttle, cfg.SweepHours)
	if err := sched.Start(); err != nil {
		logging.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	checker := health.NewHealthChecker(store, cfg.SweepHours)

	go runIntakeLoop(cfg, store, validator, parser, fc, checker, quit)

	<-quit
	logging.Info("Shutting down...")
}

// runIntakeLoop reads order messages from stdin and turns confirmed ones into
// stored history. "forecast" prints the current predictions, "quit" exits.
func runIntakeLoop(cfg *config.Config, store interfaces.DataStore, validator interfaces.HistoryValidator,
	parser interfaces.MessageParser, fc interfaces.DepletionForecaster, checker interfaces.HealthChecker,
	quit chan<- os.Signal) {

	fmt.Println("Type an order message, \"forecast\" for predictions, \"health\" for status, or \"quit\" to exit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			quit <- syscall.SIGTERM
			return
		}

		message := validator.SanitizeMessage(scanner.Text(), cfg.MaxMessageLength)
		switch strings.ToLower(message) {
		case "":
			continue
		case "quit", "exit":
			quit <- syscall.SIGTERM
			return
		case "forecast":
			printForecast(store, fc)
			continue
		case "health":
			printStatus(checker)
			continue
		}

		result := parser.Parse(message)
		fmt.Println(result.Response)

		if result.NextAction != entities.ActionConfirm {
			continue
		}
		for _, m := range result.Medicines {
			recordOrder(store, validator, m)
		}
	}
}

// recordOrder appends one parsed request to the history store as an order
// placed today.
func recordOrder(store interfaces.DataStore, validator interfaces.HistoryValidator, m entities.MedicineRequest) {
	id := medicineID(m.Name)
	entry := entities.OrderHistoryEntry{
		OrderDate:    time.Now(),
		Quantity:     m.Quantity,
		MedicineName: m.Name,
	}
	if err := validator.ValidateHistoryEntry(id, entry); err != nil {
		logging.Warn("Skipping order entry", "error", err)
		return
	}
	store.Append(id, entry)
}

func printForecast(store interfaces.DataStore, fc interfaces.DepletionForecaster) {
	histories := make(map[string][]entities.OrderHistoryEntry)
	for _, id := range store.Medicines() {
		histories[id] = store.History(id)
	}

	predictions := fc.PredictAll(histories)
	if len(predictions) == 0 {
		fmt.Println("Not enough order history to forecast anything yet.")
		return
	}

	out, err := json.MarshalIndent(predictions, "", "  ")
	if err != nil {
		logging.Error("Failed to encode predictions", "error", err)
		return
	}
	fmt.Println(string(out))
}

func printStatus(checker interfaces.HealthChecker) {
	out, err := json.MarshalIndent(checker.HealthCheck(), "", "  ")
	if err != nil {
		logging.Error("Failed to encode health status", "error", err)
		return
	}
	fmt.Println(string(out))
}

// medicineID turns a parsed medicine name into a store key.
func medicineID(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

// seedDemoHistory loads a steady metformin refill pattern so forecasts have
// something to chew on in dev.
func seedDemoHistory(store interfaces.DataStore, validator interfaces.HistoryValidator) {
	now := time.Now()
	for i := 3; i >= 1; i-- {
		entry := entities.OrderHistoryEntry{
			OrderDate:    now.AddDate(0, 0, -30*i),
			Quantity:     60,
			MedicineName: "metformin",
		}
		if err := validator.ValidateHistoryEntry("metformin", entry); err != nil {
			logging.Warn("Skipping demo entry", "error", err)
			continue
		}
		store.Append("metformin", entry)
	}
	logging.Info("Seeded demo order history", "medicine", "metformin", "orders", store.Len())
}
