// Package intakeparser extracts structured medicine requests from free-form
// order messages. Parsing is deterministic and rule-based: an ordered alias
// table resolves known medicines, regex patterns pick out dosage, quantity
// and form, and an additive evidence score yields a per-request confidence.
package intakeparser

import (
	"fmt"
	"strings"

	"github.com/mediloon/refill-core/entities"
	"github.com/mediloon/refill-core/interfaces"
	"github.com/mediloon/refill-core/logging"
	"github.com/mediloon/refill-core/metrics"
)

// Compile-time check to ensure Parser implements MessageParser
var _ interfaces.MessageParser = (*Parser)(nil)

// Parser parses medicine order messages
type Parser struct {
	defaultPackSize int
}

// NewParser creates a parser. defaultPackSize is the quantity assumed when a
// message names none; values below 1 fall back to 30.
func NewParser(defaultPackSize int) *Parser {
	if defaultPackSize < 1 {
		defaultPackSize = 30
	}
	return &Parser{defaultPackSize: defaultPackSize}
}

// Parse extracts medicine requests and a routing decision from one user
// message. It never fails the caller: any internal fault degrades to a
// clarification result with an empty medicine list.
func (p *Parser) Parse(message string) (result entities.ParseResult) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("Intake parser recovered from panic", "panic", r)
			result = clarificationResult()
		}
	}()

	// Greeting short-circuit. Scans the whole message, not per segment, so
	// a greeting alongside a medicine still parses as an order.
	if containsGreeting(message) && !mentionsKnownMedicine(normalizeText(message)) {
		metrics.RecordParse(entities.ActionGreet, 0)
		return entities.ParseResult{
			Medicines:  []entities.MedicineRequest{},
			NextAction: entities.ActionGreet,
			Confidence: 1.0,
			Response:   greetingResponse,
		}
	}

	medicines := make([]entities.MedicineRequest, 0)
	for _, segment := range splitSegments(message) {
		segment = strings.TrimSpace(segment)
		if len(segment) < 3 {
			continue
		}

		name, known := extractName(segment)
		if name == "" {
			continue
		}

		dosage := extractDosage(segment)
		quantity, explicit := extractQuantity(segment, p.defaultPackSize)
		form := extractForm(segment)

		request := entities.MedicineRequest{
			Name:             name,
			Dosage:           dosage,
			Quantity:         quantity,
			QuantityExplicit: explicit,
			Form:             form,
			Confidence:       confidenceScore(known, dosage != "", explicit),
		}

		if err := validateRequest(&request); err != nil {
			logging.Warn("Skipping invalid medicine request", "error", err, "segment", segment)
			continue
		}

		medicines = append(medicines, request)
	}

	requiresClarification := len(medicines) == 0
	nextAction := entities.ActionConfirm
	if requiresClarification {
		nextAction = entities.ActionAskDetails
	}
	metrics.RecordParse(nextAction, len(medicines))

	return entities.ParseResult{
		Medicines:             medicines,
		RequiresClarification: requiresClarification,
		NextAction:            nextAction,
		Confidence:            meanConfidence(medicines),
		Response:              buildResponse(medicines, requiresClarification),
	}
}

func validateRequest(r *entities.MedicineRequest) error {
	if r.Name == "" {
		return fmt.Errorf("missing medicine name")
	}
	if len(r.Name) > 100 {
		return fmt.Errorf("medicine name too long: %d characters", len(r.Name))
	}
	if r.Quantity <= 0 {
		return fmt.Errorf("invalid quantity: %d", r.Quantity)
	}
	if r.Confidence < 0 || r.Confidence > 1 {
		return fmt.Errorf("confidence out of range: %v", r.Confidence)
	}
	return nil
}

func meanConfidence(medicines []entities.MedicineRequest) float64 {
	if len(medicines) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, m := range medicines {
		sum += m.Confidence
	}
	return sum / float64(len(medicines))
}

func clarificationResult() entities.ParseResult {
	return entities.ParseResult{
		Medicines:             []entities.MedicineRequest{},
		RequiresClarification: true,
		NextAction:            entities.ActionAskDetails,
		Confidence:            0.0,
		Response:              clarificationResponse,
	}
}
