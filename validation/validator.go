// Package validation provides data validation for the refill core.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/mediloon/refill-core/entities"
	"github.com/mediloon/refill-core/interfaces"
)

// Pre-compiled regex patterns, compiled once at package initialization
// and reused for all validations
var (
	// Medicine ids: lowercase slug form, e.g. "metformin-500"
	medicineIDRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9\-_]{0,63}$`)

	// Collapses runs of whitespace left behind after control-character stripping
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

const (
	maxQuantityPerOrder = 10000
	maxHistoryAge       = 10 * 365 * 24 * time.Hour
)

// HistoryValidatorImpl implements the interfaces.HistoryValidator interface
type HistoryValidatorImpl struct{}

// NewHistoryValidator creates a new history validator
func NewHistoryValidator() interfaces.HistoryValidator {
	return &HistoryValidatorImpl{}
}

// ValidateHistoryEntry checks one caller-supplied order before it enters the
// store. Entries failing validation must be skipped, not stored.
func (v *HistoryValidatorImpl) ValidateHistoryEntry(medicineID string, entry entities.OrderHistoryEntry) error {
	if medicineID == "" {
		return fmt.Errorf("medicine id is empty")
	}
	if !medicineIDRegex.MatchString(medicineID) {
		return fmt.Errorf("invalid medicine id: %s", medicineID)
	}

	if entry.Quantity <= 0 {
		return fmt.Errorf("invalid quantity %d for %s", entry.Quantity, medicineID)
	}
	if entry.Quantity > maxQuantityPerOrder {
		return fmt.Errorf("quantity %d for %s exceeds maximum %d", entry.Quantity, medicineID, maxQuantityPerOrder)
	}

	if entry.OrderDate.IsZero() {
		return fmt.Errorf("missing order date for %s", medicineID)
	}
	now := time.Now()
	if entry.OrderDate.After(now.Add(24 * time.Hour)) {
		return fmt.Errorf("order date %s for %s is in the future", entry.OrderDate.Format("2006-01-02"), medicineID)
	}
	if now.Sub(entry.OrderDate) > maxHistoryAge {
		return fmt.Errorf("order date %s for %s is too old", entry.OrderDate.Format("2006-01-02"), medicineID)
	}

	if len(entry.MedicineName) > 200 {
		return fmt.Errorf("medicine name too long for %s: %d characters", medicineID, len(entry.MedicineName))
	}

	return nil
}

// SanitizeMessage prepares a raw user message for parsing: strips control
// characters, collapses whitespace, and truncates to maxLength runes.
// Sanitization never fails; a hostile message degrades to an empty string.
func (v *HistoryValidatorImpl) SanitizeMessage(message string, maxLength int) string {
	var b strings.Builder
	b.Grow(len(message))
	for _, r := range message {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		b.WriteRune(r)
	}

	cleaned := whitespaceRegex.ReplaceAllString(b.String(), " ")
	cleaned = strings.TrimSpace(cleaned)

	if maxLength > 0 {
		runes := []rune(cleaned)
		if len(runes) > maxLength {
			cleaned = strings.TrimSpace(string(runes[:maxLength]))
		}
	}

	return cleaned
}
