package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/mediloon/refill-core/entities"
)

func TestValidateHistoryEntry(t *testing.T) {
	v := NewHistoryValidator()
	yesterday := time.Now().Add(-24 * time.Hour)

	tests := []struct {
		name       string
		medicineID string
		entry      entities.OrderHistoryEntry
		wantErr    bool
	}{
		{
			name:       "valid entry",
			medicineID: "metformin-500",
			entry:      entities.OrderHistoryEntry{OrderDate: yesterday, Quantity: 60, MedicineName: "Metformin"},
			wantErr:    false,
		},
		{
			name:       "empty medicine id",
			medicineID: "",
			entry:      entities.OrderHistoryEntry{OrderDate: yesterday, Quantity: 60},
			wantErr:    true,
		},
		{
			name:       "uppercase medicine id",
			medicineID: "Metformin",
			entry:      entities.OrderHistoryEntry{OrderDate: yesterday, Quantity: 60},
			wantErr:    true,
		},
		{
			name:       "zero quantity",
			medicineID: "metformin-500",
			entry:      entities.OrderHistoryEntry{OrderDate: yesterday, Quantity: 0},
			wantErr:    true,
		},
		{
			name:       "negative quantity",
			medicineID: "metformin-500",
			entry:      entities.OrderHistoryEntry{OrderDate: yesterday, Quantity: -10},
			wantErr:    true,
		},
		{
			name:       "excessive quantity",
			medicineID: "metformin-500",
			entry:      entities.OrderHistoryEntry{OrderDate: yesterday, Quantity: 20000},
			wantErr:    true,
		},
		{
			name:       "zero order date",
			medicineID: "metformin-500",
			entry:      entities.OrderHistoryEntry{Quantity: 60},
			wantErr:    true,
		},
		{
			name:       "future order date",
			medicineID: "metformin-500",
			entry:      entities.OrderHistoryEntry{OrderDate: time.Now().Add(72 * time.Hour), Quantity: 60},
			wantErr:    true,
		},
		{
			name:       "ancient order date",
			medicineID: "metformin-500",
			entry:      entities.OrderHistoryEntry{OrderDate: time.Now().Add(-12 * 365 * 24 * time.Hour), Quantity: 60},
			wantErr:    true,
		},
		{
			name:       "oversized medicine name",
			medicineID: "metformin-500",
			entry:      entities.OrderHistoryEntry{OrderDate: yesterday, Quantity: 60, MedicineName: strings.Repeat("a", 250)},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateHistoryEntry(tt.medicineID, tt.entry)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHistoryEntry() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSanitizeMessage(t *testing.T) {
	v := NewHistoryValidator()

	tests := []struct {
		name      string
		message   string
		maxLength int
		want      string
	}{
		{
			name:      "plain message untouched",
			message:   "I need Paracetamol 500mg",
			maxLength: 1000,
			want:      "I need Paracetamol 500mg",
		},
		{
			name:      "control characters stripped",
			message:   "I need\x00 Paracetamol\x1b[31m 500mg",
			maxLength: 1000,
			want:      "I need Paracetamol[31m 500mg",
		},
		{
			name:      "whitespace collapsed",
			message:   "  I   need\t\tParacetamol\n\n500mg  ",
			maxLength: 1000,
			want:      "I need Paracetamol 500mg",
		},
		{
			name:      "truncated to max length",
			message:   strings.Repeat("a", 50),
			maxLength: 10,
			want:      strings.Repeat("a", 10),
		},
		{
			name:      "truncation trims trailing space",
			message:   "aaaa bbbb",
			maxLength: 5,
			want:      "aaaa",
		},
		{
			name:      "zero max length disables truncation",
			message:   "I need Paracetamol",
			maxLength: 0,
			want:      "I need Paracetamol",
		},
		{
			name:      "empty message",
			message:   "",
			maxLength: 1000,
			want:      "",
		},
		{
			name:      "accents preserved",
			message:   "Je voudrais du Paracétamol",
			maxLength: 1000,
			want:      "Je voudrais du Paracétamol",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.SanitizeMessage(tt.message, tt.maxLength)
			if got != tt.want {
				t.Errorf("SanitizeMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
