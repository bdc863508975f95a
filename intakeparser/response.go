package intakeparser

import (
	"fmt"
	"strings"

	"github.com/mediloon/refill-core/entities"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const greetingResponse = "Hello! I'm here to help you order medicines. " +
	"You can tell me what medicine you need, like 'I need Paracetamol 500mg, 30 tablets' or 'I want Aspirin'."

const clarificationResponse = "I'd be happy to help you order medicines. " +
	"Could you please tell me which medicine you need? For example, 'I need Paracetamol 500mg, 30 tablets'."

const checkoutPrompt = "Would you like to add anything else or proceed to checkout?"

var titleCaser = cases.Title(language.English)

// buildResponse renders the deterministic confirmation text for a parse
// result: a clarification request when nothing was found, a single-item
// confirmation otherwise, or a numbered list for multiple medicines.
func buildResponse(medicines []entities.MedicineRequest, requiresClarification bool) string {
	if requiresClarification {
		return clarificationResponse
	}

	if len(medicines) == 1 {
		med := medicines[0]
		response := "I'll add " + describeRequest(med) + " to your cart. "
		if med.Confidence < 0.7 {
			response += "Is this correct, or would you like to modify it?"
		} else {
			response += checkoutPrompt
		}
		return response
	}

	var b strings.Builder
	b.WriteString("I'll add these medicines to your cart:\n")
	for i, med := range medicines {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, describeRequest(med)))
	}
	b.WriteString("\n")
	b.WriteString(checkoutPrompt)
	return b.String()
}

// describeRequest formats one request as "Name [dosage] quantity forms"
func describeRequest(med entities.MedicineRequest) string {
	parts := []string{titleCaser.String(med.Name)}
	if med.Dosage != "" {
		parts = append(parts, med.Dosage)
	}
	parts = append(parts, fmt.Sprintf("%d %ss", med.Quantity, med.Form))
	return strings.Join(parts, " ")
}
