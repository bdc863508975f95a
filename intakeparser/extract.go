package intakeparser

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Pre-compiled regex patterns for performance optimization
// Compiled once at package initialization and reused for all extractions
var (
	dosageRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(mg|g|ml|mcg|iu|units?)`)

	// Quantity anchored to an explicit unit word. Tried before any bare
	// number so that dosage amounts are not misread as quantities.
	quantityUnitRe = regexp.MustCompile(`(?i)\b(\d+)\s*(tablet|capsule|pill|strip|bottle|pack|box|count|pieces?|tabs?|caps?)`)

	// Bare number directly preceding a form keyword, e.g. "30 x tablets"
	quantityFormRe = regexp.MustCompile(`(?i)\b(\d+)\s*(?:of|x)?\s*(tablet|capsule|pill|tab|cap)`)

	standaloneNumRe = regexp.MustCompile(`\b(\d+)\b`)
	punctuationRe   = regexp.MustCompile(`[^\w\s]`)

	// A token that is a dosage unit or a number glued to one, e.g. "mg" or "500mg"
	dosageTokenRe = regexp.MustCompile(`(?i)^\d*\.?\d*\s*(mg|g|ml)$`)

	greetingRe = regexp.MustCompile(`(?i)\b(hello|hi|hey|good morning|good afternoon|good evening)\b`)

	connectorRe = regexp.MustCompile(`(?i)\band\b|\balso\b`)
	commaRe     = regexp.MustCompile(`,\s*`)
)

// diacriticFolder strips combining marks so accented spellings like
// "Paracétamol" match the plain-ASCII alias table.
var diacriticFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeText lowercases text and folds diacritics for alias matching
func normalizeText(s string) string {
	folded, _, err := transform.String(diacriticFolder, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(folded)
}

// splitSegments splits a message on "and"/"also" word boundaries and on
// commas followed by a letter, so one message can name several medicines.
// A comma before a number stays put: "Paracetamol 500mg, 30 tablets" is one
// request, not two.
func splitSegments(message string) []string {
	var segments []string
	for _, part := range connectorRe.Split(message, -1) {
		segments = append(segments, splitOnComma(part)...)
	}
	return segments
}

// splitOnComma splits on commas only when the comma is followed by a letter,
// leaving trailing punctuation and quantity continuations alone
func splitOnComma(s string) []string {
	var out []string
	start := 0
	for _, loc := range commaRe.FindAllStringIndex(s, -1) {
		if loc[1] < len(s) && isLetterByte(s[loc[1]]) {
			out = append(out, s[start:loc[0]])
			start = loc[1]
		}
	}
	return append(out, s[start:])
}

func isLetterByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// containsGreeting reports whether the message contains a standalone
// greeting token
func containsGreeting(message string) bool {
	return greetingRe.MatchString(message)
}

// mentionsKnownMedicine reports whether any alias-table variant appears in
// the normalized message
func mentionsKnownMedicine(normalized string) bool {
	for _, alias := range medicineAliases {
		for _, variant := range alias.Variants {
			if strings.Contains(normalized, variant) {
				return true
			}
		}
	}
	return false
}

// extractName finds the medicine name in a segment. The alias table is
// checked first; on a miss it falls back to the heuristic of a capitalized
// token or a token directly before a dosage unit. Returns the canonical or
// lowercased name and whether the alias table matched.
func extractName(segment string) (name string, known bool) {
	normalized := normalizeText(segment)

	for _, alias := range medicineAliases {
		for _, variant := range alias.Variants {
			if strings.Contains(normalized, variant) {
				return alias.Canonical, true
			}
		}
	}

	words := strings.Fields(segment)
	for i, word := range words {
		runes := []rune(word)
		capitalized := len(runes) > 0 && unicode.IsUpper(runes[0])
		beforeUnit := i+1 < len(words) && isDosageToken(words[i+1])
		if !capitalized && !beforeUnit {
			continue
		}

		clean := punctuationRe.ReplaceAllString(word, "")
		if len(clean) > 2 {
			return normalizeText(clean), false
		}
	}

	return "", false
}

// isDosageToken reports whether a word is a dosage unit, optionally with the
// amount glued on ("mg", "500mg")
func isDosageToken(word string) bool {
	return dosageTokenRe.MatchString(strings.Trim(word, ".,;:!?"))
}

// extractDosage returns the dosage as amount plus lowercased unit, or ""
func extractDosage(segment string) string {
	match := dosageRe.FindStringSubmatch(segment)
	if match == nil {
		return ""
	}
	return match[1] + strings.ToLower(match[2])
}

// extractQuantity returns the ordered quantity and whether it was explicit
// in the text. Unit-anchored patterns are tried before bare integers because
// dosage amounts also appear as bare numbers.
func extractQuantity(segment string, defaultPackSize int) (quantity int, explicit bool) {
	if match := quantityUnitRe.FindStringSubmatch(segment); match != nil {
		if n, err := strconv.Atoi(match[1]); err == nil {
			return n, true
		}
	}

	if match := quantityFormRe.FindStringSubmatch(segment); match != nil {
		if n, err := strconv.Atoi(match[1]); err == nil {
			return n, true
		}
	}

	// Standalone integers, preferring the largest reasonable one
	best := 0
	for _, match := range standaloneNumRe.FindAllStringSubmatch(segment, -1) {
		n, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		if n >= 1 && n <= 1000 && n > best {
			best = n
		}
	}
	if best > 0 {
		return best, true
	}

	return defaultPackSize, false
}

// extractForm returns the medicine form implied by the segment keywords,
// defaulting to tablet
func extractForm(segment string) string {
	lowered := strings.ToLower(segment)
	for _, entry := range formKeywords {
		for _, keyword := range entry.Keywords {
			if strings.Contains(lowered, keyword) {
				return entry.Form
			}
		}
	}
	return "tablet"
}

// confidenceScore builds the additive evidence score for one request:
// +0.4 for a name, +0.2 more when the alias table matched it, +0.2 for a
// dosage, +0.2 for an explicit quantity, capped at 1.0.
func confidenceScore(known, hasDosage, explicitQuantity bool) float64 {
	score := 0.4
	if known {
		score += 0.2
	}
	if hasDosage {
		score += 0.2
	}
	if explicitQuantity {
		score += 0.2
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
