package extract

import (
	"math"
	"strconv"
	"strings"
	"time"

	"heshbonit/internal/models"
)

// vatDivisor converts a VAT-inclusive amount back to the pre-tax amount.
// Israeli VAT is 18%; the rate is a policy constant, not configurable.
const vatDivisor = 1.18

// coerceAmount turns a loosely-typed JSON value into a float64. Strings
// are parsed leniently ("118.50 ILS" yields 118.5). Unparseable input
// yields 0. Negative values pass through unchanged.
func coerceAmount(raw any) float64 {
	switch v := raw.(type) {
	case float64:
		if math.IsNaN(v) {
			return 0
		}
		return v
	case string:
		return parseLeadingFloat(v)
	default:
		return 0
	}
}

// parseLeadingFloat parses the longest numeric prefix of s, so values the
// model decorated with a currency suffix still coerce.
func parseLeadingFloat(s string) float64 {
	s = strings.TrimSpace(s)

	end := 0
	seenDigit := false
	seenDot := false
scan:
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			seenDigit = true
			end = i + 1
		case (r == '+' || r == '-') && i == 0:
			end = i + 1
		case r == '.' && !seenDot:
			seenDot = true
			end = i + 1
		default:
			break scan
		}
	}
	if !seenDigit {
		return 0
	}

	f, err := strconv.ParseFloat(strings.TrimRight(s[:end], "."), 64)
	if err != nil {
		return 0
	}
	return f
}

// deriveAmountBeforeVat resolves the pre-tax amount. When the model
// supplied one it is coerced as-is; otherwise it is back-calculated from
// the VAT-inclusive total, rounded half-up to 2 decimals.
func deriveAmountBeforeVat(raw any, amountAfterVat float64) float64 {
	if textPresent(raw) {
		return coerceAmount(raw)
	}
	if amountAfterVat > 0 {
		return math.Round(amountAfterVat/vatDivisor*100) / 100
	}
	return 0
}

func textPresent(raw any) bool {
	if raw == nil {
		return false
	}
	if s, ok := raw.(string); ok && strings.TrimSpace(s) == "" {
		return false
	}
	return true
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// coerceDate parses an ISO-like date string. A missing or unreadable date
// falls back to the current instant: a document with no confidently-read
// date is still ingestible, and the user corrects the date on review.
func coerceDate(raw any) time.Time {
	s, ok := raw.(string)
	if !ok {
		return time.Now()
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Now()
}

func coerceDocType(raw any) models.DocType {
	s, _ := raw.(string)
	return models.ParseDocType(strings.TrimSpace(s))
}

// coerceOptionalText normalizes null, missing, and empty strings to nil.
func coerceOptionalText(raw any) *string {
	s, ok := raw.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}
