package extract

import "strings"

// Unwrap strips markdown code fences that models often wrap JSON answers
// in, despite being told not to. It never fails: if the text carries no
// fence it is returned trimmed, valid JSON or not.
func Unwrap(raw string) string {
	s := strings.TrimSpace(raw)

	var marker string
	switch {
	case strings.HasPrefix(s, "```json"):
		marker = "```json"
	case strings.HasPrefix(s, "```"):
		marker = "```"
	default:
		return s
	}

	s = strings.TrimSpace(strings.TrimPrefix(s, marker))
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}
