package service

import (
	"strings"
	"unicode/utf8"
)

// sanitizeUTF8 drops invalid UTF-8 sequences from model-supplied text.
// Postgres rejects rows containing invalid byte sequences, and extracted
// document text occasionally carries them.
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var result strings.Builder
	result.Grow(len(s))

	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			s = s[1:]
			continue
		}
		result.WriteRune(r)
		s = s[size:]
	}

	return result.String()
}

// sanitizeOptional applies sanitizeUTF8 to an optional field, keeping nil
// as nil and collapsing values that were nothing but garbage bytes.
func sanitizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	clean := sanitizeUTF8(*s)
	if clean == "" {
		return nil
	}
	return &clean
}
