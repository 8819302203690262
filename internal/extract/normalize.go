package extract

import (
	"encoding/json"
	"errors"
	"time"
	"unicode/utf8"

	"heshbonit/internal/models"
)

// rawTextLimit caps how much of the model response is retained on the
// expense record for audit purposes.
const rawTextLimit = 5000

// InvoiceFields is the normalized result of one extraction call. Nil
// pointer fields mean the model did not supply a value.
type InvoiceFields struct {
	DocType         models.DocType
	AmountBeforeVat float64
	AmountAfterVat  float64
	TransactionDate time.Time
	BusinessName    *string
	BusinessID      *string
	InvoiceNumber   *string
	ServiceDesc     *string
	RawText         string
}

// ParseError reports that the model response could not be recovered as a
// JSON object after unwrapping. It is the only hard failure in the
// pipeline and signals that the upstream model did not produce a usable
// structured answer.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "model response is not a JSON object: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// Normalize turns a raw model response into validated invoice fields.
// Individual field coercion never fails the record: each field falls back
// independently (zero amounts, UNKNOWN doc type, current date), so a
// partially-malformed answer still yields something the user can review
// and edit. Only an unparseable response is an error.
func Normalize(raw string) (*InvoiceFields, error) {
	text := Unwrap(raw)

	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, &ParseError{Err: err}
	}
	if obj == nil {
		return nil, &ParseError{Err: errors.New("response is JSON null")}
	}

	amountAfterVat := coerceAmount(obj["amountAfterVat"])

	return &InvoiceFields{
		DocType:         coerceDocType(obj["docType"]),
		AmountAfterVat:  amountAfterVat,
		AmountBeforeVat: deriveAmountBeforeVat(obj["amountBeforeVat"], amountAfterVat),
		TransactionDate: coerceDate(obj["transactionDate"]),
		BusinessName:    coerceOptionalText(obj["businessName"]),
		BusinessID:      coerceOptionalText(obj["businessId"]),
		InvoiceNumber:   coerceOptionalText(obj["invoiceNumber"]),
		ServiceDesc:     coerceOptionalText(obj["serviceDesc"]),
		RawText:         truncateRunes(text, rawTextLimit),
	}, nil
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
