package models

import (
	"time"

	"github.com/google/uuid"
)

type DocType string

const (
	DocTypeInvoice DocType = "INVOICE"
	DocTypeReceipt DocType = "RECEIPT"
	DocTypeUnknown DocType = "UNKNOWN"
)

var docTypes = map[string]DocType{
	"INVOICE": DocTypeInvoice,
	"RECEIPT": DocTypeReceipt,
	"UNKNOWN": DocTypeUnknown,
}

// ParseDocType maps a raw string to a DocType. Anything outside the
// closed set maps to UNKNOWN.
func ParseDocType(raw string) DocType {
	if dt, ok := docTypes[raw]; ok {
		return dt
	}
	return DocTypeUnknown
}

type ExpenseCategory string

const (
	CategoryCar        ExpenseCategory = "CAR"
	CategoryFood       ExpenseCategory = "FOOD"
	CategoryOperations ExpenseCategory = "OPERATIONS"
	CategoryIT         ExpenseCategory = "IT"
	CategoryTraining   ExpenseCategory = "TRAINING"
	CategoryOther      ExpenseCategory = "OTHER"
)

var expenseCategories = map[string]ExpenseCategory{
	"CAR":        CategoryCar,
	"FOOD":       CategoryFood,
	"OPERATIONS": CategoryOperations,
	"IT":         CategoryIT,
	"TRAINING":   CategoryTraining,
	"OTHER":      CategoryOther,
}

// ParseExpenseCategory maps a raw string to an ExpenseCategory. There is
// no fallback value: invalid input must be rejected by the caller.
func ParseExpenseCategory(raw string) (ExpenseCategory, bool) {
	c, ok := expenseCategories[raw]
	return c, ok
}

type Expense struct {
	ID              uuid.UUID       `db:"id"`
	UserID          uuid.UUID       `db:"user_id"`
	BusinessName    *string         `db:"business_name"`
	BusinessID      *string         `db:"business_id"`
	ServiceDesc     *string         `db:"service_desc"`
	InvoiceNumber   *string         `db:"invoice_number"`
	DocType         DocType         `db:"doc_type"`
	AmountBeforeVat float64         `db:"amount_before_vat"`
	AmountAfterVat  float64         `db:"amount_after_vat"`
	TransactionDate time.Time       `db:"transaction_date"`
	Category        ExpenseCategory `db:"category"`
	RawText         *string         `db:"raw_text"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

// ExpenseFilters carries the optional listing filters. Nil means the
// filter was not supplied; Page/PageSize of 0 mean "use the default".
// Range validation (page >= 1, pageSize 1..100) happens at the API layer,
// before the filters reach the query builder.
type ExpenseFilters struct {
	From     *time.Time
	To       *time.Time
	Min      *float64
	Max      *float64
	Category *ExpenseCategory
	Business *string
	Page     int
	PageSize int
}
