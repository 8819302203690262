package dto

// ExtractedFieldsResponse is what /invoices/parse returns: the normalized
// fields for the user to review and edit before saving.
type ExtractedFieldsResponse struct {
	DocType         string  `json:"docType"`
	AmountBeforeVat float64 `json:"amountBeforeVat"`
	AmountAfterVat  float64 `json:"amountAfterVat"`
	TransactionDate string  `json:"transactionDate"`
	BusinessName    *string `json:"businessName,omitempty"`
	BusinessID      *string `json:"businessId,omitempty"`
	InvoiceNumber   *string `json:"invoiceNumber,omitempty"`
	ServiceDesc     *string `json:"serviceDesc,omitempty"`
}

// SaveInvoiceRequest carries the (possibly hand-edited) extracted fields
// to be persisted as an expense.
type SaveInvoiceRequest struct {
	BusinessName    *string `json:"businessName"`
	BusinessID      *string `json:"businessId"`
	ServiceDesc     *string `json:"serviceDesc"`
	InvoiceNumber   *string `json:"invoiceNumber"`
	DocType         string  `json:"docType"`
	AmountBeforeVat float64 `json:"amountBeforeVat"`
	AmountAfterVat  float64 `json:"amountAfterVat"`
	TransactionDate string  `json:"transactionDate"`
	RawText         string  `json:"rawText"`
}
