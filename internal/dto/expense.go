package dto

type ExpenseResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"userId"`
	BusinessName    *string `json:"businessName"`
	BusinessID      *string `json:"businessId"`
	ServiceDesc     *string `json:"serviceDesc"`
	InvoiceNumber   *string `json:"invoiceNumber"`
	DocType         string  `json:"docType"`
	AmountBeforeVat float64 `json:"amountBeforeVat"`
	AmountAfterVat  float64 `json:"amountAfterVat"`
	TransactionDate string  `json:"transactionDate"`
	Category        string  `json:"category"`
	CreatedAt       string  `json:"createdAt"`
}

// ExpenseListResponse is the paginated listing envelope.
type ExpenseListResponse struct {
	Items      []ExpenseResponse `json:"items"`
	TotalCount int64             `json:"totalCount"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
}

type UpdateCategoryRequest struct {
	Category string `json:"category"`
}
