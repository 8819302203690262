package repository

import (
	"heshbonit/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
)

var expenseColumns = []string{
	"id", "user_id", "business_name", "business_id", "service_desc",
	"invoice_number", "doc_type", "amount_before_vat", "amount_after_vat",
	"transaction_date", "category", "raw_text", "created_at", "updated_at",
}

// expensePredicate builds the WHERE conjunction shared by the list and
// count queries. The user_id condition is always present and cannot be
// overridden by filters; conditions for omitted filters are absent
// entirely. Input ranges are trusted to be validated upstream.
func expensePredicate(userID uuid.UUID, filters *models.ExpenseFilters) []squirrel.Sqlizer {
	conds := []squirrel.Sqlizer{squirrel.Eq{"user_id": userID}}

	if filters == nil {
		return conds
	}
	if filters.From != nil {
		conds = append(conds, squirrel.GtOrEq{"transaction_date": *filters.From})
	}
	if filters.To != nil {
		conds = append(conds, squirrel.LtOrEq{"transaction_date": *filters.To})
	}
	if filters.Min != nil {
		conds = append(conds, squirrel.GtOrEq{"amount_after_vat": *filters.Min})
	}
	if filters.Max != nil {
		conds = append(conds, squirrel.LtOrEq{"amount_after_vat": *filters.Max})
	}
	if filters.Category != nil {
		conds = append(conds, squirrel.Eq{"category": *filters.Category})
	}
	if filters.Business != nil {
		conds = append(conds, squirrel.ILike{"business_name": "%" + *filters.Business + "%"})
	}

	return conds
}

// effectivePaging resolves the pagination window: page defaults to 1,
// pageSize to 20, and the offset is (page-1)*pageSize.
func effectivePaging(filters *models.ExpenseFilters) (page, pageSize int) {
	page, pageSize = defaultPage, defaultPageSize
	if filters != nil {
		if filters.Page != 0 {
			page = filters.Page
		}
		if filters.PageSize != 0 {
			pageSize = filters.PageSize
		}
	}
	return page, pageSize
}

// expenseListQuery builds the paginated SELECT for one user's expenses,
// newest transaction first.
func expenseListQuery(userID uuid.UUID, filters *models.ExpenseFilters) squirrel.SelectBuilder {
	page, pageSize := effectivePaging(filters)

	query := squirrel.Select(expenseColumns...).
		From("expenses").
		OrderBy("transaction_date DESC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize)).
		PlaceholderFormat(squirrel.Dollar)

	for _, cond := range expensePredicate(userID, filters) {
		query = query.Where(cond)
	}
	return query
}

// expenseCountQuery builds the matching COUNT over the same predicate,
// without pagination or ordering.
func expenseCountQuery(userID uuid.UUID, filters *models.ExpenseFilters) squirrel.SelectBuilder {
	query := squirrel.Select("COUNT(*)").
		From("expenses").
		PlaceholderFormat(squirrel.Dollar)

	for _, cond := range expensePredicate(userID, filters) {
		query = query.Where(cond)
	}
	return query
}
