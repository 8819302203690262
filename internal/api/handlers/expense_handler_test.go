package handlers

import (
	"testing"
	"time"

	"heshbonit/internal/models"
)

type fakeQuery map[string]string

func (f fakeQuery) Query(key string, defaultValue ...string) string {
	if v, ok := f[key]; ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func TestParseExpenseFilters(t *testing.T) {
	t.Run("empty query", func(t *testing.T) {
		filters, err := parseExpenseFilters(fakeQuery{})
		if err != nil {
			t.Fatalf("parseExpenseFilters failed: %v", err)
		}
		if filters.From != nil || filters.To != nil || filters.Min != nil ||
			filters.Max != nil || filters.Category != nil || filters.Business != nil {
			t.Errorf("omitted params must stay nil, got %+v", filters)
		}
		if filters.Page != 0 || filters.PageSize != 0 {
			t.Errorf("paging should stay unset for the builder defaults, got %+v", filters)
		}
	})

	t.Run("all params", func(t *testing.T) {
		filters, err := parseExpenseFilters(fakeQuery{
			"from":     "2025-01-01",
			"to":       "2025-06-30",
			"min":      "50",
			"max":      "2000",
			"category": "FOOD",
			"business": "פלאפון",
			"page":     "2",
			"pageSize": "10",
		})
		if err != nil {
			t.Fatalf("parseExpenseFilters failed: %v", err)
		}
		if filters.From == nil || !filters.From.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("From = %v", filters.From)
		}
		if filters.Min == nil || *filters.Min != 50 {
			t.Errorf("Min = %v", filters.Min)
		}
		if filters.Category == nil || *filters.Category != models.CategoryFood {
			t.Errorf("Category = %v", filters.Category)
		}
		if filters.Business == nil || *filters.Business != "פלאפון" {
			t.Errorf("Business = %v", filters.Business)
		}
		if filters.Page != 2 || filters.PageSize != 10 {
			t.Errorf("paging = %d/%d, want 2/10", filters.Page, filters.PageSize)
		}
	})

	t.Run("invalid input rejected", func(t *testing.T) {
		bad := []fakeQuery{
			{"from": "last tuesday"},
			{"to": "31-12-2025"},
			{"min": "abc"},
			{"min": "-5"},
			{"max": "-1"},
			{"category": "GROCERIES"},
			{"category": "food"},
			{"page": "0"},
			{"page": "-2"},
			{"page": "two"},
			{"pageSize": "0"},
			{"pageSize": "101"},
		}
		for _, q := range bad {
			if _, err := parseExpenseFilters(q); err == nil {
				t.Errorf("parseExpenseFilters(%v) succeeded, want error", q)
			}
		}
	})
}
