package extract

import (
	"testing"
	"time"

	"heshbonit/internal/models"
)

func TestCoerceAmount(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want float64
	}{
		{"number", float64(118.5), 118.5},
		{"zero", float64(0), 0},
		{"negative passes through", float64(-3.2), -3.2},
		{"numeric string", "99.90", 99.9},
		{"string with currency suffix", "118.50 ILS", 118.5},
		{"string with spaces", "  42  ", 42},
		{"non-numeric string", "free", 0},
		{"nil", nil, 0},
		{"bool", true, 0},
		{"empty string", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := coerceAmount(tt.raw); got != tt.want {
				t.Errorf("coerceAmount(%v) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDeriveAmountBeforeVat(t *testing.T) {
	tests := []struct {
		name           string
		raw            any
		amountAfterVat float64
		want           float64
	}{
		{"supplied value wins", float64(100), 118, 100},
		{"supplied string", "85.5", 118, 85.5},
		{"absent derives from total", nil, 118, 100},
		// 117/1.18 = 99.1525..., rounded to two decimals.
		{"absent rounds to 2 decimals", nil, 117, 99.15},
		{"absent with zero total", nil, 0, 0},
		{"absent with negative total", nil, -50, 0},
		{"empty string treated as absent", "", 118, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := deriveAmountBeforeVat(tt.raw, tt.amountAfterVat)
			if got != tt.want {
				t.Errorf("deriveAmountBeforeVat(%v, %v) = %v, want %v",
					tt.raw, tt.amountAfterVat, got, tt.want)
			}
		})
	}
}

func TestCoerceDate(t *testing.T) {
	t.Run("iso date", func(t *testing.T) {
		got := coerceDate("2025-12-14")
		want := time.Date(2025, 12, 14, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("coerceDate = %v, want %v", got, want)
		}
	})

	t.Run("rfc3339", func(t *testing.T) {
		got := coerceDate("2025-12-14T10:30:00Z")
		want := time.Date(2025, 12, 14, 10, 30, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("coerceDate = %v, want %v", got, want)
		}
	})

	// Missing or garbage dates fall back to the current instant rather
	// than failing the record.
	for _, raw := range []any{nil, "", "not a date", "14/12/2025", float64(20251214)} {
		before := time.Now()
		got := coerceDate(raw)
		after := time.Now()
		if got.Before(before) || got.After(after) {
			t.Errorf("coerceDate(%v) = %v, want a value between %v and %v", raw, got, before, after)
		}
	}
}

func TestCoerceDocType(t *testing.T) {
	tests := []struct {
		raw  any
		want models.DocType
	}{
		{"INVOICE", models.DocTypeInvoice},
		{"RECEIPT", models.DocTypeReceipt},
		{"UNKNOWN", models.DocTypeUnknown},
		{"invoice", models.DocTypeUnknown},
		{"something else", models.DocTypeUnknown},
		{nil, models.DocTypeUnknown},
		{float64(1), models.DocTypeUnknown},
	}

	for _, tt := range tests {
		if got := coerceDocType(tt.raw); got != tt.want {
			t.Errorf("coerceDocType(%v) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestCoerceOptionalText(t *testing.T) {
	if got := coerceOptionalText(nil); got != nil {
		t.Errorf("coerceOptionalText(nil) = %v, want nil", *got)
	}
	if got := coerceOptionalText(""); got != nil {
		t.Errorf("coerceOptionalText(\"\") = %v, want nil", *got)
	}
	if got := coerceOptionalText(float64(12)); got != nil {
		t.Errorf("coerceOptionalText(12) = %v, want nil", *got)
	}
	if got := coerceOptionalText("פלאפון תקשורת"); got == nil || *got != "פלאפון תקשורת" {
		t.Errorf("coerceOptionalText = %v, want pass-through", got)
	}
}
