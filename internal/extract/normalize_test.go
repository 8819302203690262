package extract

import (
	"errors"
	"testing"
	"time"

	"heshbonit/internal/models"
)

func TestNormalizeFencedInvoice(t *testing.T) {
	raw := "```json\n{\"docType\":\"INVOICE\",\"amountAfterVat\":118}\n```"

	before := time.Now()
	fields, err := Normalize(raw)
	after := time.Now()
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if fields.DocType != models.DocTypeInvoice {
		t.Errorf("DocType = %v, want INVOICE", fields.DocType)
	}
	if fields.AmountAfterVat != 118 {
		t.Errorf("AmountAfterVat = %v, want 118", fields.AmountAfterVat)
	}
	if fields.AmountBeforeVat != 100 {
		t.Errorf("AmountBeforeVat = %v, want 100 (118/1.18)", fields.AmountBeforeVat)
	}
	if fields.TransactionDate.Before(before) || fields.TransactionDate.After(after) {
		t.Errorf("TransactionDate = %v, want the current instant", fields.TransactionDate)
	}
	for name, v := range map[string]*string{
		"BusinessName":  fields.BusinessName,
		"BusinessID":    fields.BusinessID,
		"InvoiceNumber": fields.InvoiceNumber,
		"ServiceDesc":   fields.ServiceDesc,
	} {
		if v != nil {
			t.Errorf("%s = %q, want absent", name, *v)
		}
	}
	if fields.RawText != `{"docType":"INVOICE","amountAfterVat":118}` {
		t.Errorf("RawText = %q, want the unwrapped text", fields.RawText)
	}
}

func TestNormalizeFullRecord(t *testing.T) {
	raw := `{
		"docType": "RECEIPT",
		"amountAfterVat": 236,
		"amountBeforeVat": 200,
		"transactionDate": "2025-03-01",
		"businessName": "פלאפון תקשורת בע\"מ",
		"businessId": "512345678",
		"invoiceNumber": "INV-1042",
		"serviceDesc": "שירותי תקשורת"
	}`

	fields, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if fields.DocType != models.DocTypeReceipt {
		t.Errorf("DocType = %v, want RECEIPT", fields.DocType)
	}
	if fields.AmountBeforeVat != 200 {
		t.Errorf("AmountBeforeVat = %v, want supplied 200, not a derived value", fields.AmountBeforeVat)
	}
	want := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if !fields.TransactionDate.Equal(want) {
		t.Errorf("TransactionDate = %v, want %v", fields.TransactionDate, want)
	}
	if fields.BusinessName == nil || *fields.BusinessName != "פלאפון תקשורת בע\"מ" {
		t.Errorf("BusinessName = %v, want the supplied name", fields.BusinessName)
	}
	if fields.InvoiceNumber == nil || *fields.InvoiceNumber != "INV-1042" {
		t.Errorf("InvoiceNumber = %v, want INV-1042", fields.InvoiceNumber)
	}
}

func TestNormalizeBadFieldsStillYieldRecord(t *testing.T) {
	// A well-formed JSON object with junk in every field still produces a
	// record: each field falls back independently.
	raw := `{"docType":"contract","amountAfterVat":"a lot","transactionDate":"yesterday","businessName":""}`

	fields, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if fields.DocType != models.DocTypeUnknown {
		t.Errorf("DocType = %v, want UNKNOWN", fields.DocType)
	}
	if fields.AmountAfterVat != 0 || fields.AmountBeforeVat != 0 {
		t.Errorf("amounts = %v/%v, want 0/0", fields.AmountBeforeVat, fields.AmountAfterVat)
	}
	if fields.BusinessName != nil {
		t.Errorf("BusinessName = %q, want absent", *fields.BusinessName)
	}
}

func TestNormalizeParseError(t *testing.T) {
	for _, raw := range []string{
		"not json at all",
		"```json\nstill not json\n```",
		"[1, 2, 3]",
		"null",
		"",
	} {
		_, err := Normalize(raw)
		if err == nil {
			t.Errorf("Normalize(%q) succeeded, want parse error", raw)
			continue
		}
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Errorf("Normalize(%q) error = %T, want *ParseError", raw, err)
		}
	}
}

func TestNormalizeTruncatesRawText(t *testing.T) {
	long := make([]byte, 0, 6200)
	long = append(long, `{"amountAfterVat":118,"serviceDesc":"`...)
	for i := 0; i < 6000; i++ {
		long = append(long, 'x')
	}
	long = append(long, `"}`...)

	fields, err := Normalize(string(long))
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if got := len([]rune(fields.RawText)); got != 5000 {
		t.Errorf("len(RawText) = %d, want 5000", got)
	}
	if fields.ServiceDesc == nil || len(*fields.ServiceDesc) != 6000 {
		t.Error("ServiceDesc should carry the full parsed value regardless of RawText truncation")
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	raw := `{"docType":"INVOICE","amountAfterVat":59,"transactionDate":"2025-06-30","businessName":"מוסך הצפון"}`

	a, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	b, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if a.DocType != b.DocType || a.AmountAfterVat != b.AmountAfterVat ||
		a.AmountBeforeVat != b.AmountBeforeVat || a.RawText != b.RawText ||
		!a.TransactionDate.Equal(b.TransactionDate) ||
		*a.BusinessName != *b.BusinessName {
		t.Errorf("Normalize not idempotent:\n%+v\n%+v", a, b)
	}
}
