package service

import (
	"context"
	"errors"
	"fmt"

	"heshbonit/internal/extract"
	"heshbonit/pkg/config"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// ErrUnsupportedMimeType is returned for uploads outside the PDF/JPEG/PNG
// whitelist.
var ErrUnsupportedMimeType = errors.New("unsupported file type")

var supportedMimeTypes = map[string]string{
	"application/pdf": "application/pdf",
	"image/jpeg":      "image/jpeg",
	"image/jpg":       "image/jpeg",
	"image/png":       "image/png",
}

// extractionPrompt instructs the model to answer with a bare JSON object
// carrying the invoice fields. The field names and coercion rules here
// are the contract extract.Normalize consumes.
const extractionPrompt = `אתה מומחה לחילוץ מידע מחשבוניות וקבלות בעברית.

חלץ את המידע הבא מהמסמך וחזור בתשובה בפורמט JSON בלבד (ללא טקסט נוסף, ללא markdown, רק JSON):

{
  "docType": "INVOICE" | "RECEIPT" | "UNKNOWN",
  "amountAfterVat": מספר (סכום כולל מע"מ - הסכום הסופי לתשלום),
  "amountBeforeVat": מספר (סכום לפני מע"מ),
  "transactionDate": "YYYY-MM-DD" (תאריך העסקה/הפקת החשבון),
  "businessName": "שם העסק" | null,
  "businessId": "מספר עוסק/ח\"פ" | null,
  "invoiceNumber": "מספר חשבונית/קבלה" | null,
  "serviceDesc": "תיאור השירות" | null
}

חשוב מאוד:
1. "סה\"כ לתשלום" או "סה\"כ שולם" = amountAfterVat (הסכום הכולל אחרי מע"מ)
2. amountBeforeVat = הסכום לפני מע"מ. אם לא נמצא במפורש, חשב: amountAfterVat / 1.18 (עיגול ל-2 ספרות אחרי הנקודה)
3. תאריך בפורמט YYYY-MM-DD (למשל: 2025-12-14). חפש "תאריך הפקת החשבון" או "תאריך עסקה"
4. docType: "INVOICE" אם זה חשבונית, "RECEIPT" אם זה קבלה, "UNKNOWN" אחרת
5. businessName: שם החברה/העסק כפי שמופיע במסמך
6. businessId: מספר עוסק מורשה או ח"פ
7. invoiceNumber: מספר החשבונית או הקבלה
8. החזר רק JSON valid, ללא הסברים, ללא markdown code blocks`

// GeminiService sends document bytes to Gemini and normalizes the answer
// into invoice fields. The client is constructed once at startup; a
// missing credential fails construction, not the first request.
type GeminiService struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

func NewGeminiService(ctx context.Context, cfg *config.GeminiConfig, logger *zap.Logger) (*GeminiService, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("GEMINI_API_KEY is not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiService{
		client: client,
		model:  cfg.Model,
		logger: logger,
	}, nil
}

// ExtractInvoice runs one extraction call: document bytes go to the model
// inline, the textual answer comes back through extract.Normalize. A
// *extract.ParseError from Normalize propagates to the caller unchanged.
func (s *GeminiService) ExtractInvoice(ctx context.Context, document []byte, mimeType string) (*extract.InvoiceFields, error) {
	normalized, ok := supportedMimeTypes[mimeType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMimeType, mimeType)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: extractionPrompt},
				{
					InlineData: &genai.Blob{
						MIMEType: normalized,
						Data:     document,
					},
				},
			},
		},
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return nil, errors.New("empty response from model")
	}

	fields, err := extract.Normalize(rawText)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Invoice fields extracted",
		zap.String("doc_type", string(fields.DocType)),
		zap.Float64("amount_after_vat", fields.AmountAfterVat),
		zap.Int("raw_text_length", len(fields.RawText)),
	)

	return fields, nil
}
