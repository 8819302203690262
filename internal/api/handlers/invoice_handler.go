package handlers

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"heshbonit/internal/dto"
	"heshbonit/internal/extract"
	"heshbonit/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type InvoiceHandler struct {
	geminiService  *service.GeminiService
	expenseService *service.ExpenseService
	uploadDir      string
	maxFileSize    int64
	logger         *zap.Logger
}

func NewInvoiceHandler(
	geminiService *service.GeminiService,
	expenseService *service.ExpenseService,
	uploadDir string,
	maxFileSize int64,
	logger *zap.Logger,
) *InvoiceHandler {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		logger.Warn("Failed to create upload directory", zap.Error(err))
	}

	return &InvoiceHandler{
		geminiService:  geminiService,
		expenseService: expenseService,
		uploadDir:      uploadDir,
		maxFileSize:    maxFileSize,
		logger:         logger,
	}
}

// ParseInvoice godoc
// @Summary Extract fields from an invoice or receipt
// @Description Upload a PDF/JPEG/PNG document and get back the extracted financial fields for review
// @Tags invoices
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Invoice or receipt (PDF, JPEG, or PNG)"
// @Security Bearer
// @Success 200 {object} dto.ExtractedFieldsResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 413 {object} map[string]string
// @Router /api/invoices/parse [post]
func (h *InvoiceHandler) ParseInvoice(c *fiber.Ctx) error {
	if _, err := getUserID(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File is required",
		})
	}
	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error": "File too large",
		})
	}

	mimeType := file.Header.Get("Content-Type")

	// The document only lives on disk for the duration of the call.
	tmpPath := filepath.Join(h.uploadDir, uuid.New().String()+filepath.Ext(file.Filename))
	if err := c.SaveFile(file, tmpPath); err != nil {
		h.logger.Error("Failed to save upload", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save file",
		})
	}
	defer os.Remove(tmpPath)

	document, err := os.ReadFile(tmpPath)
	if err != nil {
		h.logger.Error("Failed to read upload", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read file",
		})
	}

	fields, err := h.geminiService.ExtractInvoice(c.Context(), document, mimeType)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedMimeType) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid file type. Only PDF, JPG, and PNG are allowed",
			})
		}
		var parseErr *extract.ParseError
		if errors.As(err, &parseErr) {
			h.logger.Warn("Model returned unparseable response", zap.Error(err))
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "Document could not be processed, please try again",
			})
		}
		h.logger.Error("Extraction failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process document",
		})
	}

	return c.JSON(dto.ExtractedFieldsResponse{
		DocType:         string(fields.DocType),
		AmountBeforeVat: fields.AmountBeforeVat,
		AmountAfterVat:  fields.AmountAfterVat,
		TransactionDate: fields.TransactionDate.Format(time.RFC3339),
		BusinessName:    fields.BusinessName,
		BusinessID:      fields.BusinessID,
		InvoiceNumber:   fields.InvoiceNumber,
		ServiceDesc:     fields.ServiceDesc,
	})
}

// SaveInvoice godoc
// @Summary Save reviewed invoice fields as an expense
// @Description Persist the (possibly edited) extracted fields as an expense record
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body dto.SaveInvoiceRequest true "Fields to save"
// @Security Bearer
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/invoices/save [post]
func (h *InvoiceHandler) SaveInvoice(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req dto.SaveInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.AmountAfterVat == 0 || req.TransactionDate == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}
	if req.AmountAfterVat < 0 || req.AmountBeforeVat < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Amounts must be non-negative",
		})
	}

	expense, err := h.expenseService.SaveInvoice(c.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid transaction date",
			})
		}
		h.logger.Error("Failed to save expense", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save expense",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(expense)
}

func getUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userIDStr, ok := c.Locals("userID").(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, err
	}

	return userID, nil
}
