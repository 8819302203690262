package service

import (
	"context"
	"errors"
	"time"

	"heshbonit/internal/dto"
	"heshbonit/internal/models"
	"heshbonit/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrInvalidDate     = errors.New("invalid transaction date")
)

type ExpenseService struct {
	expenseRepo *repository.ExpenseRepository
	logger      *zap.Logger
}

func NewExpenseService(expenseRepo *repository.ExpenseRepository, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		logger:      logger,
	}
}

// SaveInvoice persists reviewed extraction fields as an expense record.
// The caller has already validated that the amount and date are present.
// New expenses start in the OTHER category; the user recategorizes later.
func (s *ExpenseService) SaveInvoice(ctx context.Context, userID uuid.UUID, req *dto.SaveInvoiceRequest) (*dto.ExpenseResponse, error) {
	transactionDate, err := parseDate(req.TransactionDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	now := time.Now()
	expense := &models.Expense{
		ID:              uuid.New(),
		UserID:          userID,
		BusinessName:    sanitizeOptional(req.BusinessName),
		BusinessID:      sanitizeOptional(req.BusinessID),
		ServiceDesc:     sanitizeOptional(req.ServiceDesc),
		InvoiceNumber:   sanitizeOptional(req.InvoiceNumber),
		DocType:         models.ParseDocType(req.DocType),
		AmountBeforeVat: req.AmountBeforeVat,
		AmountAfterVat:  req.AmountAfterVat,
		TransactionDate: transactionDate,
		Category:        models.CategoryOther,
		RawText:         sanitizeOptional(nilIfEmpty(req.RawText)),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	s.logger.Info("Expense saved",
		zap.String("expense_id", expense.ID.String()),
		zap.String("user_id", userID.String()),
	)

	return toExpenseResponse(expense), nil
}

// List returns one page of the user's expenses with the total match count.
func (s *ExpenseService) List(ctx context.Context, userID uuid.UUID, filters *models.ExpenseFilters) (*dto.ExpenseListResponse, error) {
	expenses, totalCount, err := s.expenseRepo.List(ctx, userID, filters)
	if err != nil {
		return nil, err
	}

	page, pageSize := 1, 20
	if filters != nil {
		if filters.Page != 0 {
			page = filters.Page
		}
		if filters.PageSize != 0 {
			pageSize = filters.PageSize
		}
	}

	items := make([]dto.ExpenseResponse, 0, len(expenses))
	for _, expense := range expenses {
		items = append(items, *toExpenseResponse(expense))
	}

	return &dto.ExpenseListResponse{
		Items:      items,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

func (s *ExpenseService) UpdateCategory(ctx context.Context, userID, id uuid.UUID, category models.ExpenseCategory) (*dto.ExpenseResponse, error) {
	if err := s.expenseRepo.UpdateCategory(ctx, userID, id, category); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}

	expense, err := s.expenseRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	return toExpenseResponse(expense), nil
}

func (s *ExpenseService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	err := s.expenseRepo.Delete(ctx, userID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrExpenseNotFound
	}
	return err
}

var saveDateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range saveDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toExpenseResponse(expense *models.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:              expense.ID.String(),
		UserID:          expense.UserID.String(),
		BusinessName:    expense.BusinessName,
		BusinessID:      expense.BusinessID,
		ServiceDesc:     expense.ServiceDesc,
		InvoiceNumber:   expense.InvoiceNumber,
		DocType:         string(expense.DocType),
		AmountBeforeVat: expense.AmountBeforeVat,
		AmountAfterVat:  expense.AmountAfterVat,
		TransactionDate: expense.TransactionDate.Format(time.RFC3339),
		Category:        string(expense.Category),
		CreatedAt:       expense.CreatedAt.Format(time.RFC3339),
	}
}
