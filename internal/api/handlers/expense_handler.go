package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"heshbonit/internal/dto"
	"heshbonit/internal/models"
	"heshbonit/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ExpenseHandler struct {
	expenseService *service.ExpenseService
	logger         *zap.Logger
}

func NewExpenseHandler(expenseService *service.ExpenseService, logger *zap.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		logger:         logger,
	}
}

// ListExpenses godoc
// @Summary List expenses
// @Description List the user's expenses with optional date/amount/category/business filters
// @Tags expenses
// @Produce json
// @Param from query string false "Transaction date lower bound (YYYY-MM-DD)"
// @Param to query string false "Transaction date upper bound (YYYY-MM-DD)"
// @Param min query number false "Minimum amount after VAT"
// @Param max query number false "Maximum amount after VAT"
// @Param category query string false "Expense category"
// @Param business query string false "Business name substring"
// @Param page query int false "Page" default(1)
// @Param pageSize query int false "Page size (1-100)" default(20)
// @Security Bearer
// @Success 200 {object} dto.ExpenseListResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/expenses [get]
func (h *ExpenseHandler) ListExpenses(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	filters, err := parseExpenseFilters(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	result, err := h.expenseService.List(c.Context(), userID, filters)
	if err != nil {
		h.logger.Error("Failed to list expenses", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list expenses",
		})
	}

	return c.JSON(result)
}

// UpdateCategory godoc
// @Summary Recategorize an expense
// @Description Set the category of one of the user's expenses
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param request body dto.UpdateCategoryRequest true "New category"
// @Security Bearer
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/expenses/{id}/category [patch]
func (h *ExpenseHandler) UpdateCategory(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	expenseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid expense ID",
		})
	}

	var req dto.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	category, ok := models.ParseExpenseCategory(req.Category)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid category",
		})
	}

	expense, err := h.expenseService.UpdateCategory(c.Context(), userID, expenseID, category)
	if err != nil {
		if errors.Is(err, service.ErrExpenseNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Expense not found",
			})
		}
		h.logger.Error("Failed to update category", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update category",
		})
	}

	return c.JSON(expense)
}

// DeleteExpense godoc
// @Summary Delete an expense
// @Tags expenses
// @Param id path string true "Expense ID"
// @Security Bearer
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	expenseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid expense ID",
		})
	}

	if err := h.expenseService.Delete(c.Context(), userID, expenseID); err != nil {
		if errors.Is(err, service.ErrExpenseNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Expense not found",
			})
		}
		h.logger.Error("Failed to delete expense", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete expense",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// queryArgs is the slice of fiber.Ctx the filter parser needs; it keeps
// the parser testable without a running app.
type queryArgs interface {
	Query(key string, defaultValue ...string) string
}

var filterDateLayouts = []string{"2006-01-02", time.RFC3339}

// parseExpenseFilters validates the listing query parameters. The query
// builder downstream trusts this validation: page must be >= 1, pageSize
// within 1..100, category a known value.
func parseExpenseFilters(q queryArgs) (*models.ExpenseFilters, error) {
	filters := &models.ExpenseFilters{}

	if raw := q.Query("from"); raw != "" {
		t, err := parseFilterDate(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid from date: %s", raw)
		}
		filters.From = &t
	}
	if raw := q.Query("to"); raw != "" {
		t, err := parseFilterDate(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid to date: %s", raw)
		}
		filters.To = &t
	}

	if raw := q.Query("min"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("invalid min amount: %s", raw)
		}
		filters.Min = &v
	}
	if raw := q.Query("max"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("invalid max amount: %s", raw)
		}
		filters.Max = &v
	}

	if raw := q.Query("category"); raw != "" {
		category, ok := models.ParseExpenseCategory(raw)
		if !ok {
			return nil, fmt.Errorf("invalid category: %s", raw)
		}
		filters.Category = &category
	}

	if raw := q.Query("business"); raw != "" {
		filters.Business = &raw
	}

	if raw := q.Query("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("invalid page: %s", raw)
		}
		filters.Page = v
	}
	if raw := q.Query("pageSize"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 100 {
			return nil, fmt.Errorf("invalid pageSize: %s", raw)
		}
		filters.PageSize = v
	}

	return filters, nil
}

func parseFilterDate(raw string) (time.Time, error) {
	for _, layout := range filterDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date: %s", raw)
}
