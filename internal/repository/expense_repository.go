package repository

import (
	"context"
	"errors"

	"heshbonit/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ErrNotFound is returned when an expense does not exist or belongs to
// another user. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("expense not found")

type ExpenseRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewExpenseRepository(db *pgxpool.Pool, logger *zap.Logger) *ExpenseRepository {
	return &ExpenseRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	query := squirrel.Insert("expenses").
		Columns(expenseColumns...).
		Values(
			expense.ID, expense.UserID, expense.BusinessName, expense.BusinessID,
			expense.ServiceDesc, expense.InvoiceNumber, expense.DocType,
			expense.AmountBeforeVat, expense.AmountAfterVat, expense.TransactionDate,
			expense.Category, expense.RawText, expense.CreatedAt, expense.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ExpenseRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Expense, error) {
	query := squirrel.Select(expenseColumns...).
		From("expenses").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	expense, err := scanExpense(r.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// List returns one page of the user's expenses plus the total match count
// for the same filters.
func (r *ExpenseRepository) List(ctx context.Context, userID uuid.UUID, filters *models.ExpenseFilters) ([]*models.Expense, int64, error) {
	sql, args, err := expenseListQuery(userID, filters).ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, 0, err
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countSQL, countArgs, err := expenseCountQuery(userID, filters).ToSql()
	if err != nil {
		return nil, 0, err
	}

	var totalCount int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	return expenses, totalCount, nil
}

func (r *ExpenseRepository) UpdateCategory(ctx context.Context, userID, id uuid.UUID, category models.ExpenseCategory) error {
	query := squirrel.Update("expenses").
		Set("category", category).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := squirrel.Delete("expenses").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanExpense(row pgx.Row) (*models.Expense, error) {
	var e models.Expense
	err := row.Scan(
		&e.ID, &e.UserID, &e.BusinessName, &e.BusinessID, &e.ServiceDesc,
		&e.InvoiceNumber, &e.DocType, &e.AmountBeforeVat, &e.AmountAfterVat,
		&e.TransactionDate, &e.Category, &e.RawText, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
