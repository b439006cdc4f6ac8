package rent

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rentdesk/rentdesk/internal/platform/db"
	"github.com/rentdesk/rentdesk/internal/shared"
)

// ListFilter narrows ledger reads. A non-nil TenantID restricts rows to that
// tenant; Month/Year of zero mean "any".
type ListFilter struct {
	TenantID *int64
	Month    int
	Year     int
}

// Repository defines persistence operations for the rent ledger.
type Repository interface {
	Create(ctx context.Context, payment Payment) (Payment, error)
	List(ctx context.Context, filter ListFilter) ([]Payment, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// Create inserts a payment row. The uq_rent_payments_period constraint is
// the sole arbiter of period uniqueness; its violation maps to
// DuplicatePayment so the caller gets an actionable error, never an
// overwrite.
func (r *repository) Create(ctx context.Context, payment Payment) (Payment, error) {
	const query = `INSERT INTO rent_payments (tenant_id, month, year, amount, paid_on)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query, payment.TenantID, payment.Month, payment.Year, payment.Amount, payment.PaidOn).
		Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err, "uq_rent_payments_period") {
			return Payment{}, fmt.Errorf("rent: tenant %d, %d/%d: %w", payment.TenantID, payment.Month, payment.Year, shared.ErrDuplicatePayment)
		}
		return Payment{}, fmt.Errorf("rent: create: %w", err)
	}
	return payment, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Payment, error) {
	query := `SELECT id, tenant_id, month, year, amount, paid_on, created_at FROM rent_payments WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filter.TenantID != nil {
		argCount++
		query += ` AND tenant_id = $` + strconv.Itoa(argCount)
		args = append(args, *filter.TenantID)
	}
	if filter.Month != 0 {
		argCount++
		query += ` AND month = $` + strconv.Itoa(argCount)
		args = append(args, filter.Month)
	}
	if filter.Year != 0 {
		argCount++
		query += ` AND year = $` + strconv.Itoa(argCount)
		args = append(args, filter.Year)
	}

	query += ` ORDER BY paid_on DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("rent: list: %w", err)
	}
	defer rows.Close()

	var payments []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.TenantID, &p.Month, &p.Year, &p.Amount, &p.PaidOn, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("rent: scan: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
