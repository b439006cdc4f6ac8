package maintenance

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rentdesk/rentdesk/internal/shared"
)

// ListFilter narrows request reads.
type ListFilter struct {
	TenantID *int64
	Status   Status
}

// Repository defines persistence operations for maintenance requests.
type Repository interface {
	Create(ctx context.Context, req Request) (Request, error)
	Get(ctx context.Context, id int64) (Request, error)
	List(ctx context.Context, filter ListFilter) ([]Request, error)
	Resolve(ctx context.Context, id int64, resolvedAt time.Time) (bool, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Create(ctx context.Context, req Request) (Request, error) {
	const query = `INSERT INTO maintenance_requests (tenant_id, room_no, issue_description, status)
		VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query, req.TenantID, req.RoomNo, req.IssueDescription, string(StatusOpen)).
		Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		return Request{}, fmt.Errorf("maintenance: create: %w", err)
	}
	req.Status = StatusOpen
	return req, nil
}

func (r *repository) Get(ctx context.Context, id int64) (Request, error) {
	const query = `SELECT id, tenant_id, room_no, issue_description, status, created_at, resolved_at
		FROM maintenance_requests WHERE id = $1`
	var req Request
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&req.ID, &req.TenantID, &req.RoomNo, &req.IssueDescription, &req.Status, &req.CreatedAt, &req.ResolvedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Request{}, shared.ErrNotFound
		}
		return Request{}, fmt.Errorf("maintenance: get: %w", err)
	}
	return req, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Request, error) {
	query := `SELECT id, tenant_id, room_no, issue_description, status, created_at, resolved_at
		FROM maintenance_requests WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filter.TenantID != nil {
		argCount++
		query += ` AND tenant_id = $` + strconv.Itoa(argCount)
		args = append(args, *filter.TenantID)
	}
	if filter.Status != "" {
		argCount++
		query += ` AND status = $` + strconv.Itoa(argCount)
		args = append(args, string(filter.Status))
	}

	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("maintenance: list: %w", err)
	}
	defer rows.Close()

	var requests []Request
	for rows.Next() {
		var req Request
		if err := rows.Scan(&req.ID, &req.TenantID, &req.RoomNo, &req.IssueDescription, &req.Status, &req.CreatedAt, &req.ResolvedAt); err != nil {
			return nil, fmt.Errorf("maintenance: scan: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// Resolve flips an open request to resolved. The status predicate in the
// UPDATE makes the transition single-shot even under concurrent resolvers:
// the second caller affects zero rows.
func (r *repository) Resolve(ctx context.Context, id int64, resolvedAt time.Time) (bool, error) {
	const query = `UPDATE maintenance_requests SET status = $1, resolved_at = $2 WHERE id = $3 AND status = $4`
	tag, err := r.pool.Exec(ctx, query, string(StatusResolved), resolvedAt, id, string(StatusOpen))
	if err != nil {
		return false, fmt.Errorf("maintenance: resolve: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
