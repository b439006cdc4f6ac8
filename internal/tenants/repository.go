package tenants

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rentdesk/rentdesk/internal/platform/db"
	"github.com/rentdesk/rentdesk/internal/shared"
)

// Repository defines persistence operations for tenant profiles.
type Repository interface {
	List(ctx context.Context, req ListTenantsRequest) ([]TenantProfile, error)
	Get(ctx context.Context, id int64) (TenantProfile, error)
	Create(ctx context.Context, profile TenantProfile) (TenantProfile, error)
	Update(ctx context.Context, id int64, profile TenantProfile) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context, req ListTenantsRequest) ([]TenantProfile, error) {
	query := `SELECT id, name, room_no, contact, deposit_amount, linked_principal_id, created_at FROM tenant_profiles WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if req.Search != "" {
		argCount++
		query += ` AND (name ILIKE $` + strconv.Itoa(argCount) + ` OR room_no ILIKE $` + strconv.Itoa(argCount) + `)`
		args = append(args, "%"+req.Search+"%")
	}

	query += " ORDER BY " + sortOrder(req.SortBy, req.SortDir)

	if req.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, req.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("tenants: list: %w", err)
	}
	defer rows.Close()

	var profiles []TenantProfile
	for rows.Next() {
		var p TenantProfile
		if err := rows.Scan(&p.ID, &p.Name, &p.RoomNo, &p.Contact, &p.DepositAmount, &p.LinkedPrincipalID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("tenants: scan: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (TenantProfile, error) {
	const query = `SELECT id, name, room_no, contact, deposit_amount, linked_principal_id, created_at FROM tenant_profiles WHERE id = $1`
	var p TenantProfile
	err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.RoomNo, &p.Contact, &p.DepositAmount, &p.LinkedPrincipalID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return TenantProfile{}, shared.ErrNotFound
		}
		return TenantProfile{}, fmt.Errorf("tenants: get: %w", err)
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, profile TenantProfile) (TenantProfile, error) {
	const query = `INSERT INTO tenant_profiles (name, room_no, contact, deposit_amount, linked_principal_id)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query, profile.Name, profile.RoomNo, profile.Contact, profile.DepositAmount, profile.LinkedPrincipalID).
		Scan(&profile.ID, &profile.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err, "uq_tenant_profiles_principal") {
			return TenantProfile{}, fmt.Errorf("tenants: principal already linked: %w", shared.ErrConflict)
		}
		return TenantProfile{}, fmt.Errorf("tenants: create: %w", err)
	}
	return profile, nil
}

func (r *repository) Update(ctx context.Context, id int64, profile TenantProfile) error {
	const query = `UPDATE tenant_profiles SET name = $1, room_no = $2, contact = $3, deposit_amount = $4 WHERE id = $5`
	tag, err := r.pool.Exec(ctx, query, profile.Name, profile.RoomNo, profile.Contact, profile.DepositAmount, id)
	if err != nil {
		return fmt.Errorf("tenants: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes the profile; rent payments and maintenance requests go with
// it through the cascade foreign keys.
func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tenant_profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("tenants: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func sortOrder(sortBy, sortDir string) string {
	dir := "ASC"
	if sortDir == "desc" {
		dir = "DESC"
	}
	switch sortBy {
	case "room_no":
		return "room_no " + dir
	case "created_at":
		return "created_at " + dir
	default:
		return "name " + dir
	}
}
