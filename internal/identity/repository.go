package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rentdesk/rentdesk/internal/platform/db"
	"github.com/rentdesk/rentdesk/internal/shared"
)

// OrphanPrincipal is an account left behind by an interrupted provisioning
// run: it exists but has no usable role or tenant profile.
type OrphanPrincipal struct {
	PrincipalID int64     `json:"principal_id"`
	Email       string    `json:"email"`
	MissingRole bool      `json:"missing_role"`
	MissingLink bool      `json:"missing_link"`
	CreatedAt   time.Time `json:"created_at"`
}

// Repository defines persistence operations for the identity module.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, principalID int64) (*User, error)
	FindRole(ctx context.Context, principalID int64) (Role, error)
	FindTenantLink(ctx context.Context, principalID int64) (int64, error)

	CreatePrincipal(ctx context.Context, email, passwordHash string) (int64, error)
	DeletePrincipal(ctx context.Context, principalID int64) error
	AssignRole(ctx context.Context, principalID int64, role Role) error
	FindOrphanPrincipals(ctx context.Context) ([]OrphanPrincipal, error)

	CreateSession(ctx context.Context, id string, principalID int64, expiresAt time.Time, ip, ua string) error
	DeleteSession(ctx context.Context, id string) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindByEmail fetches a principal account by email.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	const query = `SELECT id, email, password_hash, is_active, created_at FROM principals WHERE email = $1`
	var u User
	err := r.pool.QueryRow(ctx, query, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.IsActive, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("identity: find by email: %w", err)
	}
	return &u, nil
}

// FindByID fetches a principal account by id.
func (r *PGRepository) FindByID(ctx context.Context, principalID int64) (*User, error) {
	const query = `SELECT id, email, password_hash, is_active, created_at FROM principals WHERE id = $1`
	var u User
	err := r.pool.QueryRow(ctx, query, principalID).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.IsActive, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("identity: find by id: %w", err)
	}
	return &u, nil
}

// FindRole returns the single role assigned to the principal.
// The store allows a set, but provisioning assigns at most one row; the
// LIMIT keeps the read deterministic regardless.
func (r *PGRepository) FindRole(ctx context.Context, principalID int64) (Role, error) {
	const query = `SELECT role FROM user_roles WHERE principal_id = $1 LIMIT 1`
	var role string
	err := r.pool.QueryRow(ctx, query, principalID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", shared.ErrNotFound
		}
		return "", fmt.Errorf("identity: find role: %w", err)
	}
	return Role(role), nil
}

// FindTenantLink resolves the tenant profile linked to the principal.
func (r *PGRepository) FindTenantLink(ctx context.Context, principalID int64) (int64, error) {
	const query = `SELECT id FROM tenant_profiles WHERE linked_principal_id = $1`
	var tenantID int64
	err := r.pool.QueryRow(ctx, query, principalID).Scan(&tenantID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, shared.ErrNotFound
		}
		return 0, fmt.Errorf("identity: find tenant link: %w", err)
	}
	return tenantID, nil
}

// CreatePrincipal inserts a new account with pre-hashed credentials.
func (r *PGRepository) CreatePrincipal(ctx context.Context, email, passwordHash string) (int64, error) {
	const query = `INSERT INTO principals (email, password_hash, is_active) VALUES ($1, $2, TRUE) RETURNING id`
	var id int64
	if err := r.pool.QueryRow(ctx, query, email, passwordHash).Scan(&id); err != nil {
		if db.IsUniqueViolation(err, "uq_principals_email") {
			return 0, fmt.Errorf("identity: %s: %w", email, shared.ErrCredentialConflict)
		}
		return 0, fmt.Errorf("identity: create principal: %w", err)
	}
	return id, nil
}

// DeletePrincipal removes an account and its role rows. Used as the
// compensation step when provisioning fails mid-saga.
func (r *PGRepository) DeletePrincipal(ctx context.Context, principalID int64) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE principal_id = $1`, principalID); err != nil {
			return fmt.Errorf("identity: delete roles: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM principals WHERE id = $1`, principalID); err != nil {
			return fmt.Errorf("identity: delete principal: %w", err)
		}
		return nil
	})
}

// AssignRole records the principal's role.
func (r *PGRepository) AssignRole(ctx context.Context, principalID int64, role Role) error {
	const query = `INSERT INTO user_roles (principal_id, role) VALUES ($1, $2)`
	if _, err := r.pool.Exec(ctx, query, principalID, string(role)); err != nil {
		return fmt.Errorf("identity: assign role: %w", err)
	}
	return nil
}

// FindOrphanPrincipals lists accounts with no role row, or with a tenant
// role but no linked tenant profile.
func (r *PGRepository) FindOrphanPrincipals(ctx context.Context) ([]OrphanPrincipal, error) {
	const query = `
		SELECT p.id, p.email, ur.role IS NULL, tp.id IS NULL, p.created_at
		FROM principals p
		LEFT JOIN user_roles ur ON ur.principal_id = p.id
		LEFT JOIN tenant_profiles tp ON tp.linked_principal_id = p.id
		WHERE ur.role IS NULL OR (ur.role = 'tenant' AND tp.id IS NULL)
		ORDER BY p.created_at`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("identity: find orphans: %w", err)
	}
	defer rows.Close()

	var orphans []OrphanPrincipal
	for rows.Next() {
		var o OrphanPrincipal
		if err := rows.Scan(&o.PrincipalID, &o.Email, &o.MissingRole, &o.MissingLink, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("identity: scan orphan: %w", err)
		}
		orphans = append(orphans, o)
	}
	return orphans, rows.Err()
}

// CreateSession persists a new login session for auditing.
func (r *PGRepository) CreateSession(ctx context.Context, id string, principalID int64, expiresAt time.Time, ip, ua string) error {
	const query = `INSERT INTO sessions (id, principal_id, created_at, expires_at, ip, ua) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query, id, principalID, time.Now().UTC(), expiresAt.UTC(), ip, ua)
	if err != nil {
		return fmt.Errorf("identity: create session: %w", err)
	}
	return nil
}

// DeleteSession removes a session record.
func (r *PGRepository) DeleteSession(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("identity: delete session: %w", err)
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
