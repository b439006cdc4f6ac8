package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rentdesk/rentdesk/internal/shared"
)

// Service wraps authentication and role resolution rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Authenticate validates email/password credentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}

// Resolve maps an authenticated principal id to its role and, for tenants,
// to the linked tenant profile id. A principal with no role record is
// unauthorized; no role is ever assumed by default.
func (s *Service) Resolve(ctx context.Context, principalID int64) (Principal, error) {
	user, err := s.repo.FindByID(ctx, principalID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return Principal{}, shared.ErrUnauthorized
		}
		return Principal{}, fmt.Errorf("identity: resolve principal: %w", err)
	}
	if !user.IsActive {
		return Principal{}, shared.ErrUnauthorized
	}

	role, err := s.repo.FindRole(ctx, principalID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return Principal{}, shared.ErrUnauthorized
		}
		return Principal{}, fmt.Errorf("identity: resolve role: %w", err)
	}

	p := Principal{ID: user.ID, Email: user.Email, Role: role}
	if role == RoleTenant {
		tenantID, err := s.repo.FindTenantLink(ctx, principalID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				// Tenant account without a profile is a provisioning leftover,
				// not a usable identity.
				return Principal{}, shared.ErrUnauthorized
			}
			return Principal{}, fmt.Errorf("identity: resolve tenant link: %w", err)
		}
		p.TenantID = &tenantID
	}
	return p, nil
}

// RegisterSession persists the session metadata in postgres.
func (s *Service) RegisterSession(ctx context.Context, id string, principalID int64, expiresAt time.Time, ip, ua string) error {
	return s.repo.CreateSession(ctx, id, principalID, expiresAt, ip, ua)
}

// RemoveSession deletes a session record from postgres.
func (s *Service) RemoveSession(ctx context.Context, id string) error {
	return s.repo.DeleteSession(ctx, id)
}

// Orphans lists principals left inconsistent by interrupted provisioning.
func (s *Service) Orphans(ctx context.Context) ([]OrphanPrincipal, error) {
	orphans, err := s.repo.FindOrphanPrincipals(ctx)
	if err != nil {
		return nil, fmt.Errorf("identity: reconcile orphans: %w", err)
	}
	return orphans, nil
}

// HashPassword produces a bcrypt hash for new credentials.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("identity: hash password: %w", err)
	}
	return string(hash), nil
}
