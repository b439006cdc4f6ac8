package maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rentdesk/rentdesk/internal/identity"
	"github.com/rentdesk/rentdesk/internal/policy"
	"github.com/rentdesk/rentdesk/internal/shared"
)

// Service enforces the request lifecycle: tenant-authored creation,
// admin-authored resolution, no way back from resolved.
type Service struct {
	repo     Repository
	validate *validator.Validate
	now      func() time.Time
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, validate: validator.New(), now: time.Now}
}

// Create opens a request. Only the tenant owning the target tenant id (or an
// admin) may insert, and the description bounds are validated before any
// write.
func (s *Service) Create(ctx context.Context, p identity.Principal, req CreateRequest) (Request, error) {
	if err := s.validate.Struct(req); err != nil {
		return Request{}, fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	if !policy.CanInsertRequest(p, req.TenantID) {
		return Request{}, shared.ErrForbidden
	}

	return s.repo.Create(ctx, Request{
		TenantID:         req.TenantID,
		RoomNo:           req.RoomNo,
		IssueDescription: req.IssueDescription,
	})
}

// Resolve moves an open request to resolved, exactly once. Admin only.
func (s *Service) Resolve(ctx context.Context, p identity.Principal, id int64) (Request, error) {
	if !policy.CanWriteRequest(p) {
		return Request{}, shared.ErrForbidden
	}

	req, err := s.repo.Get(ctx, id)
	if err != nil {
		return Request{}, err
	}
	if req.Status == StatusResolved {
		return Request{}, fmt.Errorf("maintenance: request %d already resolved: %w", id, shared.ErrConflict)
	}

	resolvedAt := s.now().UTC()
	changed, err := s.repo.Resolve(ctx, id, resolvedAt)
	if err != nil {
		return Request{}, err
	}
	if !changed {
		// Lost the race to another resolver.
		return Request{}, fmt.Errorf("maintenance: request %d already resolved: %w", id, shared.ErrConflict)
	}

	req.Status = StatusResolved
	req.ResolvedAt = &resolvedAt
	return req, nil
}

// List returns requests visible to the principal, newest first. Tenant
// principals are scoped to their own rows; an unmatched scope yields zero
// rows rather than an error.
func (s *Service) List(ctx context.Context, p identity.Principal, req ListRequestsRequest) ([]Request, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}

	filter := ListFilter{Status: req.Status}
	if tenantID, scoped := policy.TenantScope(p); scoped {
		filter.TenantID = &tenantID
	} else if req.TenantID > 0 {
		id := req.TenantID
		filter.TenantID = &id
	}

	return s.repo.List(ctx, filter)
}
