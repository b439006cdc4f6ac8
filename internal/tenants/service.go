package tenants

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/rentdesk/rentdesk/internal/identity"
	"github.com/rentdesk/rentdesk/internal/policy"
	"github.com/rentdesk/rentdesk/internal/shared"
)

// Service enforces the tenant directory access rules on every operation.
type Service struct {
	repo     Repository
	validate *validator.Validate
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, validate: validator.New()}
}

// List returns profiles visible to the principal. Admins see the directory;
// tenants see at most their own row.
func (s *Service) List(ctx context.Context, p identity.Principal, req ListTenantsRequest) ([]TenantProfile, error) {
	profiles, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, err
	}
	if p.IsAdmin() {
		return profiles, nil
	}
	var visible []TenantProfile
	for _, profile := range profiles {
		if policy.CanReadTenantProfile(p, profile.LinkedPrincipalID) {
			visible = append(visible, profile)
		}
	}
	return visible, nil
}

// Get returns a single profile. A denied read reports not found rather than
// confirming the row exists.
func (s *Service) Get(ctx context.Context, p identity.Principal, id int64) (TenantProfile, error) {
	profile, err := s.repo.Get(ctx, id)
	if err != nil {
		return TenantProfile{}, err
	}
	if !policy.CanReadTenantProfile(p, profile.LinkedPrincipalID) {
		return TenantProfile{}, shared.ErrNotFound
	}
	return profile, nil
}

// Update applies partial changes to a profile. Admin only.
func (s *Service) Update(ctx context.Context, p identity.Principal, id int64, req UpdateTenantRequest) (TenantProfile, error) {
	if !policy.CanWriteTenantProfile(p) {
		return TenantProfile{}, shared.ErrForbidden
	}
	if err := s.validate.Struct(req); err != nil {
		return TenantProfile{}, fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}

	profile, err := s.repo.Get(ctx, id)
	if err != nil {
		return TenantProfile{}, err
	}
	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.RoomNo != nil {
		profile.RoomNo = *req.RoomNo
	}
	if req.Contact != nil {
		profile.Contact = *req.Contact
	}
	if req.DepositAmount != nil {
		profile.DepositAmount = *req.DepositAmount
	}
	if err := s.repo.Update(ctx, id, profile); err != nil {
		return TenantProfile{}, err
	}
	return profile, nil
}

// Delete removes a profile and, through cascade, its payments and requests.
// Admin only.
func (s *Service) Delete(ctx context.Context, p identity.Principal, id int64) error {
	if !policy.CanWriteTenantProfile(p) {
		return shared.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
