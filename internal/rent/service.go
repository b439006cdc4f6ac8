package rent

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/rentdesk/rentdesk/internal/identity"
	"github.com/rentdesk/rentdesk/internal/policy"
	"github.com/rentdesk/rentdesk/internal/shared"
)

// Service enforces ledger rules: admin-only writes, tenant-scoped reads,
// validation before any store call.
type Service struct {
	repo     Repository
	validate *validator.Validate
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, validate: validator.New()}
}

// RecordPayment appends one payment for (tenant, month, year). A second call
// for the same tuple fails with DuplicatePayment; success has no further
// side effects.
func (s *Service) RecordPayment(ctx context.Context, p identity.Principal, req RecordPaymentRequest) (Payment, error) {
	if !policy.CanWritePayment(p) {
		return Payment{}, shared.ErrForbidden
	}
	if err := s.validate.Struct(req); err != nil {
		return Payment{}, fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}

	return s.repo.Create(ctx, Payment{
		TenantID: req.TenantID,
		Month:    req.Month,
		Year:     req.Year,
		Amount:   req.Amount,
		PaidOn:   req.PaidOn,
	})
}

// List returns ledger rows visible to the principal, ordered most recent
// first. Tenant principals are forced onto their own profile regardless of
// the requested filter, so cross-tenant reads come back empty, not denied.
func (s *Service) List(ctx context.Context, p identity.Principal, req ListPaymentsRequest) ([]Payment, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}

	filter := ListFilter{Month: req.Month, Year: req.Year}
	if tenantID, scoped := policy.TenantScope(p); scoped {
		filter.TenantID = &tenantID
	} else if req.TenantID > 0 {
		id := req.TenantID
		filter.TenantID = &id
	}

	return s.repo.List(ctx, filter)
}
