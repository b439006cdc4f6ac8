package dashboard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rentdesk/rentdesk/internal/identity"
	"github.com/rentdesk/rentdesk/internal/maintenance"
	"github.com/rentdesk/rentdesk/internal/rent"
	"github.com/rentdesk/rentdesk/internal/shared"
	"github.com/rentdesk/rentdesk/internal/tenants"
)

// TenantLister is the slice of the tenant service the dashboard reads.
type TenantLister interface {
	List(ctx context.Context, p identity.Principal, req tenants.ListTenantsRequest) ([]tenants.TenantProfile, error)
}

// PaymentLister is the slice of the rent service the dashboard reads.
type PaymentLister interface {
	List(ctx context.Context, p identity.Principal, req rent.ListPaymentsRequest) ([]rent.Payment, error)
}

// RequestLister is the slice of the maintenance service the dashboard reads.
type RequestLister interface {
	List(ctx context.Context, p identity.Principal, req maintenance.ListRequestsRequest) ([]maintenance.Request, error)
}

// Service assembles the dashboard from the three underlying collections.
type Service struct {
	tenants  TenantLister
	payments PaymentLister
	requests RequestLister
}

// NewService constructs a new Service.
func NewService(tenants TenantLister, payments PaymentLister, requests RequestLister) *Service {
	return &Service{tenants: tenants, payments: payments, requests: requests}
}

// Summary fetches tenants, payments and requests concurrently and reduces
// them for the period. The three queries are independent; the reduction
// tolerates any completion order. Admin only.
func (s *Service) Summary(ctx context.Context, p identity.Principal, month, year int) (Summary, error) {
	if !p.IsAdmin() {
		return Summary{}, shared.ErrForbidden
	}
	if month < 1 || month > 12 {
		return Summary{}, fmt.Errorf("%w: month must be in [1,12]", shared.ErrValidation)
	}
	if year < 2000 || year > 2100 {
		return Summary{}, fmt.Errorf("%w: year must be in [2000,2100]", shared.ErrValidation)
	}

	var (
		tenantList  []tenants.TenantProfile
		paymentList []rent.Payment
		requestList []maintenance.Request
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tenantList, err = s.tenants.List(gctx, p, tenants.ListTenantsRequest{})
		return err
	})
	g.Go(func() error {
		var err error
		paymentList, err = s.payments.List(gctx, p, rent.ListPaymentsRequest{Month: month, Year: year})
		return err
	})
	g.Go(func() error {
		var err error
		requestList, err = s.requests.List(gctx, p, maintenance.ListRequestsRequest{})
		return err
	})
	if err := g.Wait(); err != nil {
		return Summary{}, fmt.Errorf("dashboard: fetch: %w", err)
	}

	return Aggregate(tenantList, paymentList, requestList, month, year), nil
}
