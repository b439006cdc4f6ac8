package rent

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rentdesk/rentdesk/internal/identity"
	"github.com/rentdesk/rentdesk/internal/shared"
)

type memoryRepository struct {
	nextID   int64
	payments []Payment
}

func (r *memoryRepository) Create(_ context.Context, payment Payment) (Payment, error) {
	for _, p := range r.payments {
		if p.TenantID == payment.TenantID && p.Month == payment.Month && p.Year == payment.Year {
			return Payment{}, fmt.Errorf("rent: tenant %d, %d/%d: %w", payment.TenantID, payment.Month, payment.Year, shared.ErrDuplicatePayment)
		}
	}
	r.nextID++
	payment.ID = r.nextID
	payment.CreatedAt = time.Now()
	r.payments = append(r.payments, payment)
	return payment, nil
}

func (r *memoryRepository) List(_ context.Context, filter ListFilter) ([]Payment, error) {
	var out []Payment
	for _, p := range r.payments {
		if filter.TenantID != nil && p.TenantID != *filter.TenantID {
			continue
		}
		if filter.Month != 0 && p.Month != filter.Month {
			continue
		}
		if filter.Year != 0 && p.Year != filter.Year {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func admin() identity.Principal {
	return identity.Principal{ID: 1, Email: "admin@test.local", Role: identity.RoleAdmin}
}

func tenant(principalID, tenantID int64) identity.Principal {
	return identity.Principal{ID: principalID, Role: identity.RoleTenant, TenantID: &tenantID}
}

func marchPayment(tenantID int64) RecordPaymentRequest {
	return RecordPaymentRequest{
		TenantID: tenantID,
		Month:    3,
		Year:     2024,
		Amount:   5000,
		PaidOn:   time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	}
}

func TestRecordPaymentSecondInsertForSamePeriodFails(t *testing.T) {
	svc := NewService(&memoryRepository{})

	first, err := svc.RecordPayment(context.Background(), admin(), marchPayment(1))
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	_, err = svc.RecordPayment(context.Background(), admin(), marchPayment(1))
	require.ErrorIs(t, err, shared.ErrDuplicatePayment)

	// A different period for the same tenant is fine.
	req := marchPayment(1)
	req.Month = 4
	_, err = svc.RecordPayment(context.Background(), admin(), req)
	require.NoError(t, err)
}

func TestRecordPaymentIsAdminOnly(t *testing.T) {
	svc := NewService(&memoryRepository{})

	_, err := svc.RecordPayment(context.Background(), tenant(7, 1), marchPayment(1))
	require.ErrorIs(t, err, shared.ErrForbidden)
}

func TestRecordPaymentValidatesFieldBounds(t *testing.T) {
	svc := NewService(&memoryRepository{})

	cases := []struct {
		name   string
		mutate func(*RecordPaymentRequest)
	}{
		{"month zero", func(r *RecordPaymentRequest) { r.Month = 0 }},
		{"month thirteen", func(r *RecordPaymentRequest) { r.Month = 13 }},
		{"year below range", func(r *RecordPaymentRequest) { r.Year = 1999 }},
		{"year above range", func(r *RecordPaymentRequest) { r.Year = 2101 }},
		{"negative amount", func(r *RecordPaymentRequest) { r.Amount = -1 }},
		{"missing tenant", func(r *RecordPaymentRequest) { r.TenantID = 0 }},
		{"missing paid_on", func(r *RecordPaymentRequest) { r.PaidOn = time.Time{} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := marchPayment(1)
			tc.mutate(&req)
			_, err := svc.RecordPayment(context.Background(), admin(), req)
			require.ErrorIs(t, err, shared.ErrValidation)
		})
	}
}

func TestListScopesTenantToOwnRows(t *testing.T) {
	repo := &memoryRepository{}
	svc := NewService(repo)

	_, err := svc.RecordPayment(context.Background(), admin(), marchPayment(1))
	require.NoError(t, err)
	_, err = svc.RecordPayment(context.Background(), admin(), marchPayment(2))
	require.NoError(t, err)

	rows, err := svc.List(context.Background(), tenant(7, 1), ListPaymentsRequest{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, int64(1), rows[0].TenantID)

	// Asking for another tenant's rows yields the caller's own scope.
	rows, err = svc.List(context.Background(), tenant(7, 1), ListPaymentsRequest{TenantID: 2})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, int64(1), rows[0].TenantID)
}

func TestListCrossTenantReadIsEmptyNotError(t *testing.T) {
	repo := &memoryRepository{}
	svc := NewService(repo)

	_, err := svc.RecordPayment(context.Background(), admin(), marchPayment(2))
	require.NoError(t, err)

	rows, err := svc.List(context.Background(), tenant(7, 1), ListPaymentsRequest{})
	require.NoError(t, err)
	require.Empty(t, rows)

	// A tenant with no linked profile sees nothing at all.
	unlinked := identity.Principal{ID: 8, Role: identity.RoleTenant}
	rows, err = svc.List(context.Background(), unlinked, ListPaymentsRequest{})
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestListAdminFilters(t *testing.T) {
	repo := &memoryRepository{}
	svc := NewService(repo)

	_, err := svc.RecordPayment(context.Background(), admin(), marchPayment(1))
	require.NoError(t, err)
	req := marchPayment(1)
	req.Month = 4
	_, err = svc.RecordPayment(context.Background(), admin(), req)
	require.NoError(t, err)

	rows, err := svc.List(context.Background(), admin(), ListPaymentsRequest{Month: 3, Year: 2024})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, 3, rows[0].Month)

	rows, err = svc.List(context.Background(), admin(), ListPaymentsRequest{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
}

func TestFormatAmount(t *testing.T) {
	require.Equal(t, "5,000.00", FormatAmount(5000))
	require.Equal(t, "0.00", FormatAmount(0))
	require.Equal(t, "1,234,567.89", FormatAmount(1234567.89))
}
