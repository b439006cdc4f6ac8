package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rentdesk/rentdesk/internal/maintenance"
	"github.com/rentdesk/rentdesk/internal/rent"
	"github.com/rentdesk/rentdesk/internal/tenants"
)

func profile(id int64, name string) tenants.TenantProfile {
	return tenants.TenantProfile{ID: id, Name: name, RoomNo: "R-" + name, Contact: "08123456789"}
}

func TestAggregateDueTenantsAreTheUnpaidSet(t *testing.T) {
	all := []tenants.TenantProfile{profile(1, "A"), profile(2, "B")}
	payments := []rent.Payment{
		{ID: 1, TenantID: 1, Month: 3, Year: 2024, Amount: 5000, PaidOn: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
	}

	s := Aggregate(all, payments, nil, 3, 2024)

	require.Equal(t, []int64{1}, s.PaidTenantIDs)
	require.Len(t, s.DueTenants, 1)
	require.Equal(t, int64(2), s.DueTenants[0].ID)
	require.Equal(t, 5000.0, s.Collected)
	require.Equal(t, "5,000.00", s.CollectedDisplay)
}

func TestAggregateIgnoresPaymentsOutsidePeriod(t *testing.T) {
	all := []tenants.TenantProfile{profile(1, "A"), profile(2, "B")}
	payments := []rent.Payment{
		{ID: 1, TenantID: 1, Month: 2, Year: 2024, Amount: 5000},
		{ID: 2, TenantID: 2, Month: 3, Year: 2023, Amount: 5000},
	}

	s := Aggregate(all, payments, nil, 3, 2024)

	require.Empty(t, s.PaidTenantIDs)
	require.Len(t, s.DueTenants, 2)
	require.Zero(t, s.Collected)
}

func TestAggregateEmptyInputsYieldZeroCounts(t *testing.T) {
	s := Aggregate(nil, nil, nil, 1, 2024)

	require.NotNil(t, s.PaidTenantIDs)
	require.Empty(t, s.PaidTenantIDs)
	require.NotNil(t, s.DueTenants)
	require.Empty(t, s.DueTenants)
	require.Zero(t, s.OpenRequests)
	require.Zero(t, s.ResolvedRequests)
	require.Zero(t, s.Collected)
	require.Equal(t, "0.00", s.CollectedDisplay)
}

func TestAggregateCountsRequestsByStatus(t *testing.T) {
	now := time.Now().UTC()
	requests := []maintenance.Request{
		{ID: 1, TenantID: 1, Status: maintenance.StatusOpen},
		{ID: 2, TenantID: 1, Status: maintenance.StatusResolved, ResolvedAt: &now},
		{ID: 3, TenantID: 2, Status: maintenance.StatusOpen},
	}

	s := Aggregate(nil, nil, requests, 3, 2024)

	require.Equal(t, 2, s.OpenRequests)
	require.Equal(t, 1, s.ResolvedRequests)
}

func TestAggregatePaidIDsSortedAndDeduplicated(t *testing.T) {
	all := []tenants.TenantProfile{profile(1, "A"), profile(2, "B"), profile(3, "C")}
	payments := []rent.Payment{
		{ID: 1, TenantID: 3, Month: 6, Year: 2025, Amount: 100},
		{ID: 2, TenantID: 1, Month: 6, Year: 2025, Amount: 200},
	}

	s := Aggregate(all, payments, nil, 6, 2025)

	require.Equal(t, []int64{1, 3}, s.PaidTenantIDs)
	require.Len(t, s.DueTenants, 1)
	require.Equal(t, int64(2), s.DueTenants[0].ID)
	require.Equal(t, 300.0, s.Collected)
}
