package tenants

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rentdesk/rentdesk/internal/identity"
	"github.com/rentdesk/rentdesk/internal/shared"
)

func tenantWithProfile(t *testing.T, repo *memoryRepository, principalID int64, name string) (identity.Principal, TenantProfile) {
	t.Helper()
	profile, err := repo.Create(context.Background(), TenantProfile{
		Name:              name,
		RoomNo:            "B-20",
		Contact:           "08123456789",
		DepositAmount:     300,
		LinkedPrincipalID: &principalID,
	})
	require.NoError(t, err)
	return identity.Principal{ID: principalID, Role: identity.RoleTenant, TenantID: &profile.ID}, profile
}

func TestListShowsTenantOnlyTheirOwnRow(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewService(repo)

	alice, aliceProfile := tenantWithProfile(t, repo, 10, "Alice")
	tenantWithProfile(t, repo, 11, "Bob")

	all, err := svc.List(context.Background(), admin(), ListTenantsRequest{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	own, err := svc.List(context.Background(), alice, ListTenantsRequest{})
	require.NoError(t, err)
	require.Len(t, own, 1)
	require.Equal(t, aliceProfile.ID, own[0].ID)
}

func TestListForUnlinkedTenantIsEmptyNotError(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewService(repo)
	tenantWithProfile(t, repo, 10, "Alice")

	p := identity.Principal{ID: 99, Role: identity.RoleTenant}
	rows, err := svc.List(context.Background(), p, ListTenantsRequest{})
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestGetDeniedReadReportsNotFound(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewService(repo)

	alice, _ := tenantWithProfile(t, repo, 10, "Alice")
	_, bobProfile := tenantWithProfile(t, repo, 11, "Bob")

	_, err := svc.Get(context.Background(), alice, bobProfile.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)

	got, err := svc.Get(context.Background(), admin(), bobProfile.ID)
	require.NoError(t, err)
	require.Equal(t, "Bob", got.Name)
}

func TestUpdateIsAdminOnly(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewService(repo)

	alice, aliceProfile := tenantWithProfile(t, repo, 10, "Alice")

	name := "Alice Renamed"
	_, err := svc.Update(context.Background(), alice, aliceProfile.ID, UpdateTenantRequest{Name: &name})
	require.ErrorIs(t, err, shared.ErrForbidden)

	updated, err := svc.Update(context.Background(), admin(), aliceProfile.ID, UpdateTenantRequest{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Alice Renamed", updated.Name)
	require.Equal(t, aliceProfile.RoomNo, updated.RoomNo, "unset fields stay unchanged")
}

func TestUpdateValidatesFieldBounds(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewService(repo)
	_, profile := tenantWithProfile(t, repo, 10, "Alice")

	shortContact := "123"
	_, err := svc.Update(context.Background(), admin(), profile.ID, UpdateTenantRequest{Contact: &shortContact})
	require.ErrorIs(t, err, shared.ErrValidation)

	negative := -1.0
	_, err = svc.Update(context.Background(), admin(), profile.ID, UpdateTenantRequest{DepositAmount: &negative})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestDeleteIsAdminOnly(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewService(repo)
	alice, profile := tenantWithProfile(t, repo, 10, "Alice")

	require.ErrorIs(t, svc.Delete(context.Background(), alice, profile.ID), shared.ErrForbidden)
	require.NoError(t, svc.Delete(context.Background(), admin(), profile.ID))
	require.ErrorIs(t, svc.Delete(context.Background(), admin(), profile.ID), shared.ErrNotFound)
}
