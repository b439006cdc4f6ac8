package policy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rentdesk/rentdesk/internal/identity"
)

func adminPrincipal() identity.Principal {
	return identity.Principal{ID: 1, Email: "admin@test.local", Role: identity.RoleAdmin}
}

func tenantPrincipal(principalID, tenantID int64) identity.Principal {
	return identity.Principal{ID: principalID, Email: "tenant@test.local", Role: identity.RoleTenant, TenantID: &tenantID}
}

func TestAdminReadsAndWritesEverything(t *testing.T) {
	admin := adminPrincipal()
	otherPrincipal := int64(99)

	require.True(t, CanReadTenantProfile(admin, &otherPrincipal))
	require.True(t, CanReadTenantProfile(admin, nil))
	require.True(t, CanWriteTenantProfile(admin))
	require.True(t, CanReadPayment(admin, 42))
	require.True(t, CanWritePayment(admin))
	require.True(t, CanReadRequest(admin, 42))
	require.True(t, CanInsertRequest(admin, 42))
	require.True(t, CanWriteRequest(admin))
}

func TestTenantReadsOnlyOwnProfile(t *testing.T) {
	tenant := tenantPrincipal(7, 3)
	own := int64(7)
	other := int64(8)

	require.True(t, CanReadTenantProfile(tenant, &own))
	require.False(t, CanReadTenantProfile(tenant, &other))
	require.False(t, CanReadTenantProfile(tenant, nil))
	require.False(t, CanWriteTenantProfile(tenant))
}

func TestTenantPaymentAccess(t *testing.T) {
	tenant := tenantPrincipal(7, 3)

	require.True(t, CanReadPayment(tenant, 3))
	require.False(t, CanReadPayment(tenant, 4))
	require.False(t, CanWritePayment(tenant))
}

func TestTenantRequestAccess(t *testing.T) {
	tenant := tenantPrincipal(7, 3)

	require.True(t, CanReadRequest(tenant, 3))
	require.False(t, CanReadRequest(tenant, 4))
	require.True(t, CanInsertRequest(tenant, 3))
	require.False(t, CanInsertRequest(tenant, 4))
	require.False(t, CanWriteRequest(tenant))
}

func TestTenantScope(t *testing.T) {
	_, scoped := TenantScope(adminPrincipal())
	require.False(t, scoped)

	tenantID, scoped := TenantScope(tenantPrincipal(7, 3))
	require.True(t, scoped)
	require.Equal(t, int64(3), tenantID)
}

func TestTenantScopeWithoutProfileMatchesNothing(t *testing.T) {
	p := identity.Principal{ID: 7, Role: identity.RoleTenant}
	tenantID, scoped := TenantScope(p)
	require.True(t, scoped)
	require.Equal(t, int64(-1), tenantID)
}
