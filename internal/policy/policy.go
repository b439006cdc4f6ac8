// Package policy holds the row-level access predicates for every entity.
// What a managed backend would express as declarative row security is
// first-class logic here: each predicate is evaluated at the data-store
// boundary on every read and write, with the principal passed in explicitly.
package policy

import "github.com/rentdesk/rentdesk/internal/identity"

// CanReadTenantProfile reports whether p may read a tenant profile row.
// Admins read everything; tenants read only the row linked to them.
func CanReadTenantProfile(p identity.Principal, linkedPrincipalID *int64) bool {
	if p.IsAdmin() {
		return true
	}
	return p.Role == identity.RoleTenant && linkedPrincipalID != nil && *linkedPrincipalID == p.ID
}

// CanWriteTenantProfile reports whether p may create, update or delete
// tenant profiles. Mutation is admin-only.
func CanWriteTenantProfile(p identity.Principal) bool {
	return p.IsAdmin()
}

// CanReadPayment reports whether p may read a rent payment row.
func CanReadPayment(p identity.Principal, rowTenantID int64) bool {
	if p.IsAdmin() {
		return true
	}
	return p.OwnsTenant(rowTenantID)
}

// CanWritePayment reports whether p may record or alter payments.
func CanWritePayment(p identity.Principal) bool {
	return p.IsAdmin()
}

// CanReadRequest reports whether p may read a maintenance request row.
func CanReadRequest(p identity.Principal, rowTenantID int64) bool {
	if p.IsAdmin() {
		return true
	}
	return p.OwnsTenant(rowTenantID)
}

// CanInsertRequest reports whether p may create a maintenance request for
// rowTenantID. Tenants insert only under their own resolved tenant id.
func CanInsertRequest(p identity.Principal, rowTenantID int64) bool {
	if p.IsAdmin() {
		return true
	}
	return p.OwnsTenant(rowTenantID)
}

// CanWriteRequest reports whether p may update or delete maintenance
// requests. Tenants create but never mutate.
func CanWriteRequest(p identity.Principal) bool {
	return p.IsAdmin()
}

// TenantScope returns the tenant id list queries must be restricted to.
// Admin queries are unscoped. A tenant with no resolved profile is scoped
// to nothing, which yields zero rows rather than an error.
func TenantScope(p identity.Principal) (tenantID int64, scoped bool) {
	if p.IsAdmin() {
		return 0, false
	}
	if p.TenantID == nil {
		return -1, true
	}
	return *p.TenantID, true
}
