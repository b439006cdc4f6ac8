package identity

import "time"

// Role is the single role assigned to a principal at creation.
type Role string

const (
	// RoleAdmin grants full read/write across all entities.
	RoleAdmin Role = "admin"
	// RoleTenant restricts a principal to its own linked tenant profile.
	RoleTenant Role = "tenant"
)

// User represents an authenticated account record.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}

// Principal is a resolved identity: one role, and for tenants the linked
// tenant profile id. Operations receive it explicitly rather than reading
// ambient session state.
type Principal struct {
	ID       int64
	Email    string
	Role     Role
	TenantID *int64
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// OwnsTenant reports whether the principal is the tenant linked to tenantID.
func (p Principal) OwnsTenant(tenantID int64) bool {
	return p.Role == RoleTenant && p.TenantID != nil && *p.TenantID == tenantID
}
