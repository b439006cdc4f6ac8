package maintenance

import "time"

// Status is the lifecycle state of a request. Resolved is terminal.
type Status string

const (
	// StatusOpen is the state every request starts in.
	StatusOpen Status = "open"
	// StatusResolved is set exactly once; no transition leads back to open.
	StatusResolved Status = "resolved"
)

// Request is a maintenance request authored by a tenant and resolved by an
// admin. ResolvedAt is set iff Status is resolved.
type Request struct {
	ID               int64      `json:"id"`
	TenantID         int64      `json:"tenant_id"`
	RoomNo           string     `json:"room_no"`
	IssueDescription string     `json:"issue_description"`
	Status           Status     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	ResolvedAt       *time.Time `json:"resolved_at,omitempty"`
}
