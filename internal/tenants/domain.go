package tenants

import "time"

// TenantProfile represents a tenant living in the property.
// LinkedPrincipalID is a back-reference used purely for authorization
// lookup; at most one profile links to a given principal.
type TenantProfile struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	RoomNo            string    `json:"room_no"`
	Contact           string    `json:"contact"`
	DepositAmount     float64   `json:"deposit_amount"`
	LinkedPrincipalID *int64    `json:"linked_principal_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}
