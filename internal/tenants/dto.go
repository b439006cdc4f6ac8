package tenants

// ProvisionTenantRequest carries everything needed to create the principal,
// the profile and the role assignment in one logical unit.
type ProvisionTenantRequest struct {
	Name          string  `json:"name" validate:"required,max=100"`
	RoomNo        string  `json:"room_no" validate:"required,max=10"`
	Contact       string  `json:"contact" validate:"required,min=10,max=15"`
	DepositAmount float64 `json:"deposit_amount" validate:"gte=0"`
	Email         string  `json:"email" validate:"required,email"`
	Password      string  `json:"password" validate:"required,min=8"`
}

// UpdateTenantRequest updates profile fields; nil fields are left unchanged.
type UpdateTenantRequest struct {
	Name          *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	RoomNo        *string  `json:"room_no,omitempty" validate:"omitempty,min=1,max=10"`
	Contact       *string  `json:"contact,omitempty" validate:"omitempty,min=10,max=15"`
	DepositAmount *float64 `json:"deposit_amount,omitempty" validate:"omitempty,gte=0"`
}

// ListTenantsRequest filters the tenant directory.
type ListTenantsRequest struct {
	Search  string `json:"search,omitempty"`
	SortBy  string `json:"sort_by,omitempty"`
	SortDir string `json:"sort_dir,omitempty"`
	Limit   int    `json:"limit" validate:"gte=0,lte=1000"`
}
