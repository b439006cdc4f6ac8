package maintenance

// CreateRequest opens a new maintenance request. The description bounds are
// checked before any write is attempted.
type CreateRequest struct {
	TenantID         int64  `json:"tenant_id" validate:"required,gt=0"`
	RoomNo           string `json:"room_no" validate:"required,max=10"`
	IssueDescription string `json:"issue_description" validate:"required,min=10,max=1000"`
}

// ListRequestsRequest filters requests by status.
type ListRequestsRequest struct {
	TenantID int64  `json:"tenant_id,omitempty"`
	Status   Status `json:"status,omitempty" validate:"omitempty,oneof=open resolved"`
}
