package rent

import "time"

// Payment is one rent payment. At most one exists per (tenant, month, year);
// the ledger is append-only in normal operation.
type Payment struct {
	ID        int64     `json:"id"`
	TenantID  int64     `json:"tenant_id"`
	Month     int       `json:"month"`
	Year      int       `json:"year"`
	Amount    float64   `json:"amount"`
	PaidOn    time.Time `json:"paid_on"`
	CreatedAt time.Time `json:"created_at"`
}
