package rent

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// RecordPaymentRequest records one payment for a period.
type RecordPaymentRequest struct {
	TenantID int64     `json:"tenant_id" validate:"required,gt=0"`
	Month    int       `json:"month" validate:"gte=1,lte=12"`
	Year     int       `json:"year" validate:"gte=2000,lte=2100"`
	Amount   float64   `json:"amount" validate:"gte=0"`
	PaidOn   time.Time `json:"paid_on" validate:"required"`
}

// ListPaymentsRequest filters the ledger. TenantID is ignored for tenant
// principals, whose scope is forced to their own profile.
type ListPaymentsRequest struct {
	TenantID int64 `json:"tenant_id,omitempty"`
	Month    int   `json:"month,omitempty" validate:"omitempty,gte=1,lte=12"`
	Year     int   `json:"year,omitempty" validate:"omitempty,gte=2000,lte=2100"`
}

// PaymentResponse adds a human-readable amount to the payment row.
type PaymentResponse struct {
	Payment
	AmountDisplay string `json:"amount_display"`
}

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount renders an amount with thousand separators for display.
func FormatAmount(amount float64) string {
	return amountPrinter.Sprintf("%.2f", amount)
}

// ToResponse decorates a payment for API output.
func ToResponse(p Payment) PaymentResponse {
	return PaymentResponse{Payment: p, AmountDisplay: FormatAmount(p.Amount)}
}
