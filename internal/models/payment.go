package models

import "time"

// Payment types
const (
	PaymentTypeRent    = "RENT"
	PaymentTypeExpense = "EXPENSE"
)

// Payment verification states. PENDING moves to VERIFIED or REJECTED exactly
// once; both are terminal. Admin-recorded payments start at VERIFIED.
const (
	PaymentPending  = "PENDING"
	PaymentVerified = "VERIFIED"
	PaymentRejected = "REJECTED"
)

// TotalRent and Balance are snapshots taken when the payment row is created.
// They are not recalculated when the room rent or the payment status changes
// later; the on-demand balance endpoints are the live view.
type Payment struct {
	ID        int       `json:"id"`
	TenantID  *int      `json:"tenant_id"` // null for admin-entered expenses
	Amount    float64   `json:"amount"`
	MonthFor  string    `json:"month_for"` // opaque month label, exact-match key
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	ProofURL  string    `json:"proof_url,omitempty"`
	TotalRent float64   `json:"total_rent"`
	Balance   float64   `json:"balance"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`

	// Joined fields
	TenantName string `json:"tenant_name,omitempty"`
	RoomNumber string `json:"room_number,omitempty"`
}

// CreatePaymentRequest represents the request body for recording a payment.
// TenantID is honored for admins only; tenants always record for themselves.
type CreatePaymentRequest struct {
	TenantID *int    `json:"tenant_id"`
	Amount   float64 `json:"amount"`
	MonthFor string  `json:"month_for"`
	Type     string  `json:"type"`
	ProofURL string  `json:"proof_url"`
}

// VerifyPaymentRequest represents the request body for the admin verify action
type VerifyPaymentRequest struct {
	Status string `json:"status"` // VERIFIED or REJECTED
}

// MonthlyBalance is the live balance view for one tenant+month
type MonthlyBalance struct {
	MonthFor  string     `json:"month_for"`
	TotalRent float64    `json:"total_rent"`
	TotalPaid float64    `json:"total_paid"`
	Balance   float64    `json:"balance"`
	Payments  []*Payment `json:"payments"`
}

// Month payment status tags for the summary view
const (
	MonthPaid    = "PAID"
	MonthPartial = "PARTIAL"
	MonthUnpaid  = "UNPAID"
)

// MonthlySummary groups a tenant's rent payments by month label
type MonthlySummary struct {
	TotalRent float64         `json:"total_rent"` // current room rent
	Summary   []*MonthBalance `json:"summary"`
}

type MonthBalance struct {
	MonthFor  string     `json:"month_for"`
	TotalRent float64    `json:"total_rent"`
	TotalPaid float64    `json:"total_paid"`
	Balance   float64    `json:"balance"`
	Status    string     `json:"status"`
	Payments  []*Payment `json:"payments"`
}
