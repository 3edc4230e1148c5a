package models

import "time"

// ID proof verification states
const (
	IDProofPending  = "PENDING"
	IDProofVerified = "VERIFIED"
)

type TenantProfile struct {
	ID            int        `json:"id"`
	UserID        int        `json:"user_id"`
	Name          string     `json:"name"`
	Phone         string     `json:"phone"`
	Address       string     `json:"address"`
	RoomID        *int       `json:"room_id"`
	IsActive      bool       `json:"is_active"`
	IDProofURL    string     `json:"id_proof_url,omitempty"`
	IDProofStatus string     `json:"id_proof_status,omitempty"`
	JoiningDate   *time.Time `json:"joining_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Joined fields
	Email string `json:"email,omitempty"`
	Room  *Room  `json:"room,omitempty"`
}

// TenantDetail is a profile with its payment and complaint history attached
type TenantDetail struct {
	TenantProfile
	Payments   []*Payment   `json:"payments"`
	Complaints []*Complaint `json:"complaints"`
}

// CreateTenantRequest represents the request body for creating a tenant (admin)
type CreateTenantRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	RoomID   *int   `json:"room_id"`
}

// UpdateTenantRequest represents the request body for updating a tenant (admin)
type UpdateTenantRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	RoomID   *int   `json:"room_id"`
	IsActive bool   `json:"is_active"`
}
