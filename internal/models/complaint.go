package models

import "time"

// Complaint states
const (
	ComplaintOpen       = "OPEN"
	ComplaintInProgress = "IN_PROGRESS"
	ComplaintResolved   = "RESOLVED"
)

type Complaint struct {
	ID          int       `json:"id"`
	TenantID    int       `json:"tenant_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Joined fields
	TenantName string              `json:"tenant_name,omitempty"`
	RoomNumber string              `json:"room_number,omitempty"`
	Comments   []*ComplaintComment `json:"comments,omitempty"`
}

// ComplaintComment is append-only; reads return created_at ascending
type ComplaintComment struct {
	ID          int       `json:"id"`
	ComplaintID int       `json:"complaint_id"`
	UserID      int       `json:"user_id"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"created_at"`

	// Joined fields
	AuthorEmail string `json:"author_email,omitempty"`
	AuthorRole  string `json:"author_role,omitempty"`
}

// CreateComplaintRequest carries the multipart form fields of a new complaint
type CreateComplaintRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// UpdateComplaintStatusRequest represents the admin status update body
type UpdateComplaintStatusRequest struct {
	Status string `json:"status"` // OPEN, IN_PROGRESS or RESOLVED
}

// CreateCommentRequest represents the request body for adding a comment
type CreateCommentRequest struct {
	Text string `json:"text"`
}
