package models

import "time"

type Notification struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateNotificationRequest represents the admin request body for sending a
// notification. With Broadcast set the UserID is ignored and every user gets
// a copy.
type CreateNotificationRequest struct {
	UserID    int    `json:"user_id"`
	Message   string `json:"message"`
	Broadcast bool   `json:"broadcast"`
}
