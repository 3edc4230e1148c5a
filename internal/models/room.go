package models

import "time"

// Room.CurrentOccupancy is a cached projection of the live tenant count.
// It is adjusted in the same transaction as tenant create/update/delete and
// repaired by the reconciliation pass; readers must treat it as possibly stale.
type Room struct {
	ID               int       `json:"id"`
	Number           string    `json:"number"`
	Capacity         int       `json:"capacity"`
	RentAmount       float64   `json:"rent_amount"`
	CurrentOccupancy int       `json:"current_occupancy"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Joined fields
	Tenants []*TenantProfile `json:"tenants,omitempty"`
}

// CreateRoomRequest represents the request body for creating a room
type CreateRoomRequest struct {
	Number     string  `json:"number"`
	Capacity   int     `json:"capacity"`
	RentAmount float64 `json:"rent_amount"`
}

// UpdateRoomRequest represents the request body for updating a room
type UpdateRoomRequest struct {
	Number     string  `json:"number"`
	Capacity   int     `json:"capacity"`
	RentAmount float64 `json:"rent_amount"`
}

// OccupancyFix reports one room corrected by the reconciliation pass
type OccupancyFix struct {
	RoomID     int    `json:"room_id"`
	Number     string `json:"number"`
	StoredWas  int    `json:"stored_was"`
	LiveCount  int    `json:"live_count"`
}
