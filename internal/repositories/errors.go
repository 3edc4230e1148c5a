// Package repositories holds the pgx-backed persistence layer. Sentinel
// errors defined here let services and handlers distinguish failure modes
// without inspecting database error strings.
package repositories

import "errors"

// ErrNotFound is returned when the requested row does not exist. Handlers
// translate it into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrEmailTaken is returned when registration or tenant creation collides
// with an existing user email.
var ErrEmailTaken = errors.New("user with this email already exists")

// ErrRoomNumberTaken is returned when a room create/update collides with an
// existing room number.
var ErrRoomNumberTaken = errors.New("room number already exists")

// ErrRoomFull is returned when assigning a tenant to a room whose occupancy
// already reached capacity. The surrounding transaction is rolled back.
var ErrRoomFull = errors.New("room is at full capacity")

// ErrRoomOccupied is returned when deleting a room that still has tenants
// assigned to it.
var ErrRoomOccupied = errors.New("cannot delete room with assigned tenants")

// ErrCapacityBelowOccupancy is returned when shrinking a room's capacity
// under its current occupancy.
var ErrCapacityBelowOccupancy = errors.New("capacity cannot be less than current occupancy")

// ErrPaymentFinalized is returned when verifying a payment that already left
// the PENDING state. VERIFIED and REJECTED are terminal.
var ErrPaymentFinalized = errors.New("payment has already been verified or rejected")
