// Package handlers exposes the REST API over the service layer.
package handlers

import (
	"errors"
	"log"
	"net/http"

	"pg-backend/internal/repositories"
	"pg-backend/internal/services"
	"pg-backend/pkg/utils"
)

// respondError maps service and repository failures onto HTTP statuses.
// Conflicts return 400, matching the API contract clients already handle.
// Unclassified errors are logged server-side; the client never sees them.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case services.IsValidation(err):
		utils.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repositories.ErrNotFound):
		utils.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repositories.ErrEmailTaken),
		errors.Is(err, repositories.ErrRoomNumberTaken),
		errors.Is(err, repositories.ErrRoomFull),
		errors.Is(err, repositories.ErrRoomOccupied),
		errors.Is(err, repositories.ErrCapacityBelowOccupancy),
		errors.Is(err, repositories.ErrPaymentFinalized):
		utils.Error(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("[Error] %v", err)
		utils.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
