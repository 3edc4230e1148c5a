package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pg-backend/internal/repositories"

	"github.com/stretchr/testify/assert"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", repositories.ErrNotFound, http.StatusNotFound},
		{"email taken", repositories.ErrEmailTaken, http.StatusBadRequest},
		{"room number taken", repositories.ErrRoomNumberTaken, http.StatusBadRequest},
		{"room full", repositories.ErrRoomFull, http.StatusBadRequest},
		{"room occupied", repositories.ErrRoomOccupied, http.StatusBadRequest},
		{"capacity below occupancy", repositories.ErrCapacityBelowOccupancy, http.StatusBadRequest},
		{"payment finalized", repositories.ErrPaymentFinalized, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondError(rec, tc.err)
			assert.Equal(t, tc.want, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

// Driver and infrastructure errors must never reach the client
func TestRespondErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, errors.New(`pq: password authentication failed for user "postgres"`))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
	assert.NotContains(t, rec.Body.String(), "postgres")
	assert.NotContains(t, rec.Body.String(), "pq:")
}
