package services

import (
	"context"
	"testing"

	"pg-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCreateRoomValidation(t *testing.T) {
	svc := NewRoomService(nil)

	cases := []struct {
		name string
		req  models.CreateRoomRequest
	}{
		{"missing number", models.CreateRoomRequest{Capacity: 2, RentAmount: 5000}},
		{"zero capacity", models.CreateRoomRequest{Number: "101", Capacity: 0, RentAmount: 5000}},
		{"negative rent", models.CreateRoomRequest{Number: "101", Capacity: 2, RentAmount: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateRoom(context.Background(), &tc.req)
			assert.Error(t, err)
			assert.True(t, IsValidation(err))
		})
	}
}

func TestIsValidation(t *testing.T) {
	assert.True(t, IsValidation(invalid("bad input")))
	assert.False(t, IsValidation(context.Canceled))
	assert.False(t, IsValidation(nil))
}
