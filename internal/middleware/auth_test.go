package middleware

import (
	"context"
	"testing"

	"pg-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestContextRoundTrip(t *testing.T) {
	ctx := withUser(context.Background(), &models.User{
		ID:    9,
		Email: "admin@example.com",
		Role:  models.RoleAdmin,
	})

	id, ok := GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, 9, id)

	role, ok := GetRoleFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, models.RoleAdmin, role)
}

func TestContextMissingValues(t *testing.T) {
	_, ok := GetUserIDFromContext(context.Background())
	assert.False(t, ok)

	_, ok = GetRoleFromContext(context.Background())
	assert.False(t, ok)
}

// Self routes admit both roles; an admin caller must pass the gate
func TestRoleAllowed(t *testing.T) {
	both := []string{models.RoleTenant, models.RoleAdmin}

	assert.True(t, roleAllowed(models.RoleAdmin, both))
	assert.True(t, roleAllowed(models.RoleTenant, both))
	assert.True(t, roleAllowed(models.RoleTenant, []string{models.RoleTenant}))
	assert.False(t, roleAllowed(models.RoleAdmin, []string{models.RoleTenant}))
	assert.False(t, roleAllowed(models.RoleTenant, nil))
}
