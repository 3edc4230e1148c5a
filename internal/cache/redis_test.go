package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Without Init the client is nil; every call must degrade to a no-op
func TestNilClientDegradation(t *testing.T) {
	ctx := context.Background()

	data, ok := GetCached(ctx, RoomsListKey)
	assert.False(t, ok)
	assert.Nil(t, data)

	SetCached(ctx, RoomsListKey, []byte("{}"), time.Minute)
	InvalidateKeys(ctx, RoomsListKey, TenantsListKey)
	InvalidateRoomCaches(ctx)
	InvalidateTenantCaches(ctx)

	assert.False(t, IsHealthy())
}
