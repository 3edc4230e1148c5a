package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToISTOffset(t *testing.T) {
	utc := time.Date(2024, 12, 1, 18, 30, 0, 0, time.UTC)
	ist := ToIST(utc)

	// 18:30 UTC is midnight IST the next day
	assert.Equal(t, 2, ist.Day())
	assert.Equal(t, 0, ist.Hour())
	assert.Equal(t, 0, ist.Minute())
}

func TestFormatIST(t *testing.T) {
	utc := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-12-01", FormatIST(utc, DateLayout))
}
