package services

import (
	"testing"
	"time"

	"pg-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReceiptVerifiedPayment(t *testing.T) {
	svc := NewReceiptService()

	pdf, err := svc.GenerateReceipt(&models.Payment{
		ID:         12,
		Amount:     2500,
		MonthFor:   "December 2024",
		Status:     models.PaymentVerified,
		TotalRent:  5000,
		Balance:    2500,
		Date:       time.Now(),
		TenantName: "Asha Verma",
		RoomNumber: "203",
	})
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	// PDF files start with the %PDF magic header
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestGenerateReceiptRequiresVerified(t *testing.T) {
	svc := NewReceiptService()

	for _, status := range []string{models.PaymentPending, models.PaymentRejected} {
		_, err := svc.GenerateReceipt(&models.Payment{ID: 1, Status: status})
		assert.Error(t, err)
		assert.True(t, IsValidation(err))
	}
}
