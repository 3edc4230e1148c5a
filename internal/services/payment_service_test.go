package services

import (
	"testing"

	"pg-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rentPayment(monthFor string, amount, totalRent float64, status string) *models.Payment {
	return &models.Payment{
		MonthFor:  monthFor,
		Amount:    amount,
		TotalRent: totalRent,
		Type:      models.PaymentTypeRent,
		Status:    status,
	}
}

func TestPaidAmountExcludesRejected(t *testing.T) {
	payments := []*models.Payment{
		rentPayment("December 2024", 2000, 5000, models.PaymentVerified),
		rentPayment("December 2024", 1500, 5000, models.PaymentPending),
		rentPayment("December 2024", 1000, 5000, models.PaymentRejected),
	}

	assert.Equal(t, 3500.0, paidAmount(payments))
}

func TestMonthRentUsesEarliestSnapshot(t *testing.T) {
	// Oldest payment snapshotted 5000; a later rent change to 6000 must not
	// shift the month's target
	payments := []*models.Payment{
		rentPayment("December 2024", 2000, 5000, models.PaymentVerified),
		rentPayment("December 2024", 1000, 6000, models.PaymentVerified),
	}

	assert.Equal(t, 5000.0, monthRent(payments, 6000))
}

func TestMonthRentFallsBackToLiveRent(t *testing.T) {
	assert.Equal(t, 4500.0, monthRent(nil, 4500))
	assert.Equal(t, 0.0, monthRent(nil, 0))
}

func TestClampBalanceNeverNegative(t *testing.T) {
	assert.Equal(t, 0.0, clampBalance(-300))
	assert.Equal(t, 0.0, clampBalance(0))
	assert.Equal(t, 250.0, clampBalance(250))
}

func TestCurrentRentWithoutRoom(t *testing.T) {
	assert.Equal(t, 0.0, currentRent(&models.TenantProfile{}))
	assert.Equal(t, 7000.0, currentRent(&models.TenantProfile{
		Room: &models.Room{RentAmount: 7000},
	}))
}

func TestBuildSummaryStatuses(t *testing.T) {
	payments := []*models.Payment{
		// Fully paid month
		rentPayment("October 2024", 5000, 5000, models.PaymentVerified),
		// Partially paid month, pending counts toward the total
		rentPayment("November 2024", 2000, 5000, models.PaymentVerified),
		rentPayment("November 2024", 1000, 5000, models.PaymentPending),
		// Month where the only payment was rejected
		rentPayment("December 2024", 5000, 5000, models.PaymentRejected),
	}

	summary := buildSummary(payments, 5000)
	require.Len(t, summary.Summary, 3)
	assert.Equal(t, 5000.0, summary.TotalRent)

	october := summary.Summary[0]
	assert.Equal(t, "October 2024", october.MonthFor)
	assert.Equal(t, models.MonthPaid, october.Status)
	assert.Equal(t, 0.0, october.Balance)

	november := summary.Summary[1]
	assert.Equal(t, models.MonthPartial, november.Status)
	assert.Equal(t, 3000.0, november.TotalPaid)
	assert.Equal(t, 2000.0, november.Balance)

	december := summary.Summary[2]
	assert.Equal(t, models.MonthUnpaid, december.Status)
	assert.Equal(t, 0.0, december.TotalPaid)
	assert.Equal(t, 5000.0, december.Balance)
	// The rejected payment still appears in the month's history
	require.Len(t, december.Payments, 1)
}

func TestBuildSummaryOverpaymentClampsToZero(t *testing.T) {
	payments := []*models.Payment{
		rentPayment("January 2025", 6000, 5000, models.PaymentVerified),
	}

	summary := buildSummary(payments, 5000)
	require.Len(t, summary.Summary, 1)
	assert.Equal(t, models.MonthPaid, summary.Summary[0].Status)
	assert.Equal(t, 0.0, summary.Summary[0].Balance)
}

func TestBuildSummaryGroupsByExactLabel(t *testing.T) {
	// Month labels are opaque; "December 2024" and "Dec 2024" are different keys
	payments := []*models.Payment{
		rentPayment("December 2024", 2000, 5000, models.PaymentVerified),
		rentPayment("Dec 2024", 1000, 5000, models.PaymentVerified),
	}

	summary := buildSummary(payments, 5000)
	assert.Len(t, summary.Summary, 2)
}

func TestBuildSummaryEmpty(t *testing.T) {
	summary := buildSummary(nil, 5000)
	assert.Empty(t, summary.Summary)
	assert.Equal(t, 5000.0, summary.TotalRent)
}
