package services

import (
	"context"
	"fmt"

	"pg-backend/internal/models"
	"pg-backend/internal/repositories"
)

type PaymentService struct {
	Payments      *repositories.PaymentRepository
	Tenants       *repositories.TenantRepository
	Notifications *repositories.NotificationRepository
}

func NewPaymentService(payments *repositories.PaymentRepository, tenants *repositories.TenantRepository, notifications *repositories.NotificationRepository) *PaymentService {
	return &PaymentService{
		Payments:      payments,
		Tenants:       tenants,
		Notifications: notifications,
	}
}

// RecordTenantPayment records a rent payment submitted by a tenant. It always
// starts PENDING and waits for admin verification.
func (s *PaymentService) RecordTenantPayment(ctx context.Context, tenantID int, req *models.CreatePaymentRequest) (*models.Payment, error) {
	if req.Amount <= 0 {
		return nil, invalid("amount must be greater than zero")
	}
	if req.MonthFor == "" {
		return nil, invalid("month is required")
	}

	p := &models.Payment{
		TenantID: &tenantID,
		Amount:   req.Amount,
		MonthFor: req.MonthFor,
		Type:     models.PaymentTypeRent,
		Status:   models.PaymentPending,
		ProofURL: req.ProofURL,
	}
	if err := s.Payments.Create(ctx, p); err != nil {
		return nil, err
	}
	return s.Payments.Get(ctx, p.ID)
}

// RecordAdminPayment records a payment or expense entered by an admin. Admin
// entries are trusted and start VERIFIED.
func (s *PaymentService) RecordAdminPayment(ctx context.Context, req *models.CreatePaymentRequest) (*models.Payment, error) {
	if req.Amount <= 0 {
		return nil, invalid("amount must be greater than zero")
	}

	paymentType := req.Type
	if paymentType == "" {
		paymentType = models.PaymentTypeRent
	}
	if paymentType != models.PaymentTypeRent && paymentType != models.PaymentTypeExpense {
		return nil, invalid("invalid payment type")
	}
	if paymentType == models.PaymentTypeRent {
		if req.TenantID == nil {
			return nil, invalid("tenant is required for rent payments")
		}
		if req.MonthFor == "" {
			return nil, invalid("month is required for rent payments")
		}
	}

	p := &models.Payment{
		TenantID: req.TenantID,
		Amount:   req.Amount,
		MonthFor: req.MonthFor,
		Type:     paymentType,
		Status:   models.PaymentVerified,
		ProofURL: req.ProofURL,
	}
	if err := s.Payments.Create(ctx, p); err != nil {
		return nil, err
	}
	return s.Payments.Get(ctx, p.ID)
}

func (s *PaymentService) ListPayments(ctx context.Context) ([]*models.Payment, error) {
	return s.Payments.List(ctx)
}

func (s *PaymentService) ListTenantPayments(ctx context.Context, tenantID int) ([]*models.Payment, error) {
	return s.Payments.ListByTenant(ctx, tenantID)
}

func (s *PaymentService) GetPayment(ctx context.Context, id int) (*models.Payment, error) {
	return s.Payments.Get(ctx, id)
}

// AttachProof stores the uploaded proof file location on the payment
func (s *PaymentService) AttachProof(ctx context.Context, id int, url string) (*models.Payment, error) {
	if url == "" {
		return nil, invalid("proof file is required")
	}
	if err := s.Payments.SetProof(ctx, id, url); err != nil {
		return nil, err
	}
	return s.Payments.Get(ctx, id)
}

// VerifyPayment finalizes a PENDING payment and notifies the owning tenant.
// The returned notification is nil for expense rows without a tenant.
func (s *PaymentService) VerifyPayment(ctx context.Context, id int, req *models.VerifyPaymentRequest) (*models.Payment, *models.Notification, error) {
	if req.Status != models.PaymentVerified && req.Status != models.PaymentRejected {
		return nil, nil, invalid("status must be VERIFIED or REJECTED")
	}

	p, err := s.Payments.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return nil, nil, err
	}

	var notification *models.Notification
	if p.TenantID != nil {
		tenant, err := s.Tenants.Get(ctx, *p.TenantID)
		if err == nil {
			word := "verified"
			if p.Status == models.PaymentRejected {
				word = "rejected"
			}
			notification = &models.Notification{
				UserID:  tenant.UserID,
				Message: fmt.Sprintf("Your payment of %.2f for %s was %s", p.Amount, p.MonthFor, word),
			}
			if err := s.Notifications.Create(ctx, notification); err != nil {
				notification = nil
			}
		}
	}

	return p, notification, nil
}

// MonthlyBalance computes the live balance for one tenant+month
func (s *PaymentService) MonthlyBalance(ctx context.Context, tenantID int, monthFor string) (*models.MonthlyBalance, error) {
	if monthFor == "" {
		return nil, invalid("month is required")
	}

	tenant, err := s.Tenants.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	payments, err := s.Payments.MonthPayments(ctx, tenantID, monthFor)
	if err != nil {
		return nil, err
	}

	totalRent := monthRent(payments, currentRent(tenant))
	paid := paidAmount(payments)

	return &models.MonthlyBalance{
		MonthFor:  monthFor,
		TotalRent: totalRent,
		TotalPaid: paid,
		Balance:   clampBalance(totalRent - paid),
		Payments:  payments,
	}, nil
}

// MonthlySummary groups the tenant's rent payments by month label with a
// PAID/PARTIAL/UNPAID tag per month.
func (s *PaymentService) MonthlySummary(ctx context.Context, tenantID int) (*models.MonthlySummary, error) {
	tenant, err := s.Tenants.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	payments, err := s.Payments.RentPayments(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return buildSummary(payments, currentRent(tenant)), nil
}

// currentRent is the live rent of the tenant's room, 0 when unassigned
func currentRent(t *models.TenantProfile) float64 {
	if t.Room == nil {
		return 0
	}
	return t.Room.RentAmount
}

// monthRent resolves the rent owed for a month: the earliest payment's
// snapshot if any payment exists, otherwise the live room rent. payments must
// be ordered oldest first.
func monthRent(payments []*models.Payment, liveRent float64) float64 {
	if len(payments) > 0 {
		return payments[0].TotalRent
	}
	return liveRent
}

// paidAmount counts PENDING and VERIFIED payments toward the month. REJECTED
// payments never count.
func paidAmount(payments []*models.Payment) float64 {
	var paid float64
	for _, p := range payments {
		if p.Status == models.PaymentRejected {
			continue
		}
		paid += p.Amount
	}
	return paid
}

func clampBalance(balance float64) float64 {
	if balance < 0 {
		return 0
	}
	return balance
}

// buildSummary groups rent payments by their month label. payments must be
// ordered oldest first; months appear in first-payment order.
func buildSummary(payments []*models.Payment, liveRent float64) *models.MonthlySummary {
	byMonth := make(map[string]*models.MonthBalance)
	var order []string

	for _, p := range payments {
		m, ok := byMonth[p.MonthFor]
		if !ok {
			m = &models.MonthBalance{
				MonthFor:  p.MonthFor,
				TotalRent: p.TotalRent,
			}
			byMonth[p.MonthFor] = m
			order = append(order, p.MonthFor)
		}
		m.Payments = append(m.Payments, p)
		if p.Status != models.PaymentRejected {
			m.TotalPaid += p.Amount
		}
	}

	summary := &models.MonthlySummary{
		TotalRent: liveRent,
		Summary:   make([]*models.MonthBalance, 0, len(order)),
	}
	for _, monthFor := range order {
		m := byMonth[monthFor]
		m.Balance = clampBalance(m.TotalRent - m.TotalPaid)
		switch {
		case m.TotalPaid == 0:
			m.Status = models.MonthUnpaid
		case m.Balance == 0:
			m.Status = models.MonthPaid
		default:
			m.Status = models.MonthPartial
		}
		summary.Summary = append(summary.Summary, m)
	}
	return summary
}
