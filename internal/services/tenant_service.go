package services

import (
	"context"

	"pg-backend/internal/auth"
	"pg-backend/internal/models"
	"pg-backend/internal/repositories"
)

// TenantStore is the persistence surface TenantService depends on. The pgx
// repository implements it; failed multi-step operations must leave no
// partial state behind.
type TenantStore interface {
	CreateWithUser(ctx context.Context, user *models.User, profile *models.TenantProfile) error
	Get(ctx context.Context, id int) (*models.TenantProfile, error)
	GetByUserID(ctx context.Context, userID int) (*models.TenantProfile, error)
	List(ctx context.Context) ([]*models.TenantProfile, error)
	UpdateWithOccupancy(ctx context.Context, id int, req *models.UpdateTenantRequest) (*models.TenantProfile, error)
	Delete(ctx context.Context, id int) error
	SetIDProof(ctx context.Context, id int, url string) error
	VerifyIDProof(ctx context.Context, id int) error
}

type TenantService struct {
	Tenants    TenantStore
	Payments   *repositories.PaymentRepository
	Complaints *repositories.ComplaintRepository
}

func NewTenantService(tenants TenantStore, payments *repositories.PaymentRepository, complaints *repositories.ComplaintRepository) *TenantService {
	return &TenantService{
		Tenants:    tenants,
		Payments:   payments,
		Complaints: complaints,
	}
}

// CreateTenant provisions a tenant account with its profile and optional room
// assignment. The room slot is claimed atomically; a full room fails the
// whole creation.
func (s *TenantService) CreateTenant(ctx context.Context, req *models.CreateTenantRequest) (*models.TenantProfile, error) {
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return nil, invalid("name, email, and password are required")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         models.RoleTenant,
	}
	profile := &models.TenantProfile{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		RoomID:  req.RoomID,
	}

	if err := s.Tenants.CreateWithUser(ctx, user, profile); err != nil {
		return nil, err
	}

	return s.Tenants.Get(ctx, profile.ID)
}

func (s *TenantService) ListTenants(ctx context.Context) ([]*models.TenantProfile, error) {
	return s.Tenants.List(ctx)
}

// GetTenant returns the profile with its payment and complaint history
func (s *TenantService) GetTenant(ctx context.Context, id int) (*models.TenantDetail, error) {
	profile, err := s.Tenants.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	payments, err := s.Payments.ListByTenant(ctx, id)
	if err != nil {
		return nil, err
	}
	complaints, err := s.Complaints.ListByTenant(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.TenantDetail{
		TenantProfile: *profile,
		Payments:      payments,
		Complaints:    complaints,
	}, nil
}

func (s *TenantService) UpdateTenant(ctx context.Context, id int, req *models.UpdateTenantRequest) (*models.TenantProfile, error) {
	if req.Name == "" {
		return nil, invalid("name is required")
	}
	return s.Tenants.UpdateWithOccupancy(ctx, id, req)
}

func (s *TenantService) DeleteTenant(ctx context.Context, id int) error {
	return s.Tenants.Delete(ctx, id)
}

// GetSelf resolves the profile owned by the authenticated user
func (s *TenantService) GetSelf(ctx context.Context, userID int) (*models.TenantProfile, error) {
	return s.Tenants.GetByUserID(ctx, userID)
}

// SubmitIDProof records an uploaded identity document and resets its
// verification state to PENDING.
func (s *TenantService) SubmitIDProof(ctx context.Context, tenantID int, url string) (*models.TenantProfile, error) {
	if url == "" {
		return nil, invalid("document is required")
	}
	if err := s.Tenants.SetIDProof(ctx, tenantID, url); err != nil {
		return nil, err
	}
	return s.Tenants.Get(ctx, tenantID)
}

// VerifyIDProof marks the tenant's identity document as verified (admin)
func (s *TenantService) VerifyIDProof(ctx context.Context, id int) (*models.TenantProfile, error) {
	if err := s.Tenants.VerifyIDProof(ctx, id); err != nil {
		return nil, err
	}
	return s.Tenants.Get(ctx, id)
}
