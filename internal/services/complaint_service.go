package services

import (
	"context"
	"fmt"

	"pg-backend/internal/models"
	"pg-backend/internal/repositories"
)

type ComplaintService struct {
	Complaints    *repositories.ComplaintRepository
	Tenants       *repositories.TenantRepository
	Notifications *repositories.NotificationRepository
}

func NewComplaintService(complaints *repositories.ComplaintRepository, tenants *repositories.TenantRepository, notifications *repositories.NotificationRepository) *ComplaintService {
	return &ComplaintService{
		Complaints:    complaints,
		Tenants:       tenants,
		Notifications: notifications,
	}
}

// CreateComplaint files a complaint for the tenant. New complaints start OPEN.
func (s *ComplaintService) CreateComplaint(ctx context.Context, tenantID int, req *models.CreateComplaintRequest, photoURL string) (*models.Complaint, error) {
	if req.Title == "" {
		return nil, invalid("title is required")
	}

	category := req.Category
	if category == "" {
		category = "GENERAL"
	}

	c := &models.Complaint{
		TenantID:    tenantID,
		Title:       req.Title,
		Description: req.Description,
		Category:    category,
		PhotoURL:    photoURL,
	}
	if err := s.Complaints.Create(ctx, c); err != nil {
		return nil, err
	}
	return s.Complaints.Get(ctx, c.ID)
}

func (s *ComplaintService) ListComplaints(ctx context.Context) ([]*models.Complaint, error) {
	return s.Complaints.List(ctx)
}

func (s *ComplaintService) ListTenantComplaints(ctx context.Context, tenantID int) ([]*models.Complaint, error) {
	return s.Complaints.ListByTenant(ctx, tenantID)
}

func (s *ComplaintService) GetComplaint(ctx context.Context, id int) (*models.Complaint, error) {
	return s.Complaints.Get(ctx, id)
}

// GetTenantComplaint fetches a complaint scoped to its owner. A complaint
// belonging to another tenant reads as not found.
func (s *ComplaintService) GetTenantComplaint(ctx context.Context, id, tenantID int) (*models.Complaint, error) {
	c, err := s.Complaints.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.TenantID != tenantID {
		return nil, repositories.ErrNotFound
	}
	return c, nil
}

// UpdateStatus moves the complaint through its lifecycle and notifies the
// owning tenant. The returned notification may be nil if it could not be
// recorded.
func (s *ComplaintService) UpdateStatus(ctx context.Context, id int, req *models.UpdateComplaintStatusRequest) (*models.Complaint, *models.Notification, error) {
	switch req.Status {
	case models.ComplaintOpen, models.ComplaintInProgress, models.ComplaintResolved:
	default:
		return nil, nil, invalid("status must be OPEN, IN_PROGRESS or RESOLVED")
	}

	c, err := s.Complaints.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return nil, nil, err
	}

	var notification *models.Notification
	if tenant, err := s.Tenants.Get(ctx, c.TenantID); err == nil {
		notification = &models.Notification{
			UserID:  tenant.UserID,
			Message: fmt.Sprintf("Your complaint %q is now %s", c.Title, c.Status),
		}
		if err := s.Notifications.Create(ctx, notification); err != nil {
			notification = nil
		}
	}

	return c, notification, nil
}

// AddComment appends a comment to the complaint's thread
func (s *ComplaintService) AddComment(ctx context.Context, complaintID, userID int, req *models.CreateCommentRequest) (*models.ComplaintComment, error) {
	if req.Text == "" {
		return nil, invalid("text is required")
	}

	if _, err := s.Complaints.Get(ctx, complaintID); err != nil {
		return nil, err
	}

	comment := &models.ComplaintComment{
		ComplaintID: complaintID,
		UserID:      userID,
		Text:        req.Text,
	}
	if err := s.Complaints.AddComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
