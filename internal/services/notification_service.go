package services

import (
	"context"

	"pg-backend/internal/models"
	"pg-backend/internal/repositories"
)

type NotificationService struct {
	Notifications *repositories.NotificationRepository
	Users         *repositories.UserRepository
}

func NewNotificationService(notifications *repositories.NotificationRepository, users *repositories.UserRepository) *NotificationService {
	return &NotificationService{
		Notifications: notifications,
		Users:         users,
	}
}

// Send delivers a notification to one user (admin action)
func (s *NotificationService) Send(ctx context.Context, req *models.CreateNotificationRequest) (*models.Notification, error) {
	if req.Message == "" {
		return nil, invalid("message is required")
	}
	if _, err := s.Users.Get(ctx, req.UserID); err != nil {
		return nil, err
	}

	n := &models.Notification{
		UserID:  req.UserID,
		Message: req.Message,
	}
	if err := s.Notifications.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Broadcast delivers a notification to every user (admin action)
func (s *NotificationService) Broadcast(ctx context.Context, message string) ([]*models.Notification, error) {
	if message == "" {
		return nil, invalid("message is required")
	}
	return s.Notifications.CreateBroadcast(ctx, message)
}

func (s *NotificationService) ListOwn(ctx context.Context, userID int) ([]*models.Notification, error) {
	return s.Notifications.ListByUser(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID int) error {
	return s.Notifications.MarkRead(ctx, id, userID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID int) error {
	return s.Notifications.MarkAllRead(ctx, userID)
}
