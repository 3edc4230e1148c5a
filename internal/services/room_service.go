package services

import (
	"context"

	"pg-backend/internal/models"
	"pg-backend/internal/repositories"
)

type RoomService struct {
	Repo *repositories.RoomRepository
}

func NewRoomService(repo *repositories.RoomRepository) *RoomService {
	return &RoomService{Repo: repo}
}

func validateRoom(number string, capacity int, rent float64) error {
	if number == "" {
		return invalid("room number is required")
	}
	if capacity < 1 {
		return invalid("capacity must be at least 1")
	}
	if rent < 0 {
		return invalid("rent amount cannot be negative")
	}
	return nil
}

func (s *RoomService) CreateRoom(ctx context.Context, req *models.CreateRoomRequest) (*models.Room, error) {
	if err := validateRoom(req.Number, req.Capacity, req.RentAmount); err != nil {
		return nil, err
	}

	room := &models.Room{
		Number:     req.Number,
		Capacity:   req.Capacity,
		RentAmount: req.RentAmount,
	}
	if err := s.Repo.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *RoomService) GetRoom(ctx context.Context, id int) (*models.Room, error) {
	return s.Repo.Get(ctx, id)
}

func (s *RoomService) ListRooms(ctx context.Context) ([]*models.Room, error) {
	return s.Repo.List(ctx)
}

func (s *RoomService) UpdateRoom(ctx context.Context, id int, req *models.UpdateRoomRequest) (*models.Room, error) {
	if err := validateRoom(req.Number, req.Capacity, req.RentAmount); err != nil {
		return nil, err
	}

	room := &models.Room{
		ID:         id,
		Number:     req.Number,
		Capacity:   req.Capacity,
		RentAmount: req.RentAmount,
	}
	if err := s.Repo.Update(ctx, room); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, id)
}

func (s *RoomService) DeleteRoom(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}

// ReconcileOccupancy recomputes every room's occupancy counter from the live
// tenant assignments and reports the rooms that were corrected. Safe to run
// repeatedly.
func (s *RoomService) ReconcileOccupancy(ctx context.Context) ([]*models.OccupancyFix, error) {
	return s.Repo.Reconcile(ctx)
}
