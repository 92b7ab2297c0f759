package service

import (
	"context"
	"fmt"
	"strings"

	"bikeshop-backend/internal/domain"
	"bikeshop-backend/internal/repository"
)

type bikeService struct {
	bikeRepo    repository.BikeRepository
	bookingRepo repository.BookingRepository
}

func NewBikeService(bikeRepo repository.BikeRepository, bookingRepo repository.BookingRepository) BikeService {
	return &bikeService{bikeRepo: bikeRepo, bookingRepo: bookingRepo}
}

func (s *bikeService) AddBike(ctx context.Context, bike *domain.Bike) error {
	if strings.TrimSpace(bike.InventoryNo) == "" {
		return fmt.Errorf("%w: inventory number is required", domain.ErrValidation)
	}
	if strings.TrimSpace(bike.Brand) == "" {
		return fmt.Errorf("%w: brand is required", domain.ErrValidation)
	}
	if bike.Price1DayCents <= 0 {
		return fmt.Errorf("%w: 1-day price must be positive", domain.ErrValidation)
	}
	if bike.Status == "" {
		bike.Status = domain.BikeStatusAvailable
	}
	if !domain.ValidBikeStatus(bike.Status) {
		return fmt.Errorf("%w: unknown bike status %q", domain.ErrValidation, bike.Status)
	}
	if bike.CheckStatus == "" {
		bike.CheckStatus = domain.BikeCheckOK
	}
	// The unique index on inventory_no turns a duplicate into ErrConflict.
	return s.bikeRepo.Create(ctx, bike)
}

func (s *bikeService) GetBike(ctx context.Context, id int32) (*domain.Bike, error) {
	return s.bikeRepo.GetByID(ctx, id)
}

func (s *bikeService) UpdateBike(ctx context.Context, id int32, upd BikeUpdate) (*domain.Bike, error) {
	bike, err := s.bikeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.InventoryNo != nil {
		bike.InventoryNo = *upd.InventoryNo
	}
	if upd.FrameNo != nil {
		bike.FrameNo = *upd.FrameNo
	}
	if upd.Brand != nil {
		bike.Brand = *upd.Brand
	}
	if upd.Model != nil {
		bike.Model = *upd.Model
	}
	if upd.Color != nil {
		bike.Color = *upd.Color
	}
	if upd.FrameSize != nil {
		bike.FrameSize = *upd.FrameSize
	}
	if upd.Type != nil {
		bike.Type = upd.Type
	}
	if upd.Price1DayCents != nil {
		bike.Price1DayCents = *upd.Price1DayCents
	}
	if upd.Price3DayCents != nil {
		bike.Price3DayCents = upd.Price3DayCents
	}
	if upd.Price5DayCents != nil {
		bike.Price5DayCents = upd.Price5DayCents
	}
	if upd.Status != nil {
		if !domain.ValidBikeStatus(*upd.Status) {
			return nil, fmt.Errorf("%w: unknown bike status %q", domain.ErrValidation, *upd.Status)
		}
		bike.Status = *upd.Status
	}
	if upd.CheckStatus != nil {
		bike.CheckStatus = domain.BikeCheckStatus(*upd.CheckStatus)
	}
	if upd.Condition != nil {
		bike.Condition = *upd.Condition
	}
	if upd.LastServiceOn != nil {
		bike.LastServiceOn = upd.LastServiceOn
	}
	if upd.NextServiceOn != nil {
		bike.NextServiceOn = upd.NextServiceOn
	}
	if upd.Notes != nil {
		bike.Notes = *upd.Notes
	}

	if err := s.bikeRepo.Update(ctx, bike); err != nil {
		return nil, err
	}
	return bike, nil
}

func (s *bikeService) DeleteBike(ctx context.Context, id int32) error {
	if _, err := s.bikeRepo.GetByID(ctx, id); err != nil {
		return err
	}
	live, err := s.bookingRepo.HasLiveForBike(ctx, id)
	if err != nil {
		return err
	}
	if live {
		return fmt.Errorf("%w: bike %d has reserved or active bookings", domain.ErrConflict, id)
	}
	return s.bikeRepo.Delete(ctx, id)
}

func (s *bikeService) SetBikeStatus(ctx context.Context, id int32, status domain.BikeStatus) (*domain.Bike, error) {
	if !domain.ValidBikeStatus(status) {
		return nil, fmt.Errorf("%w: unknown bike status %q", domain.ErrValidation, status)
	}
	if err := s.bikeRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.bikeRepo.GetByID(ctx, id)
}

func (s *bikeService) ListBikes(ctx context.Context, filter repository.BikeFilter) ([]domain.Bike, int32, error) {
	return s.bikeRepo.List(ctx, filter)
}

func (s *bikeService) SyncStatuses(ctx context.Context) (int32, error) {
	return s.bikeRepo.SyncStatuses(ctx)
}
