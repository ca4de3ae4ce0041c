package service

import (
	"context"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

type statsService struct {
	rentals  repository.RentalRepository
	vehicles repository.VehicleRepository
	now      func() time.Time
}

func NewStatsService(rentals repository.RentalRepository, vehicles repository.VehicleRepository) StatsService {
	return &statsService{rentals: rentals, vehicles: vehicles, now: time.Now}
}

func (s *statsService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	now := s.now()

	counts, err := s.rentals.CountByStatus(ctx, now)
	if err != nil {
		return nil, wrapStore(err)
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	revenue, err := s.rentals.RevenueSince(ctx, monthStart)
	if err != nil {
		return nil, wrapStore(err)
	}

	vehicles, err := s.vehicles.List(ctx)
	if err != nil {
		return nil, wrapStore(err)
	}
	var onDuty int32
	for _, v := range vehicles {
		if v.Status == domain.VehicleStatusOnDuty {
			onDuty++
		}
	}

	return &DashboardStats{
		ActiveRentals:    counts[domain.RentalStatusActive],
		PendingRentals:   counts[domain.RentalStatusPending],
		OverdueRentals:   counts[domain.RentalStatusOverdue],
		CompletedRentals: counts[domain.RentalStatusCompleted],
		MonthlyRevenue:   revenue,
		VehiclesOnDuty:   onDuty,
		VehiclesTotal:    int32(len(vehicles)),
	}, nil
}
