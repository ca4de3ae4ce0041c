package service

import (
	"context"
	"errors"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/repository"
)

type fleetService struct {
	vehicles repository.VehicleRepository
	drivers  repository.DriverRepository
}

func NewFleetService(vehicles repository.VehicleRepository, drivers repository.DriverRepository) FleetService {
	return &fleetService{vehicles: vehicles, drivers: drivers}
}

func (s *fleetService) AddVehicle(ctx context.Context, vehicle *domain.Vehicle) error {
	if vehicle.VehicleNumber == "" {
		return errors.New("vehicle number is required")
	}
	if vehicle.Status == "" {
		vehicle.Status = domain.VehicleStatusAvailable
	}
	if err := s.vehicles.Create(ctx, vehicle); err != nil {
		return wrapStore(err)
	}
	logger.Info("Vehicle added", "vehicle_id", vehicle.ID, "vehicle_number", vehicle.VehicleNumber)
	return nil
}

func (s *fleetService) UpdateVehicle(ctx context.Context, vehicle *domain.Vehicle) error {
	if err := s.vehicles.Update(ctx, vehicle); err != nil {
		return wrapStore(err)
	}
	return nil
}

func (s *fleetService) DeleteVehicle(ctx context.Context, id int32) error {
	vehicle, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		return wrapStore(err)
	}
	if vehicle.AssignedDriverID != nil {
		if err := s.vehicles.UnassignDriver(ctx, id); err != nil {
			return wrapStore(err)
		}
	}
	if err := s.vehicles.Delete(ctx, id); err != nil {
		return wrapStore(err)
	}
	logger.Info("Vehicle deleted", "vehicle_id", id)
	return nil
}

func (s *fleetService) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	vehicles, err := s.vehicles.List(ctx)
	if err != nil {
		return nil, wrapStore(err)
	}
	return vehicles, nil
}

func (s *fleetService) AddDriver(ctx context.Context, driver *domain.Driver) error {
	if driver.Name == "" {
		return errors.New("driver name is required")
	}
	if driver.LicenseNumber == "" {
		return errors.New("driver license number is required")
	}
	if driver.Status == "" {
		driver.Status = domain.DriverStatusAvailable
	}
	if err := s.drivers.Create(ctx, driver); err != nil {
		return wrapStore(err)
	}
	logger.Info("Driver added", "driver_id", driver.ID, "name", driver.Name)
	return nil
}

func (s *fleetService) UpdateDriver(ctx context.Context, driver *domain.Driver) error {
	if err := s.drivers.Update(ctx, driver); err != nil {
		return wrapStore(err)
	}
	return nil
}

func (s *fleetService) DeleteDriver(ctx context.Context, id int32) error {
	driver, err := s.drivers.GetByID(ctx, id)
	if err != nil {
		return wrapStore(err)
	}
	if driver.AssignedVehicleID != nil {
		if err := s.vehicles.UnassignDriver(ctx, *driver.AssignedVehicleID); err != nil {
			return wrapStore(err)
		}
	}
	if err := s.drivers.Delete(ctx, id); err != nil {
		return wrapStore(err)
	}
	logger.Info("Driver deleted", "driver_id", id)
	return nil
}

func (s *fleetService) ListDrivers(ctx context.Context) ([]domain.Driver, error) {
	drivers, err := s.drivers.List(ctx)
	if err != nil {
		return nil, wrapStore(err)
	}
	return drivers, nil
}

// AssignDriver pairs a driver with a vehicle. Both sides must currently be
// unassigned; the repository flips both rows in one transaction.
func (s *fleetService) AssignDriver(ctx context.Context, vehicleID, driverID int32) error {
	vehicle, err := s.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		return wrapStore(err)
	}
	if vehicle.AssignedDriverID != nil {
		return errors.New("vehicle already has an assigned driver")
	}
	driver, err := s.drivers.GetByID(ctx, driverID)
	if err != nil {
		return wrapStore(err)
	}
	if driver.AssignedVehicleID != nil {
		return errors.New("driver is already assigned to a vehicle")
	}
	if err := s.vehicles.AssignDriver(ctx, vehicleID, driverID); err != nil {
		return wrapStore(err)
	}
	logger.Info("Driver assigned", "vehicle_id", vehicleID, "driver_id", driverID)
	return nil
}

func (s *fleetService) UnassignDriver(ctx context.Context, vehicleID int32) error {
	if err := s.vehicles.UnassignDriver(ctx, vehicleID); err != nil {
		return wrapStore(err)
	}
	logger.Info("Driver unassigned", "vehicle_id", vehicleID)
	return nil
}
