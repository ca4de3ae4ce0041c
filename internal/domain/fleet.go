package domain

import "time"

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "available"
	VehicleStatusOnDuty      VehicleStatus = "on-duty"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
)

type DriverStatus string

const (
	DriverStatusAvailable DriverStatus = "available"
	DriverStatusOnDuty    DriverStatus = "on-duty"
)

// Vehicle -> Driver is the owning side of the assignment; the reverse link on
// Driver is maintained inside the same transaction whenever either is set.
type Vehicle struct {
	ID               int32         `json:"id"`
	VehicleNumber    string        `json:"vehicle_number"`
	VehicleType      string        `json:"vehicle_type"`
	Capacity         string        `json:"capacity"`
	Status           VehicleStatus `json:"status"`
	AssignedDriverID *int32        `json:"assigned_driver_id,omitempty"`
	CreatedOn        time.Time     `json:"created_on"`
	UpdatedOn        time.Time     `json:"updated_on"`
}

type Driver struct {
	ID                int32        `json:"id"`
	Name              string       `json:"name"`
	Phone             string       `json:"phone"`
	LicenseNumber     string       `json:"license_number"`
	Status            DriverStatus `json:"status"`
	AssignedVehicleID *int32       `json:"assigned_vehicle_id,omitempty"`
	CreatedOn         time.Time    `json:"created_on"`
	UpdatedOn         time.Time    `json:"updated_on"`
}
