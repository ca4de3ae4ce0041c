package service

import (
	"context"
	"time"

	"rentdesk-backend/internal/domain"
)

// LineSelection is one product/quantity pair chosen on the booking form.
type LineSelection struct {
	ProductID int32 `json:"product_id"`
	Quantity  int32 `json:"quantity"`
}

// DocumentUpload references a file already pushed through the upload
// endpoint. Bookings require 4-10 documents and at most one photo.
type DocumentUpload struct {
	Kind     domain.DocumentKind `json:"kind"`
	URL      string              `json:"url"`
	PublicID string              `json:"public_id"`
}

// CreateRentalInput carries everything the booking transaction needs.
type CreateRentalInput struct {
	CustomerID     int32
	VehicleID      *int32
	DriverID       *int32
	Location       string
	LocationLat    *float64
	LocationLng    *float64
	StartDate      time.Time
	ReturnDate     time.Time
	AdvancePercent int32
	Selections     []LineSelection
	Documents      []DocumentUpload
}

type RentalService interface {
	CreateRental(ctx context.Context, input *CreateRentalInput) (*domain.RentalWithDetails, error)
	MarkReturned(ctx context.Context, rentalID int32) (*domain.RentalWithDetails, error)
	DeleteRental(ctx context.Context, rentalID int32) error
	GetRental(ctx context.Context, rentalID int32) (*domain.RentalWithDetails, error)
	ListRentals(ctx context.Context, status domain.RentalStatus, query string, page, pageSize int32) ([]domain.RentalWithDetails, int32, error)
}

type ProductService interface {
	AddProduct(ctx context.Context, product *domain.Product) error
	GetProduct(ctx context.Context, id int32) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id int32) error
	ListProducts(ctx context.Context, query, category string, page, pageSize int32) ([]domain.Product, int32, error)
	ListCategories(ctx context.Context) ([]string, error)
}

type CustomerService interface {
	AddCustomer(ctx context.Context, customer *domain.Customer) error
	GetCustomer(ctx context.Context, id int32) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer *domain.Customer) error
	DeleteCustomer(ctx context.Context, id int32) error
	ListCustomers(ctx context.Context, query string, page, pageSize int32) ([]domain.Customer, int32, error)
}

type FleetService interface {
	AddVehicle(ctx context.Context, vehicle *domain.Vehicle) error
	UpdateVehicle(ctx context.Context, vehicle *domain.Vehicle) error
	DeleteVehicle(ctx context.Context, id int32) error
	ListVehicles(ctx context.Context) ([]domain.Vehicle, error)
	AddDriver(ctx context.Context, driver *domain.Driver) error
	UpdateDriver(ctx context.Context, driver *domain.Driver) error
	DeleteDriver(ctx context.Context, id int32) error
	ListDrivers(ctx context.Context) ([]domain.Driver, error)
	AssignDriver(ctx context.Context, vehicleID, driverID int32) error
	UnassignDriver(ctx context.Context, vehicleID int32) error
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (access, refresh string, err error)
	Refresh(ctx context.Context, refreshToken string) (access string, err error)
}

// DashboardStats backs the overview cards on the dashboard.
type DashboardStats struct {
	ActiveRentals    int32 `json:"active_rentals"`
	PendingRentals   int32 `json:"pending_rentals"`
	OverdueRentals   int32 `json:"overdue_rentals"`
	CompletedRentals int32 `json:"completed_rentals"`
	MonthlyRevenue   int64 `json:"monthly_revenue"`
	VehiclesOnDuty   int32 `json:"vehicles_on_duty"`
	VehiclesTotal    int32 `json:"vehicles_total"`
}

type StatsService interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
}

// UploadResult is what the blob store hands back for a stored file.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

type UploadService interface {
	Upload(ctx context.Context, filename, contentType string, size int64, content []byte, folder string) (*UploadResult, error)
}

// Geocoder resolves coordinates to a place name. Implementations must treat
// failure as non-fatal; callers fall back to formatted coordinates.
type Geocoder interface {
	Reverse(ctx context.Context, lat, lng float64) (string, error)
}

type EmailService interface {
	SendOverdueReminder(ctx context.Context, toEmail, toName, rentalCode string, returnDate time.Time) error
}
