package repository

import (
	"context"
	"time"

	"rentdesk-backend/internal/domain"
)

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id int32) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, query, category string, page, pageSize int32) ([]domain.Product, int32, error)
	ListCategories(ctx context.Context) ([]string, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id int32) (*domain.Customer, error)
	// UpdateProfile touches only profile fields; aggregate counters are
	// owned by the rental lifecycle.
	UpdateProfile(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, query string, page, pageSize int32) ([]domain.Customer, int32, error)
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetByID(ctx context.Context, id int32) (*domain.Vehicle, error)
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.Vehicle, error)
	// AssignDriver and UnassignDriver keep both sides of the vehicle/driver
	// link plus the driver status consistent within one transaction.
	AssignDriver(ctx context.Context, vehicleID, driverID int32) error
	UnassignDriver(ctx context.Context, vehicleID int32) error
}

type DriverRepository interface {
	Create(ctx context.Context, driver *domain.Driver) error
	GetByID(ctx context.Context, id int32) (*domain.Driver, error)
	Update(ctx context.Context, driver *domain.Driver) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.Driver, error)
}

// BookingRequest is the unit of work handed to CreateBooking. The repository
// persists the header, line items, and documents atomically, decrementing
// product availability with conditional updates.
type BookingRequest struct {
	Rental    *domain.Rental
	Items     []domain.RentalLineItem
	Documents []domain.RentalDocument
}

type RentalRepository interface {
	// CreateBooking persists the rental and its line items as one atomic
	// unit and applies the inventory/customer aggregate effects. On a stock
	// violation it returns *domain.InsufficientStockError and leaves no
	// partial state.
	CreateBooking(ctx context.Context, req *BookingRequest) error
	// MarkReturned sets the terminal transition exactly once and reverses
	// the inventory effects. Returns domain.ErrAlreadyReturned if the
	// rental is already completed.
	MarkReturned(ctx context.Context, rentalID int32, returnedAt time.Time) (*domain.Rental, error)
	// Delete removes the rental, reversing its inventory/aggregate effects
	// first when the rental is still non-terminal.
	Delete(ctx context.Context, rentalID int32) error

	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	GetItems(ctx context.Context, rentalID int32) ([]domain.RentalLineItem, error)
	GetDocuments(ctx context.Context, rentalID int32) ([]domain.RentalDocument, error)
	// List filters by derived status (computed from asOf against the
	// stored timestamps) and a free-text query over rental code, customer
	// name, and company.
	List(ctx context.Context, status domain.RentalStatus, query string, asOf time.Time, page, pageSize int32) ([]domain.Rental, int32, error)
	// ListOverdue returns open rentals whose planned return date has passed.
	ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Rental, error)
	CountByStatus(ctx context.Context, asOf time.Time) (map[domain.RentalStatus]int32, error)
	// RevenueSince sums total_amount of rentals created at or after the
	// given instant.
	RevenueSince(ctx context.Context, since time.Time) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int32) (*domain.User, error)
}
