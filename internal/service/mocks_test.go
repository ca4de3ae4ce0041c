package service_test

import (
	"context"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockProductRepo
type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) Create(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProductRepo) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductRepo) Update(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProductRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockProductRepo) List(ctx context.Context, query, category string, page, pageSize int32) ([]domain.Product, int32, error) {
	args := m.Called(ctx, query, category, page, pageSize)
	return args.Get(0).([]domain.Product), args.Get(1).(int32), args.Error(2)
}
func (m *MockProductRepo) ListCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

// MockCustomerRepo
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCustomerRepo) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) UpdateProfile(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCustomerRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockCustomerRepo) List(ctx context.Context, query string, page, pageSize int32) ([]domain.Customer, int32, error) {
	args := m.Called(ctx, query, page, pageSize)
	return args.Get(0).([]domain.Customer), args.Get(1).(int32), args.Error(2)
}

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) Create(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockVehicleRepo) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) Update(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockVehicleRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockVehicleRepo) List(ctx context.Context) ([]domain.Vehicle, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) AssignDriver(ctx context.Context, vehicleID, driverID int32) error {
	args := m.Called(ctx, vehicleID, driverID)
	return args.Error(0)
}
func (m *MockVehicleRepo) UnassignDriver(ctx context.Context, vehicleID int32) error {
	args := m.Called(ctx, vehicleID)
	return args.Error(0)
}

// MockDriverRepo
type MockDriverRepo struct {
	mock.Mock
}

func (m *MockDriverRepo) Create(ctx context.Context, d *domain.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockDriverRepo) GetByID(ctx context.Context, id int32) (*domain.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Driver), args.Error(1)
}
func (m *MockDriverRepo) Update(ctx context.Context, d *domain.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockDriverRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockDriverRepo) List(ctx context.Context) ([]domain.Driver, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Driver), args.Error(1)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) CreateBooking(ctx context.Context, req *repository.BookingRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockRentalRepo) MarkReturned(ctx context.Context, rentalID int32, returnedAt time.Time) (*domain.Rental, error) {
	args := m.Called(ctx, rentalID, returnedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) Delete(ctx context.Context, rentalID int32) error {
	args := m.Called(ctx, rentalID)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) GetItems(ctx context.Context, rentalID int32) ([]domain.RentalLineItem, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).([]domain.RentalLineItem), args.Error(1)
}
func (m *MockRentalRepo) GetDocuments(ctx context.Context, rentalID int32) ([]domain.RentalDocument, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).([]domain.RentalDocument), args.Error(1)
}
func (m *MockRentalRepo) List(ctx context.Context, status domain.RentalStatus, query string, asOf time.Time, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, status, query, asOf, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalRepo) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) CountByStatus(ctx context.Context, asOf time.Time) (map[domain.RentalStatus]int32, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).(map[domain.RentalStatus]int32), args.Error(1)
}
func (m *MockRentalRepo) RevenueSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockGeocoder
type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Reverse(ctx context.Context, lat, lng float64) (string, error) {
	args := m.Called(ctx, lat, lng)
	return args.String(0), args.Error(1)
}
