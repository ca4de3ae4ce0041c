package service

import (
	"context"
	"errors"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/repository"
)

type customerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) AddCustomer(ctx context.Context, customer *domain.Customer) error {
	if customer.Name == "" {
		return errors.New("customer name is required")
	}
	if customer.Phone == "" {
		return errors.New("customer phone is required")
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return wrapStore(err)
	}
	logger.Info("Customer added", "customer_id", customer.ID, "name", customer.Name)
	return nil
}

func (s *customerService) GetCustomer(ctx context.Context, id int32) (*domain.Customer, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapStore(err)
	}
	return customer, nil
}

// UpdateCustomer edits profile fields only. Rental aggregates are owned by
// the booking and return flows.
func (s *customerService) UpdateCustomer(ctx context.Context, customer *domain.Customer) error {
	if customer.Name == "" {
		return errors.New("customer name is required")
	}
	if err := s.repo.UpdateProfile(ctx, customer); err != nil {
		return wrapStore(err)
	}
	return nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, id int32) error {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return wrapStore(err)
	}
	if customer.ActiveRentals > 0 {
		return errors.New("customer has active rentals and cannot be deleted")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return wrapStore(err)
	}
	logger.Info("Customer deleted", "customer_id", id)
	return nil
}

func (s *customerService) ListCustomers(ctx context.Context, query string, page, pageSize int32) ([]domain.Customer, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	customers, count, err := s.repo.List(ctx, query, page, pageSize)
	if err != nil {
		return nil, 0, wrapStore(err)
	}
	return customers, count, nil
}
