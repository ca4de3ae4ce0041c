package service_test

import (
	"context"
	"testing"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProductService_AddProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("NewStockFullyAvailable", func(t *testing.T) {
		repo := new(MockProductRepo)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.Product")).Return(nil)
		svc := service.NewProductService(repo)

		product := &domain.Product{Name: "Tower Crane", RentPerHour: 1500, StockCount: 6}
		require.NoError(t, svc.AddProduct(ctx, product))
		assert.Equal(t, int32(6), product.AvailableCount)
	})

	t.Run("RejectsInvalid", func(t *testing.T) {
		repo := new(MockProductRepo)
		svc := service.NewProductService(repo)

		err := svc.AddProduct(ctx, &domain.Product{Name: "", RentPerHour: 1500})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestProductService_UpdateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("StockIncreaseRaisesAvailability", func(t *testing.T) {
		repo := new(MockProductRepo)
		repo.On("GetByID", ctx, int32(3)).Return(&domain.Product{
			ID: 3, Name: "Tower Crane", RentPerHour: 1500, StockCount: 6, AvailableCount: 2, RentCount: 4,
		}, nil)
		repo.On("Update", ctx, mock.AnythingOfType("*domain.Product")).Return(nil)
		svc := service.NewProductService(repo)

		product := &domain.Product{ID: 3, Name: "Tower Crane", RentPerHour: 1500, StockCount: 8, AvailableCount: 8}
		require.NoError(t, svc.UpdateProduct(ctx, product))
		assert.Equal(t, int32(4), product.AvailableCount)
		assert.Equal(t, int32(4), product.RentCount)
	})

	t.Run("CannotShrinkBelowRentedOut", func(t *testing.T) {
		repo := new(MockProductRepo)
		repo.On("GetByID", ctx, int32(3)).Return(&domain.Product{
			ID: 3, Name: "Tower Crane", RentPerHour: 1500, StockCount: 6, AvailableCount: 2, RentCount: 4,
		}, nil)
		svc := service.NewProductService(repo)

		// 4 units are out on rent; stock cannot drop to 3.
		product := &domain.Product{ID: 3, Name: "Tower Crane", RentPerHour: 1500, StockCount: 3, AvailableCount: 3}
		err := svc.UpdateProduct(ctx, product)
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestCustomerService_DeleteCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("BlocksWithActiveRentals", func(t *testing.T) {
		repo := new(MockCustomerRepo)
		repo.On("GetByID", ctx, int32(7)).Return(&domain.Customer{ID: 7, ActiveRentals: 2}, nil)
		svc := service.NewCustomerService(repo)

		err := svc.DeleteCustomer(ctx, 7)
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Success", func(t *testing.T) {
		repo := new(MockCustomerRepo)
		repo.On("GetByID", ctx, int32(7)).Return(&domain.Customer{ID: 7}, nil)
		repo.On("Delete", ctx, int32(7)).Return(nil)
		svc := service.NewCustomerService(repo)

		assert.NoError(t, svc.DeleteCustomer(ctx, 7))
	})
}
