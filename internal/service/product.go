package service

import (
	"context"
	"errors"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/repository"
)

type productService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func (s *productService) AddProduct(ctx context.Context, product *domain.Product) error {
	// New stock starts fully available.
	if product.AvailableCount == 0 && product.RentCount == 0 {
		product.AvailableCount = product.StockCount
	}
	if err := product.Validate(); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return wrapStore(err)
	}
	logger.Info("Product added", "product_id", product.ID, "name", product.Name)
	return nil
}

func (s *productService) GetProduct(ctx context.Context, id int32) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapStore(err)
	}
	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, product *domain.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	current, err := s.repo.GetByID(ctx, product.ID)
	if err != nil {
		return wrapStore(err)
	}
	// Stock edits move the available count by the same delta so units out on
	// rent are never double counted.
	if delta := product.StockCount - current.StockCount; delta != 0 {
		product.AvailableCount = current.AvailableCount + delta
		if product.AvailableCount < 0 {
			return errors.New("stock count cannot drop below units currently rented out")
		}
	} else {
		product.AvailableCount = current.AvailableCount
	}
	product.RentCount = current.RentCount
	if err := s.repo.Update(ctx, product); err != nil {
		return wrapStore(err)
	}
	return nil
}

func (s *productService) DeleteProduct(ctx context.Context, id int32) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return wrapStore(err)
	}
	logger.Info("Product deleted", "product_id", id)
	return nil
}

func (s *productService) ListProducts(ctx context.Context, query, category string, page, pageSize int32) ([]domain.Product, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	products, count, err := s.repo.List(ctx, query, category, page, pageSize)
	if err != nil {
		return nil, 0, wrapStore(err)
	}
	return products, count, nil
}

func (s *productService) ListCategories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, wrapStore(err)
	}
	return categories, nil
}
