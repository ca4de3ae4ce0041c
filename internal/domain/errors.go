package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidDateRange = errors.New("return date must be after start date")
	ErrInvalidQuantity  = errors.New("quantity must be a positive integer")
	ErrInvalidPercent   = errors.New("advance percent must be between 0 and 100")
	ErrProductNotFound  = errors.New("product not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrRentalNotFound   = errors.New("rental not found")
	ErrFleetNotFound    = errors.New("vehicle or driver not found")
	ErrAlreadyReturned  = errors.New("rental is already completed")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrUploadFailed     = errors.New("upload failed")
)

// StockShortage describes one product whose requested quantity exceeded
// availability at commit time.
type StockShortage struct {
	ProductID   int32  `json:"product_id"`
	ProductName string `json:"product_name"`
	Requested   int32  `json:"requested"`
	Available   int32  `json:"available"`
}

// InsufficientStockError is returned by the booking transaction when one or
// more line items cannot be satisfied. The booking is never partially applied.
type InsufficientStockError struct {
	Shortages []StockShortage
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, len(e.Shortages))
	for i, s := range e.Shortages {
		parts[i] = fmt.Sprintf("product %d (%s): requested %d, available %d", s.ProductID, s.ProductName, s.Requested, s.Available)
	}
	return "insufficient stock: " + strings.Join(parts, "; ")
}
