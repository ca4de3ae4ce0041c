package domain

import (
	"errors"
	"time"
)

type Product struct {
	ID             int32     `json:"id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	SizeValue      string    `json:"size_value"`
	SizeUnit       string    `json:"size_unit"`
	RentPerHour    int64     `json:"rent_per_hour"`
	Description    string    `json:"description"`
	StockCount     int32     `json:"stock_count"`
	AvailableCount int32     `json:"available_count"`
	RentCount      int32     `json:"rent_count"`
	CreatedOn      time.Time `json:"created_on"`
	UpdatedOn      time.Time `json:"updated_on"`
}

// Validate checks the invariants an admin edit must hold. Availability is
// otherwise mutated only by the booking transaction.
func (p *Product) Validate() error {
	if p.Name == "" {
		return errors.New("product name is required")
	}
	if p.RentPerHour < 0 {
		return errors.New("rent per hour must not be negative")
	}
	if p.StockCount < 0 {
		return errors.New("stock count must not be negative")
	}
	if p.AvailableCount < 0 || p.AvailableCount > p.StockCount {
		return errors.New("available count must be between 0 and stock count")
	}
	return nil
}
