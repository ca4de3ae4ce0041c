package domain

import "time"

type RentalStatus string

const (
	RentalStatusPending   RentalStatus = "pending"
	RentalStatusActive    RentalStatus = "active"
	RentalStatusOverdue   RentalStatus = "overdue"
	RentalStatusCompleted RentalStatus = "completed"
)

// Rental is an order header. Only the terminal transition is stored
// (ActualReturnDate); pending/active/overdue are derived from the clock, so a
// stale stored status can never be trusted over the timestamps.
type Rental struct {
	ID               int32      `json:"id"`
	RentalCode       string     `json:"rental_code"`
	CustomerID       int32      `json:"customer_id"`
	VehicleID        *int32     `json:"vehicle_id,omitempty"`
	DriverID         *int32     `json:"driver_id,omitempty"`
	Location         string     `json:"location"`
	LocationLat      *float64   `json:"location_lat,omitempty"`
	LocationLng      *float64   `json:"location_lng,omitempty"`
	StartDate        time.Time  `json:"start_date"`
	ReturnDate       time.Time  `json:"return_date"`
	ActualReturnDate *time.Time `json:"actual_return_date,omitempty"`
	AdvancePercent   int32      `json:"advance_percent"`
	AdvanceAmount    int64      `json:"advance_amount"`
	TotalAmount      int64      `json:"total_amount"`
	RemainingAmount  int64      `json:"remaining_amount"`
	CreatedOn        time.Time  `json:"created_on"`
	UpdatedOn        time.Time  `json:"updated_on"`
}

// Status derives the display state at the given instant.
func (r *Rental) Status(now time.Time) RentalStatus {
	if r.ActualReturnDate != nil {
		return RentalStatusCompleted
	}
	if now.Before(r.StartDate) {
		return RentalStatusPending
	}
	if now.After(r.ReturnDate) {
		return RentalStatusOverdue
	}
	return RentalStatusActive
}

// IsTerminal reports whether the rental's inventory effects have already been
// reversed by the return operation.
func (r *Rental) IsTerminal() bool {
	return r.ActualReturnDate != nil
}

// RentalLineItem pairs one product with a booked quantity within an order.
type RentalLineItem struct {
	ID        int32 `json:"id"`
	RentalID  int32 `json:"rental_id"`
	ProductID int32 `json:"product_id"`
	Quantity  int32 `json:"quantity"`
	// Snapshot fields captured at booking time; totals are computed from
	// these, not from live product rates.
	RatePerHour int64 `json:"rate_per_hour"`
	Amount      int64 `json:"amount"`
}

type DocumentKind string

const (
	DocumentKindDocument DocumentKind = "document"
	DocumentKindPhoto    DocumentKind = "photo"
)

// RentalDocument is an uploaded file attached to an order. Orders require 4-10
// documents and at most one photo before booking is accepted.
type RentalDocument struct {
	ID       int32        `json:"id"`
	RentalID int32        `json:"rental_id"`
	Kind     DocumentKind `json:"kind"`
	URL      string       `json:"url"`
	PublicID string       `json:"public_id"`
}

// RentalWithDetails joins the order with its referenced rows for list views.
type RentalWithDetails struct {
	Rental
	Status    RentalStatus     `json:"status"`
	Customer  *Customer        `json:"customer,omitempty"`
	Vehicle   *Vehicle         `json:"vehicle,omitempty"`
	Driver    *Driver          `json:"driver,omitempty"`
	Items     []RentalLineItem `json:"items,omitempty"`
	Documents []RentalDocument `json:"documents,omitempty"`
}
