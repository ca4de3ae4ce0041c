package domain

import "time"

// Customer aggregate fields (TotalRentals, ActiveRentals, TotalSpent) are
// mutated only by rental lifecycle transitions, never by profile edits.
type Customer struct {
	ID            int32     `json:"id"`
	Name          string    `json:"name"`
	Company       string    `json:"company"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	AadhaarNumber string    `json:"aadhaar_number"`
	PanNumber     string    `json:"pan_number"`
	Address       string    `json:"address"`
	TotalRentals  int32     `json:"total_rentals"`
	ActiveRentals int32     `json:"active_rentals"`
	TotalSpent    int64     `json:"total_spent"`
	CreatedOn     time.Time `json:"created_on"`
	UpdatedOn     time.Time `json:"updated_on"`
}
