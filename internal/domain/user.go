package domain

import "time"

// User is a dashboard operator account. The deployment is single-tenant, so
// there is no organization scoping on any entity.
type User struct {
	ID           int32     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedOn    time.Time `json:"created_on"`
	UpdatedOn    time.Time `json:"updated_on"`
}
