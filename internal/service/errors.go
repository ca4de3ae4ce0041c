package service

import (
	"errors"
	"fmt"

	"rentdesk-backend/internal/domain"
)

// wrapStore passes known domain errors through untouched and folds anything
// else into ErrStoreUnavailable so handlers never leak driver internals.
func wrapStore(err error) error {
	switch {
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrCustomerNotFound),
		errors.Is(err, domain.ErrRentalNotFound),
		errors.Is(err, domain.ErrFleetNotFound),
		errors.Is(err, domain.ErrAlreadyReturned):
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}
