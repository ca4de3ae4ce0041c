package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRentalStatus(t *testing.T) {
	start := time.Date(2025, 12, 26, 10, 0, 0, 0, time.UTC)
	ret := time.Date(2025, 12, 28, 10, 0, 0, 0, time.UTC)
	r := &Rental{StartDate: start, ReturnDate: ret}

	t.Run("Pending before start", func(t *testing.T) {
		assert.Equal(t, RentalStatusPending, r.Status(start.Add(-time.Hour)))
	})

	t.Run("Active between start and return", func(t *testing.T) {
		assert.Equal(t, RentalStatusActive, r.Status(start.Add(time.Hour)))
	})

	t.Run("Active exactly at start", func(t *testing.T) {
		assert.Equal(t, RentalStatusActive, r.Status(start))
	})

	t.Run("Overdue past return date", func(t *testing.T) {
		assert.Equal(t, RentalStatusOverdue, r.Status(ret.Add(time.Minute)))
	})

	t.Run("Completed overrides the clock", func(t *testing.T) {
		done := ret.Add(48 * time.Hour)
		completed := &Rental{StartDate: start, ReturnDate: ret, ActualReturnDate: &done}
		assert.Equal(t, RentalStatusCompleted, completed.Status(ret.Add(72*time.Hour)))
		assert.True(t, completed.IsTerminal())
	})

	t.Run("Not terminal while open", func(t *testing.T) {
		assert.False(t, r.IsTerminal())
	})
}
