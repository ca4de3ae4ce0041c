package jobs

import (
	"context"
	"time"

	"rentdesk-backend/internal/logger"
)

// SendOverdueReminders emails every customer holding a rental past its
// agreed return date. Overdue is derived at read time, so this job only
// sends mail and never writes rental rows.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()

		overdue, err := jr.store.RentalRepository.ListOverdue(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to list overdue rentals", "error", err)
			return
		}
		if len(overdue) == 0 {
			logger.Info("No overdue rentals found")
			return
		}

		sent := 0
		for _, rental := range overdue {
			customer, err := jr.store.CustomerRepository.GetByID(ctx, rental.CustomerID)
			if err != nil {
				logger.Error("Failed to load customer for overdue rental",
					"rental_code", rental.RentalCode,
					"customer_id", rental.CustomerID,
					"error", err)
				continue
			}
			if customer.Email == "" {
				logger.Warn("Customer has no email, skipping reminder",
					"rental_code", rental.RentalCode,
					"customer_id", customer.ID)
				continue
			}

			err = jr.services.Email.SendOverdueReminder(ctx, customer.Email, customer.Name, rental.RentalCode, rental.ReturnDate)
			if err != nil {
				logger.Error("Failed to send overdue reminder",
					"rental_code", rental.RentalCode,
					"error", err)
				continue
			}
			sent++
		}

		logger.Info("Overdue reminders processed", "overdue", len(overdue), "sent", sent)
	})
}
