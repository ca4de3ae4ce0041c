package postgres_test

import (
	"context"
	"testing"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
	"rentdesk-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rentalCols = []string{"id", "rental_code", "customer_id", "vehicle_id", "driver_id", "location", "location_lat", "location_lng", "start_date", "return_date", "actual_return_date", "advance_percent", "advance_amount", "total_amount", "remaining_amount", "created_on", "updated_on"}

func bookingRequest() *repository.BookingRequest {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return &repository.BookingRequest{
		Rental: &domain.Rental{
			RentalCode:      "RNT-4F2A91C3",
			CustomerID:      7,
			Location:        "Pune",
			StartDate:       start,
			ReturnDate:      start.Add(48 * time.Hour),
			AdvancePercent:  10,
			AdvanceAmount:   1500,
			TotalAmount:     15000,
			RemainingAmount: 13500,
		},
		Items: []domain.RentalLineItem{
			{ProductID: 2, Quantity: 4, RatePerHour: 1500, Amount: 12000},
		},
		Documents: []domain.RentalDocument{
			{Kind: domain.DocumentKindDocument, URL: "https://cdn.example.com/a.pdf", PublicID: "rentals/a"},
		},
	}
}

func TestRentalRepository_CreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := postgres.NewRentalRepository(db)
		req := bookingRequest()

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO rentals").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
		mock.ExpectExec("UPDATE products SET available_count = available_count -").
			WithArgs(int32(4), sqlmock.AnyArg(), int32(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO rental_products").
			WithArgs(int32(42), int32(2), int32(4), int64(1500), int64(12000)).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectQuery("INSERT INTO rental_documents").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
		mock.ExpectExec("UPDATE customers SET total_rentals").
			WithArgs(sqlmock.AnyArg(), int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.CreateBooking(ctx, req)
		assert.NoError(t, err)
		assert.Equal(t, int32(42), req.Rental.ID)
		assert.Equal(t, int32(9), req.Documents[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("InsufficientStockRollsBack", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := postgres.NewRentalRepository(db)
		req := bookingRequest()

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO rentals").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
		mock.ExpectExec("UPDATE products SET available_count = available_count -").
			WithArgs(int32(4), sqlmock.AnyArg(), int32(2)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT name, available_count FROM products").
			WithArgs(int32(2)).
			WillReturnRows(sqlmock.NewRows([]string{"name", "available_count"}).AddRow("Excavator", 1))
		mock.ExpectRollback()

		err = repo.CreateBooking(ctx, req)
		var stockErr *domain.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		require.Len(t, stockErr.Shortages, 1)
		assert.Equal(t, int32(2), stockErr.Shortages[0].ProductID)
		assert.Equal(t, "Excavator", stockErr.Shortages[0].ProductName)
		assert.Equal(t, int32(4), stockErr.Shortages[0].Requested)
		assert.Equal(t, int32(1), stockErr.Shortages[0].Available)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := postgres.NewRentalRepository(db)
		req := bookingRequest()

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO rentals").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
		mock.ExpectExec("UPDATE products SET available_count = available_count -").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT name, available_count FROM products").
			WillReturnRows(sqlmock.NewRows([]string{"name", "available_count"}))
		mock.ExpectRollback()

		err = repo.CreateBooking(ctx, req)
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})
}

func TestRentalRepository_MarkReturned(t *testing.T) {
	ctx := context.Background()
	returnedAt := time.Date(2026, 3, 5, 18, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := postgres.NewRentalRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE rentals SET actual_return_date").
			WithArgs(returnedAt, int32(42)).
			WillReturnRows(sqlmock.NewRows([]string{"customer_id", "total_amount"}).AddRow(7, 15000))
		mock.ExpectExec("UPDATE products p").
			WithArgs(returnedAt, int32(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE customers SET active_rentals = active_rentals - 1, total_spent").
			WithArgs(int64(15000), returnedAt, int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT (.+) FROM rentals WHERE id").
			WithArgs(int32(42)).
			WillReturnRows(sqlmock.NewRows(rentalCols).
				AddRow(42, "RNT-4F2A91C3", 7, nil, nil, "Pune", nil, nil, time.Now(), time.Now(), returnedAt, 10, 1500, 15000, 13500, time.Now(), time.Now()))
		mock.ExpectCommit()

		rental, err := repo.MarkReturned(ctx, 42, returnedAt)
		require.NoError(t, err)
		require.NotNil(t, rental.ActualReturnDate)
		assert.Equal(t, returnedAt, *rental.ActualReturnDate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AlreadyReturned", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := postgres.NewRentalRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE rentals SET actual_return_date").
			WithArgs(returnedAt, int32(42)).
			WillReturnRows(sqlmock.NewRows([]string{"customer_id", "total_amount"}))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int32(42)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectRollback()

		_, err = repo.MarkReturned(ctx, 42, returnedAt)
		assert.ErrorIs(t, err, domain.ErrAlreadyReturned)
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := postgres.NewRentalRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE rentals SET actual_return_date").
			WithArgs(returnedAt, int32(99)).
			WillReturnRows(sqlmock.NewRows([]string{"customer_id", "total_amount"}))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectRollback()

		_, err = repo.MarkReturned(ctx, 99, returnedAt)
		assert.ErrorIs(t, err, domain.ErrRentalNotFound)
	})
}

func TestRentalRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("OpenRentalReversesInventory", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := postgres.NewRentalRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT customer_id, actual_return_date FROM rentals").
			WithArgs(int32(42)).
			WillReturnRows(sqlmock.NewRows([]string{"customer_id", "actual_return_date"}).AddRow(7, nil))
		mock.ExpectExec("UPDATE products p").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE customers SET active_rentals = active_rentals - 1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM rental_products").
			WithArgs(int32(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM rental_documents").
			WithArgs(int32(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM rentals").
			WithArgs(int32(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.Delete(ctx, 42)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CompletedRentalSkipsReversal", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := postgres.NewRentalRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT customer_id, actual_return_date FROM rentals").
			WithArgs(int32(42)).
			WillReturnRows(sqlmock.NewRows([]string{"customer_id", "actual_return_date"}).AddRow(7, time.Now()))
		mock.ExpectExec("DELETE FROM rental_products").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM rental_documents").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM rentals").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.Delete(ctx, 42)
		assert.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := postgres.NewRentalRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT customer_id, actual_return_date FROM rentals").
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows([]string{"customer_id", "actual_return_date"}))
		mock.ExpectRollback()

		err = repo.Delete(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrRentalNotFound)
	})
}

func TestRentalRepository_CountByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	asOf := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT").
		WithArgs(asOf).
		WillReturnRows(sqlmock.NewRows([]string{"completed", "pending", "overdue", "active"}).AddRow(5, 2, 1, 3))

	counts, err := repo.CountByStatus(context.Background(), asOf)
	require.NoError(t, err)
	assert.Equal(t, int32(5), counts[domain.RentalStatusCompleted])
	assert.Equal(t, int32(2), counts[domain.RentalStatusPending])
	assert.Equal(t, int32(1), counts[domain.RentalStatusOverdue])
	assert.Equal(t, int32(3), counts[domain.RentalStatusActive])
}
