package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, rental_code, customer_id, vehicle_id, driver_id, location, location_lat, location_lng, start_date, return_date, actual_return_date, advance_percent, advance_amount, total_amount, remaining_amount, created_on, updated_on`

func scanRental(row interface{ Scan(...any) error }, rt *domain.Rental) error {
	return row.Scan(&rt.ID, &rt.RentalCode, &rt.CustomerID, &rt.VehicleID, &rt.DriverID, &rt.Location, &rt.LocationLat, &rt.LocationLng, &rt.StartDate, &rt.ReturnDate, &rt.ActualReturnDate, &rt.AdvancePercent, &rt.AdvanceAmount, &rt.TotalAmount, &rt.RemainingAmount, &rt.CreatedOn, &rt.UpdatedOn)
}

// CreateBooking runs the whole booking as one transaction: header insert,
// conditional availability decrements, line-item and document inserts, and
// the customer aggregate bump. Availability is decremented with a guarded
// UPDATE, never read-then-written, so two concurrent bookings cannot both
// take the last unit.
func (r *rentalRepository) CreateBooking(ctx context.Context, req *repository.BookingRequest) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	rt := req.Rental
	now := time.Now()
	query := `INSERT INTO rentals (rental_code, customer_id, vehicle_id, driver_id, location, location_lat, location_lng, start_date, return_date, advance_percent, advance_amount, total_amount, remaining_amount, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`
	err = tx.QueryRowContext(ctx, query, rt.RentalCode, rt.CustomerID, rt.VehicleID, rt.DriverID, rt.Location, rt.LocationLat, rt.LocationLng, rt.StartDate, rt.ReturnDate, rt.AdvancePercent, rt.AdvanceAmount, rt.TotalAmount, rt.RemainingAmount, now, now).Scan(&rt.ID)
	if err != nil {
		return err
	}

	var shortages []domain.StockShortage
	for _, item := range req.Items {
		res, err := tx.ExecContext(ctx,
			`UPDATE products SET available_count = available_count - $1, rent_count = rent_count + $1, updated_on = $2 WHERE id = $3 AND available_count >= $1`,
			item.Quantity, now, item.ProductID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			var name string
			var available int32
			err := tx.QueryRowContext(ctx, `SELECT name, available_count FROM products WHERE id = $1`, item.ProductID).Scan(&name, &available)
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrProductNotFound
			}
			if err != nil {
				return err
			}
			shortages = append(shortages, domain.StockShortage{
				ProductID:   item.ProductID,
				ProductName: name,
				Requested:   item.Quantity,
				Available:   available,
			})
		}
	}
	if len(shortages) > 0 {
		return &domain.InsufficientStockError{Shortages: shortages}
	}

	if len(req.Items) > 0 {
		if err := insertLineItems(ctx, tx, rt.ID, req.Items); err != nil {
			return err
		}
	}

	for i := range req.Documents {
		doc := &req.Documents[i]
		err := tx.QueryRowContext(ctx,
			`INSERT INTO rental_documents (rental_id, kind, url, public_id) VALUES ($1, $2, $3, $4) RETURNING id`,
			rt.ID, doc.Kind, doc.URL, doc.PublicID).Scan(&doc.ID)
		if err != nil {
			return err
		}
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE customers SET total_rentals = total_rentals + 1, active_rentals = active_rentals + 1, updated_on = $1 WHERE id = $2`,
		now, rt.CustomerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrCustomerNotFound
	}

	return tx.Commit()
}

// insertLineItems issues one multi-row insert for the whole selection.
func insertLineItems(ctx context.Context, tx *sql.Tx, rentalID int32, items []domain.RentalLineItem) error {
	values := make([]string, len(items))
	args := make([]interface{}, 0, len(items)*5)
	for i, item := range items {
		base := i * 5
		values[i] = fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4, base+5)
		args = append(args, rentalID, item.ProductID, item.Quantity, item.RatePerHour, item.Amount)
	}
	query := `INSERT INTO rental_products (rental_id, product_id, quantity, rate_per_hour, amount) VALUES ` + strings.Join(values, ", ")
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// MarkReturned applies the terminal transition. The guarded UPDATE makes the
// operation safe against double submission: the second call finds no open row
// and reports ErrAlreadyReturned without touching inventory again.
func (r *rentalRepository) MarkReturned(ctx context.Context, rentalID int32, returnedAt time.Time) (*domain.Rental, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var customerID int32
	var totalAmount int64
	err = tx.QueryRowContext(ctx,
		`UPDATE rentals SET actual_return_date = $1, updated_on = $1 WHERE id = $2 AND actual_return_date IS NULL RETURNING customer_id, total_amount`,
		returnedAt, rentalID).Scan(&customerID, &totalAmount)
	if errors.Is(err, sql.ErrNoRows) {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM rentals WHERE id = $1)`, rentalID).Scan(&exists); err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrAlreadyReturned
		}
		return nil, domain.ErrRentalNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := restoreAvailability(ctx, tx, rentalID, returnedAt); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE customers SET active_rentals = active_rentals - 1, total_spent = total_spent + $1, updated_on = $2 WHERE id = $3`,
		totalAmount, returnedAt, customerID)
	if err != nil {
		return nil, err
	}

	rt := &domain.Rental{}
	if err := scanRental(tx.QueryRowContext(ctx, `SELECT `+rentalColumns+` FROM rentals WHERE id = $1`, rentalID), rt); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return rt, nil
}

// restoreAvailability gives each line item's quantity back to its product.
// rent_count is a lifetime counter and stays put.
func restoreAvailability(ctx context.Context, tx *sql.Tx, rentalID int32, now time.Time) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE products p
		SET available_count = p.available_count + rp.quantity, updated_on = $1
		FROM rental_products rp
		WHERE rp.rental_id = $2 AND p.id = rp.product_id`,
		now, rentalID)
	return err
}

// Delete reverses inventory and aggregate effects for non-terminal rentals
// before removing the rows. Completed rentals already had their effects
// reversed at return time.
func (r *rentalRepository) Delete(ctx context.Context, rentalID int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var customerID int32
	var actualReturn sql.NullTime
	err = tx.QueryRowContext(ctx, `SELECT customer_id, actual_return_date FROM rentals WHERE id = $1 FOR UPDATE`, rentalID).Scan(&customerID, &actualReturn)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrRentalNotFound
	}
	if err != nil {
		return err
	}

	now := time.Now()
	if !actualReturn.Valid {
		if err := restoreAvailability(ctx, tx, rentalID, now); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE customers SET active_rentals = active_rentals - 1, updated_on = $1 WHERE id = $2`,
			now, customerID)
		if err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM rental_products WHERE rental_id = $1`, rentalID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM rental_documents WHERE rental_id = $1`, rentalID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM rentals WHERE id = $1`, rentalID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	rt := &domain.Rental{}
	err := scanRental(r.db.QueryRowContext(ctx, `SELECT `+rentalColumns+` FROM rentals WHERE id = $1`, id), rt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRentalNotFound
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) GetItems(ctx context.Context, rentalID int32) ([]domain.RentalLineItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, rental_id, product_id, quantity, rate_per_hour, amount FROM rental_products WHERE rental_id = $1 ORDER BY id`, rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.RentalLineItem
	for rows.Next() {
		var item domain.RentalLineItem
		if err := rows.Scan(&item.ID, &item.RentalID, &item.ProductID, &item.Quantity, &item.RatePerHour, &item.Amount); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *rentalRepository) GetDocuments(ctx context.Context, rentalID int32) ([]domain.RentalDocument, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, rental_id, kind, url, public_id FROM rental_documents WHERE rental_id = $1 ORDER BY id`, rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []domain.RentalDocument
	for rows.Next() {
		var doc domain.RentalDocument
		if err := rows.Scan(&doc.ID, &doc.RentalID, &doc.Kind, &doc.URL, &doc.PublicID); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (r *rentalRepository) List(ctx context.Context, status domain.RentalStatus, query string, asOf time.Time, page, pageSize int32) ([]domain.Rental, int32, error) {
	offset := (page - 1) * pageSize
	cols := make([]string, 0, 17)
	for _, c := range strings.Split(rentalColumns, ", ") {
		cols = append(cols, "r."+c)
	}
	sqlStr := `SELECT ` + strings.Join(cols, ", ") + ` FROM rentals r JOIN customers c ON c.id = r.customer_id WHERE 1=1`

	args := []interface{}{}
	argIdx := 1

	// The pending/active/overdue distinction is a function of the clock, so
	// status filters compare timestamps instead of trusting a stored enum.
	switch status {
	case domain.RentalStatusCompleted:
		sqlStr += " AND r.actual_return_date IS NOT NULL"
	case domain.RentalStatusPending:
		sqlStr += fmt.Sprintf(" AND r.actual_return_date IS NULL AND r.start_date > $%d", argIdx)
		args = append(args, asOf)
		argIdx++
	case domain.RentalStatusActive:
		sqlStr += fmt.Sprintf(" AND r.actual_return_date IS NULL AND r.start_date <= $%d AND r.return_date >= $%d", argIdx, argIdx)
		args = append(args, asOf)
		argIdx++
	case domain.RentalStatusOverdue:
		sqlStr += fmt.Sprintf(" AND r.actual_return_date IS NULL AND r.return_date < $%d", argIdx)
		args = append(args, asOf)
		argIdx++
	}

	if query != "" {
		sqlStr += fmt.Sprintf(" AND (r.rental_code ILIKE $%d OR c.name ILIKE $%d OR c.company ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+query+"%")
		argIdx++
	}

	var count int32
	countSql := "SELECT count(*) FROM (" + sqlStr + ") as sub"
	if err := r.db.QueryRowContext(ctx, countSql, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	sqlStr += fmt.Sprintf(" ORDER BY r.created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := scanRental(rows, &rt); err != nil {
			return nil, 0, err
		}
		rentals = append(rentals, rt)
	}
	return rentals, count, rows.Err()
}

func (r *rentalRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Rental, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+rentalColumns+` FROM rentals WHERE actual_return_date IS NULL AND return_date < $1 ORDER BY return_date`, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := scanRental(rows, &rt); err != nil {
			return nil, err
		}
		rentals = append(rentals, rt)
	}
	return rentals, rows.Err()
}

func (r *rentalRepository) CountByStatus(ctx context.Context, asOf time.Time) (map[domain.RentalStatus]int32, error) {
	query := `
		SELECT
			count(*) FILTER (WHERE actual_return_date IS NOT NULL) AS completed,
			count(*) FILTER (WHERE actual_return_date IS NULL AND start_date > $1) AS pending,
			count(*) FILTER (WHERE actual_return_date IS NULL AND return_date < $1) AS overdue,
			count(*) FILTER (WHERE actual_return_date IS NULL AND start_date <= $1 AND return_date >= $1) AS active
		FROM rentals`

	var completed, pending, overdue, active int32
	if err := r.db.QueryRowContext(ctx, query, asOf).Scan(&completed, &pending, &overdue, &active); err != nil {
		return nil, err
	}
	return map[domain.RentalStatus]int32{
		domain.RentalStatusCompleted: completed,
		domain.RentalStatusPending:   pending,
		domain.RentalStatusOverdue:   overdue,
		domain.RentalStatusActive:    active,
	}, nil
}

func (r *rentalRepository) RevenueSince(ctx context.Context, since time.Time) (int64, error) {
	var revenue int64
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(total_amount), 0) FROM rentals WHERE created_on >= $1`, since).Scan(&revenue)
	return revenue, err
}
