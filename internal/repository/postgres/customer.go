package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

const customerColumns = `id, name, company, phone, email, aadhaar_number, pan_number, address, total_rentals, active_rentals, total_spent, created_on, updated_on`

func scanCustomer(row interface{ Scan(...any) error }, c *domain.Customer) error {
	return row.Scan(&c.ID, &c.Name, &c.Company, &c.Phone, &c.Email, &c.AadhaarNumber, &c.PanNumber, &c.Address, &c.TotalRentals, &c.ActiveRentals, &c.TotalSpent, &c.CreatedOn, &c.UpdatedOn)
}

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (name, company, phone, email, aadhaar_number, pan_number, address, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, c.Name, c.Company, c.Phone, c.Email, c.AadhaarNumber, c.PanNumber, c.Address, now, now).Scan(&c.ID)
}

func (r *customerRepository) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	c := &domain.Customer{}
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	err := scanCustomer(r.db.QueryRowContext(ctx, query, id), c)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateProfile deliberately excludes the aggregate counters; those are
// written only inside the booking/return/delete transactions.
func (r *customerRepository) UpdateProfile(ctx context.Context, c *domain.Customer) error {
	query := `UPDATE customers SET name=$1, company=$2, phone=$3, email=$4, aadhaar_number=$5, pan_number=$6, address=$7, updated_on=$8 WHERE id=$9`
	res, err := r.db.ExecContext(ctx, query, c.Name, c.Company, c.Phone, c.Email, c.AadhaarNumber, c.PanNumber, c.Address, time.Now(), c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func (r *customerRepository) List(ctx context.Context, query string, page, pageSize int32) ([]domain.Customer, int32, error) {
	offset := (page - 1) * pageSize
	sqlStr := `SELECT ` + customerColumns + ` FROM customers WHERE 1=1`

	args := []interface{}{}
	argIdx := 1
	if query != "" {
		sqlStr += fmt.Sprintf(" AND (name ILIKE $%d OR company ILIKE $%d OR phone ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+query+"%")
		argIdx++
	}

	var count int32
	countSql := "SELECT count(*) FROM (" + sqlStr + ") as sub"
	if err := r.db.QueryRowContext(ctx, countSql, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	sqlStr += fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := scanCustomer(rows, &c); err != nil {
			return nil, 0, err
		}
		customers = append(customers, c)
	}
	return customers, count, rows.Err()
}
