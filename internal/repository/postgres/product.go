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

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, name, category, size_value, size_unit, rent_per_hour, description, stock_count, available_count, rent_count, created_on, updated_on`

func scanProduct(row interface{ Scan(...any) error }, p *domain.Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Category, &p.SizeValue, &p.SizeUnit, &p.RentPerHour, &p.Description, &p.StockCount, &p.AvailableCount, &p.RentCount, &p.CreatedOn, &p.UpdatedOn)
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `INSERT INTO products (name, category, size_value, size_unit, rent_per_hour, description, stock_count, available_count, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, p.Name, p.Category, p.SizeValue, p.SizeUnit, p.RentPerHour, p.Description, p.StockCount, p.AvailableCount, now, now).Scan(&p.ID)
}

func (r *productRepository) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	p := &domain.Product{}
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	err := scanProduct(r.db.QueryRowContext(ctx, query, id), p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `UPDATE products SET name=$1, category=$2, size_value=$3, size_unit=$4, rent_per_hour=$5, description=$6, stock_count=$7, available_count=$8, updated_on=$9 WHERE id=$10`
	res, err := r.db.ExecContext(ctx, query, p.Name, p.Category, p.SizeValue, p.SizeUnit, p.RentPerHour, p.Description, p.StockCount, p.AvailableCount, time.Now(), p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) List(ctx context.Context, query, category string, page, pageSize int32) ([]domain.Product, int32, error) {
	offset := (page - 1) * pageSize
	sqlStr := `SELECT ` + productColumns + ` FROM products WHERE 1=1`

	args := []interface{}{}
	argIdx := 1
	if query != "" {
		sqlStr += fmt.Sprintf(" AND name ILIKE $%d", argIdx)
		args = append(args, "%"+query+"%")
		argIdx++
	}
	if category != "" {
		sqlStr += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, category)
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

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, count, rows.Err()
}

func (r *productRepository) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT category FROM products WHERE category <> '' ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
