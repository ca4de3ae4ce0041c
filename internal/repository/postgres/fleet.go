package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

const vehicleColumns = `id, vehicle_number, vehicle_type, capacity, status, assigned_driver_id, created_on, updated_on`

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `INSERT INTO vehicles (vehicle_number, vehicle_type, capacity, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	now := time.Now()
	if v.Status == "" {
		v.Status = domain.VehicleStatusAvailable
	}
	return r.db.QueryRowContext(ctx, query, v.VehicleNumber, v.VehicleType, v.Capacity, v.Status, now, now).Scan(&v.ID)
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.VehicleNumber, &v.VehicleType, &v.Capacity, &v.Status, &v.AssignedDriverID, &v.CreatedOn, &v.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrFleetNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	query := `UPDATE vehicles SET vehicle_number=$1, vehicle_type=$2, capacity=$3, status=$4, updated_on=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query, v.VehicleNumber, v.VehicleType, v.Capacity, v.Status, time.Now(), v.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrFleetNotFound
	}
	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrFleetNotFound
	}
	return nil
}

func (r *vehicleRepository) List(ctx context.Context) ([]domain.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+vehicleColumns+` FROM vehicles ORDER BY vehicle_number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.VehicleNumber, &v.VehicleType, &v.Capacity, &v.Status, &v.AssignedDriverID, &v.CreatedOn, &v.UpdatedOn); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

// AssignDriver writes both sides of the vehicle/driver link and flips the
// driver to on-duty in one transaction, so the link can never be observed
// half-set.
func (r *vehicleRepository) AssignDriver(ctx context.Context, vehicleID, driverID int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	res, err := tx.ExecContext(ctx, `UPDATE vehicles SET assigned_driver_id=$1, updated_on=$2 WHERE id=$3`, driverID, now, vehicleID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrFleetNotFound
	}

	res, err = tx.ExecContext(ctx, `UPDATE drivers SET assigned_vehicle_id=$1, status=$2, updated_on=$3 WHERE id=$4`, vehicleID, domain.DriverStatusOnDuty, now, driverID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrFleetNotFound
	}

	return tx.Commit()
}

func (r *vehicleRepository) UnassignDriver(ctx context.Context, vehicleID int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	var driverID sql.NullInt32
	err = tx.QueryRowContext(ctx, `SELECT assigned_driver_id FROM vehicles WHERE id=$1 FOR UPDATE`, vehicleID).Scan(&driverID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrFleetNotFound
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE vehicles SET assigned_driver_id=NULL, updated_on=$1 WHERE id=$2`, now, vehicleID); err != nil {
		return err
	}

	if driverID.Valid {
		_, err = tx.ExecContext(ctx, `UPDATE drivers SET assigned_vehicle_id=NULL, status=$1, updated_on=$2 WHERE id=$3`, domain.DriverStatusAvailable, now, driverID.Int32)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

type driverRepository struct {
	db *sql.DB
}

func NewDriverRepository(db *sql.DB) repository.DriverRepository {
	return &driverRepository{db: db}
}

const driverColumns = `id, name, phone, license_number, status, assigned_vehicle_id, created_on, updated_on`

func (r *driverRepository) Create(ctx context.Context, d *domain.Driver) error {
	query := `INSERT INTO drivers (name, phone, license_number, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	now := time.Now()
	if d.Status == "" {
		d.Status = domain.DriverStatusAvailable
	}
	return r.db.QueryRowContext(ctx, query, d.Name, d.Phone, d.LicenseNumber, d.Status, now, now).Scan(&d.ID)
}

func (r *driverRepository) GetByID(ctx context.Context, id int32) (*domain.Driver, error) {
	d := &domain.Driver{}
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&d.ID, &d.Name, &d.Phone, &d.LicenseNumber, &d.Status, &d.AssignedVehicleID, &d.CreatedOn, &d.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrFleetNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *driverRepository) Update(ctx context.Context, d *domain.Driver) error {
	query := `UPDATE drivers SET name=$1, phone=$2, license_number=$3, status=$4, updated_on=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query, d.Name, d.Phone, d.LicenseNumber, d.Status, time.Now(), d.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrFleetNotFound
	}
	return nil
}

func (r *driverRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM drivers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrFleetNotFound
	}
	return nil
}

func (r *driverRepository) List(ctx context.Context) ([]domain.Driver, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+driverColumns+` FROM drivers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []domain.Driver
	for rows.Next() {
		var d domain.Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.Phone, &d.LicenseNumber, &d.Status, &d.AssignedVehicleID, &d.CreatedOn, &d.UpdatedOn); err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}
