package postgres

import (
	"database/sql"
	"fmt"

	"github.com/GuiaBolso/darwin"
)

// defineMigrations returns the schema migrations in order.
// *NEVER* change or remove a step once released: a checksum of each script is
// stored alongside the applied migration.
func defineMigrations() []darwin.Migration {
	return []darwin.Migration{
		{Version: 1.01, Description: "Create table 'products'", Script: `
		CREATE TABLE IF NOT EXISTS products (
			id              SERIAL PRIMARY KEY,
			name            VARCHAR(255) NOT NULL,
			category        VARCHAR(100) NOT NULL DEFAULT '',
			size_value      VARCHAR(50) NOT NULL DEFAULT '',
			size_unit       VARCHAR(50) NOT NULL DEFAULT '',
			rent_per_hour   BIGINT NOT NULL DEFAULT 0 CHECK (rent_per_hour >= 0),
			description     TEXT NOT NULL DEFAULT '',
			stock_count     INTEGER NOT NULL DEFAULT 0,
			available_count INTEGER NOT NULL DEFAULT 0,
			rent_count      INTEGER NOT NULL DEFAULT 0,
			created_on      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_on      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CHECK (available_count >= 0 AND available_count <= stock_count)
		);`},

		{Version: 1.02, Description: "Create table 'customers'", Script: `
		CREATE TABLE IF NOT EXISTS customers (
			id             SERIAL PRIMARY KEY,
			name           VARCHAR(255) NOT NULL,
			company        VARCHAR(255) NOT NULL DEFAULT '',
			phone          VARCHAR(50) NOT NULL DEFAULT '',
			email          VARCHAR(255) NOT NULL DEFAULT '',
			aadhaar_number VARCHAR(50) NOT NULL DEFAULT '',
			pan_number     VARCHAR(50) NOT NULL DEFAULT '',
			address        TEXT NOT NULL DEFAULT '',
			total_rentals  INTEGER NOT NULL DEFAULT 0,
			active_rentals INTEGER NOT NULL DEFAULT 0 CHECK (active_rentals >= 0),
			total_spent    BIGINT NOT NULL DEFAULT 0,
			created_on     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_on     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CHECK (active_rentals <= total_rentals)
		);`},

		{Version: 1.03, Description: "Create table 'drivers'", Script: `
		CREATE TABLE IF NOT EXISTS drivers (
			id                  SERIAL PRIMARY KEY,
			name                VARCHAR(255) NOT NULL,
			phone               VARCHAR(50) NOT NULL DEFAULT '',
			license_number      VARCHAR(100) NOT NULL DEFAULT '',
			status              VARCHAR(20) NOT NULL DEFAULT 'available',
			assigned_vehicle_id INTEGER,
			created_on          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_on          TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`},

		{Version: 1.04, Description: "Create table 'vehicles'", Script: `
		CREATE TABLE IF NOT EXISTS vehicles (
			id                 SERIAL PRIMARY KEY,
			vehicle_number     VARCHAR(100) NOT NULL UNIQUE,
			vehicle_type       VARCHAR(100) NOT NULL DEFAULT '',
			capacity           VARCHAR(100) NOT NULL DEFAULT '',
			status             VARCHAR(20) NOT NULL DEFAULT 'available',
			assigned_driver_id INTEGER REFERENCES drivers (id) ON DELETE SET NULL,
			created_on         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_on         TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`},

		{Version: 1.05, Description: "Create table 'rentals'", Script: `
		CREATE TABLE IF NOT EXISTS rentals (
			id                 SERIAL PRIMARY KEY,
			rental_code        VARCHAR(50) NOT NULL UNIQUE,
			customer_id        INTEGER NOT NULL REFERENCES customers (id),
			vehicle_id         INTEGER REFERENCES vehicles (id) ON DELETE SET NULL,
			driver_id          INTEGER REFERENCES drivers (id) ON DELETE SET NULL,
			location           TEXT NOT NULL DEFAULT '',
			location_lat       DOUBLE PRECISION,
			location_lng       DOUBLE PRECISION,
			start_date         TIMESTAMPTZ NOT NULL,
			return_date        TIMESTAMPTZ NOT NULL,
			actual_return_date TIMESTAMPTZ,
			advance_percent    INTEGER NOT NULL DEFAULT 0,
			advance_amount     BIGINT NOT NULL DEFAULT 0,
			total_amount       BIGINT NOT NULL DEFAULT 0,
			remaining_amount   BIGINT NOT NULL DEFAULT 0,
			created_on         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_on         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CHECK (return_date > start_date),
			CHECK (remaining_amount = total_amount - advance_amount)
		);`},

		{Version: 1.06, Description: "Create table 'rental_products'", Script: `
		CREATE TABLE IF NOT EXISTS rental_products (
			id            SERIAL PRIMARY KEY,
			rental_id     INTEGER NOT NULL REFERENCES rentals (id) ON DELETE CASCADE,
			product_id    INTEGER NOT NULL REFERENCES products (id),
			quantity      INTEGER NOT NULL CHECK (quantity >= 1),
			rate_per_hour BIGINT NOT NULL DEFAULT 0,
			amount        BIGINT NOT NULL DEFAULT 0
		);`},

		{Version: 1.07, Description: "Create index 'idx_rental_products_rental_id'", Script: `
		CREATE INDEX IF NOT EXISTS idx_rental_products_rental_id ON rental_products (rental_id);`},

		{Version: 1.08, Description: "Create table 'rental_documents'", Script: `
		CREATE TABLE IF NOT EXISTS rental_documents (
			id        SERIAL PRIMARY KEY,
			rental_id INTEGER NOT NULL REFERENCES rentals (id) ON DELETE CASCADE,
			kind      VARCHAR(20) NOT NULL DEFAULT 'document',
			url       TEXT NOT NULL,
			public_id TEXT NOT NULL DEFAULT ''
		);`},

		{Version: 1.09, Description: "Create index 'idx_rentals_open'", Script: `
		CREATE INDEX IF NOT EXISTS idx_rentals_open ON rentals (return_date) WHERE actual_return_date IS NULL;`},

		{Version: 1.10, Description: "Create table 'users'", Script: `
		CREATE TABLE IF NOT EXISTS users (
			id            SERIAL PRIMARY KEY,
			name          VARCHAR(255) NOT NULL,
			email         VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			created_on    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_on    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`},
	}
}

// Migrate brings the database schema up to the current version.
func Migrate(db *sql.DB) error {
	driver := darwin.NewGenericDriver(db, darwin.PostgresDialect{})
	d := darwin.New(driver, defineMigrations(), nil)
	if err := d.Migrate(); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	return nil
}
