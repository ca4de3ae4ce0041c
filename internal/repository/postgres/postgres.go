package postgres

import (
	"database/sql"

	"rentdesk-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ProductRepository
	repository.CustomerRepository
	repository.VehicleRepository
	repository.DriverRepository
	repository.RentalRepository
	repository.UserRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                 db,
		ProductRepository:  NewProductRepository(db),
		CustomerRepository: NewCustomerRepository(db),
		VehicleRepository:  NewVehicleRepository(db),
		DriverRepository:   NewDriverRepository(db),
		RentalRepository:   NewRentalRepository(db),
		UserRepository:     NewUserRepository(db),
	}
}
