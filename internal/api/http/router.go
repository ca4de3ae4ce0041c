// Package http wires the dashboard's REST API onto a gorilla/mux router.
package http

import (
	"net/http"

	"rentdesk-backend/internal/security"
	"rentdesk-backend/internal/service"
	"rentdesk-backend/internal/storage"

	"github.com/gorilla/mux"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	Rentals   service.RentalService
	Products  service.ProductService
	Customers service.CustomerService
	Fleet     service.FleetService
	Auth      service.AuthService
	Stats     service.StatsService
	Uploads   service.UploadService
	Tokens    security.TokenManager

	// MockStorage is set only when the mock backend is active; it enables
	// the local file-serving routes.
	MockStorage *storage.MockStorageService
}

func NewRouter(deps RouterDeps) *mux.Router {
	router := mux.NewRouter()
	router.Use(LoggingMiddleware)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()

	authHandler := NewAuthHandler(deps.Auth)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods(http.MethodPost)

	if deps.MockStorage != nil {
		api.HandleFunc("/files/{key:.+}", NewFilesHandler(deps.MockStorage).Serve).Methods(http.MethodGet)
	}

	protected := api.NewRoute().Subrouter()
	protected.Use(AuthMiddleware(deps.Tokens))

	rentalHandler := NewRentalHandler(deps.Rentals)
	protected.HandleFunc("/rentals", rentalHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/rentals", rentalHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/rentals/{id}", rentalHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/rentals/{id}", rentalHandler.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/rentals/{id}/return", rentalHandler.MarkReturned).Methods(http.MethodPost)

	productHandler := NewProductHandler(deps.Products)
	protected.HandleFunc("/products", productHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/products", productHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/products/categories", productHandler.ListCategories).Methods(http.MethodGet)
	protected.HandleFunc("/products/{id}", productHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/products/{id}", productHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/products/{id}", productHandler.Delete).Methods(http.MethodDelete)

	customerHandler := NewCustomerHandler(deps.Customers)
	protected.HandleFunc("/customers", customerHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/customers", customerHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/customers/{id}", customerHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/customers/{id}", customerHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/customers/{id}", customerHandler.Delete).Methods(http.MethodDelete)

	fleetHandler := NewFleetHandler(deps.Fleet)
	protected.HandleFunc("/vehicles", fleetHandler.CreateVehicle).Methods(http.MethodPost)
	protected.HandleFunc("/vehicles", fleetHandler.ListVehicles).Methods(http.MethodGet)
	protected.HandleFunc("/vehicles/{id}", fleetHandler.UpdateVehicle).Methods(http.MethodPut)
	protected.HandleFunc("/vehicles/{id}", fleetHandler.DeleteVehicle).Methods(http.MethodDelete)
	protected.HandleFunc("/vehicles/{id}/assign-driver", fleetHandler.AssignDriver).Methods(http.MethodPost)
	protected.HandleFunc("/vehicles/{id}/unassign-driver", fleetHandler.UnassignDriver).Methods(http.MethodPost)
	protected.HandleFunc("/drivers", fleetHandler.CreateDriver).Methods(http.MethodPost)
	protected.HandleFunc("/drivers", fleetHandler.ListDrivers).Methods(http.MethodGet)
	protected.HandleFunc("/drivers/{id}", fleetHandler.UpdateDriver).Methods(http.MethodPut)
	protected.HandleFunc("/drivers/{id}", fleetHandler.DeleteDriver).Methods(http.MethodDelete)

	protected.HandleFunc("/stats", NewStatsHandler(deps.Stats).Get).Methods(http.MethodGet)
	protected.HandleFunc("/uploads", NewUploadHandler(deps.Uploads).Upload).Methods(http.MethodPost)

	return router
}
