package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/service"

	"github.com/gorilla/mux"
)

// RentalHandler serves the booking, return and rental listing endpoints.
type RentalHandler struct {
	rentals service.RentalService
}

func NewRentalHandler(rentals service.RentalService) *RentalHandler {
	return &RentalHandler{rentals: rentals}
}

type createRentalRequest struct {
	CustomerID     int32                    `json:"customer_id"`
	VehicleID      *int32                   `json:"vehicle_id,omitempty"`
	DriverID       *int32                   `json:"driver_id,omitempty"`
	Location       string                   `json:"location"`
	LocationLat    *float64                 `json:"location_lat,omitempty"`
	LocationLng    *float64                 `json:"location_lng,omitempty"`
	StartDate      time.Time                `json:"start_date"`
	ReturnDate     time.Time                `json:"return_date"`
	AdvancePercent int32                    `json:"advance_percent"`
	Items          []service.LineSelection  `json:"items"`
	Documents      []service.DocumentUpload `json:"documents"`
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := &service.CreateRentalInput{
		CustomerID:     req.CustomerID,
		VehicleID:      req.VehicleID,
		DriverID:       req.DriverID,
		Location:       req.Location,
		LocationLat:    req.LocationLat,
		LocationLng:    req.LocationLng,
		StartDate:      req.StartDate,
		ReturnDate:     req.ReturnDate,
		AdvancePercent: req.AdvancePercent,
		Selections:     req.Items,
		Documents:      req.Documents,
	}

	rental, err := h.rentals.CreateRental(r.Context(), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rental)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid rental id")
		return
	}
	rental, err := h.rentals.GetRental(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := domain.RentalStatus(q.Get("status"))
	switch status {
	case "", domain.RentalStatusPending, domain.RentalStatusActive,
		domain.RentalStatusOverdue, domain.RentalStatusCompleted:
	default:
		respondError(w, http.StatusBadRequest, "unknown rental status filter")
		return
	}
	page, pageSize := pagination(q.Get("page"), q.Get("page_size"))

	rentals, total, err := h.rentals.ListRentals(r.Context(), status, q.Get("q"), page, pageSize)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Items: rentals, Total: total, Page: page, PageSize: pageSize})
}

func (h *RentalHandler) MarkReturned(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid rental id")
		return
	}
	rental, err := h.rentals.MarkReturned(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid rental id")
		return
	}
	if err := h.rentals.DeleteRental(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id < 1 {
		return 0, strconv.ErrSyntax
	}
	return int32(id), nil
}

func pagination(pageRaw, sizeRaw string) (int32, int32) {
	page := int32(1)
	pageSize := int32(50)
	if v, err := strconv.ParseInt(pageRaw, 10, 32); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.ParseInt(sizeRaw, 10, 32); err == nil && v > 0 && v <= 200 {
		pageSize = int32(v)
	}
	return page, pageSize
}
