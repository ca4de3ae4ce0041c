package http

import (
	"encoding/json"
	"net/http"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/service"
)

type FleetHandler struct {
	fleet service.FleetService
}

func NewFleetHandler(fleet service.FleetService) *FleetHandler {
	return &FleetHandler{fleet: fleet}
}

func (h *FleetHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var vehicle domain.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.fleet.AddVehicle(r.Context(), &vehicle); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, vehicle)
}

func (h *FleetHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}
	var vehicle domain.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	vehicle.ID = id
	if err := h.fleet.UpdateVehicle(r.Context(), &vehicle); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, vehicle)
}

func (h *FleetHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}
	if err := h.fleet.DeleteVehicle(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *FleetHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.fleet.ListVehicles(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"vehicles": vehicles})
}

func (h *FleetHandler) CreateDriver(w http.ResponseWriter, r *http.Request) {
	var driver domain.Driver
	if err := json.NewDecoder(r.Body).Decode(&driver); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.fleet.AddDriver(r.Context(), &driver); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, driver)
}

func (h *FleetHandler) UpdateDriver(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid driver id")
		return
	}
	var driver domain.Driver
	if err := json.NewDecoder(r.Body).Decode(&driver); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	driver.ID = id
	if err := h.fleet.UpdateDriver(r.Context(), &driver); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, driver)
}

func (h *FleetHandler) DeleteDriver(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid driver id")
		return
	}
	if err := h.fleet.DeleteDriver(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *FleetHandler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.fleet.ListDrivers(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"drivers": drivers})
}

type assignDriverRequest struct {
	DriverID int32 `json:"driver_id"`
}

func (h *FleetHandler) AssignDriver(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}
	var req assignDriverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DriverID < 1 {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.fleet.AssignDriver(r.Context(), vehicleID, req.DriverID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *FleetHandler) UnassignDriver(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}
	if err := h.fleet.UnassignDriver(r.Context(), vehicleID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
