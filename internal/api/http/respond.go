package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/security"
	"rentdesk-backend/internal/service"
)

type errorResponse struct {
	Error     string                 `json:"error"`
	Shortages []domain.StockShortage `json:"shortages,omitempty"`
}

type listResponse struct {
	Items    any   `json:"items"`
	Total    int32 `json:"total"`
	Page     int32 `json:"page"`
	PageSize int32 `json:"page_size"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// respondServiceError maps service errors onto HTTP statuses. Stock
// shortages carry the per-product detail the booking form renders.
func respondServiceError(w http.ResponseWriter, err error) {
	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		respondJSON(w, http.StatusConflict, errorResponse{
			Error:     stockErr.Error(),
			Shortages: stockErr.Shortages,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrCustomerNotFound),
		errors.Is(err, domain.ErrRentalNotFound),
		errors.Is(err, domain.ErrFleetNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrAlreadyReturned):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidPercent):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrExpiredToken),
		errors.Is(err, security.ErrWrongTokenType):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrUploadFailed):
		respondError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, domain.ErrStoreUnavailable):
		logger.Error("Store error", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	default:
		respondError(w, http.StatusBadRequest, err.Error())
	}
}
