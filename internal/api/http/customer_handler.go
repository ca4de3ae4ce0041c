package http

import (
	"encoding/json"
	"net/http"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/service"
)

type CustomerHandler struct {
	customers service.CustomerService
}

func NewCustomerHandler(customers service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var customer domain.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.customers.AddCustomer(r.Context(), &customer); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, customer)
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	customer, err := h.customers.GetCustomer(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	var customer domain.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	customer.ID = id
	if err := h.customers.UpdateCustomer(r.Context(), &customer); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	if err := h.customers.DeleteCustomer(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, pageSize := pagination(q.Get("page"), q.Get("page_size"))

	customers, total, err := h.customers.ListCustomers(r.Context(), q.Get("q"), page, pageSize)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Items: customers, Total: total, Page: page, PageSize: pageSize})
}
