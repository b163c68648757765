package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"fayina-backend/internal/models"
	"fayina-backend/internal/store"
	"fayina-backend/pkg/utils"
)

type CustomerHandler struct {
	Customers store.RecordStore
}

func NewCustomerHandler(customers store.RecordStore) *CustomerHandler {
	return &CustomerHandler{Customers: customers}
}

func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	customer, err := models.NewCustomer(req.Name, req.Address, req.Email)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Customers.Append(models.Record{
		"name":    customer.Name,
		"address": customer.Address,
		"email":   customer.Email,
	}); err != nil {
		log.Printf("[Customer] Record append failed: %v", err)
		utils.Error(w, http.StatusInternalServerError, "Failed to save customer record")
		return
	}

	utils.JSON(w, http.StatusCreated, customer)
}

func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	records, err := h.Customers.LoadAll()
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to load customer records")
		return
	}
	utils.JSON(w, http.StatusOK, records)
}
