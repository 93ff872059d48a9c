package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/pos-register/internal/models"
	"github.com/rogerio-castellano/pos-register/internal/repo"
)

// CreateCustomerHandler godoc
// @Summary Create a customer account
// @Description Registers a customer who can buy on credit up to their limit
// @Tags customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param customer body CustomerRequest true "Customer to add"
// @Success 201 {object} CustomerResponse
// @Failure 400 {object} map[string]string
// @Router /customers [post]
func CreateCustomerHandler(w http.ResponseWriter, r *http.Request) {
	var req CustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateCustomer(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	customer := models.Customer{
		Name:        req.Name,
		Address:     req.Address,
		CreditLimit: req.CreditLimit,
		CreatedAt:   time.Now().Format(time.RFC3339),
		UpdatedAt:   time.Now().Format(time.RFC3339),
	}
	created, err := customerRepo.Create(customer)
	if err != nil {
		http.Error(w, "could not create customer", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toCustomerResponse(created))
}

// GetCustomersHandler godoc
// @Summary List all customers with balances
// @Tags customers
// @Produce json
// @Success 200 {array} CustomerResponse
// @Failure 500 {string} string "Internal error"
// @Router /customers [get]
func GetCustomersHandler(w http.ResponseWriter, r *http.Request) {
	customers, err := customerRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch customers", http.StatusInternalServerError)
		return
	}
	response := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		response[i] = toCustomerResponse(c)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GetCustomerByIDHandler godoc
// @Summary Get customer by ID
// @Tags customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} CustomerResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /customers/{id} [get]
func GetCustomerByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid customer ID", http.StatusBadRequest)
		return
	}

	customer, err := customerRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrCustomerNotFound) {
			http.Error(w, "customer not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch customer", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toCustomerResponse(customer))
}

// UpdateCustomerHandler godoc
// @Summary Update a customer's name, address or credit limit
// @Description The outstanding balance cannot be edited; it only moves through checkouts and payments
// @Tags customers
// @Accept json
// @Produce json
// @Param id path int true "Customer ID"
// @Param customer body CustomerRequest true "Updated customer"
// @Success 200 {object} CustomerResponse
// @Failure 400 {object} map[string]any
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /customers/{id} [put]
// @Security BearerAuth
func UpdateCustomerHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid customer ID", http.StatusBadRequest)
		return
	}

	var req CustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateCustomer(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	customer := models.Customer{
		ID:          id,
		Name:        req.Name,
		Address:     req.Address,
		CreditLimit: req.CreditLimit,
		UpdatedAt:   time.Now().Format(time.RFC3339),
	}
	updated, err := customerRepo.Update(customer)
	if err != nil {
		if errors.Is(err, repo.ErrCustomerNotFound) {
			http.Error(w, "customer not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not update customer", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toCustomerResponse(updated))
}

func toCustomerResponse(c models.Customer) CustomerResponse {
	return CustomerResponse{
		Id:          c.ID,
		Name:        c.Name,
		Address:     c.Address,
		CreditLimit: c.CreditLimit,
		BalanceDue:  c.BalanceDue,
		Available:   c.CreditLimit - c.BalanceDue,
	}
}
