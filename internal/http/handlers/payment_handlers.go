package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/pos-register/internal/checkout"
	"github.com/rogerio-castellano/pos-register/internal/repo"
)

// RecordPaymentHandler godoc
// @Summary Record a payment against a customer's balance
// @Description The amount must be between zero and the outstanding balance
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Param payment body PaymentRequest true "Amount paid"
// @Success 201 {object} PaymentResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Customer not found"
// @Failure 422 {string} string "Amount out of range"
// @Router /customers/{id}/payments [post]
func RecordPaymentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid customer ID", http.StatusBadRequest)
		return
	}

	var req PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	payment, newBalance, err := engine.RecordPayment(id, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrCustomerNotFound):
			http.Error(w, "customer not found", http.StatusNotFound)
		case errors.Is(err, checkout.ErrInvalidPaymentAmount):
			http.Error(w, "payment amount out of range", http.StatusUnprocessableEntity)
		default:
			log.Printf("could not record payment: %v", err)
			http.Error(w, "could not record payment", http.StatusInternalServerError)
		}
		return
	}

	resp := PaymentResponse{
		Id:         payment.ID,
		CustomerID: payment.CustomerID,
		Amount:     payment.Amount,
		NewBalance: newBalance,
		CreatedAt:  payment.CreatedAt,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

// GetPaymentsHandler godoc
// @Summary List a customer's payments, newest first
// @Tags payments
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {array} models.Payment
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Customer not found"
// @Failure 500 {string} string "Internal error"
// @Router /customers/{id}/payments [get]
func GetPaymentsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid customer ID", http.StatusBadRequest)
		return
	}

	if _, err := customerRepo.GetByID(id); err != nil {
		if errors.Is(err, repo.ErrCustomerNotFound) {
			http.Error(w, "customer not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch customer", http.StatusInternalServerError)
		return
	}

	payments, err := paymentRepo.GetByCustomerID(id)
	if err != nil {
		http.Error(w, "could not fetch payments", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payments)
}
