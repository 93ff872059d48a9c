package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/pos-register/internal/cart"
	"github.com/rogerio-castellano/pos-register/internal/checkout"
	"github.com/rogerio-castellano/pos-register/internal/repo"
)

// CreateCartHandler godoc
// @Summary Open a new empty cart
// @Tags carts
// @Produce json
// @Security BearerAuth
// @Success 201 {object} CartResponse
// @Failure 500 {string} string "Internal error"
// @Router /carts [post]
func CreateCartHandler(w http.ResponseWriter, r *http.Request) {
	c, err := engine.NewCart()
	if err != nil {
		log.Printf("could not create cart: %v", err)
		http.Error(w, "could not create cart", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toCartResponse(c))
}

// GetCartHandler godoc
// @Summary Get a cart with its running total
// @Tags carts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cart ID"
// @Success 200 {object} CartResponse
// @Failure 404 {string} string "Not found"
// @Router /carts/{id} [get]
func GetCartHandler(w http.ResponseWriter, r *http.Request) {
	c, err := engine.Cart(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, cart.ErrCartNotFound) {
			http.Error(w, "cart not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch cart", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toCartResponse(c))
}

// AddCartItemHandler godoc
// @Summary Add units of a product to a cart
// @Description Adding a product already in the cart merges into its line. The quantity is checked against the current stock snapshot.
// @Tags carts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cart ID"
// @Param item body CartItemRequest true "Product and quantity"
// @Success 200 {object} CartResponse
// @Failure 404 {string} string "Cart or product not found"
// @Failure 422 {string} string "Invalid quantity or insufficient stock"
// @Router /carts/{id}/items [post]
func AddCartItemHandler(w http.ResponseWriter, r *http.Request) {
	var req CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	c, err := engine.AddLine(chi.URLParam(r, "id"), req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrCartNotFound):
			http.Error(w, "cart not found", http.StatusNotFound)
		case errors.Is(err, repo.ErrProductNotFound):
			http.Error(w, "product not found", http.StatusNotFound)
		case errors.Is(err, checkout.ErrInvalidQuantity):
			http.Error(w, "quantity must be greater than zero", http.StatusUnprocessableEntity)
		case errors.Is(err, repo.ErrInsufficientStock):
			http.Error(w, "insufficient stock", http.StatusUnprocessableEntity)
		default:
			log.Printf("could not add cart item: %v", err)
			http.Error(w, "could not add cart item", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toCartResponse(c))
}

// ClearCartHandler godoc
// @Summary Remove every line from a cart
// @Tags carts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cart ID"
// @Success 200 {object} CartResponse
// @Failure 404 {string} string "Not found"
// @Router /carts/{id}/items [delete]
func ClearCartHandler(w http.ResponseWriter, r *http.Request) {
	c, err := engine.ClearCart(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, cart.ErrCartNotFound) {
			http.Error(w, "cart not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not clear cart", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toCartResponse(c))
}

// CheckoutHandler godoc
// @Summary Check out a cart for cash or credit
// @Description Commits stock decrements, sale rows and the balance change as one transaction. A denied credit checkout mutates nothing.
// @Tags carts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cart ID"
// @Param checkout body CheckoutRequest true "Payment mode and optional customer"
// @Success 200 {object} checkout.Receipt
// @Failure 404 {string} string "Cart or customer not found"
// @Failure 409 {string} string "Credit limit exceeded or stock gone"
// @Failure 422 {string} string "Empty cart, bad mode or missing customer"
// @Router /carts/{id}/checkout [post]
func CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	receipt, err := engine.Checkout(chi.URLParam(r, "id"), checkout.Mode(req.Mode), req.CustomerID)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrCartNotFound):
			http.Error(w, "cart not found", http.StatusNotFound)
		case errors.Is(err, repo.ErrCustomerNotFound):
			http.Error(w, "customer not found", http.StatusNotFound)
		case errors.Is(err, checkout.ErrUnknownMode):
			http.Error(w, "mode must be 'cash' or 'credit'", http.StatusUnprocessableEntity)
		case errors.Is(err, checkout.ErrCartEmpty):
			http.Error(w, "cart is empty", http.StatusUnprocessableEntity)
		case errors.Is(err, checkout.ErrCustomerRequired):
			http.Error(w, "customer is required for credit sales", http.StatusUnprocessableEntity)
		case errors.Is(err, checkout.ErrCreditDenied):
			http.Error(w, "credit limit exceeded", http.StatusConflict)
		case errors.Is(err, repo.ErrInsufficientStock):
			http.Error(w, "insufficient stock", http.StatusConflict)
		default:
			log.Printf("checkout failed: %v", err)
			http.Error(w, "checkout failed", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(receipt)
}

func toCartResponse(c cart.Cart) CartResponse {
	lines := c.Lines
	if lines == nil {
		lines = []cart.Line{}
	}
	return CartResponse{
		Id:    c.ID,
		Lines: lines,
		Total: c.Total(),
	}
}
