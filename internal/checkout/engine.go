// Package checkout implements the register's core flow: building a cart
// against a stock snapshot and converting it into sale rows, stock
// decrements and (for credit sales) a balance increase in one committed
// step.
package checkout

import (
	"errors"
	"fmt"

	"github.com/rogerio-castellano/pos-register/internal/cart"
	"github.com/rogerio-castellano/pos-register/internal/models"
	"github.com/rogerio-castellano/pos-register/internal/repo"
)

type Mode string

const (
	ModeCash   Mode = "cash"
	ModeCredit Mode = "credit"
)

var (
	// ErrCartEmpty is returned when checking out a cart with no lines.
	ErrCartEmpty = errors.New("cart is empty")
	// ErrInvalidQuantity is returned when a requested quantity is not positive.
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	// ErrCustomerRequired is returned for credit checkouts without a customer.
	ErrCustomerRequired = errors.New("customer is required for credit sales")
	// ErrCreditDenied is returned when a credit sale would exceed the
	// customer's credit limit. Nothing is mutated.
	ErrCreditDenied = errors.New("credit limit exceeded")
	// ErrInvalidPaymentAmount is returned when a payment is negative or
	// larger than the customer's outstanding balance.
	ErrInvalidPaymentAmount = errors.New("payment amount out of range")
	// ErrUnknownMode is returned for payment modes other than cash or credit.
	ErrUnknownMode = errors.New("unknown payment mode")
)

// Receipt summarizes a committed checkout.
type Receipt struct {
	CartID     string  `json:"cart_id"`
	Mode       Mode    `json:"mode"`
	Total      float64 `json:"total"`
	SaleIDs    []int   `json:"sale_ids"`
	CustomerID *int    `json:"customer_id,omitempty"`
	NewBalance float64 `json:"new_balance,omitempty"`
}

// Engine coordinates carts, products and customers. All persistent mutation
// goes through the injected CheckoutRepository so a checkout or payment
// commits as one unit.
type Engine struct {
	products  repo.ProductRepository
	customers repo.CustomerRepository
	register  repo.CheckoutRepository
	carts     cart.Store
}

func NewEngine(products repo.ProductRepository, customers repo.CustomerRepository, register repo.CheckoutRepository, carts cart.Store) *Engine {
	return &Engine{
		products:  products,
		customers: customers,
		register:  register,
		carts:     carts,
	}
}

func (e *Engine) NewCart() (cart.Cart, error) {
	return e.carts.Create()
}

func (e *Engine) Cart(id string) (cart.Cart, error) {
	return e.carts.Get(id)
}

// AddLine puts qty units of a product into the cart, merging with an
// existing line for the same product. The quantity is validated against the
// current stock snapshot; the cart is left unchanged on any failure.
func (e *Engine) AddLine(cartID string, productID, qty int) (cart.Cart, error) {
	if qty <= 0 {
		return cart.Cart{}, ErrInvalidQuantity
	}

	c, err := e.carts.Get(cartID)
	if err != nil {
		return cart.Cart{}, err
	}
	product, err := e.products.GetByID(productID)
	if err != nil {
		return cart.Cart{}, err
	}
	if c.Quantity(productID)+qty > product.Quantity {
		return cart.Cart{}, repo.ErrInsufficientStock
	}

	c.AddLine(product.ID, product.Name, product.Price, qty)
	if err := e.carts.Save(c); err != nil {
		return cart.Cart{}, err
	}
	return c, nil
}

// ClearCart removes every line but keeps the cart open.
func (e *Engine) ClearCart(cartID string) (cart.Cart, error) {
	c, err := e.carts.Get(cartID)
	if err != nil {
		return cart.Cart{}, err
	}
	c.Clear()
	if err := e.carts.Save(c); err != nil {
		return cart.Cart{}, err
	}
	return c, nil
}

// Checkout commits the cart. Credit checkouts require a customer and are
// rejected outright when the projected balance would pass the credit limit.
// On success the cart is gone; a fresh one must be created for the next
// transaction.
func (e *Engine) Checkout(cartID string, mode Mode, customerID *int) (Receipt, error) {
	if mode != ModeCash && mode != ModeCredit {
		return Receipt{}, ErrUnknownMode
	}

	c, err := e.carts.Get(cartID)
	if err != nil {
		return Receipt{}, err
	}
	if c.Empty() {
		return Receipt{}, ErrCartEmpty
	}

	total := c.Total()
	var creditTotal float64

	if mode == ModeCredit && customerID == nil {
		return Receipt{}, ErrCustomerRequired
	}
	// A cash sale may carry a customer reference for the ledger, so the
	// lookup runs for every non-nil customer, not just credit sales.
	if customerID != nil {
		customer, err := e.customers.GetByID(*customerID)
		if err != nil {
			return Receipt{}, err
		}
		if mode == ModeCredit {
			if customer.BalanceDue+total > customer.CreditLimit {
				return Receipt{}, ErrCreditDenied
			}
			creditTotal = total
		}
	}

	lines := make([]repo.CheckoutLine, len(c.Lines))
	for i, line := range c.Lines {
		lines[i] = repo.CheckoutLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		}
	}
	// The whole transaction's credit rides on the first line; every other
	// line carries 0 so filtering credit_amount > 0 recovers per-transaction
	// credit totals.
	if creditTotal > 0 {
		lines[0].CreditAmount = creditTotal
	}

	result, err := e.register.CommitSale(lines, customerID, creditTotal)
	if errors.Is(err, repo.ErrCreditLimitExceeded) {
		return Receipt{}, ErrCreditDenied
	}
	if err != nil {
		return Receipt{}, fmt.Errorf("checkout failed: %w", err)
	}

	if err := e.carts.Delete(cartID); err != nil && !errors.Is(err, cart.ErrCartNotFound) {
		return Receipt{}, err
	}

	return Receipt{
		CartID:     cartID,
		Mode:       mode,
		Total:      total,
		SaleIDs:    result.SaleIDs,
		CustomerID: customerID,
		NewBalance: result.NewBalance,
	}, nil
}

// RecordPayment lowers a customer's outstanding balance. The amount must be
// between zero and the current balance.
func (e *Engine) RecordPayment(customerID int, amount float64) (models.Payment, float64, error) {
	if amount < 0 {
		return models.Payment{}, 0, ErrInvalidPaymentAmount
	}
	customer, err := e.customers.GetByID(customerID)
	if err != nil {
		return models.Payment{}, 0, err
	}
	if amount > customer.BalanceDue {
		return models.Payment{}, 0, ErrInvalidPaymentAmount
	}

	payment, newBalance, err := e.register.RecordPayment(customerID, amount)
	if errors.Is(err, repo.ErrPaymentExceedsBalance) {
		return models.Payment{}, 0, ErrInvalidPaymentAmount
	}
	if err != nil {
		return models.Payment{}, 0, fmt.Errorf("payment failed: %w", err)
	}
	return payment, newBalance, nil
}
