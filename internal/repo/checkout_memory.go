package repo

import (
	"time"

	"github.com/rogerio-castellano/pos-register/internal/models"
)

// InMemoryCheckoutRepository mirrors the all-or-nothing behavior of the
// Postgres implementation over the in-memory repositories: every line is
// validated before anything is mutated.
type InMemoryCheckoutRepository struct {
	products  *InMemoryProductRepository
	customers *InMemoryCustomerRepository
	sales     *InMemorySaleRepository
	payments  *InMemoryPaymentRepository
}

func NewInMemoryCheckoutRepository(
	products *InMemoryProductRepository,
	customers *InMemoryCustomerRepository,
	sales *InMemorySaleRepository,
	payments *InMemoryPaymentRepository,
) *InMemoryCheckoutRepository {
	return &InMemoryCheckoutRepository{
		products:  products,
		customers: customers,
		sales:     sales,
		payments:  payments,
	}
}

func (r *InMemoryCheckoutRepository) CommitSale(lines []CheckoutLine, customerID *int, creditTotal float64) (CheckoutReceipt, error) {
	var receipt CheckoutReceipt

	// Validation pass: nothing is mutated until every step is known to pass.
	if creditTotal > 0 {
		if customerID == nil {
			return CheckoutReceipt{}, ErrCustomerNotFound
		}
		customer, err := r.customers.GetByID(*customerID)
		if err != nil {
			return CheckoutReceipt{}, err
		}
		if customer.BalanceDue+creditTotal > customer.CreditLimit {
			return CheckoutReceipt{}, ErrCreditLimitExceeded
		}
		receipt.NewBalance = customer.BalanceDue + creditTotal
	}
	needed := map[int]int{}
	for _, line := range lines {
		needed[line.ProductID] += line.Quantity
	}
	for productID, qty := range needed {
		p, err := r.products.GetByID(productID)
		if err != nil {
			return CheckoutReceipt{}, err
		}
		if p.Quantity < qty {
			return CheckoutReceipt{}, ErrInsufficientStock
		}
	}

	// Mutation pass.
	if creditTotal > 0 {
		if err := r.customers.setBalance(*customerID, receipt.NewBalance); err != nil {
			return CheckoutReceipt{}, err
		}
	}
	now := time.Now().UTC().Format(time.RFC3339)
	for _, line := range lines {
		if _, err := r.products.AdjustQuantity(line.ProductID, -line.Quantity); err != nil {
			return CheckoutReceipt{}, err
		}
		sale := r.sales.append(models.Sale{
			ProductID:    line.ProductID,
			Quantity:     line.Quantity,
			CustomerID:   customerID,
			CreditAmount: line.CreditAmount,
			CreatedAt:    now,
		})
		receipt.SaleIDs = append(receipt.SaleIDs, sale.ID)
	}
	return receipt, nil
}

func (r *InMemoryCheckoutRepository) RecordPayment(customerID int, amount float64) (models.Payment, float64, error) {
	customer, err := r.customers.GetByID(customerID)
	if err != nil {
		return models.Payment{}, 0, err
	}
	if customer.BalanceDue-amount < 0 {
		return models.Payment{}, 0, ErrPaymentExceedsBalance
	}

	newBalance := customer.BalanceDue - amount
	if err := r.customers.setBalance(customerID, newBalance); err != nil {
		return models.Payment{}, 0, err
	}
	payment := r.payments.append(models.Payment{
		CustomerID: customerID,
		Amount:     amount,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	})
	return payment, newBalance, nil
}
