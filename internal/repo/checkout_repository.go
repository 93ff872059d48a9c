package repo

import "github.com/rogerio-castellano/pos-register/internal/models"

// CheckoutLine is one cart line ready to commit. CreditAmount is the whole
// transaction's credit on the first line of a credit sale and 0 elsewhere.
type CheckoutLine struct {
	ProductID    int
	Quantity     int
	CreditAmount float64
}

// CheckoutReceipt reports what a committed checkout produced.
type CheckoutReceipt struct {
	SaleIDs    []int
	NewBalance float64
}

// CheckoutRepository commits a whole checkout or payment as a single unit:
// either every stock decrement, sale row and balance change lands, or none
// does.
type CheckoutRepository interface {
	// CommitSale inserts one sale row per line in order and decrements stock
	// per line. When creditTotal > 0 it also raises the customer's balance by
	// creditTotal, refusing with ErrCreditLimitExceeded if that would pass
	// the credit limit. Any line short on stock fails the whole commit with
	// ErrInsufficientStock.
	CommitSale(lines []CheckoutLine, customerID *int, creditTotal float64) (CheckoutReceipt, error)

	// RecordPayment lowers the customer's balance by amount and appends a
	// payment row. Amounts above the current balance fail with
	// ErrPaymentExceedsBalance.
	RecordPayment(customerID int, amount float64) (models.Payment, float64, error)
}
