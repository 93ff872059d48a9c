package repo

import "errors"

var (
	// ErrProductNotFound is returned when a product is not found in the repository.
	ErrProductNotFound = errors.New("product not found")
	// ErrCustomerNotFound is returned when a customer is not found in the repository.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrUserNotFound is returned when a user is not found in the repository.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicatedValueUnique is returned when an insert or update violates a
	// unique column (product name, username).
	ErrDuplicatedValueUnique = errors.New("duplicated value for unique column")
	// ErrInvalidQuantityChange is returned when a stock adjustment would make
	// the on-hand quantity negative.
	ErrInvalidQuantityChange = errors.New("quantity change would make stock negative")
	// ErrInsufficientStock is returned when a checkout line asks for more
	// units than are on hand at commit time.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrCreditLimitExceeded is returned when a credit sale would push the
	// customer's balance past their credit limit.
	ErrCreditLimitExceeded = errors.New("credit limit exceeded")
	// ErrPaymentExceedsBalance is returned when a payment is larger than the
	// customer's outstanding balance.
	ErrPaymentExceedsBalance = errors.New("payment exceeds balance due")
)
