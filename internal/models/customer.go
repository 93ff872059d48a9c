package models

// Customer is a buyer who may purchase on credit up to CreditLimit.
// BalanceDue is the outstanding amount owed; it only changes through credit
// checkouts and recorded payments, never through a direct update.
type Customer struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	CreditLimit float64 `json:"credit_limit"`
	BalanceDue  float64 `json:"balance_due"`
	CreatedAt   string  `json:"created_at,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}
