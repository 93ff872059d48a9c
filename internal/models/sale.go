package models

// Sale is one committed cart line. CustomerID is nil for anonymous cash
// sales. CreditAmount carries the whole transaction's credit on the first
// line of a credit checkout and 0 on every other line, so summing rows with
// credit_amount > 0 yields credit granted per transaction.
type Sale struct {
	ID           int     `json:"id"`
	ProductID    int     `json:"product_id"`
	Quantity     int     `json:"quantity"`
	CustomerID   *int    `json:"customer_id,omitempty"`
	CreditAmount float64 `json:"credit_amount"`
	CreatedAt    string  `json:"created_at"`
}
