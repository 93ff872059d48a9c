package models

// Payment records a reduction of a customer's outstanding balance.
type Payment struct {
	ID         int     `json:"id"`
	CustomerID int     `json:"customer_id"`
	Amount     float64 `json:"amount"`
	CreatedAt  string  `json:"created_at"`
}
