package handlers

import "github.com/rogerio-castellano/pos-register/internal/cart"

type ProductRequest struct {
	Id        int     `json:"id,omitempty"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Threshold int     `json:"threshold"`
}

type ProductResponse struct {
	Id        int     `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Threshold int     `json:"threshold"`
	LowStock  bool    `json:"low_stock,omitempty"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ProductsSearchResult struct {
	Data []ProductResponse `json:"data"`
	Meta Meta              `json:"meta,omitempty"`
}

type RestockRequest struct {
	Quantity int `json:"quantity"`
}

type CustomerRequest struct {
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	CreditLimit float64 `json:"credit_limit"`
}

type CustomerResponse struct {
	Id          int     `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	CreditLimit float64 `json:"credit_limit"`
	BalanceDue  float64 `json:"balance_due"`
	Available   float64 `json:"available_credit"`
}

type CartItemRequest struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

type CartResponse struct {
	Id    string      `json:"id"`
	Lines []cart.Line `json:"lines"`
	Total float64     `json:"total"`
}

type CheckoutRequest struct {
	Mode       string `json:"mode"`
	CustomerID *int   `json:"customer_id,omitempty"`
}

type PaymentRequest struct {
	Amount float64 `json:"amount"`
}

type PaymentResponse struct {
	Id         int     `json:"id"`
	CustomerID int     `json:"customer_id"`
	Amount     float64 `json:"amount"`
	NewBalance float64 `json:"new_balance"`
	CreatedAt  string  `json:"created_at"`
}

type SaleResponse struct {
	ID           int     `json:"id"`
	ProductID    int     `json:"product_id"`
	Quantity     int     `json:"quantity"`
	CustomerID   *int    `json:"customer_id,omitempty"`
	CreditAmount float64 `json:"credit_amount"`
	CreatedAt    string  `json:"created_at"`
}

type SalesSearchResult struct {
	Data []SaleResponse `json:"data"`
	Meta Meta           `json:"meta,omitempty"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserLogin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RegisterResult struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type RegisterAsAdminRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type ImportProductsResult struct {
	ImportedProductsCount int               `json:"imported"`
	Errors                []ValidationError `json:"errors"`
}
