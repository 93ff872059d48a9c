package repo

import "github.com/rogerio-castellano/pos-register/internal/models"

// CustomerRepository defines the interface for customer data operations.
// Balance mutations are deliberately absent: BalanceDue only moves through
// CheckoutRepository, inside a transaction.
type CustomerRepository interface {
	Create(customer models.Customer) (models.Customer, error)
	GetAll() ([]models.Customer, error)
	GetByID(id int) (models.Customer, error)
	Update(customer models.Customer) (models.Customer, error)
}
