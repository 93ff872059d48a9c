package repo

import "github.com/rogerio-castellano/pos-register/internal/models"

// InMemoryCustomerRepository is an in-memory implementation of CustomerRepository.
type InMemoryCustomerRepository struct {
	customers []models.Customer
	nextID    int
}

func NewInMemoryCustomerRepository() *InMemoryCustomerRepository {
	return &InMemoryCustomerRepository{
		customers: []models.Customer{},
		nextID:    1,
	}
}

func (r *InMemoryCustomerRepository) Create(c models.Customer) (models.Customer, error) {
	c.ID = r.nextID
	c.BalanceDue = 0
	r.nextID++
	r.customers = append(r.customers, c)
	return c, nil
}

func (r *InMemoryCustomerRepository) GetAll() ([]models.Customer, error) {
	return r.customers, nil
}

func (r *InMemoryCustomerRepository) GetByID(id int) (models.Customer, error) {
	for _, c := range r.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Customer{}, ErrCustomerNotFound
}

func (r *InMemoryCustomerRepository) Update(c models.Customer) (models.Customer, error) {
	for i, existing := range r.customers {
		if existing.ID == c.ID {
			c.BalanceDue = existing.BalanceDue
			r.customers[i] = c
			return c, nil
		}
	}
	return models.Customer{}, ErrCustomerNotFound
}

// setBalance is used by the in-memory checkout repository when committing a
// credit sale or a payment.
func (r *InMemoryCustomerRepository) setBalance(id int, balance float64) error {
	for i, c := range r.customers {
		if c.ID == id {
			r.customers[i].BalanceDue = balance
			return nil
		}
	}
	return ErrCustomerNotFound
}

// Clear removes all customers. Intended for tests.
func (r *InMemoryCustomerRepository) Clear() {
	r.customers = []models.Customer{}
	r.nextID = 1
}
