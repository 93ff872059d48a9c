package repo

import "github.com/rogerio-castellano/pos-register/internal/models"

// InMemoryPaymentRepository is an in-memory implementation of PaymentRepository.
type InMemoryPaymentRepository struct {
	payments []models.Payment
	nextID   int
}

func NewInMemoryPaymentRepository() *InMemoryPaymentRepository {
	return &InMemoryPaymentRepository{
		payments: []models.Payment{},
		nextID:   1,
	}
}

func (r *InMemoryPaymentRepository) GetByCustomerID(customerID int) ([]models.Payment, error) {
	var matched []models.Payment
	for i := len(r.payments) - 1; i >= 0; i-- {
		if r.payments[i].CustomerID == customerID {
			matched = append(matched, r.payments[i])
		}
	}
	return matched, nil
}

func (r *InMemoryPaymentRepository) append(p models.Payment) models.Payment {
	p.ID = r.nextID
	r.nextID++
	r.payments = append(r.payments, p)
	return p
}

// Clear removes all payments. Intended for tests.
func (r *InMemoryPaymentRepository) Clear() {
	r.payments = []models.Payment{}
	r.nextID = 1
}
