package repo

import "github.com/rogerio-castellano/pos-register/internal/models"

// PaymentRepository exposes recorded payments. Rows are only ever inserted
// through CheckoutRepository.RecordPayment.
type PaymentRepository interface {
	GetByCustomerID(customerID int) ([]models.Payment, error)
}
