package repo

import "github.com/rogerio-castellano/pos-register/internal/models"

// SaleRepository exposes the committed sales ledger. Rows are only ever
// inserted through CheckoutRepository.
type SaleRepository interface {
	List(f SaleFilter) ([]models.Sale, int, error)
}
