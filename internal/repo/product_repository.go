package repo

import "github.com/rogerio-castellano/pos-register/internal/models"

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	Create(product models.Product) (models.Product, error)
	GetAll() ([]models.Product, error)
	GetByID(id int) (models.Product, error)
	GetByName(name string) (models.Product, error)
	Update(product models.Product) (models.Product, error)
	Delete(id int) error
	Filter(f ProductFilter) ([]models.Product, int, error)
	// AdjustQuantity changes on-hand stock by delta, refusing changes that
	// would make it negative.
	AdjustQuantity(productID int, delta int) (models.Product, error)
}
