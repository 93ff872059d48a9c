package repo

import (
	"sort"
	"strings"

	"github.com/rogerio-castellano/pos-register/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
type InMemoryProductRepository struct {
	products []models.Product
	nextID   int
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: []models.Product{},
		nextID:   1,
	}
}

func (r *InMemoryProductRepository) Create(product models.Product) (models.Product, error) {
	for _, p := range r.products {
		if p.Name == product.Name {
			return models.Product{}, ErrDuplicatedValueUnique
		}
	}
	product.ID = r.nextID
	r.nextID++
	r.products = append(r.products, product)
	return product, nil
}

func (r *InMemoryProductRepository) GetAll() ([]models.Product, error) {
	return r.products, nil
}

func (r *InMemoryProductRepository) GetByID(id int) (models.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) GetByName(name string) (models.Product, error) {
	for _, p := range r.products {
		if p.Name == name {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) Update(product models.Product) (models.Product, error) {
	for i, p := range r.products {
		if p.ID == product.ID {
			r.products[i] = product
			return product, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) Delete(id int) error {
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

func (r *InMemoryProductRepository) Filter(f ProductFilter) ([]models.Product, int, error) {
	var matched []models.Product
	for _, p := range r.products {
		if f.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Name)) {
			continue
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		if f.MinQty != nil && p.Quantity < *f.MinQty {
			continue
		}
		if f.MaxQty != nil && p.Quantity > *f.MaxQty {
			continue
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	if f.Offset != nil && *f.Offset > 0 {
		if *f.Offset >= len(matched) {
			return []models.Product{}, total, nil
		}
		matched = matched[*f.Offset:]
	}
	if f.Limit != nil && *f.Limit > 0 && *f.Limit < len(matched) {
		matched = matched[:*f.Limit]
	}
	return matched, total, nil
}

func (r *InMemoryProductRepository) AdjustQuantity(productID int, delta int) (models.Product, error) {
	for i, p := range r.products {
		if p.ID == productID {
			if p.Quantity+delta < 0 {
				return models.Product{}, ErrInvalidQuantityChange
			}
			r.products[i].Quantity += delta
			return r.products[i], nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Clear removes all products. Intended for tests.
func (r *InMemoryProductRepository) Clear() {
	r.products = []models.Product{}
	r.nextID = 1
}
