package repo

import (
	"sort"
	"time"

	"github.com/rogerio-castellano/pos-register/internal/models"
)

// InMemorySaleRepository is an in-memory implementation of SaleRepository.
// The in-memory checkout repository appends rows through it.
type InMemorySaleRepository struct {
	sales  []models.Sale
	nextID int
}

func NewInMemorySaleRepository() *InMemorySaleRepository {
	return &InMemorySaleRepository{
		sales:  []models.Sale{},
		nextID: 1,
	}
}

func (r *InMemorySaleRepository) List(f SaleFilter) ([]models.Sale, int, error) {
	var matched []models.Sale
	for _, s := range r.sales {
		if f.ProductID != nil && s.ProductID != *f.ProductID {
			continue
		}
		if f.CustomerID != nil && (s.CustomerID == nil || *s.CustomerID != *f.CustomerID) {
			continue
		}
		ts, err := time.Parse(time.RFC3339, s.CreatedAt)
		if err != nil {
			return nil, 0, err
		}
		if f.Since != nil && ts.Before(*f.Since) {
			continue
		}
		if f.Until != nil && ts.After(*f.Until) {
			continue
		}
		matched = append(matched, s)
	}
	// newest first
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := len(matched)
	if f.Limit != nil && *f.Limit == 0 {
		return []models.Sale{}, total, nil
	}
	if f.Offset != nil && *f.Offset > 0 {
		if *f.Offset >= len(matched) {
			return []models.Sale{}, total, nil
		}
		matched = matched[*f.Offset:]
	}
	if !f.Unlimited {
		limit := defaultSalePageSize
		if f.Limit != nil && *f.Limit > 0 {
			limit = min(*f.Limit, defaultSalePageSize)
		}
		if limit < len(matched) {
			matched = matched[:limit]
		}
	}
	return matched, total, nil
}

func (r *InMemorySaleRepository) append(s models.Sale) models.Sale {
	s.ID = r.nextID
	r.nextID++
	r.sales = append(r.sales, s)
	return s
}

// AddSale inserts a row directly, bypassing checkout. Intended for tests.
func (r *InMemorySaleRepository) AddSale(s models.Sale) models.Sale {
	return r.append(s)
}

// Clear removes all sales. Intended for tests.
func (r *InMemorySaleRepository) Clear() {
	r.sales = []models.Sale{}
	r.nextID = 1
}
