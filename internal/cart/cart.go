// Package cart holds the transient, per-session shopping cart: lines are
// accumulated against a stock snapshot and only turn into persisted state at
// checkout.
package cart

import (
	"errors"
	"time"
)

// ErrCartNotFound is returned when no cart exists for an ID (expired or
// never created).
var ErrCartNotFound = errors.New("cart not found")

// Line is one pending sale line. UnitPrice and Name are snapshots taken when
// the product was added; a later price change does not affect an open cart.
type Line struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Total     float64 `json:"total"`
}

type Cart struct {
	ID        string    `json:"id"`
	Lines     []Line    `json:"lines"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AddLine merges qty units of a product into the cart: an existing line for
// the same product grows, otherwise a new line is appended.
func (c *Cart) AddLine(productID int, name string, unitPrice float64, qty int) {
	for i, line := range c.Lines {
		if line.ProductID == productID {
			c.Lines[i].Quantity += qty
			c.Lines[i].Total += unitPrice * float64(qty)
			return
		}
	}
	c.Lines = append(c.Lines, Line{
		ProductID: productID,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  qty,
		Total:     unitPrice * float64(qty),
	})
}

// Quantity returns the number of units of a product already in the cart.
func (c *Cart) Quantity(productID int) int {
	for _, line := range c.Lines {
		if line.ProductID == productID {
			return line.Quantity
		}
	}
	return 0
}

func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.Lines {
		total += line.Total
	}
	return total
}

func (c *Cart) Clear() {
	c.Lines = nil
}

func (c *Cart) Empty() bool {
	return len(c.Lines) == 0
}

// Store keeps open carts between requests. Implementations must be safe for
// concurrent use.
type Store interface {
	Create() (Cart, error)
	Get(id string) (Cart, error)
	Save(c Cart) error
	Delete(id string) error
}
