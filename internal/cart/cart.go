// Package cart holds the order-in-progress. Line items snapshot the
// product's name, price and image at add time and are never re-synced
// with live catalog data.
package cart

import (
	"github.com/Houeta/catalog-flow/internal/models"
	"github.com/google/uuid"
)

// Item is one cart line.
type Item struct {
	ID        string // line id, unique per cart line
	ProductID string
	Name      string
	Price     float64
	Image     string
	Quantity  int
}

// TotalPrice is the line subtotal.
func (i Item) TotalPrice() float64 {
	return i.Price * float64(i.Quantity)
}

// Cart is the cart aggregate. It expects a single owning goroutine,
// the same ownership discipline the catalog session follows.
type Cart struct {
	items []Item
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add puts quantity units of the product into the cart. Adding a
// product already present merges into the existing line. The affected
// line is returned.
func (c *Cart) Add(p models.Product, quantity int) Item {
	if quantity < 1 {
		quantity = 1
	}

	for idx := range c.items {
		if c.items[idx].ProductID == p.ID {
			c.items[idx].Quantity += quantity
			return c.items[idx]
		}
	}

	item := Item{
		ID:        uuid.NewString(),
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.MainImage(),
		Quantity:  quantity,
	}
	c.items = append(c.items, item)

	return item
}

// Remove deletes the line with the given line id, if present.
func (c *Cart) Remove(lineID string) {
	for idx := range c.items {
		if c.items[idx].ID == lineID {
			c.items = append(c.items[:idx], c.items[idx+1:]...)
			return
		}
	}
}

// SetQuantity changes a line's quantity; zero or less removes the line.
func (c *Cart) SetQuantity(lineID string, quantity int) {
	if quantity <= 0 {
		c.Remove(lineID)
		return
	}
	for idx := range c.items {
		if c.items[idx].ID == lineID {
			c.items[idx].Quantity = quantity
			return
		}
	}
}

// Items returns a copy of the current lines in insertion order.
func (c *Cart) Items() []Item {
	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items
}

// Total is the sum of all line subtotals.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.items {
		total += item.TotalPrice()
	}
	return total
}

// Count is the total number of units across all lines.
func (c *Cart) Count() int {
	var count int
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}
