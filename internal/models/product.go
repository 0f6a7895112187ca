package models

// Availability describes whether a product can currently be ordered.
type Availability string

const (
	InStock    Availability = "inStock"
	OutOfStock Availability = "outOfStock"
)

// Product is one catalog entry as delivered by the remote API.
// Values are immutable once constructed; identity is the ID alone.
type Product struct {
	ID           string
	Name         string
	Description  string
	Price        float64
	Images       []string
	Availability Availability
	Category     string
	Tags         []string
	VendorID     string
	Brand        string
	Color        string
	Rating       float64
	CreatedAt    string // ISO-8601, optional
	UpdatedAt    string // ISO-8601, optional
}

// MainImage returns the first image reference, or a placeholder name.
func (p Product) MainImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return "photo"
}

// IsAvailable reports whether the product is in stock.
func (p Product) IsAvailable() bool {
	return p.Availability == InStock
}

// Equal compares products by identity only.
func (p Product) Equal(other Product) bool {
	return p.ID == other.ID
}
