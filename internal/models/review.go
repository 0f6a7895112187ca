package models

import "time"

// Review is a customer review attached to a product.
type Review struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Author    string  `json:"author"`
	Rating    float64 `json:"rating"`
	Comment   string  `json:"comment"`
	CreatedAt string  `json:"createdAt,omitempty"` // ISO-8601
}

// SearchRecord is one recorded search, kept by the analytics history.
type SearchRecord struct {
	Term        string
	ResultCount int
	RecordedAt  time.Time
}
