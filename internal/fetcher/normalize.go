package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/Houeta/catalog-flow/internal/models"
)

// productDTO mirrors one product record on the wire. Unknown extra
// fields are ignored; availability arrives either as a boolean or as an
// "inStock"/"outOfStock" string depending on the backend revision.
type productDTO struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        float64         `json:"price"`
	Images       []string        `json:"images"`
	Availability json.RawMessage `json:"availability"`
	Category     string          `json:"category"`
	Tags         []string        `json:"tags"`
	VendorID     string          `json:"vendorId"`
	Brand        string          `json:"brand"`
	Color        string          `json:"color"`
	Rating       float64         `json:"rating"`
	CreatedAt    string          `json:"createdAt"`
	UpdatedAt    string          `json:"updatedAt"`
}

func (d productDTO) toModel() models.Product {
	return models.Product{
		ID:           d.ID,
		Name:         d.Name,
		Description:  d.Description,
		Price:        d.Price,
		Images:       d.Images,
		Availability: d.availability(),
		Category:     d.Category,
		Tags:         d.Tags,
		VendorID:     d.VendorID,
		Brand:        d.Brand,
		Color:        d.Color,
		Rating:       d.Rating,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (d productDTO) availability() models.Availability {
	var asBool bool
	if err := json.Unmarshal(d.Availability, &asBool); err == nil {
		if asBool {
			return models.InStock
		}
		return models.OutOfStock
	}
	var asString string
	if err := json.Unmarshal(d.Availability, &asString); err == nil && asString == string(models.InStock) {
		return models.InStock
	}
	return models.OutOfStock
}

// pageEnvelope covers both object-shaped list payloads: the Spring
// style ("content" plus "number") and the plain style ("products" plus
// "currentPage"). Pointer slices distinguish an empty-but-present array
// from an absent key.
type pageEnvelope struct {
	Content       *[]json.RawMessage `json:"content"`
	Products      *[]json.RawMessage `json:"products"`
	TotalElements *int               `json:"totalElements"`
	TotalPages    *int               `json:"totalPages"`
	Number        *int               `json:"number"`
	CurrentPage   *int               `json:"currentPage"`
	Size          *int               `json:"size"`
}

// decodePage normalizes the three recognized payload shapes into a
// PageResult. Individual records that fail to decode or carry no id are
// dropped rather than failing the page.
func (c *Client) decodePage(ctx context.Context, body []byte, requestedSize int) (*models.PageResult, error) {
	trimmed := bytes.TrimSpace(body)

	// Shape 3: a bare array of products, no paging metadata at all.
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []json.RawMessage
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, &Error{Kind: KindParse, Message: "failed to parse products", Details: err.Error()}
		}
		products := c.decodeRecords(ctx, records)
		return &models.PageResult{
			Products: products,
			HasMore:  models.DeriveHasMore(nil, nil, len(products), requestedSize),
		}, nil
	}

	var env pageEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, &Error{Kind: KindParse, Message: "failed to parse products", Details: err.Error()}
	}

	var (
		records []json.RawMessage
		current *int
	)
	switch {
	case env.Content != nil: // Shape 1: Spring-style page object.
		records = *env.Content
		current = env.Number
	case env.Products != nil: // Shape 2: plain products envelope.
		records = *env.Products
		current = env.CurrentPage
	default:
		return nil, &Error{Kind: KindInvalidShape, Message: "no products found in response"}
	}

	products := c.decodeRecords(ctx, records)
	return &models.PageResult{
		Products:      products,
		TotalElements: env.TotalElements,
		TotalPages:    env.TotalPages,
		CurrentPage:   current,
		Size:          env.Size,
		HasMore:       models.DeriveHasMore(env.TotalPages, current, len(products), requestedSize),
	}, nil
}

// decodeRecords decodes each record independently so a single bad one
// cannot poison the page.
func (c *Client) decodeRecords(ctx context.Context, records []json.RawMessage) []models.Product {
	products := make([]models.Product, 0, len(records))
	for idx, raw := range records {
		var dto productDTO
		if err := json.Unmarshal(raw, &dto); err != nil {
			c.log.WarnContext(ctx, "Dropping undecodable product record", "index", idx, "error", err)
			continue
		}
		if dto.ID == "" {
			c.log.WarnContext(ctx, "Dropping product record without id", "index", idx)
			continue
		}
		products = append(products, dto.toModel())
	}
	return products
}

// decodeProduct decodes a single-product payload, unwrapping an optional
// data envelope.
func decodeProduct(body []byte) (models.Product, error) {
	var dto productDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return models.Product{}, err
	}
	if dto.ID == "" {
		var wrapped struct {
			Data *productDTO `json:"data"`
		}
		if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Data != nil && wrapped.Data.ID != "" {
			return wrapped.Data.toModel(), nil
		}
		return models.Product{}, fmt.Errorf("product record has no id")
	}
	return dto.toModel(), nil
}
