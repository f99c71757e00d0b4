package mapper

import (
	"github.com/shopspring/decimal"

	"github.com/eshop-labs/checkout-api/internal/domains/products/domain"
)

// Product is the HTTP representation of a catalog item.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}

// FromDomainProduct maps a domain product into the transport representation.
func FromDomainProduct(p *domain.Product) Product {
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
	}
}

// FromDomainProductList maps a slice of domain products to transport Products.
func FromDomainProductList(list []*domain.Product) []Product {
	result := make([]Product, 0, len(list))
	for _, p := range list {
		result = append(result, FromDomainProduct(p))
	}
	return result
}
