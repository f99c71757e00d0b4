package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName     = errors.New("product name is required")
	ErrInvalidPrice  = errors.New("product price must be positive")
	ErrNegativeStock = errors.New("product stock cannot be negative")
)

// Product models a catalog item with its available stock.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	ImageURL    string
}

// NewProduct validates and constructs a catalog product.
func NewProduct(id int64, name, description string, price decimal.Decimal, stock int, imageURL string) (*Product, error) {
	product := &Product{
		ID:          id,
		Name:        strings.TrimSpace(name),
		Description: description,
		Price:       price,
		Stock:       stock,
		ImageURL:    imageURL,
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	return product, nil
}

// Validate enforces invariants on the aggregate.
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrEmptyName
	}
	if !p.Price.IsPositive() {
		return ErrInvalidPrice
	}
	if p.Stock < 0 {
		return ErrNegativeStock
	}
	return nil
}

// InStock reports whether at least one unit can be sold.
func (p *Product) InStock() bool {
	return p.Stock > 0
}
