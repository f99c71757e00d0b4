package seed

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/eshop-labs/checkout-api/internal/domains/products/domain"
	"github.com/eshop-labs/checkout-api/internal/domains/products/ports"
)

// catalog holds the demo products shipped with the store.
var catalog = []domain.Product{
	{
		Name:        "Jonathan Series X | Slate Edition",
		Description: "The perfect companion for your daily adventures. With its sleek design and powerful performance, the Jonathan Series X is ready for anything.",
		Price:       decimal.NewFromInt(4500000),
		Stock:       100,
		ImageURL:    "https://eshop-test-resources.s3.us-east-1.amazonaws.com/jonathan-series-x.png",
	},
	{
		Name:        "JG Vision Pro | Urban Connect",
		Description: "Experience the world in a new light with the JG Vision Pro. Its advanced optics and lightweight design make it the perfect companion for your daily adventures.",
		Price:       decimal.NewFromInt(3300000),
		Stock:       50,
		ImageURL:    "https://eshop-test-resources.s3.us-east-1.amazonaws.com/smart-glasses-jg.png",
	},
	{
		Name:        "Guerrero | Hydro-Tech DataBand",
		Description: "High-absorbency sweatband meets real-time biometric tracking for elite athletes. Stay dry and monitor your vitals without breaking your stride.",
		Price:       decimal.NewFromInt(1500000),
		Stock:       25,
		ImageURL:    "https://eshop-test-resources.s3.us-east-1.amazonaws.com/guerrero-hydro-tech-band.png",
	},
}

// Run inserts the demo catalog when the product table is empty.
func Run(ctx context.Context, repo ports.Repository) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("inspect catalog before seeding: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	for i := range catalog {
		product := catalog[i]
		if _, err := repo.Save(ctx, &product); err != nil {
			return fmt.Errorf("seed product %q: %w", product.Name, err)
		}
	}
	return nil
}
