package port

import (
	"context"

	"github.com/rl1809/storefront-cart/internal/core/domain"
)

type CatalogService interface {
	// GetProduct retrieves the catalog record for a product
	GetProduct(ctx context.Context, productID int) (domain.Product, error)

	// GetStock retrieves the units currently available for a product
	GetStock(ctx context.Context, productID int) (domain.Stock, error)
}
