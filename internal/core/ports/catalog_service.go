package ports

import (
	"context"

	"github.com/kawuz/coffee-shop-api/internal/core/domain"
)

// TopSellersCache caches the best-sellers ranking for a short TTL so the
// storefront widget does not hit the store on every page load.
type TopSellersCache interface {
	Get(ctx context.Context) ([]*domain.Product, error)
	Set(ctx context.Context, products []*domain.Product) error
}

// CatalogService exposes catalog read and admin maintenance operations.
type CatalogService interface {
	List(ctx context.Context) ([]*domain.Product, error)
	Get(ctx context.Context, id int) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id int, p *domain.Product) error
	Delete(ctx context.Context, id int) error
	Search(ctx context.Context, keyword string) ([]*domain.Product, error)
	// TopSellers returns the ten best-selling products.
	TopSellers(ctx context.Context) ([]*domain.Product, error)
}
