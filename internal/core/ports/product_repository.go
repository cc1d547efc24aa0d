package ports

import (
	"context"

	"github.com/kawuz/coffee-shop-api/internal/core/domain"
)

// ProductRepository defines persistence operations for catalog products.
type ProductRepository interface {
	FindByID(ctx context.Context, id int) (*domain.Product, error)
	FindAll(ctx context.Context) ([]*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int) error
	// SearchByName returns products whose name contains keyword, case-insensitively.
	SearchByName(ctx context.Context, keyword string) ([]*domain.Product, error)
	// TopBySales returns the n best-selling products, highest sales first.
	TopBySales(ctx context.Context, n int) ([]*domain.Product, error)
	// CommitOrderLine atomically decrements stock_quantity and increments sales
	// by qty, guarded so stock never goes negative. Returns
	// domain.ErrInsufficientStock when the guard fails and
	// domain.ErrProductNotFound when the id does not exist.
	CommitOrderLine(ctx context.Context, id, qty int) error
}
