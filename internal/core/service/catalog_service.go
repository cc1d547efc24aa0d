package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/kawuz/coffee-shop-api/internal/core/domain"
	"github.com/kawuz/coffee-shop-api/internal/core/ports"
)

const topSellersCount = 10

// CatalogService implements catalog reads and admin maintenance. The
// best-sellers ranking goes through a short-TTL cache; cache failures fall
// back to the store and are logged, never surfaced.
type CatalogService struct {
	products ports.ProductRepository
	top      ports.TopSellersCache
	logger   zerolog.Logger
}

func NewCatalogService(products ports.ProductRepository, top ports.TopSellersCache, logger zerolog.Logger) *CatalogService {
	return &CatalogService{products: products, top: top, logger: logger}
}

func (s *CatalogService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.products.FindAll(ctx)
}

func (s *CatalogService) Get(ctx context.Context, id int) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *CatalogService) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	created, err := s.products.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int("product_id", created.ID).Str("name", created.Name).Msg("product created")
	return created, nil
}

func (s *CatalogService) Update(ctx context.Context, id int, p *domain.Product) error {
	p.ID = id
	return s.products.Update(ctx, p)
}

func (s *CatalogService) Delete(ctx context.Context, id int) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}

func (s *CatalogService) Search(ctx context.Context, keyword string) ([]*domain.Product, error) {
	return s.products.SearchByName(ctx, keyword)
}

func (s *CatalogService) TopSellers(ctx context.Context) ([]*domain.Product, error) {
	if s.top != nil {
		cached, err := s.top.Get(ctx)
		if err == nil && cached != nil {
			return cached, nil
		}
		if err != nil {
			s.logger.Warn().Err(err).Msg("top sellers cache read failed, falling back to store")
		}
	}

	products, err := s.products.TopBySales(ctx, topSellersCount)
	if err != nil {
		return nil, err
	}

	if s.top != nil {
		if err := s.top.Set(ctx, products); err != nil {
			s.logger.Warn().Err(err).Msg("top sellers cache write failed")
		}
	}
	return products, nil
}
