package services

import (
	"context"
	"strings"

	"go-storefront/internal/models"

	"go.uber.org/zap"
)

// ProductStore is the catalog persistence the services depend on.
type ProductStore interface {
	ListAll(ctx context.Context) ([]models.Product, error)
	Search(ctx context.Context, query string) ([]models.Product, error)
	Get(ctx context.Context, id int64) (models.Product, error)
	Insert(ctx context.Context, p models.Product) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// Gate is the admin capability checked before any catalog mutation.
type Gate interface {
	Authorized() bool
}

type ProductService struct {
	store ProductStore
	log   *zap.Logger
}

func NewProductService(store ProductStore, log *zap.Logger) *ProductService {
	return &ProductService{store: store, log: log}
}

// GetAllProducts lists the catalog newest first, or filters it when query is set.
func (s *ProductService) GetAllProducts(ctx context.Context, query string) ([]models.Product, error) {
	if strings.TrimSpace(query) == "" {
		return s.store.ListAll(ctx)
	}
	return s.store.Search(ctx, query)
}

func (s *ProductService) GetProductByID(ctx context.Context, id int64) (models.Product, error) {
	return s.store.Get(ctx, id)
}

// Exists reports whether the product is currently in the catalog.
func (s *ProductService) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := s.store.Get(ctx, id)
	switch {
	case err == nil:
		return true, nil
	case isNotFound(err):
		return false, nil
	default:
		return false, err
	}
}

// CreateProduct inserts a product when the gate allows it.
func (s *ProductService) CreateProduct(ctx context.Context, gate Gate, p models.Product) (models.Product, error) {
	if gate == nil || !gate.Authorized() {
		return models.Product{}, models.ErrUnauthorized
	}
	id, err := s.store.Insert(ctx, p)
	if err != nil {
		return models.Product{}, err
	}
	p.ID = id
	s.log.Info("product created", zap.Int64("id", id), zap.String("name", p.Name), zap.Int64("price_cents", p.PriceCents))
	return p, nil
}

// DeleteProduct removes a product when the gate allows it. Unknown ids are a no-op.
func (s *ProductService) DeleteProduct(ctx context.Context, gate Gate, id int64) error {
	if gate == nil || !gate.Authorized() {
		return models.ErrUnauthorized
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("product deleted", zap.Int64("id", id))
	return nil
}
