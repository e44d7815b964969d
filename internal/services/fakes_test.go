package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"go-storefront/internal/models"
)

type memStore struct {
	products map[int64]models.Product
	nextID   int64
	inserts  int
	deletes  int
	failGet  error
}

func newMemStore(products ...models.Product) *memStore {
	s := &memStore{products: map[int64]models.Product{}, nextID: 1}
	for _, p := range products {
		p.ID = s.nextID
		s.products[p.ID] = p
		s.nextID++
	}
	return s
}

func (s *memStore) ListAll(ctx context.Context) ([]models.Product, error) {
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *memStore) Search(ctx context.Context, query string) ([]models.Product, error) {
	all, _ := s.ListAll(ctx)
	q := strings.ToLower(query)
	var out []models.Product
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memStore) Get(ctx context.Context, id int64) (models.Product, error) {
	if s.failGet != nil {
		return models.Product{}, s.failGet
	}
	p, ok := s.products[id]
	if !ok {
		return models.Product{}, models.ErrNotFound
	}
	return p, nil
}

func (s *memStore) Insert(ctx context.Context, p models.Product) (int64, error) {
	if strings.TrimSpace(p.Name) == "" {
		return 0, models.NewValidationError("name is required", "name")
	}
	s.inserts++
	p.ID = s.nextID
	s.nextID++
	s.products[p.ID] = p
	return p.ID, nil
}

func (s *memStore) Delete(ctx context.Context, id int64) error {
	s.deletes++
	delete(s.products, id)
	return nil
}

type flag bool

func (f *flag) Authorized() bool { return bool(*f) }
func (f *flag) Grant()           { *f = true }

var errBoom = errors.New("boom")
