package services

import (
	"context"
	"errors"
	"sort"
	"strconv"

	"go-storefront/internal/models"
)

// ProductLookup resolves product ids against the catalog.
type ProductLookup interface {
	Get(ctx context.Context, id int64) (models.Product, error)
}

// CartService mutates a request's cart and resolves it into line items.
// The cart itself lives in the caller's session; nothing is held here.
type CartService struct {
	products ProductLookup
}

func NewCartService(products ProductLookup) *CartService {
	return &CartService{products: products}
}

// Add increments the quantity for productID, clamping qty to at least 1.
// Product existence is not checked here; dangling ids are dropped by Resolve.
func (s *CartService) Add(cart models.Cart, productID int64, qty int) {
	if qty < 1 {
		qty = 1
	}
	cart[models.CartKey(productID)] += qty
}

// Remove deletes the entry for productID if present.
func (s *CartService) Remove(cart models.Cart, productID int64) {
	delete(cart, models.CartKey(productID))
}

// Clear empties the cart in place.
func (s *CartService) Clear(cart models.Cart) {
	for k := range cart {
		delete(cart, k)
	}
}

// Resolve returns only resolvable items: entries whose product no longer exists,
// or whose key is not a product id, are skipped without error. Items are
// ordered by ascending product id and total is the sum of their subtotals.
func (s *CartService) Resolve(ctx context.Context, cart models.Cart) ([]models.LineItem, int64, error) {
	ids := make([]int64, 0, len(cart))
	qtys := make(map[int64]int, len(cart))
	for key, qty := range cart {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil || qty < 1 {
			continue
		}
		ids = append(ids, id)
		qtys[id] = qty
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	items := make([]models.LineItem, 0, len(ids))
	var total int64
	for _, id := range ids {
		product, err := s.products.Get(ctx, id)
		if isNotFound(err) {
			continue
		}
		if err != nil {
			return nil, 0, err
		}
		qty := qtys[id]
		subtotal := product.PriceCents * int64(qty)
		total += subtotal
		items = append(items, models.LineItem{Product: product, Qty: qty, Subtotal: subtotal})
	}
	return items, total, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, models.ErrNotFound)
}
