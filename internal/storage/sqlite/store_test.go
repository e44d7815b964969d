package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go-storefront/internal/models"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "shop.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open("  "); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestSeedDemoOnEmptyCatalog(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()

	seeded, err := store.SeedDemo(ctx)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !seeded {
		t.Fatal("expected empty catalog to be seeded")
	}
	products, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("products = %d, want 3", len(products))
	}
	want := map[string]int64{"Aurvic Tee": 1999, "Aurvic Hoodie": 4999, "Aurvic Cap": 1499}
	for _, p := range products {
		price, ok := want[p.Name]
		if !ok {
			t.Fatalf("unexpected product %q", p.Name)
		}
		if p.PriceCents != price {
			t.Fatalf("%s price = %d, want %d", p.Name, p.PriceCents, price)
		}
	}

	seeded, err = store.SeedDemo(ctx)
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if seeded {
		t.Fatal("expected non-empty catalog to be left alone")
	}
	if n, _ := store.Count(ctx); n != 3 {
		t.Fatalf("count after reseed = %d, want 3", n)
	}
}

func TestListAllNewestFirst(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	var ids []int64
	for _, name := range []string{"first", "second", "third"} {
		id, err := store.Insert(ctx, models.Product{Name: name, PriceCents: 100})
		if err != nil {
			t.Fatalf("insert %s: %v", name, err)
		}
		ids = append(ids, id)
	}
	if !(ids[0] < ids[1] && ids[1] < ids[2]) {
		t.Fatalf("ids not monotonic: %v", ids)
	}

	products, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 3 || products[0].Name != "third" || products[2].Name != "first" {
		t.Fatalf("order = %+v, want newest first", products)
	}
}

func TestSearchMatchesNameOrDescription(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	if _, err := store.SeedDemo(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := store.Insert(ctx, models.Product{Name: "Mug", Description: "100% ceramic"}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	cases := []struct {
		query string
		want  []string
	}{
		{query: "HOODIE", want: []string{"Aurvic Hoodie"}},
		{query: "cotton", want: []string{"Aurvic Tee"}},
		{query: "aurvic", want: []string{"Aurvic Cap", "Aurvic Hoodie", "Aurvic Tee"}},
		{query: "100%", want: []string{"Mug"}},
		{query: "%", want: []string{"Mug"}},
		{query: "nothing-like-this", want: nil},
		{query: "   ", want: []string{"Mug", "Aurvic Cap", "Aurvic Hoodie", "Aurvic Tee"}},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			got, err := store.Search(ctx, tc.query)
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("search %q = %d results, want %d", tc.query, len(got), len(tc.want))
			}
			for i, p := range got {
				if p.Name != tc.want[i] {
					t.Fatalf("result[%d] = %q, want %q", i, p.Name, tc.want[i])
				}
			}
		})
	}
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	_, err := store.Get(context.Background(), 42)
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("get error = %v, want %v", err, models.ErrNotFound)
	}
}

func TestInsertValidation(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()

	if _, err := store.Insert(ctx, models.Product{Name: "   "}); !models.IsValidation(err) {
		t.Fatalf("blank name error = %v, want validation error", err)
	}
	if _, err := store.Insert(ctx, models.Product{Name: "x", PriceCents: -1}); !models.IsValidation(err) {
		t.Fatalf("negative price error = %v, want validation error", err)
	}
	if n, _ := store.Count(ctx); n != 0 {
		t.Fatalf("count = %d, want 0 after rejected inserts", n)
	}

	id, err := store.Insert(ctx, models.Product{Name: " Scarf ", PriceCents: 2500, Image: "scarf.jpg"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	got, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Scarf" || got.PriceCents != 2500 || got.Image != "scarf.jpg" || got.Description != "" {
		t.Fatalf("stored product = %+v", got)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	id, err := store.Insert(ctx, models.Product{Name: "Temp"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := store.Delete(ctx, id); err != nil {
			t.Fatalf("delete #%d: %v", i+1, err)
		}
	}
	if err := store.Delete(ctx, 9999); err != nil {
		t.Fatalf("delete unknown: %v", err)
	}
	if _, err := store.Get(ctx, id); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("get after delete = %v, want not found", err)
	}
}

func TestDemoImagesShipWithDefaultUploadDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join("..", "..", "..", "static", "uploads")
	for _, p := range DemoProducts {
		info, err := os.Stat(filepath.Join(dir, p.Image))
		if err != nil {
			t.Fatalf("demo image %q: %v", p.Image, err)
		}
		if info.Size() == 0 {
			t.Fatalf("demo image %q is empty", p.Image)
		}
	}
}
