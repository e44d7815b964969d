// Package sqlite provides the SQLite-backed product catalog.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go-storefront/internal/models"
	"go-storefront/internal/storage/sqlite/migrations"
	"go-storefront/internal/storage/sqlitemigrate"

	_ "modernc.org/sqlite"
)

const productColumns = "id, name, price_cents, description, image"

// DemoProducts are inserted into an empty catalog on first run.
var DemoProducts = []models.Product{
	{Name: "Aurvic Tee", PriceCents: 1999, Description: "Premium cotton T-shirt with minimalist logo.", Image: "tee.jpg"},
	{Name: "Aurvic Hoodie", PriceCents: 4999, Description: "Cozy hoodie for everyday adventures.", Image: "hoodie.jpg"},
	{Name: "Aurvic Cap", PriceCents: 1499, Description: "Adjustable cap with embroidered monogram.", Image: "cap.jpg"},
}

// Store persists products in a single SQLite table.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (creating if needed) the catalog database and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SeedDemo inserts DemoProducts when the table is empty. It reports whether it seeded.
func (s *Store) SeedDemo(ctx context.Context) (bool, error) {
	n, err := s.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin seed: %w", err)
	}
	for _, p := range DemoProducts {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO products (name, price_cents, description, image) VALUES (?, ?, ?, ?)`,
			p.Name, p.PriceCents, p.Description, p.Image,
		); err != nil {
			_ = tx.Rollback()
			return false, fmt.Errorf("seed product %q: %w", p.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit seed: %w", err)
	}
	return true, nil
}

// Count returns the number of products.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// ListAll returns every product, newest first.
func (s *Store) ListAll(ctx context.Context) ([]models.Product, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return scanProducts(rows)
}

// Search matches query as a case-insensitive substring of name or description.
// A blank query lists everything.
func (s *Store) Search(ctx context.Context, query string) ([]models.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.ListAll(ctx)
	}
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'
		 ORDER BY id DESC`,
		pattern, pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return scanProducts(rows)
}

// Get returns one product or models.ErrNotFound.
func (s *Store) Get(ctx context.Context, id int64) (models.Product, error) {
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	var p models.Product
	if err := row.Scan(&p.ID, &p.Name, &p.PriceCents, &p.Description, &p.Image); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Product{}, models.ErrNotFound
		}
		return models.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

// Insert stores a new product and returns its id.
func (s *Store) Insert(ctx context.Context, p models.Product) (int64, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return 0, models.NewValidationError("name is required", "name")
	}
	if p.PriceCents < 0 {
		return 0, models.NewValidationError("price must not be negative", "price")
	}
	res, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO products (name, price_cents, description, image) VALUES (?, ?, ?, ?)`,
		name, p.PriceCents, strings.TrimSpace(p.Description), p.Image,
	)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert product id: %w", err)
	}
	return id, nil
}

// Delete removes a product. Unknown ids are not an error.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}

func scanProducts(rows *sql.Rows) ([]models.Product, error) {
	defer rows.Close()
	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.PriceCents, &p.Description, &p.Image); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
