package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// DefaultListLimit caps product listings.
const DefaultListLimit = 50

// DefaultSearchLimit caps search results.
const DefaultSearchLimit = 20

// Store provides CRUD over the catalog tables (products, categories,
// brands, medias) on a pgx pool. Every write is a single statement;
// multi-step sequences are left to the caller on purpose so a later
// failure never rolls back an earlier create.
type Store struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewStore creates a catalog store.
func NewStore(log *slog.Logger, pool *pgxpool.Pool) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		pool:   pool,
		logger: log.With(slog.String("service", "catalog")),
	}
}

// productUpdateColumns is the allow-list for UpdateProduct. Keys not in
// this set are rejected before any SQL is built.
var productUpdateColumns = map[string]struct{}{
	"name":        {},
	"price":       {},
	"stock":       {},
	"sku":         {},
	"category_id": {},
	"brand_id":    {},
	"description": {},
	"is_active":   {},
}

const productSelect = `
SELECT p.id, p.name, p.price, p.stock, p.sku, p.category_id, p.brand_id,
       COALESCE(p.description, ''), p.is_active,
       COALESCE(c.title, ''), COALESCE(b.name, ''), p.created_at
FROM products p
LEFT JOIN categories c ON p.category_id = c.id
LEFT JOIN brands b ON p.brand_id = b.id`

// InsertProduct creates a product and returns its generated id.
func (s *Store) InsertProduct(ctx context.Context, params ProductParams) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO products (name, price, stock, sku, category_id, brand_id, description, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), TRUE)
		RETURNING id`,
		params.Name, params.Price, params.Stock, params.SKU,
		params.CategoryID, params.BrandID, params.Description,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}
	s.logger.Info("product created", slog.Int64("id", id), slog.String("name", params.Name))
	return id, nil
}

// UpdateProduct applies the given column updates to one product. Columns
// outside the allow-list are rejected.
func (s *Store) UpdateProduct(ctx context.Context, id int64, updates map[string]any) error {
	if len(updates) == 0 {
		return fmt.Errorf("no columns to update")
	}
	assignments := make([]string, 0, len(updates))
	args := make([]any, 0, len(updates)+1)
	for column, value := range updates {
		if _, ok := productUpdateColumns[column]; !ok {
			return fmt.Errorf("column %q is not updatable", column)
		}
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE products SET %s WHERE id = $%d",
		strings.Join(assignments, ", "), len(args))

	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update product %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProduct removes a product by id.
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	s.logger.Info("product deleted", slog.Int64("id", id))
	return nil
}

// GetProductByID fetches one product with joined category/brand names.
func (s *Store) GetProductByID(ctx context.Context, id int64) (Product, error) {
	row := s.pool.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id)
	return scanProduct(row)
}

// GetProductByName resolves a partial, case-insensitive name match. When
// several products match, the most recently created wins; callers needing
// disambiguation must supply a numeric id.
func (s *Store) GetProductByName(ctx context.Context, name string) (Product, error) {
	row := s.pool.QueryRow(ctx,
		productSelect+` WHERE p.name ILIKE '%' || $1 || '%' ORDER BY p.created_at DESC LIMIT 1`,
		name)
	return scanProduct(row)
}

// ListProducts returns up to limit products, most recently created first.
func (s *Store) ListProducts(ctx context.Context, limit int) ([]Product, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := s.pool.Query(ctx, productSelect+` ORDER BY p.created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// SearchProducts matches term against name, description, and sku.
func (s *Store) SearchProducts(ctx context.Context, term string, limit int) ([]Product, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	rows, err := s.pool.Query(ctx, productSelect+`
		WHERE p.name ILIKE '%' || $1 || '%'
		   OR p.description ILIKE '%' || $1 || '%'
		   OR p.sku ILIKE '%' || $1 || '%'
		ORDER BY p.created_at DESC LIMIT $2`,
		term, limit)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Price, &p.Stock, &p.SKU,
		&p.CategoryID, &p.BrandID, &p.Description, &p.IsActive,
		&p.CategoryName, &p.BrandName, &p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, fmt.Errorf("scan product: %w", err)
	}
	return p, nil
}

func collectProducts(rows pgx.Rows) ([]Product, error) {
	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}
