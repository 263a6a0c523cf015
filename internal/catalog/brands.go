package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
)

const brandSelect = `
SELECT id, name, slug, COALESCE(logo, ''), is_active, created_at
FROM brands`

// InsertBrand creates a brand and returns its generated id.
func (s *Store) InsertBrand(ctx context.Context, params BrandParams) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO brands (name, slug, logo, is_active)
		VALUES ($1, $2, $3, TRUE)
		RETURNING id`,
		params.Name, params.Slug, params.Logo,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert brand: %w", err)
	}
	s.logger.Info("brand created", slog.Int64("id", id), slog.String("name", params.Name))
	return id, nil
}

// GetBrandByName resolves a partial, case-insensitive name match.
func (s *Store) GetBrandByName(ctx context.Context, name string) (Brand, error) {
	row := s.pool.QueryRow(ctx,
		brandSelect+` WHERE name ILIKE '%' || $1 || '%' ORDER BY created_at DESC LIMIT 1`,
		name)
	return scanBrand(row)
}

// ListBrands returns every brand ordered by name.
func (s *Store) ListBrands(ctx context.Context) ([]Brand, error) {
	rows, err := s.pool.Query(ctx, brandSelect+` ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	var brands []Brand
	for rows.Next() {
		b, err := scanBrand(rows)
		if err != nil {
			return nil, err
		}
		brands = append(brands, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate brands: %w", err)
	}
	return brands, nil
}

// DeleteBrand removes a brand by id.
func (s *Store) DeleteBrand(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete brand %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanBrand(row pgx.Row) (Brand, error) {
	var b Brand
	err := row.Scan(&b.ID, &b.Name, &b.Slug, &b.Logo, &b.IsActive, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Brand{}, ErrNotFound
	}
	if err != nil {
		return Brand{}, fmt.Errorf("scan brand: %w", err)
	}
	return b, nil
}
