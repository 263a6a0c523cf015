package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
)

const mediaSelect = `
SELECT id, url, type, COALESCE(alt_text, ''), product_id, category_id, created_at
FROM medias`

// InsertMedia records an uploaded media asset and returns its id. The
// product/category links are usually nil at insert time; linking happens
// after the owning entity exists.
func (s *Store) InsertMedia(ctx context.Context, params MediaParams) (int64, error) {
	mediaType := params.Type
	if mediaType == "" {
		mediaType = "image"
	}
	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO medias (url, type, alt_text, product_id, category_id)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5)
		RETURNING id`,
		params.URL, mediaType, params.AltText, params.ProductID, params.CategoryID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert media: %w", err)
	}
	s.logger.Info("media recorded", slog.Int64("id", id), slog.String("url", params.URL))
	return id, nil
}

// LinkMediaToProduct attaches an uploaded media row to a product.
func (s *Store) LinkMediaToProduct(ctx context.Context, mediaID, productID int64) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE medias SET product_id = $1 WHERE id = $2`, productID, mediaID)
	if err != nil {
		return fmt.Errorf("link media %d to product %d: %w", mediaID, productID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// LinkMediaToCategory attaches an uploaded media row to a category.
func (s *Store) LinkMediaToCategory(ctx context.Context, mediaID, categoryID int64) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE medias SET category_id = $1 WHERE id = $2`, categoryID, mediaID)
	if err != nil {
		return fmt.Errorf("link media %d to category %d: %w", mediaID, categoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListProductMedia returns a product's media in upload order.
func (s *Store) ListProductMedia(ctx context.Context, productID int64) ([]Media, error) {
	rows, err := s.pool.Query(ctx, mediaSelect+` WHERE product_id = $1 ORDER BY created_at`, productID)
	if err != nil {
		return nil, fmt.Errorf("list product media: %w", err)
	}
	defer rows.Close()

	var medias []Media
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		medias = append(medias, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate media: %w", err)
	}
	return medias, nil
}

// DeleteMedia removes a media row by id.
func (s *Store) DeleteMedia(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM medias WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete media %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanMedia(row pgx.Row) (Media, error) {
	var m Media
	err := row.Scan(&m.ID, &m.URL, &m.Type, &m.AltText, &m.ProductID, &m.CategoryID, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Media{}, ErrNotFound
	}
	if err != nil {
		return Media{}, fmt.Errorf("scan media: %w", err)
	}
	return m, nil
}
