package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
)

const categorySelect = `
SELECT id, title, slug, COALESCE(description, ''), parent_id, display_order, is_active, created_at
FROM categories`

// InsertCategory creates a category and returns its generated id.
func (s *Store) InsertCategory(ctx context.Context, params CategoryParams) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO categories (title, slug, description, parent_id, display_order, is_active)
		VALUES ($1, $2, NULLIF($3, ''), $4, 0, TRUE)
		RETURNING id`,
		params.Title, params.Slug, params.Description, params.ParentID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert category: %w", err)
	}
	s.logger.Info("category created", slog.Int64("id", id), slog.String("title", params.Title))
	return id, nil
}

// GetCategoryByID fetches one category.
func (s *Store) GetCategoryByID(ctx context.Context, id int64) (Category, error) {
	row := s.pool.QueryRow(ctx, categorySelect+` WHERE id = $1`, id)
	return scanCategory(row)
}

// GetCategoryByName resolves a partial, case-insensitive title match,
// most recently created first.
func (s *Store) GetCategoryByName(ctx context.Context, title string) (Category, error) {
	row := s.pool.QueryRow(ctx,
		categorySelect+` WHERE title ILIKE '%' || $1 || '%' ORDER BY created_at DESC LIMIT 1`,
		title)
	return scanCategory(row)
}

// ListCategories returns every category ordered for display.
func (s *Store) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.pool.Query(ctx, categorySelect+` ORDER BY display_order, title`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

// DeleteCategory removes a category by id.
func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanCategory(row pgx.Row) (Category, error) {
	var c Category
	err := row.Scan(&c.ID, &c.Title, &c.Slug, &c.Description, &c.ParentID, &c.DisplayOrder, &c.IsActive, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Category{}, ErrNotFound
	}
	if err != nil {
		return Category{}, fmt.Errorf("scan category: %w", err)
	}
	return c, nil
}
