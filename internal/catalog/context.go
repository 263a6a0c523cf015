package catalog

import (
	"context"
	"fmt"
)

// QueryContext builds the catalog projection embedded in every prompt:
// known category and brand identifiers. Empty tables yield empty slices,
// never an error; only store connectivity failures propagate.
func (s *Store) QueryContext(ctx context.Context) (Context, error) {
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return Context{}, fmt.Errorf("catalog context: %w", err)
	}
	brands, err := s.ListBrands(ctx)
	if err != nil {
		return Context{}, fmt.Errorf("catalog context: %w", err)
	}

	snapshot := Context{
		Categories: make([]CategoryRef, 0, len(categories)),
		Brands:     make([]BrandRef, 0, len(brands)),
	}
	for _, c := range categories {
		snapshot.Categories = append(snapshot.Categories, CategoryRef{ID: c.ID, Title: c.Title})
	}
	for _, b := range brands {
		snapshot.Brands = append(snapshot.Brands, BrandRef{ID: b.ID, Name: b.Name})
	}
	return snapshot, nil
}
