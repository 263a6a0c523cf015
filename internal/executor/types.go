package executor

import (
	"context"

	"github.com/rshoplabs/shopbot/internal/catalog"
)

// ActionResult is the uniform envelope every catalog operation returns.
// CreatedID is only set for create operations; the orchestrator uses it
// to link pending media afterwards.
type ActionResult struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	CreatedID   int64  `json:"created_id,omitempty"`
	OperationID string `json:"operation_id,omitempty"`
}

// Catalog is the slice of the catalog store the executor needs. The
// concrete *catalog.Store satisfies it; tests substitute a fake.
type Catalog interface {
	InsertProduct(ctx context.Context, params catalog.ProductParams) (int64, error)
	UpdateProduct(ctx context.Context, id int64, updates map[string]any) error
	DeleteProduct(ctx context.Context, id int64) error
	GetProductByID(ctx context.Context, id int64) (catalog.Product, error)
	GetProductByName(ctx context.Context, name string) (catalog.Product, error)
	ListProducts(ctx context.Context, limit int) ([]catalog.Product, error)
	SearchProducts(ctx context.Context, term string, limit int) ([]catalog.Product, error)
	InsertCategory(ctx context.Context, params catalog.CategoryParams) (int64, error)
	GetCategoryByID(ctx context.Context, id int64) (catalog.Category, error)
	ListCategories(ctx context.Context) ([]catalog.Category, error)
	InsertBrand(ctx context.Context, params catalog.BrandParams) (int64, error)
	ListBrands(ctx context.Context) ([]catalog.Brand, error)
}
