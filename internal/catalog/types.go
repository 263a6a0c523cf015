package catalog

import "time"

// Product is a catalog product row, joined with its category and brand
// names for display.
type Product struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Price        int64     `json:"price"`
	Stock        int32     `json:"stock"`
	SKU          string    `json:"sku"`
	CategoryID   *int64    `json:"category_id,omitempty"`
	BrandID      *int64    `json:"brand_id,omitempty"`
	Description  string    `json:"description,omitempty"`
	IsActive     bool      `json:"is_active"`
	CategoryName string    `json:"category_name,omitempty"`
	BrandName    string    `json:"brand_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProductParams is the typed insert payload for a product. Optional
// columns are pointers; nil means "use the column default".
type ProductParams struct {
	Name        string
	Price       int64
	Stock       int32
	SKU         string
	CategoryID  *int64
	BrandID     *int64
	Description string
}

// Category is a catalog category row.
type Category struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description,omitempty"`
	ParentID     *int64    `json:"parent_id,omitempty"`
	DisplayOrder int32     `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// CategoryParams is the typed insert payload for a category.
type CategoryParams struct {
	Title       string
	Slug        string
	Description string
	ParentID    *int64
}

// Brand is a catalog brand row.
type Brand struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Logo      string    `json:"logo,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// BrandParams is the typed insert payload for a brand.
type BrandParams struct {
	Name string
	Slug string
	Logo string
}

// Media is an uploaded media row. ProductID/CategoryID are nil until the
// media is linked to the entity it was uploaded for.
type Media struct {
	ID         int64     `json:"id"`
	URL        string    `json:"url"`
	Type       string    `json:"type"`
	AltText    string    `json:"alt_text,omitempty"`
	ProductID  *int64    `json:"product_id,omitempty"`
	CategoryID *int64    `json:"category_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// MediaParams is the typed insert payload for a media row.
type MediaParams struct {
	URL        string
	Type       string
	AltText    string
	ProductID  *int64
	CategoryID *int64
}

// CategoryRef and BrandRef are the id/name pairs injected into the
// interpreter prompt so the model only references existing identifiers.
type CategoryRef struct {
	ID    int64
	Title string
}

type BrandRef struct {
	ID   int64
	Name string
}

// Context is the read-only catalog projection embedded in every prompt.
type Context struct {
	Categories []CategoryRef
	Brands     []BrandRef
}
