package media

import (
	"context"
	"io"

	"github.com/rshoplabs/shopbot/internal/catalog"
)

// Uploader pushes a byte stream to object storage under the suggested
// name and returns the publicly reachable URL.
type Uploader interface {
	Upload(ctx context.Context, r io.Reader, name string) (string, error)
}

// Store is the slice of the catalog store the media service needs.
type Store interface {
	InsertMedia(ctx context.Context, params catalog.MediaParams) (int64, error)
	LinkMediaToProduct(ctx context.Context, mediaID, productID int64) error
	LinkMediaToCategory(ctx context.Context, mediaID, categoryID int64) error
}

// UploadResult describes one stored image.
type UploadResult struct {
	MediaID  int64
	URL      string
	Filename string
}
