package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/rshoplabs/shopbot/internal/catalog"
)

// Service uploads images to object storage, records them in the catalog,
// and links them to entities after creation.
type Service struct {
	store    Store
	uploader Uploader
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a media service.
func NewService(log *slog.Logger, store Store, uploader Uploader) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		store:    store,
		uploader: uploader,
		logger:   log.With(slog.String("service", "media")),
		now:      time.Now,
	}
}

// UploadImage streams one image to storage under a unique name and
// records the media row. The row starts unlinked; linking happens once
// the owning entity exists.
func (s *Service) UploadImage(ctx context.Context, r io.Reader, ext string) (UploadResult, error) {
	if ext == "" {
		ext = ".jpg"
	}
	filename := fmt.Sprintf("file-%d%s", s.now().UnixMilli(), ext)

	url, err := s.uploader.Upload(ctx, r, filename)
	if err != nil {
		return UploadResult{}, fmt.Errorf("upload image: %w", err)
	}

	mediaID, err := s.store.InsertMedia(ctx, catalog.MediaParams{URL: url, Type: "image"})
	if err != nil {
		return UploadResult{}, fmt.Errorf("record media: %w", err)
	}
	return UploadResult{MediaID: mediaID, URL: url, Filename: filename}, nil
}

// LinkToProduct attaches the given media rows to a product, in order, so
// the first reference stays the primary image. A partial failure reports
// how many links landed; the product itself is never rolled back.
func (s *Service) LinkToProduct(ctx context.Context, mediaIDs []int64, productID int64) (int, error) {
	linked := 0
	for _, mediaID := range mediaIDs {
		if err := s.store.LinkMediaToProduct(ctx, mediaID, productID); err != nil {
			s.logger.Error("link media failed",
				slog.Int64("media_id", mediaID),
				slog.Int64("product_id", productID),
				slog.Any("error", err))
			return linked, fmt.Errorf("link media %d: %w", mediaID, err)
		}
		linked++
	}
	s.logger.Info("media linked", slog.Int("count", linked), slog.Int64("product_id", productID))
	return linked, nil
}

// LinkToCategory attaches one media row to a category.
func (s *Service) LinkToCategory(ctx context.Context, mediaID, categoryID int64) error {
	if err := s.store.LinkMediaToCategory(ctx, mediaID, categoryID); err != nil {
		s.logger.Error("link media failed",
			slog.Int64("media_id", mediaID),
			slog.Int64("category_id", categoryID),
			slog.Any("error", err))
		return fmt.Errorf("link media %d: %w", mediaID, err)
	}
	s.logger.Info("media linked", slog.Int64("media_id", mediaID), slog.Int64("category_id", categoryID))
	return nil
}
