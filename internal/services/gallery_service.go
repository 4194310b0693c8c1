package services

import (
	"context"
	"strings"

	"github.com/damacus/snapsplit/internal/errs"
	"github.com/damacus/snapsplit/internal/metrics"
	"github.com/damacus/snapsplit/internal/models"
	"github.com/rs/zerolog"
)

// GalleryPrefix scopes which stored objects belong to the gallery.
const GalleryPrefix = "photos/"

// MaxRecentImages caps GetFirstN.
const MaxRecentImages = 100

// GalleryService lists, deletes and downloads gallery images.
// It holds no per-request state: every call re-reads the store, so two
// calls may observe different snapshots if the bucket changes in between.
type GalleryService struct {
	store   ObjectStore
	signer  *URLSigner
	prefix  string
	log     zerolog.Logger
	metrics *metrics.Metrics
}

// NewGalleryService wires the service to the shared store client.
// m may be nil.
func NewGalleryService(store ObjectStore, log zerolog.Logger, m *metrics.Metrics) *GalleryService {
	return &GalleryService{
		store:   store,
		signer:  NewURLSigner(store),
		prefix:  GalleryPrefix,
		log:     log.With().Str("component", "gallery").Logger(),
		metrics: m,
	}
}

// GetPage returns one page of images, newest first, with fresh signed URLs.
func (s *GalleryService) GetPage(ctx context.Context, page, pageSize int) (*models.PageResult, error) {
	if pageSize <= 0 {
		return nil, errs.InvalidArgument("page size must be greater than zero")
	}

	sorted, err := s.listImages(ctx)
	if err != nil {
		return nil, err
	}

	p, err := Paginate(sorted, page, pageSize)
	if err != nil {
		return nil, err
	}

	items, err := s.present(ctx, p.Items)
	if err != nil {
		return nil, err
	}

	s.log.Debug().
		Int("page", p.CurrentPage).
		Int("page_size", pageSize).
		Int("total", p.TotalCount).
		Int("returned", len(items)).
		Msg("gallery page listed")

	return &models.PageResult{
		Images:      items,
		TotalCount:  p.TotalCount,
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
		HasNextPage: p.HasNextPage,
		HasPrevPage: p.HasPrevPage,
	}, nil
}

// GetFirstN returns the most recent images without pagination metadata,
// capped at MaxRecentImages.
func (s *GalleryService) GetFirstN(ctx context.Context, limit int) ([]models.ImageItem, error) {
	if limit <= 0 {
		return nil, errs.InvalidArgument("limit must be greater than zero")
	}
	limit = min(limit, MaxRecentImages)

	sorted, err := s.listImages(ctx)
	if err != nil {
		return nil, err
	}

	return s.present(ctx, sorted[:min(limit, len(sorted))])
}

func (s *GalleryService) listImages(ctx context.Context) ([]ObjectDescriptor, error) {
	all, err := ListAll(ctx, s.store, s.prefix)
	if err != nil {
		s.metrics.StoreError("list")
		return nil, err
	}
	return FilterAndSort(all, s.prefix), nil
}

// present signs a materialised page and converts it to view items.
func (s *GalleryService) present(ctx context.Context, descriptors []ObjectDescriptor) ([]models.ImageItem, error) {
	urls, err := s.signer.SignAll(ctx, descriptors)
	if err != nil {
		s.metrics.StoreError("sign")
		return nil, err
	}
	s.metrics.SignedURL(len(urls))

	items := make([]models.ImageItem, len(descriptors))
	for i, d := range descriptors {
		items[i] = models.ImageItem{
			Key:          d.Key,
			Name:         strings.TrimPrefix(d.Key, s.prefix),
			URL:          urls[i],
			Size:         d.Size,
			LastModified: d.LastModified,
		}
	}
	return items, nil
}

// Delete permanently removes key. No existence check is made, so deleting a
// missing key succeeds.
func (s *GalleryService) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errs.InvalidArgument("Image key is required")
	}

	if err := s.store.DeleteObject(ctx, key); err != nil {
		s.metrics.StoreError("delete")
		return storeUnavailable(err, "failed to delete object")
	}

	s.log.Info().Str("key", key).Msg("image deleted")
	return nil
}
