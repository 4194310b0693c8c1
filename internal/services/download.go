package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/damacus/snapsplit/internal/errs"
)

// Download is a fully buffered object ready to be sent as an attachment.
type Download struct {
	Body               []byte
	ContentType        string
	ContentDisposition string
	Filename           string
}

// Download fetches key and prepares a "save as" response. An empty filename
// falls back to the key's last path segment.
func (s *GalleryService) Download(ctx context.Context, key, filename string) (*Download, error) {
	if key == "" {
		return nil, errs.InvalidArgument("Missing image key parameter")
	}

	body, err := s.store.GetObject(ctx, key)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.Wrap(errs.ErrKindNotFound, "Image not found", err)
		}
		s.metrics.StoreError("get")
		return nil, storeUnavailable(err, "failed to get object")
	}
	if body == nil {
		return nil, errs.New(errs.ErrKindNotFound, "Image not found")
	}

	if filename == "" {
		filename = DownloadFilename(key)
	}

	return &Download{
		Body:               body,
		ContentType:        ContentTypeFromKey(key),
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", filename),
		Filename:           filename,
	}, nil
}

// DownloadFilename is the last path segment of key, or "download" if empty.
func DownloadFilename(key string) string {
	name := key[strings.LastIndexByte(key, '/')+1:]
	if name == "" {
		return "download"
	}
	return name
}
