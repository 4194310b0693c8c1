package services

import (
	"errors"
	"net/http"

	"github.com/damacus/snapsplit/internal/errs"
	"github.com/minio/minio-go/v7"
)

// mapError translates a minio-go error into an *errs.Error.
// Only a missing key is reported as NotFound; every other failure of the
// store (network, permissions, throttling, missing bucket, cancellation)
// collapses to StoreUnavailable.
func mapError(err error, msg string) error {
	if err == nil {
		return nil
	}

	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		switch resp.Code {
		case "NoSuchKey":
			return errs.Wrap(errs.ErrKindNotFound, msg, err)
		case "NoSuchBucket":
			return errs.Wrap(errs.ErrKindStoreUnavailable, msg, err)
		}
		if resp.StatusCode == http.StatusNotFound && resp.Key != "" {
			return errs.Wrap(errs.ErrKindNotFound, msg, err)
		}
	}

	return errs.Wrap(errs.ErrKindStoreUnavailable, msg, err)
}

// storeUnavailable wraps err as StoreUnavailable unless it already is one.
func storeUnavailable(err error, msg string) error {
	if errs.IsStoreUnavailable(err) {
		return err
	}
	return errs.Wrap(errs.ErrKindStoreUnavailable, msg, err)
}
