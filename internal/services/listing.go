package services

import (
	"context"

	"github.com/damacus/snapsplit/internal/errs"
)

// ListBatchSize caps each raw listing call.
const ListBatchSize = 1000

// ListAll drains the paginated listing of prefix into a single slice.
// Calls are strictly sequential because every continuation token depends on
// the previous response. Any failed call fails the whole listing.
func ListAll(ctx context.Context, store ObjectStore, prefix string) ([]ObjectDescriptor, error) {
	var all []ObjectDescriptor
	token := ""

	for {
		page, err := store.ListObjectsPage(ctx, ListObjectsOptions{
			Prefix:            prefix,
			MaxKeys:           ListBatchSize,
			ContinuationToken: token,
		})
		if err != nil {
			return nil, storeUnavailable(err, "failed to list objects")
		}

		all = append(all, page.Objects...)

		if !page.IsTruncated {
			return all, nil
		}
		if page.NextContinuationToken == "" {
			return nil, errs.New(errs.ErrKindStoreUnavailable, "truncated listing returned no continuation token")
		}
		// A repeated token would never terminate.
		if page.NextContinuationToken == token {
			return nil, errs.New(errs.ErrKindStoreUnavailable, "listing returned a repeated continuation token")
		}
		token = page.NextContinuationToken
	}
}
