package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// SignedURLExpiry is how long an issued display URL stays valid.
const SignedURLExpiry = time.Hour

// DefaultSignConcurrency bounds the in-flight signing calls of one page.
const DefaultSignConcurrency = 16

// URLSigner issues signed GET URLs for a page of descriptors.
type URLSigner struct {
	store       ObjectStore
	expiry      time.Duration
	concurrency int
}

// NewURLSigner returns a signer with the fixed one hour expiry.
func NewURLSigner(store ObjectStore) *URLSigner {
	return &URLSigner{
		store:       store,
		expiry:      SignedURLExpiry,
		concurrency: DefaultSignConcurrency,
	}
}

// SignAll signs every descriptor concurrently and returns the URLs in input
// order. The first failure cancels the remaining calls and fails the batch.
func (s *URLSigner) SignAll(ctx context.Context, descriptors []ObjectDescriptor) ([]string, error) {
	urls := make([]string, len(descriptors))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, d := range descriptors {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return storeUnavailable(err, "signing cancelled")
			}
			u, err := s.store.PresignGetObject(gctx, d.Key, s.expiry)
			if err != nil {
				return storeUnavailable(err, "failed to sign "+d.Key)
			}
			urls[i] = u
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}
