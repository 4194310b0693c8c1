package services

import (
	"context"
	"errors"
	"time"

	"github.com/damacus/snapsplit/internal/errs"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// BreakerSettings configures BreakerStore.
type BreakerSettings struct {
	// MinRequests is the number of calls in an interval before the failure
	// rate is considered.
	MinRequests uint32
	FailureRate float64
	Interval    time.Duration
	// Timeout is how long the breaker stays open before probing again.
	Timeout     time.Duration
	MaxHalfOpen uint32
}

// BreakerStore fails fast with StoreUnavailable while the wrapped store keeps
// failing. Missing keys and caller cancellations are not counted as failures.
type BreakerStore struct {
	next ObjectStore
	cb   *gobreaker.CircuitBreaker
}

var _ ObjectStore = (*BreakerStore)(nil)

// NewBreakerStore wraps next with a circuit breaker.
func NewBreakerStore(next ObjectStore, s BreakerSettings, log zerolog.Logger) *BreakerStore {
	settings := gobreaker.Settings{
		Name:        "object-store",
		MaxRequests: s.MaxHalfOpen,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= s.FailureRate
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errs.IsNotFound(err) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("object store circuit breaker state changed")
		},
	}

	return &BreakerStore{next: next, cb: gobreaker.NewCircuitBreaker(settings)}
}

// State reports the current breaker state.
func (b *BreakerStore) State() gobreaker.State {
	return b.cb.State()
}

func (b *BreakerStore) execute(fn func() (interface{}, error)) (interface{}, error) {
	v, err := b.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, errs.Wrap(errs.ErrKindStoreUnavailable, "object store temporarily unavailable", err)
	}
	return v, err
}

func (b *BreakerStore) ListObjectsPage(ctx context.Context, opts ListObjectsOptions) (ListObjectsResult, error) {
	v, err := b.execute(func() (interface{}, error) {
		return b.next.ListObjectsPage(ctx, opts)
	})
	if err != nil {
		return ListObjectsResult{}, err
	}
	return v.(ListObjectsResult), nil
}

func (b *BreakerStore) GetObject(ctx context.Context, key string) ([]byte, error) {
	v, err := b.execute(func() (interface{}, error) {
		return b.next.GetObject(ctx, key)
	})
	if err != nil {
		return nil, err
	}
	body, _ := v.([]byte)
	return body, nil
}

func (b *BreakerStore) DeleteObject(ctx context.Context, key string) error {
	_, err := b.execute(func() (interface{}, error) {
		return nil, b.next.DeleteObject(ctx, key)
	})
	return err
}

func (b *BreakerStore) PresignGetObject(ctx context.Context, key string, expires time.Duration) (string, error) {
	v, err := b.execute(func() (interface{}, error) {
		return b.next.PresignGetObject(ctx, key, expires)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
