package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
)

// fakeStore is an in-memory ObjectStore that paginates like S3: results are
// ordered by key and a continuation token is returned only when more remain.
type fakeStore struct {
	mu sync.Mutex

	objects []ObjectDescriptor
	bodies  map[string][]byte

	listCalls  []ListObjectsOptions
	failListAt int // 1-based call number that fails; 0 never fails
	listErr    error

	signed     []string
	signErrFor map[string]error
	signDelay  time.Duration

	deleted   []string
	deleteErr error

	getErr error
}

func newFakeStore(objects ...ObjectDescriptor) *fakeStore {
	s := &fakeStore{bodies: map[string][]byte{}, signErrFor: map[string]error{}}
	s.objects = append(s.objects, objects...)
	slices.SortFunc(s.objects, func(a, b ObjectDescriptor) int { return strings.Compare(a.Key, b.Key) })
	return s
}

func (s *fakeStore) ListObjectsPage(ctx context.Context, opts ListObjectsOptions) (ListObjectsResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listCalls = append(s.listCalls, opts)
	if s.failListAt > 0 && len(s.listCalls) == s.failListAt {
		return ListObjectsResult{}, s.listErr
	}

	var matched []ObjectDescriptor
	for _, o := range s.objects {
		if strings.HasPrefix(o.Key, opts.Prefix) && o.Key > opts.ContinuationToken {
			matched = append(matched, o)
		}
	}

	if len(matched) <= opts.MaxKeys {
		return ListObjectsResult{Objects: matched}, nil
	}
	page := matched[:opts.MaxKeys]
	return ListObjectsResult{
		Objects:               page,
		IsTruncated:           true,
		NextContinuationToken: page[len(page)-1].Key,
	}, nil
}

func (s *fakeStore) GetObject(ctx context.Context, key string) ([]byte, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.bodies[key], nil
}

func (s *fakeStore) DeleteObject(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *fakeStore) PresignGetObject(ctx context.Context, key string, expires time.Duration) (string, error) {
	if s.signDelay > 0 {
		select {
		case <-time.After(s.signDelay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.signErrFor[key]; err != nil {
		return "", err
	}
	s.signed = append(s.signed, key)
	return fmt.Sprintf("https://signed.example/%s?X-Amz-Expires=%d", key, int(expires.Seconds())), nil
}

// MockObjectStore is a testify mock of ObjectStore.
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) ListObjectsPage(ctx context.Context, opts ListObjectsOptions) (ListObjectsResult, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(ListObjectsResult), args.Error(1)
}

func (m *MockObjectStore) GetObject(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	body, _ := args.Get(0).([]byte)
	return body, args.Error(1)
}

func (m *MockObjectStore) DeleteObject(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockObjectStore) PresignGetObject(ctx context.Context, key string, expires time.Duration) (string, error) {
	args := m.Called(ctx, key, expires)
	return args.String(0), args.Error(1)
}

var errStoreDown = errors.New("connection refused")

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// image returns a descriptor modified n minutes after baseTime.
func image(key string, n int) ObjectDescriptor {
	return ObjectDescriptor{Key: key, Size: int64(1000 + n), LastModified: baseTime.Add(time.Duration(n) * time.Minute)}
}
