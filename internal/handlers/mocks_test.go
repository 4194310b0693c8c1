package handlers

import (
	"context"
	"time"

	"github.com/damacus/snapsplit/internal/services"
	"github.com/stretchr/testify/mock"
)

type mockObjectStore struct {
	mock.Mock
}

func (m *mockObjectStore) ListObjectsPage(ctx context.Context, opts services.ListObjectsOptions) (services.ListObjectsResult, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(services.ListObjectsResult), args.Error(1)
}

func (m *mockObjectStore) GetObject(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	body, _ := args.Get(0).([]byte)
	return body, args.Error(1)
}

func (m *mockObjectStore) DeleteObject(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *mockObjectStore) PresignGetObject(ctx context.Context, key string, expires time.Duration) (string, error) {
	args := m.Called(ctx, key, expires)
	return args.String(0), args.Error(1)
}
