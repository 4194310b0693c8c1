package main

import (
	"context"
	"time"

	"github.com/damacus/snapsplit/internal/config"
	"github.com/damacus/snapsplit/internal/services"
	"github.com/stretchr/testify/mock"
)

// MockObjectStore is a mock implementation of services.ObjectStore
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) ListObjectsPage(ctx context.Context, opts services.ListObjectsOptions) (services.ListObjectsResult, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(services.ListObjectsResult), args.Error(1)
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

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, ShutdownTimeout: 5},
		Storage: config.StorageConfig{
			Endpoint:        "s3.amazonaws.com",
			Region:          "us-east-1",
			AccessKeyID:     "AKIDEXAMPLE",
			SecretAccessKey: "secret",
			Bucket:          "snapsplit-photos",
		},
		Auth:     config.AuthConfig{Username: "gallery", Password: "hunter2", LoginRatePerMinute: 10},
		Log:      config.LogConfig{Level: "info", Format: "json"},
		Metrics:  config.MetricsConfig{Enabled: true},
		Redirect: config.RedirectConfig{HostPrefix: "smart.link", Target: "https://www.google.com"},
		Share:    config.ShareConfig{AppStoreURL: "https://apps.apple.com/app/id1"},
	}
}
