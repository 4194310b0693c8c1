package services

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectDescriptor is the raw metadata of a stored object as observed in a listing.
type ObjectDescriptor struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// ListObjectsOptions selects one page of a raw prefix listing
type ListObjectsOptions struct {
	Prefix            string
	MaxKeys           int
	ContinuationToken string
}

// ListObjectsResult contains one page of a raw prefix listing.
// NextContinuationToken is set only when IsTruncated is true.
type ListObjectsResult struct {
	Objects               []ObjectDescriptor
	IsTruncated           bool
	NextContinuationToken string
}

// ObjectStore is the object-storage capability the gallery depends on.
// Implementations must be safe for concurrent use.
type ObjectStore interface {
	ListObjectsPage(ctx context.Context, opts ListObjectsOptions) (ListObjectsResult, error)
	// GetObject returns the full object body. A nil body with a nil error
	// means the store returned no content for key.
	GetObject(ctx context.Context, key string) ([]byte, error)
	DeleteObject(ctx context.Context, key string) error
	PresignGetObject(ctx context.Context, key string, expires time.Duration) (string, error)
}

// StoreConfig holds the connection settings of a single bucket.
type StoreConfig struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	// UseSSL overrides endpoint-based inference when non-nil.
	UseSSL *bool
}

// MinioStore implements ObjectStore on a single bucket with minio-go.
// It works against AWS S3 and any S3-compatible endpoint.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// shouldUseSSL determines if SSL should be used based on the endpoint.
// Returns false for localhost, 127.0.0.1, and docker service names.
func shouldUseSSL(endpoint string) bool {
	if endpoint == "localhost:9000" || endpoint == "127.0.0.1:9000" {
		return false
	}
	// Docker service names (minio:9000, minio1:9000, ...), not domain names like minio.example.com
	if strings.HasPrefix(endpoint, "minio") && !strings.Contains(strings.Split(endpoint, ":")[0], ".") && strings.Contains(endpoint, ":9000") {
		return false
	}
	return true
}

// NewMinioStore creates the process-wide store client. No network call is made.
func NewMinioStore(cfg StoreConfig) (*MinioStore, error) {
	secure := shouldUseSSL(cfg.Endpoint)
	if cfg.UseSSL != nil {
		secure = *cfg.UseSSL
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, mapError(err, "failed to create object store client")
	}

	return &MinioStore{client: client, bucket: cfg.Bucket}, nil
}

// Bucket returns the bucket the store is bound to.
func (s *MinioStore) Bucket() string {
	return s.bucket
}

// ListObjectsPage returns at most opts.MaxKeys objects under opts.Prefix,
// resuming from opts.ContinuationToken. Each call issues exactly one
// ListObjectsV2 request.
func (s *MinioStore) ListObjectsPage(ctx context.Context, opts ListObjectsOptions) (ListObjectsResult, error) {
	maxKeys := opts.MaxKeys
	if maxKeys <= 0 {
		maxKeys = ListBatchSize
	}

	// minio.Core does not take a context, so honour cancellation up front.
	if err := ctx.Err(); err != nil {
		return ListObjectsResult{}, mapError(err, "failed to list objects")
	}

	core := minio.Core{Client: s.client}
	page, err := core.ListObjectsV2(s.bucket, opts.Prefix, "", opts.ContinuationToken, "", maxKeys)
	if err != nil {
		return ListObjectsResult{}, mapError(err, "failed to list objects")
	}

	objects := make([]ObjectDescriptor, 0, len(page.Contents))
	for _, obj := range page.Contents {
		objects = append(objects, ObjectDescriptor{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}

	result := ListObjectsResult{
		Objects:     objects,
		IsTruncated: page.IsTruncated,
	}
	if page.IsTruncated {
		result.NextContinuationToken = page.NextContinuationToken
	}

	return result, nil
}

// GetObject buffers the whole object body in memory.
func (s *MinioStore) GetObject(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, mapError(err, "failed to get object")
	}
	defer func() { _ = obj.Close() }()

	if _, err := obj.Stat(); err != nil {
		return nil, mapError(err, "failed to stat object")
	}

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, mapError(err, "failed to read object")
	}
	return data, nil
}

// DeleteObject removes key. Removing a missing key is not an error.
func (s *MinioStore) DeleteObject(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return mapError(err, "failed to delete object")
	}
	return nil
}

// PresignGetObject returns a time-limited GET URL for key.
func (s *MinioStore) PresignGetObject(ctx context.Context, key string, expires time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, expires, nil)
	if err != nil {
		return "", mapError(err, "failed to generate presigned URL")
	}
	return u.String(), nil
}
