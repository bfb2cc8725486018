package main

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/iconluxury/bucketd/internal/services"
	"github.com/stretchr/testify/mock"
)

// MockObjectStore implements services.ObjectStore for testing
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) ListObjects(ctx context.Context, opts services.ListObjectsOptions) (services.ListObjectsResult, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(services.ListObjectsResult), args.Error(1)
}

func (m *MockObjectStore) PresignGet(ctx context.Context, key string, expires time.Duration) (*url.URL, error) {
	args := m.Called(ctx, key, expires)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*url.URL), args.Error(1)
}

func (m *MockObjectStore) PutObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string, metadata map[string]string) error {
	args := m.Called(ctx, key, reader, size, contentType, metadata)
	return args.Error(0)
}

func (m *MockObjectStore) HeadObject(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockObjectStore) RemoveObjects(ctx context.Context, keys []string) []services.ObjectError {
	args := m.Called(ctx, keys)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]services.ObjectError)
}

var _ services.ObjectStore = (*MockObjectStore)(nil)
