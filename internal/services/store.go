package services

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// maxListBatch is the largest page the stores accept per listing call.
const maxListBatch = 1000

// StoreConfig holds the connection info for one deployment's bucket.
type StoreConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

// ListObjectsOptions parameterizes one delimited, token-paginated listing call.
type ListObjectsOptions struct {
	Prefix            string
	Delimiter         string
	MaxKeys           int
	ContinuationToken string
}

// ObjectInfo is the listing metadata for one stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// ListObjectsResult contains one page of a delimited listing.
type ListObjectsResult struct {
	CommonPrefixes        []string
	Objects               []ObjectInfo
	IsTruncated           bool
	NextContinuationToken string
}

// ObjectError is one per-key failure reported by a batch delete.
type ObjectError struct {
	Key     string
	Message string
}

// ObjectStore is the capability set the browser needs from a store. Each
// instance is bound to one bucket on one endpoint; it is safe for
// concurrent use once constructed.
type ObjectStore interface {
	ListObjects(ctx context.Context, opts ListObjectsOptions) (ListObjectsResult, error)
	PresignGet(ctx context.Context, key string, expires time.Duration) (*url.URL, error)
	PutObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string, metadata map[string]string) error
	HeadObject(ctx context.Context, key string) error
	RemoveObjects(ctx context.Context, keys []string) []ObjectError
}

// MinioStore implements ObjectStore over minio-go against any
// S3-compatible endpoint (AWS S3, Cloudflare R2).
type MinioStore struct {
	core   *minio.Core
	bucket string
}

// NewStore connects a MinioStore to the configured bucket.
func NewStore(cfg StoreConfig) (*MinioStore, error) {
	core, err := minio.NewCore(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStore{core: core, bucket: cfg.Bucket}, nil
}

func (s *MinioStore) ListObjects(ctx context.Context, opts ListObjectsOptions) (ListObjectsResult, error) {
	maxKeys := opts.MaxKeys
	if maxKeys <= 0 || maxKeys > maxListBatch {
		maxKeys = maxListBatch
	}

	// Core.ListObjectsV2 does not take a context.
	res, err := s.core.ListObjectsV2(s.bucket, opts.Prefix, "", opts.ContinuationToken, opts.Delimiter, maxKeys)
	if err != nil {
		return ListObjectsResult{}, err
	}

	out := ListObjectsResult{
		IsTruncated:           res.IsTruncated,
		NextContinuationToken: res.NextContinuationToken,
	}
	for _, cp := range res.CommonPrefixes {
		out.CommonPrefixes = append(out.CommonPrefixes, cp.Prefix)
	}
	for _, obj := range res.Contents {
		out.Objects = append(out.Objects, ObjectInfo{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}
	return out, nil
}

func (s *MinioStore) PresignGet(ctx context.Context, key string, expires time.Duration) (*url.URL, error) {
	return s.core.PresignedGetObject(ctx, s.bucket, key, expires, nil)
}

func (s *MinioStore) PutObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string, metadata map[string]string) error {
	_, err := s.core.Client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: metadata,
	})
	return err
}

func (s *MinioStore) HeadObject(ctx context.Context, key string) error {
	_, err := s.core.Client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	return err
}

func (s *MinioStore) RemoveObjects(ctx context.Context, keys []string) []ObjectError {
	objectsCh := make(chan minio.ObjectInfo, len(keys))
	for _, key := range keys {
		objectsCh <- minio.ObjectInfo{Key: key}
	}
	close(objectsCh)

	var errs []ObjectError
	for rerr := range s.core.Client.RemoveObjects(ctx, s.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		errs = append(errs, ObjectError{Key: rerr.ObjectName, Message: rerr.Err.Error()})
	}
	return errs
}

var _ ObjectStore = (*MinioStore)(nil)
