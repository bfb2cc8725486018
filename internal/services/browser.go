package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/iconluxury/bucketd/internal/models"
	"github.com/iconluxury/bucketd/internal/utils"
	"github.com/iconluxury/bucketd/pkg/logger"
)

const (
	// DefaultPageSize is the number of top-level entries returned when the
	// client does not ask for a page size.
	DefaultPageSize = 10

	// MaxUploadSize is the upload limit in bytes (100 MiB).
	MaxUploadSize = 100 << 20

	// MaxSignExpiry is the longest allowed presign lifetime in seconds (7 days).
	MaxSignExpiry = 604800

	delimiter = "/"
)

// ObjectBrowser exposes the folder-aware operations over one bucket-bound
// store. Stateless apart from the store handle; safe for concurrent use.
type ObjectBrowser struct {
	store ObjectStore
}

func NewObjectBrowser(store ObjectStore) *ObjectBrowser {
	return &ObjectBrowser{store: store}
}

// ListPage turns a prefix plus pagination cursor into one folder/file page.
// It issues exactly one delimited listing call, then enriches each folder
// with a FolderCount walk. Folder counting is synchronous and can be slow
// for large folders; counts stay exact rather than cached.
func (b *ObjectBrowser) ListPage(ctx context.Context, prefix string, page, pageSize int, cursor string) (*models.Page, error) {
	if page < 1 || pageSize < 1 {
		return nil, invalidArgf("page and pageSize must be >= 1")
	}

	res, err := b.store.ListObjects(ctx, ListObjectsOptions{
		Prefix:            prefix,
		Delimiter:         delimiter,
		MaxKeys:           pageSize,
		ContinuationToken: cursor,
	})
	if err != nil {
		return nil, classifyStoreError(err, "list")
	}

	entries := b.collectEntries(ctx, prefix, res)
	result := &models.Page{
		Objects:    entries,
		HasMore:    res.IsTruncated,
		TotalItems: len(entries),
		Page:       page,
		PageSize:   pageSize,
	}
	if res.IsTruncated {
		result.NextContinuationToken = res.NextContinuationToken
	}
	return result, nil
}

// collectEntries classifies one listing page into folder entries followed
// by file entries, both in store order.
func (b *ObjectBrowser) collectEntries(ctx context.Context, prefix string, res ListObjectsResult) []models.ObjectEntry {
	entries := make([]models.ObjectEntry, 0, len(res.CommonPrefixes)+len(res.Objects))

	for _, folderPath := range res.CommonPrefixes {
		trimmed := strings.TrimSuffix(folderPath, delimiter)
		name := trimmed
		if i := strings.LastIndex(trimmed, delimiter); i >= 0 {
			name = trimmed[i+1:]
		}
		if name == "" {
			continue
		}
		count := b.FolderCount(ctx, folderPath)
		entries = append(entries, models.ObjectEntry{
			Type:  "folder",
			Name:  name,
			Path:  folderPath,
			Count: &count,
		})
	}

	for _, obj := range res.Objects {
		// Skip the folder marker itself and any nested markers.
		if obj.Key == prefix || strings.HasSuffix(obj.Key, delimiter) {
			continue
		}
		name := strings.TrimPrefix(obj.Key, prefix)
		name = strings.TrimPrefix(name, delimiter)
		if name == "" {
			continue
		}
		size := obj.Size
		lastModified := obj.LastModified
		entries = append(entries, models.ObjectEntry{
			Type:         "file",
			Name:         name,
			Path:         obj.Key,
			Size:         &size,
			LastModified: &lastModified,
		})
	}

	return entries
}

// FolderCount counts every object at any depth under prefix by walking the
// undelimited listing in batches of 1000. Counts are advisory: any failure
// mid-walk is logged and collapsed to zero, never surfaced to the caller.
func (b *ObjectBrowser) FolderCount(ctx context.Context, prefix string) int64 {
	var count int64
	var token string
	for {
		res, err := b.store.ListObjects(ctx, ListObjectsOptions{
			Prefix:            prefix,
			MaxKeys:           maxListBatch,
			ContinuationToken: token,
		})
		if err != nil {
			logger.Log.Warn().Err(err).Str("prefix", prefix).Msg("folder count failed, reporting zero")
			return 0
		}
		count += int64(len(res.Objects))
		if res.NextContinuationToken == "" {
			return count
		}
		token = res.NextContinuationToken
	}
}

// SignURL produces a time-limited GET URL for one object.
func (b *ObjectBrowser) SignURL(ctx context.Context, key string, expiresIn int) (*models.SignResponse, error) {
	if key == "" {
		return nil, invalidArgf("key is required")
	}
	if expiresIn < 1 || expiresIn > MaxSignExpiry {
		return nil, invalidArgf("expiresIn must be between 1 and %d seconds", MaxSignExpiry)
	}

	signed, err := b.store.PresignGet(ctx, key, time.Duration(expiresIn)*time.Second)
	if err != nil {
		return nil, classifyStoreError(err, "sign")
	}
	return &models.SignResponse{SignedURL: signed.String(), ExpiresIn: expiresIn}, nil
}

// Upload streams one file to destPath/filename after validating the size
// bounds and sanitizing the destination. The write is confirmed with a
// HEAD on the new key; a failed check fails the whole operation even
// though the bytes may already be stored.
func (b *ObjectBrowser) Upload(ctx context.Context, reader io.Reader, filename string, size int64, contentType, destPath string) (*models.UploadSummary, error) {
	if filename == "" {
		return nil, invalidArgf("filename is required")
	}
	if destPath == "" {
		return nil, invalidArgf("destination path is required")
	}
	if size <= 0 {
		return nil, invalidArgf("file is empty")
	}
	if size > MaxUploadSize {
		return nil, invalidArgf("file exceeds the %d byte limit", MaxUploadSize)
	}

	dest, err := sanitizeKey(destPath)
	if err != nil {
		return nil, err
	}
	key := strings.TrimSuffix(dest, delimiter) + delimiter + filename

	if contentType == "" || contentType == "application/octet-stream" {
		contentType = detectContentType(filename)
	}

	metadata := map[string]string{
		"original-filename": filename,
		"upload-timestamp":  time.Now().UTC().Format(time.RFC3339),
	}
	if err := b.store.PutObject(ctx, key, reader, size, contentType, metadata); err != nil {
		return nil, classifyStoreError(err, "upload")
	}

	if err := b.store.HeadObject(ctx, key); err != nil {
		return nil, &BrowserError{Kind: KindStore, Message: "upload verification failed", Err: err}
	}

	return &models.UploadSummary{
		Key:         key,
		ContentType: contentType,
		Size:        size,
		SizeHuman:   utils.FormatFileSize(size),
	}, nil
}

// DeleteMany expands folder paths (trailing "/") into every key under them
// and batch-deletes the whole set with quiet semantics: zero per-object
// errors is complete success, anything else fails the call as a whole.
func (b *ObjectBrowser) DeleteMany(ctx context.Context, paths []string) (*models.DeleteSummary, error) {
	if len(paths) == 0 {
		return nil, invalidArgf("paths must not be empty")
	}

	var keys []string
	for _, p := range paths {
		clean, err := sanitizeKey(p)
		if err != nil {
			return nil, err
		}
		if strings.HasSuffix(clean, delimiter) {
			expanded, err := b.listAllKeys(ctx, clean)
			if err != nil {
				return nil, classifyStoreError(err, "delete")
			}
			keys = append(keys, expanded...)
		} else {
			keys = append(keys, clean)
		}
	}

	if len(keys) == 0 {
		return &models.DeleteSummary{Deleted: 0, Message: "nothing to delete"}, nil
	}

	objErrs := b.store.RemoveObjects(ctx, keys)
	if len(objErrs) > 0 {
		parts := make([]string, 0, len(objErrs))
		for _, oe := range objErrs {
			parts = append(parts, fmt.Sprintf("%s: %s", oe.Key, oe.Message))
		}
		return nil, &BrowserError{
			Kind:    KindStore,
			Message: "delete failed for " + strings.Join(parts, "; "),
		}
	}

	return &models.DeleteSummary{
		Deleted: len(keys),
		Message: fmt.Sprintf("deleted %d objects", len(keys)),
	}, nil
}

// listAllKeys exhausts the undelimited listing under prefix, following
// continuation tokens in batches of 1000.
func (b *ObjectBrowser) listAllKeys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	var token string
	for {
		res, err := b.store.ListObjects(ctx, ListObjectsOptions{
			Prefix:            prefix,
			MaxKeys:           maxListBatch,
			ContinuationToken: token,
		})
		if err != nil {
			return nil, err
		}
		for _, obj := range res.Objects {
			keys = append(keys, obj.Key)
		}
		if res.NextContinuationToken == "" {
			return keys, nil
		}
		token = res.NextContinuationToken
	}
}

// ExportCSV walks every page under prefix with the same classification as
// ListPage, accumulates the rows in memory, and serializes them. Returns
// the CSV bytes and a timestamped attachment filename.
func (b *ObjectBrowser) ExportCSV(ctx context.Context, prefix string) ([]byte, string, error) {
	var entries []models.ObjectEntry
	var token string
	for {
		res, err := b.store.ListObjects(ctx, ListObjectsOptions{
			Prefix:            prefix,
			Delimiter:         delimiter,
			MaxKeys:           maxListBatch,
			ContinuationToken: token,
		})
		if err != nil {
			return nil, "", classifyStoreError(err, "export")
		}
		entries = append(entries, b.collectEntries(ctx, prefix, res)...)
		if res.NextContinuationToken == "" {
			break
		}
		token = res.NextContinuationToken
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"type", "name", "path", "size", "lastModified", "count"})
	for _, e := range entries {
		var size, lastModified, count string
		if e.Size != nil {
			size = strconv.FormatInt(*e.Size, 10)
		}
		if e.LastModified != nil {
			lastModified = e.LastModified.UTC().Format(time.RFC3339)
		}
		if e.Count != nil {
			count = strconv.FormatInt(*e.Count, 10)
		}
		_ = w.Write([]string{e.Type, e.Name, e.Path, size, lastModified, count})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", &BrowserError{Kind: KindInternal, Message: "csv serialization failed", Err: err}
	}

	filename := "export-" + time.Now().UTC().Format("20060102T150405Z") + ".csv"
	return buf.Bytes(), filename, nil
}

// detectContentType infers a content type from the filename's extension,
// falling back to octet-stream.
func detectContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	// Extensions the platform mime table commonly misses.
	types := map[string]string{
		".md":      "text/markdown",
		".webp":    "image/webp",
		".parquet": "application/octet-stream",
		".yaml":    "application/yaml",
		".yml":     "application/yaml",
	}
	if ct, ok := types[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}
