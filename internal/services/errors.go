package services

import (
	"fmt"

	"github.com/minio/minio-go/v7"
)

// ErrorKind classifies a browser failure so the HTTP layer can pick a
// status without inspecting raw store errors.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindInvalidArgument
	KindNotFound
	KindPermissionDenied
	KindStore
)

// BrowserError is the only error type the browser operations return.
// Validation errors are raised before any store call; store errors are
// classified at the call site and never surfaced raw.
type BrowserError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *BrowserError) Error() string {
	return e.Message
}

func (e *BrowserError) Unwrap() error {
	return e.Err
}

func invalidArgf(format string, args ...any) *BrowserError {
	return &BrowserError{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// classifyStoreError maps a store error onto the taxonomy by its
// S3 error code. Errors without a code are unanticipated ones.
func classifyStoreError(err error, op string) *BrowserError {
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchBucket":
		return &BrowserError{Kind: KindNotFound, Message: "bucket not found", Err: err}
	case "NoSuchKey":
		return &BrowserError{Kind: KindNotFound, Message: "object not found", Err: err}
	case "AccessDenied":
		return &BrowserError{Kind: KindPermissionDenied, Message: "access denied", Err: err}
	case "InvalidToken":
		return &BrowserError{Kind: KindInvalidArgument, Message: "invalid continuation token", Err: err}
	case "":
		return &BrowserError{Kind: KindInternal, Message: "internal error during " + op, Err: err}
	default:
		msg := resp.Message
		if msg == "" {
			msg = resp.Code
		}
		return &BrowserError{Kind: KindStore, Message: fmt.Sprintf("store error during %s: %s", op, msg), Err: err}
	}
}
