// Package models contains data structures used across handlers
package models

import "time"

// ObjectEntry is one row of a listing: either a folder (common prefix)
// or a file. Folders carry a count and a null lastModified; files carry
// size and lastModified and a null count.
type ObjectEntry struct {
	Type         string     `json:"type"`
	Name         string     `json:"name"`
	Path         string     `json:"path"`
	Size         *int64     `json:"size,omitempty"`
	LastModified *time.Time `json:"lastModified"`
	Count        *int64     `json:"count"`
}

// Page is the result of one listing call.
type Page struct {
	Objects               []ObjectEntry `json:"objects"`
	HasMore               bool          `json:"hasMore"`
	NextContinuationToken string        `json:"nextContinuationToken,omitempty"`
	TotalItems            int           `json:"totalItems"`
	Page                  int           `json:"page"`
	PageSize              int           `json:"pageSize"`
}

// SignResponse carries a presigned GET URL.
type SignResponse struct {
	SignedURL string `json:"signedUrl"`
	ExpiresIn int    `json:"expiresIn"`
}

// UploadSummary reports a completed upload.
type UploadSummary struct {
	Key         string `json:"key"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	SizeHuman   string `json:"sizeHuman"`
}

// DeleteSummary reports a completed batch delete.
type DeleteSummary struct {
	Deleted int    `json:"deleted"`
	Message string `json:"message"`
}

// ErrorResponse is the JSON body for every error status.
type ErrorResponse struct {
	Error string `json:"error"`
}
