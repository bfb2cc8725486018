// Package utils provides shared utility functions
package utils

import "github.com/dustin/go-humanize"

// FormatBytes converts bytes to human-readable IEC format (e.g., "1.5 GiB")
func FormatBytes(bytes uint64) string {
	return humanize.IBytes(bytes)
}

// FormatFileSize converts file size (int64) to human-readable format
func FormatFileSize(size int64) string {
	if size < 0 {
		return "0 B"
	}
	return FormatBytes(uint64(size))
}
