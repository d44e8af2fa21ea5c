package storage

import (
	"context"
	"io"
)

// Uploader stores profile photos and other user media.
type Uploader interface {
	// Upload writes body under key and returns the URL clients fetch it from.
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}
