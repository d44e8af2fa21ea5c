package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// fileUploader implements Uploader on the local file system.
type fileUploader struct {
	dir     string
	baseURL string
	logger  zerolog.Logger
}

// NewFileUploader creates an uploader writing under dir. Returned URLs are
// baseURL joined with the object key.
func NewFileUploader(dir, baseURL string, logger zerolog.Logger) Uploader {
	return &fileUploader{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger.With().Str("component", "file-uploader").Logger(),
	}
}

// Upload writes body to dir/key.
func (u *fileUploader) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	clean := path.Clean("/" + key)[1:]
	if clean == "" {
		return "", fmt.Errorf("invalid object key %q", key)
	}

	target := filepath.Join(u.dir, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		u.logger.Error().Err(err).Str("path", target).Msg("failed to create media directory")
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		u.logger.Error().Err(err).Str("path", target).Msg("failed to create temp file")
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	written, err := io.Copy(tmp, &ctxReader{ctx: ctx, r: body})
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		u.logger.Error().Err(err).Str("path", target).Msg("failed to write media file")
		return "", fmt.Errorf("failed to write media file %s: %w", clean, err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("failed to move media file into place: %w", err)
	}

	u.logger.Info().
		Str("key", clean).
		Str("content_type", contentType).
		Int64("bytes", written).
		Msg("media file stored locally")

	return u.baseURL + "/" + clean, nil
}

// ctxReader stops a copy once the context is cancelled.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
