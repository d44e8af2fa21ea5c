package storage

import (
	"bytes"
	"context"
	"io"

	"github.com/rs/zerolog"
)

// fallbackUploader tries S3 first, then falls back to the local file system.
type fallbackUploader struct {
	primary  Uploader
	fallback Uploader
	logger   zerolog.Logger
}

// NewFallbackUploader creates an uploader that tries primary and, on failure,
// stores the same bytes with fallback. A nil primary uses fallback only.
func NewFallbackUploader(primary, fallback Uploader, logger zerolog.Logger) Uploader {
	return &fallbackUploader{
		primary:  primary,
		fallback: fallback,
		logger:   logger.With().Str("component", "fallback-uploader").Logger(),
	}
}

// Upload buffers body so it can be replayed against the fallback.
func (u *fallbackUploader) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	if u.primary == nil {
		return u.fallback.Upload(ctx, key, contentType, body)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	url, err := u.primary.Upload(ctx, key, contentType, bytes.NewReader(data))
	if err == nil {
		return url, nil
	}

	u.logger.Warn().
		Err(err).
		Str("key", key).
		Msg("primary upload failed, falling back to local storage")

	return u.fallback.Upload(ctx, key, contentType, bytes.NewReader(data))
}
