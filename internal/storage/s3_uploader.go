package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// PutObjectAPI is the subset of the S3 client used for uploads.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// s3Uploader implements Uploader on AWS S3.
type s3Uploader struct {
	client  PutObjectAPI
	bucket  string
	prefix  string
	baseURL string
	logger  zerolog.Logger
}

// NewS3Uploader creates an S3 uploader using the default AWS credential chain.
// When publicBaseURL is empty, the virtual-hosted bucket URL is used.
func NewS3Uploader(ctx context.Context, bucket, region, prefix, publicBaseURL string, logger zerolog.Logger) (Uploader, error) {
	logger = logger.With().Str("component", "s3-uploader").Logger()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	if publicBaseURL == "" {
		publicBaseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("S3 uploader initialised")

	return NewS3UploaderWithClient(s3.NewFromConfig(cfg), bucket, prefix, publicBaseURL, logger), nil
}

// NewS3UploaderWithClient creates an S3 uploader around an existing client.
func NewS3UploaderWithClient(client PutObjectAPI, bucket, prefix, publicBaseURL string, logger zerolog.Logger) Uploader {
	return &s3Uploader{
		client:  client,
		bucket:  bucket,
		prefix:  prefix,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:  logger,
	}
}

// Upload puts body into the bucket under prefix+key.
func (u *s3Uploader) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	objectKey := u.prefix + key

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(objectKey),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		u.logger.Error().
			Err(err).
			Str("bucket", u.bucket).
			Str("key", objectKey).
			Msg("failed to put object to S3")
		return "", fmt.Errorf("failed to put object to S3 (bucket=%s, key=%s): %w", u.bucket, objectKey, err)
	}

	u.logger.Info().
		Str("bucket", u.bucket).
		Str("key", objectKey).
		Msg("object uploaded to S3")

	return u.baseURL + "/" + objectKey, nil
}
