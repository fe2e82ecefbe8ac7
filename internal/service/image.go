package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/recipebook/backend/config"
	"github.com/recipebook/backend/pkg/logger"
)

// S3ImageStore stores recipe images in an S3 bucket with public-read
// objects.
type S3ImageStore struct {
	s3Config *config.S3Config
}

var _ ImageStore = (*S3ImageStore)(nil)

// NewS3ImageStore creates an ImageStore backed by the configured bucket
func NewS3ImageStore(s3Config *config.S3Config) *S3ImageStore {
	return &S3ImageStore{s3Config: s3Config}
}

// Upload puts the image data under the given key and returns its public URL
func (s *S3ImageStore) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	url := s.s3Config.ObjectURL(key)
	logger.Get().Debug().Str("key", key).Msg("uploaded recipe image")
	return url, nil
}
