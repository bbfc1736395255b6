package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sangamhq/sangam/pkg/config"
)

// S3Storage writes uploads to an S3-compatible bucket (AWS or MinIO).
// Stored references keep the same public path shape as local storage so
// the persisted data is backend-agnostic.
type S3Storage struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewS3 creates an object-store backed upload store from cfg.
func NewS3(ctx context.Context, cfg *config.Uploads) (*S3Storage, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("s3 storage: bucket is not configured")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3User,
			cfg.S3Password,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("s3 storage: loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Storage{
		client:  client,
		bucket:  cfg.S3Bucket,
		baseURL: cfg.BaseURL,
	}, nil
}

// Save uploads the content under <category>/<unique name> and returns the
// public reference.
func (s *S3Storage) Save(
	ctx context.Context,
	category, filename string,
	content io.Reader,
) (string, error) {
	key := fmt.Sprintf("%s/%s", category, uniqueName(filename))
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   content,
	})
	if err != nil {
		return "", fmt.Errorf("s3 storage: putting object: %w", err)
	}
	return fmt.Sprintf("%s/%s", s.baseURL, key), nil
}
