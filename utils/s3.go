package utils

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectStore stores archived diet plans and dietitian images in S3.
type ObjectStore struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

// NewObjectStore initializes the S3 client for bucket.
func NewObjectStore(ctx context.Context, region, bucket string) (*ObjectStore, error) {
	if bucket == "" {
		return nil, fmt.Errorf("AWS_BUCKET_NAME is not set")
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config, %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &ObjectStore{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
	}, nil
}

// Upload uploads body under objectKey and returns the key
func (o *ObjectStore) Upload(ctx context.Context, body io.Reader, objectKey, contentType string) (string, error) {
	_, err := o.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(o.bucket),
		Key:         aws.String(objectKey),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}
	return objectKey, nil
}

// PresignedURL generates a one-hour download URL for an object
func (o *ObjectStore) PresignedURL(ctx context.Context, objectKey string) (string, error) {
	request, err := o.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(1*time.Hour))
	if err != nil {
		return "", fmt.Errorf("failed to sign request: %w", err)
	}
	return request.URL, nil
}

// Presigner signs download URLs for stored objects.
type Presigner interface {
	PresignedURL(ctx context.Context, objectKey string) (string, error)
}

// PresignImageURL returns img unchanged when it is already a URL or when no
// store is configured; otherwise a presigned URL, falling back to the key.
func PresignImageURL(ctx context.Context, store Presigner, img string) string {
	if img == "" || strings.HasPrefix(img, "http") || store == nil {
		return img
	}
	if url, err := store.PresignedURL(ctx, img); err == nil {
		return url
	}
	return img
}
