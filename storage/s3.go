// Package storage holds the object-storage client used for product and
// profile images.
package storage

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"

	appconfig "github.com/trovi/trovi-api/config"
)

// Storage uploads a multipart file and returns its public URL, or removes a
// previously stored object by that URL.
type Storage interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (string, error)
	Delete(ctx context.Context, fileURL string) error
}

type S3Storage struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
}

func NewS3(cfg *appconfig.Config) (*S3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.Region = cfg.AWSRegion
	})

	_, err = client.HeadBucket(context.TODO(), &s3.HeadBucketInput{
		Bucket: aws.String(cfg.AWSBucket),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound" {
			return nil, fmt.Errorf("bucket '%s' does not exist", cfg.AWSBucket)
		}
		return nil, fmt.Errorf("failed to check if bucket exists: %w", err)
	}

	return &S3Storage{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   cfg.AWSBucket,
	}, nil
}

func (s *S3Storage) Upload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("error opening file %s: %w", file.Filename, err)
	}
	defer f.Close()

	// Random key so repeated uploads of the same filename never overwrite.
	key := uuid.NewString() + filepath.Ext(file.Filename)

	result, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        f,
		ACL:         "public-read",
		ContentType: aws.String(file.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("error uploading file %s: %w", file.Filename, err)
	}

	return result.Location, nil
}

func (s *S3Storage) Delete(ctx context.Context, fileURL string) error {
	parsed, err := url.Parse(fileURL)
	if err != nil {
		return fmt.Errorf("invalid stored file URL %s: %w", fileURL, err)
	}

	key := strings.TrimPrefix(parsed.Path, "/")
	if key == "" {
		return fmt.Errorf("stored file URL %s has no object key", fileURL)
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("error deleting object %s: %w", key, err)
	}

	return nil
}
