package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"

	"motoshop-api/config"
)

// StorageService wraps the object store holding repair photos.
type StorageService struct {
	client *minio.Client
	bucket string
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	service := &StorageService{
		client: client,
		bucket: cfg.MinioBucket,
	}

	if err := service.ensureBucket(context.Background()); err != nil {
		return nil, err
	}

	return service, nil
}

func (s *StorageService) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	logrus.WithField("bucket", s.bucket).Info("Created storage bucket")
	return nil
}

// Upload stores an object under path and returns the path back.
func (s *StorageService) Upload(ctx context.Context, path string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, path, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", path, err)
	}
	return path, nil
}

// PublicURL builds the unauthenticated URL for an object.
func (s *StorageService) PublicURL(path string) string {
	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, path)
}

// SignedURL returns a time-limited download URL for an object.
func (s *StorageService) SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, path, ttl, nil)
	if err != nil {
		return "", fmt.Errorf("failed to sign URL for %s: %w", path, err)
	}
	return u.String(), nil
}

// Remove deletes the given objects. It keeps going on individual failures
// and returns the last error seen.
func (s *StorageService) Remove(paths []string) error {
	ctx := context.Background()
	var lastErr error
	for _, path := range paths {
		if err := s.client.RemoveObject(ctx, s.bucket, path, minio.RemoveObjectOptions{}); err != nil {
			logrus.WithError(err).WithField("path", path).Warn("Failed to remove stored object")
			lastErr = err
		}
	}
	return lastErr
}

// List returns the object names under a folder prefix.
func (s *StorageService) List(ctx context.Context, folder string) ([]string, error) {
	var names []string
	for object := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    folder,
		Recursive: true,
	}) {
		if object.Err != nil {
			return nil, object.Err
		}
		names = append(names, object.Key)
	}
	return names, nil
}
