// Package storage keeps album cover images in a minio bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewMinioStorage(endpoint, accessKey, secretKey, bucket, publicURL string, useSSL bool) (*MinioStorage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio connect: %w", err)
	}

	return &MinioStorage{
		client:    client,
		bucket:    bucket,
		publicURL: publicURL,
	}, nil
}

// UploadCover stores a cover image under a generated name and returns its
// public URL.
func (s *MinioStorage) UploadCover(ctx context.Context, r io.Reader, size int64, contentType string) (string, error) {
	ext := ""
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		ext = exts[0]
	}
	objectName := "cover-" + uuid.NewString() + ext

	_, err := s.client.PutObject(ctx, s.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("minio put %s: %w", objectName, err)
	}
	return s.publicURL + "/" + s.bucket + "/" + objectName, nil
}

// GetCover streams a stored cover back, for serving behind the HTTP surface.
func (s *MinioStorage) GetCover(ctx context.Context, objectName string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("minio get %s: %w", objectName, err)
	}
	return obj, nil
}
