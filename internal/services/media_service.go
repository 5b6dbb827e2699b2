package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MediaService stores uploaded pictures in object storage and hands back a
// public URL.
type MediaService interface {
	UploadPicture(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	EnsureBucket(ctx context.Context) error
}

type minioMediaService struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewMinioMediaService(endpoint, accessKey, secretKey string, useSSL bool, bucket, publicURL string) (MediaService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &minioMediaService{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

func (m *minioMediaService) UploadPicture(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}
	_, err := m.client.PutObject(ctx, m.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%s", m.publicURL, m.bucket, objectName), nil
}

func (m *minioMediaService) EnsureBucket(ctx context.Context) error {
	found, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if !found {
		return m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{})
	}
	return nil
}
