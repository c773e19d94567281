// Package storage sube imágenes de artículos a un bucket S3 compatible (MinIO).
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/magazzino-api/internal/application/usecase"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var _ usecase.ImageStore = (*MinioImageStore)(nil)

// Config conexión al bucket. PublicURL es la base con la que se construyen las URLs devueltas;
// vacía, se usa el endpoint.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

// MinioImageStore implementa usecase.ImageStore.
type MinioImageStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewMinioImageStore crea el cliente y el bucket si no existe.
func NewMinioImageStore(ctx context.Context, cfg Config) (*MinioImageStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio: cliente: %w", err)
	}
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio: comprobar bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio: crear bucket: %w", err)
		}
	}
	return &MinioImageStore{client: client, bucket: cfg.Bucket, baseURL: publicBase(cfg)}, nil
}

// Put sube el objeto y devuelve su URL pública.
func (s *MinioImageStore) Put(ctx context.Context, key, contentType string, r io.Reader, size int64) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("minio: subir %s: %w", key, err)
	}
	return ObjectURL(s.baseURL, s.bucket, key), nil
}

func publicBase(cfg Config) string {
	if cfg.PublicURL != "" {
		return strings.TrimRight(cfg.PublicURL, "/")
	}
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return scheme + "://" + cfg.Endpoint
}

// ObjectURL compone base/bucket/key.
func ObjectURL(base, bucket, key string) string {
	return strings.TrimRight(base, "/") + "/" + bucket + "/" + strings.TrimLeft(key, "/")
}
