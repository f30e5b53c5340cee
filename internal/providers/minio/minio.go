package minio

import (
	"backend/internal/apperrors"
	"backend/internal/config"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// SignedURLTTL is how long presigned download links stay valid. Callers
// must re-request a link per use instead of caching one.
const SignedURLTTL = 60 * time.Second

type MinioProvider struct {
	client    *minio.Client
	bucket    string
	maxSize   int64
	logger    *zap.Logger
	publicURL string
}

func NewMinioProvider(cfg *config.Config, logger *zap.Logger) (*MinioProvider, error) {
	minioURL := cfg.MinioURL
	if !strings.HasPrefix(minioURL, "http://") && !strings.HasPrefix(minioURL, "https://") {
		minioURL = "https://" + minioURL
	}

	u, err := url.Parse(minioURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse minio URL: %w", err)
	}
	secure := u.Scheme == "https"

	logger.Info("Initializing MinIO", zap.String("url", minioURL), zap.String("bucket", cfg.MinioBucket))

	tr := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: false},
	}
	tr.MaxIdleConnsPerHost = 256

	client, err := minio.New(u.Host, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.MinioUser, cfg.MinioPassword, ""),
		Secure:    secure,
		Transport: tr,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	publicURL := cfg.MinioPublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("%s/%s", strings.TrimSuffix(minioURL, "/"), cfg.MinioBucket)
	}

	provider := &MinioProvider{
		client:    client,
		bucket:    cfg.MinioBucket,
		maxSize:   cfg.MaxFileSize,
		logger:    logger,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}

	if err := provider.ensureBucket(); err != nil {
		return nil, err
	}

	return provider, nil
}

func (m *MinioProvider) ensureBucket() error {
	ctx := context.Background()

	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		m.logger.Info("Created MinIO bucket", zap.String("bucket", m.bucket))
	}

	return nil
}

// Upload stores one object. With upsert disabled an already-existing object
// name is an error instead of being overwritten.
func (m *MinioProvider) Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string, upsert bool) error {
	if m.maxSize > 0 && size > m.maxSize {
		return &apperrors.StoreError{
			Op:   "upload",
			Path: objectName,
			Err:  fmt.Errorf("file size %d exceeds maximum allowed size of %d MB", size, m.maxSize/(1024*1024)),
		}
	}

	if !upsert {
		if _, err := m.client.StatObject(ctx, m.bucket, objectName, minio.StatObjectOptions{}); err == nil {
			return &apperrors.StoreError{Op: "upload", Path: objectName, Err: fmt.Errorf("object already exists")}
		}
	}

	_, err := m.client.PutObject(ctx, m.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		if isNoSuchBucket(err) {
			return fmt.Errorf("%w: %q", apperrors.ErrBucketNotFound, m.bucket)
		}
		return &apperrors.StoreError{Op: "upload", Path: objectName, Err: err}
	}

	m.logger.Info("Object uploaded",
		zap.String("object_name", objectName),
		zap.Int64("size", size),
		zap.String("content_type", contentType),
	)

	return nil
}

// PublicURL derives the public URL for an object. It is a pure derivation
// and does not guarantee the object exists.
func (m *MinioProvider) PublicURL(objectName string) string {
	return m.publicURL + "/" + objectName
}

// PresignedURL returns a time-limited download link. When downloadName is
// set the link forces a file download under that name.
func (m *MinioProvider) PresignedURL(ctx context.Context, objectName string, ttl time.Duration, downloadName string) (string, error) {
	reqParams := make(url.Values)
	if downloadName != "" {
		reqParams.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", downloadName))
	}

	u, err := m.client.PresignedGetObject(ctx, m.bucket, objectName, ttl, reqParams)
	if err != nil {
		return "", &apperrors.StoreError{Op: "presign", Path: objectName, Err: err}
	}
	return u.String(), nil
}

// Remove deletes the given objects. Removing an already-absent object is
// not an error.
func (m *MinioProvider) Remove(ctx context.Context, objectNames []string) error {
	for _, name := range objectNames {
		err := m.client.RemoveObject(ctx, m.bucket, name, minio.RemoveObjectOptions{})
		if err != nil {
			if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
				continue
			}
			return &apperrors.StoreError{Op: "remove", Path: name, Err: err}
		}
		m.logger.Info("Object removed", zap.String("object_name", name))
	}
	return nil
}

// ProbeContentLength resolves the byte size of an object by presigning a
// URL and issuing a HEAD request. Best-effort: any failure yields nil so
// listings are never aborted by one missing object.
func (m *MinioProvider) ProbeContentLength(ctx context.Context, objectName string) *int64 {
	signed, err := m.PresignedURL(ctx, objectName, SignedURLTTL, "")
	if err != nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, signed, nil)
	if err != nil {
		return nil
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK || resp.ContentLength < 0 {
		return nil
	}

	size := resp.ContentLength
	return &size
}

// Ping probes the storage backend for health checks.
func (m *MinioProvider) Ping(ctx context.Context) error {
	_, err := m.client.BucketExists(ctx, m.bucket)
	return err
}

func (m *MinioProvider) Bucket() string {
	return m.bucket
}

func isNoSuchBucket(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchBucket"
}
