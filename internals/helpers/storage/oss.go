package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/rs/zerolog/log"
)

// OSSStore keeps every logical bucket as a key prefix inside one Aliyun OSS bucket.
type OSSStore struct {
	bucket     *oss.Bucket
	endpoint   string
	bucketName string
	publicBase string
}

type OSSConfig struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	Bucket     string
	PublicBase string
}

func NewOSSStore(cfg OSSConfig) (*OSSStore, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}
	client, err := oss.New(cfg.Endpoint, cfg.AccessKey, cfg.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bkt, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	if loc, err := client.GetBucketLocation(cfg.Bucket); err != nil {
		var se oss.ServiceError
		if errors.As(err, &se) && se.StatusCode == http.StatusForbidden {
			log.Warn().Str("bucket", cfg.Bucket).Msg("oss: skip location check, access denied")
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		log.Info().Str("bucket", cfg.Bucket).Str("location", loc).Msg("oss bucket ready")
	}

	return &OSSStore{
		bucket:     bkt,
		endpoint:   cfg.Endpoint,
		bucketName: cfg.Bucket,
		publicBase: strings.TrimRight(strings.TrimSpace(cfg.PublicBase), "/"),
	}, nil
}

func objectKey(bucket, path string) string {
	return bucket + "/" + strings.TrimLeft(path, "/")
}

func (s *OSSStore) Upload(ctx context.Context, bucket, path string, body []byte, contentType string, upsert bool) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
	}
	if !upsert {
		opts = append(opts, oss.ForbidOverWrite(true))
	}
	if err := s.bucket.PutObject(objectKey(bucket, path), bytes.NewReader(body), opts...); err != nil {
		return fmt.Errorf("oss upload: %w", err)
	}
	return nil
}

func (s *OSSStore) base() string {
	if s.publicBase != "" {
		return s.publicBase
	}
	end := strings.TrimPrefix(strings.TrimPrefix(s.endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s", s.bucketName, end)
}

func (s *OSSStore) PublicURL(bucket, path string) string {
	return s.base() + "/" + escapePath(objectKey(bucket, path))
}

func (s *OSSStore) Delete(ctx context.Context, bucket, path string) error {
	if err := s.bucket.DeleteObject(objectKey(bucket, path), oss.WithContext(ctx)); err != nil {
		var se oss.ServiceError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("oss delete: %w", err)
	}
	return nil
}

func (s *OSSStore) PathFromURL(bucket, publicURL string) (string, error) {
	prefix := s.base() + "/" + bucket + "/"
	if !strings.HasPrefix(publicURL, prefix) {
		return "", fmt.Errorf("%w: %s", ErrForeignURL, bucket)
	}
	p := strings.TrimPrefix(publicURL, prefix)
	if j := strings.IndexAny(p, "?#"); j >= 0 {
		p = p[:j]
	}
	if p == "" {
		return "", fmt.Errorf("%w: empty path", ErrForeignURL)
	}
	return p, nil
}
