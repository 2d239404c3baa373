package storage

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// SupabaseStore talks to the Supabase Storage REST API with the service key.
type SupabaseStore struct {
	projectURL string
	client     *resty.Client
}

func NewSupabaseStore(projectURL, serviceKey string) (*SupabaseStore, error) {
	projectURL = strings.TrimRight(strings.TrimSpace(projectURL), "/")
	if projectURL == "" || strings.TrimSpace(serviceKey) == "" {
		return nil, fmt.Errorf("missing env: SUPABASE_PROJECT_URL/SUPABASE_SERVICE_KEY")
	}
	client := resty.New().
		SetBaseURL(projectURL+"/storage/v1").
		SetAuthToken(serviceKey).
		SetHeader("apikey", serviceKey).
		SetTimeout(60 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(300 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})
	return &SupabaseStore{projectURL: projectURL, client: client}, nil
}

func (s *SupabaseStore) Upload(ctx context.Context, bucket, path string, body []byte, contentType string, upsert bool) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetHeader("Cache-Control", "max-age=3600").
		SetHeader("x-upsert", fmt.Sprintf("%t", upsert)).
		SetBody(body).
		Post("/object/" + bucket + "/" + escapePath(path))
	if err != nil {
		return fmt.Errorf("supabase upload: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("supabase upload: status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

func (s *SupabaseStore) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.projectURL, bucket, escapePath(path))
}

func (s *SupabaseStore) Delete(ctx context.Context, bucket, path string) error {
	resp, err := s.client.R().
		SetContext(ctx).
		Delete("/object/" + bucket + "/" + escapePath(path))
	if err != nil {
		return fmt.Errorf("supabase delete: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.IsError() {
		return fmt.Errorf("supabase delete: status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

func (s *SupabaseStore) PathFromURL(bucket, publicURL string) (string, error) {
	return publicPathFromURL(bucket, publicURL)
}
