// Package storage is the blob store used for photos, event media and avatars.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	ErrNotFound   = errors.New("storage: object not found")
	ErrForeignURL = errors.New("storage: url does not belong to bucket")
)

// Store accepts uploads into named buckets and hands back stable public URLs.
type Store interface {
	Upload(ctx context.Context, bucket, path string, body []byte, contentType string, upsert bool) error
	PublicURL(bucket, path string) string
	Delete(ctx context.Context, bucket, path string) error
	// PathFromURL reverses PublicURL.
	PathFromURL(bucket, publicURL string) (string, error)
}

// publicPathFromURL splits a public URL on "/object/public/{bucket}/" and returns the
// object path without query or fragment.
func publicPathFromURL(bucket, publicURL string) (string, error) {
	if strings.TrimSpace(publicURL) == "" {
		return "", fmt.Errorf("%w: empty url", ErrForeignURL)
	}
	marker := "/object/public/" + bucket + "/"
	i := strings.Index(publicURL, marker)
	if i < 0 {
		return "", fmt.Errorf("%w: %s", ErrForeignURL, bucket)
	}
	p := publicURL[i+len(marker):]
	if j := strings.IndexAny(p, "?#"); j >= 0 {
		p = p[:j]
	}
	if unescaped, err := url.PathUnescape(p); err == nil {
		p = unescaped
	}
	if p == "" {
		return "", fmt.Errorf("%w: empty path", ErrForeignURL)
	}
	return p, nil
}

func escapePath(p string) string {
	parts := strings.Split(strings.Trim(p, "/"), "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
