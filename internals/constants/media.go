package constants

import (
	"path/filepath"
	"strings"
)

// MediaKind tags an uploaded asset so renderers never guess from the URL.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

func (k MediaKind) Valid() bool {
	return k == MediaImage || k == MediaVideo
}

// MediaKindFromMIME maps a content type to its kind; ok is false for anything else.
func MediaKindFromMIME(contentType string) (MediaKind, bool) {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	switch {
	case strings.HasPrefix(ct, "image/"):
		return MediaImage, true
	case strings.HasPrefix(ct, "video/"):
		return MediaVideo, true
	default:
		return "", false
	}
}

// MediaKindFromExt backfills rows stored before media kinds were recorded.
func MediaKindFromExt(name string) MediaKind {
	name = strings.ToLower(name)
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	switch filepath.Ext(name) {
	case ".mp4", ".webm", ".mov":
		return MediaVideo
	default:
		return MediaImage
	}
}
