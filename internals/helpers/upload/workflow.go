// Package upload validates a selected file, stores it and returns its public URL.
package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"basamu_backend/internals/constants"
	"basamu_backend/internals/helpers/storage"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file too large")
	ErrEmptyFile       = errors.New("empty file")
	ErrUploadFailed    = errors.New("upload failed")
)

// File is what the client selected: bytes plus the declared type and size.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

type Result struct {
	URL       string              `json:"url"`
	Bucket    string              `json:"bucket"`
	Path      string              `json:"path"`
	MediaKind constants.MediaKind `json:"media_kind"`
	Size      int64               `json:"size"`
}

// Observer receives one call per store attempt with outcome "ok" or "failed".
type Observer func(bucket, outcome string)

type Workflow struct {
	store     storage.Store
	optimizer *ImageOptimizer
	now       func() time.Time
	observe   Observer
}

type Option func(*Workflow)

func WithOptimizer(o *ImageOptimizer) Option { return func(w *Workflow) { w.optimizer = o } }
func WithClock(now func() time.Time) Option { return func(w *Workflow) { w.now = now } }
func WithObserver(o Observer) Option { return func(w *Workflow) { w.observe = o } }

func New(store storage.Store, opts ...Option) *Workflow {
	w := &Workflow{store: store, now: time.Now}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workflow) Store() storage.Store { return w.store }

// Upload stores f under a generated, collision-resistant name.
func (w *Workflow) Upload(ctx context.Context, f File, bucket string, c Constraints) (Result, error) {
	return w.put(ctx, f, bucket, "", false, c)
}

// UploadAt stores f at a caller-chosen path (the extension is taken from f), replacing
// any existing object.
func (w *Workflow) UploadAt(ctx context.Context, f File, bucket, pathWithoutExt string, c Constraints) (Result, error) {
	return w.put(ctx, f, bucket, pathWithoutExt, true, c)
}

func (w *Workflow) put(ctx context.Context, f File, bucket, fixed string, upsert bool, c Constraints) (Result, error) {
	rule, kind, err := c.Check(f.ContentType, f.Size)
	if err != nil {
		return Result{}, err
	}

	data, err := io.ReadAll(io.LimitReader(f.Body, rule.MaxBytes+1))
	if err != nil {
		return Result{}, fmt.Errorf("read file: %w", err)
	}
	if int64(len(data)) > rule.MaxBytes {
		return Result{}, fmt.Errorf("%w: %s is limited to %d MB", ErrFileTooLarge, strings.TrimSuffix(rule.Prefix, "/"), rule.MaxBytes/constants.MB)
	}
	if len(data) == 0 {
		return Result{}, ErrEmptyFile
	}

	contentType := f.ContentType
	if kind == constants.MediaImage && c.Optimize && w.optimizer != nil {
		data = w.optimizer.Optimize(data, contentType)
	}

	ext := extensionFor(f.Name, contentType)
	path := fixed + ext
	if fixed == "" {
		path = w.uniqueName(ext)
	}

	if err := w.store.Upload(ctx, bucket, path, data, contentType, upsert); err != nil {
		w.report(bucket, "failed")
		log.Error().Err(err).Str("bucket", bucket).Str("path", path).Msg("upload to blob store failed")
		return Result{}, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	w.report(bucket, "ok")

	return Result{
		URL:       w.store.PublicURL(bucket, path),
		Bucket:    bucket,
		Path:      path,
		MediaKind: kind,
		Size:      int64(len(data)),
	}, nil
}

func (w *Workflow) report(bucket, outcome string) {
	if w.observe != nil {
		w.observe(bucket, outcome)
	}
}

// uniqueName: <unix millis>-<random>.<ext>
func (w *Workflow) uniqueName(ext string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%d-%s%s", w.now().UnixMilli(), suffix, ext)
}

func extensionFor(name, contentType string) string {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(name)))
	if ext != "" && len(ext) <= 6 && !strings.ContainsAny(ext, `/\ `) {
		return ext
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}

// FromMultipart opens a multipart file; the caller closes it.
func FromMultipart(fh *multipart.FileHeader) (File, io.Closer, error) {
	src, err := fh.Open()
	if err != nil {
		return File{}, nil, fmt.Errorf("open upload: %w", err)
	}
	return File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        src,
	}, src, nil
}

// FromBytes wraps an in-memory payload.
func FromBytes(name, contentType string, data []byte) File {
	return File{Name: name, ContentType: contentType, Size: int64(len(data)), Body: bytes.NewReader(data)}
}
