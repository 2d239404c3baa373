package upload

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"basamu_backend/internals/constants"
	"basamu_backend/internals/helpers/storage"
)

// sizedFile declares size bytes without allocating them when the check should stop first.
func sizedFile(name, contentType string, size int64) File {
	return File{Name: name, ContentType: contentType, Size: size, Body: bytes.NewReader(nil)}
}

func TestUploadRejectsBeforeStore(t *testing.T) {
	tests := []struct {
		name    string
		file    File
		c       Constraints
		wantErr error
	}{
		{"text/plain small", sizedFile("notes.txt", "text/plain", 10), EventMedia, ErrUnsupportedType},
		{"text/plain huge", sizedFile("notes.txt", "text/plain", 500*constants.MB), EventMedia, ErrUnsupportedType},
		{"6MB image", sizedFile("big.jpg", "image/jpeg", 6*constants.MB), CulturalImage, ErrFileTooLarge},
		{"video on image-only slot", sizedFile("clip.mp4", "video/mp4", constants.MB), ExecutivePhoto, ErrUnsupportedType},
		{"60MB video", sizedFile("clip.mp4", "video/mp4", 60*constants.MB), EventMedia, ErrFileTooLarge},
		{"empty image", sizedFile("x.png", "image/png", 0), Avatar, ErrEmptyFile},
		{"missing type", sizedFile("x", "", 10), EventMedia, ErrUnsupportedType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStore("")
			w := New(store)

			_, err := w.Upload(context.Background(), tt.file, constants.BucketEventImages, tt.c)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, store.Uploads(), "store must not be called")
		})
	}
}

func TestUploadAcceptsLargeVideoForEventMedia(t *testing.T) {
	store := storage.NewMemoryStore("https://cdn.test/storage/v1")
	clock := time.UnixMilli(1730000000000)
	w := New(store, WithClock(func() time.Time { return clock }))

	data := make([]byte, 40*constants.MB)
	res, err := w.Upload(context.Background(), FromBytes("Dance Night.MP4", "video/mp4", data), constants.BucketEventImages, EventMedia)
	require.NoError(t, err)

	assert.Equal(t, constants.MediaVideo, res.MediaKind)
	assert.Equal(t, constants.BucketEventImages, res.Bucket)
	assert.Regexp(t, regexp.MustCompile(`^1730000000000-[0-9a-f]{12}\.mp4$`), res.Path)
	assert.Equal(t, "https://cdn.test/storage/v1/object/public/event-images/"+res.Path, res.URL)
	assert.Equal(t, 1, store.Uploads())

	obj, ok := store.Get(constants.BucketEventImages, res.Path)
	require.True(t, ok)
	assert.Len(t, obj.Body, 40*int(constants.MB))
	assert.Equal(t, "video/mp4", obj.ContentType)
}

func TestUploadNamesDoNotCollide(t *testing.T) {
	store := storage.NewMemoryStore("")
	fixed := time.UnixMilli(1)
	w := New(store, WithClock(func() time.Time { return fixed }))

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		res, err := w.Upload(context.Background(), FromBytes("a.jpg", "image/jpeg", []byte("x")), "b", CulturalImage)
		require.NoError(t, err)
		assert.False(t, seen[res.Path], "duplicate name %s", res.Path)
		seen[res.Path] = true
	}
}

func TestUploadStoreFailureIsDistinct(t *testing.T) {
	store := storage.NewMemoryStore("")
	store.UploadErr = errors.New("connection reset")

	var outcomes []string
	w := New(store, WithObserver(func(bucket, outcome string) { outcomes = append(outcomes, bucket+":"+outcome) }))

	res, err := w.Upload(context.Background(), FromBytes("a.png", "image/png", []byte("x")), constants.BucketCulturalImages, CulturalImage)
	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.NotErrorIs(t, err, ErrFileTooLarge)
	assert.Empty(t, res.URL)
	assert.Equal(t, []string{"cultural-images:failed"}, outcomes)
}

func TestUploadDeclaredSizeUnderstated(t *testing.T) {
	store := storage.NewMemoryStore("")
	w := New(store)

	data := make([]byte, constants.MaxImageBytes+10)
	f := File{Name: "a.jpg", ContentType: "image/jpeg", Size: 100, Body: bytes.NewReader(data)}
	_, err := w.Upload(context.Background(), f, "b", CulturalImage)
	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.Equal(t, 0, store.Uploads())
}

func TestUploadAtReplacesFixedPath(t *testing.T) {
	store := storage.NewMemoryStore("")
	w := New(store)
	ctx := context.Background()

	_, err := w.UploadAt(ctx, FromBytes("me.png", "image/png", []byte("one")), constants.BucketAvatars, "u1/avatar", Avatar)
	require.NoError(t, err)
	res, err := w.UploadAt(ctx, FromBytes("me.png", "image/png", []byte("two")), constants.BucketAvatars, "u1/avatar", Avatar)
	require.NoError(t, err)

	assert.Equal(t, "u1/avatar.png", res.Path)
	obj, _ := store.Get(constants.BucketAvatars, "u1/avatar.png")
	assert.Equal(t, "two", string(obj.Body))
	assert.Equal(t, 1, store.Len())
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".jpg", extensionFor("Photo.JPG", "image/jpeg"))
	assert.Equal(t, ".webm", extensionFor("clip.webm", "video/webm"))
	assert.Equal(t, ".png", extensionFor("noext", "image/png"))
	assert.Equal(t, "", extensionFor("noext", "application/x-unknown-thing"))
}

func TestLookupTarget(t *testing.T) {
	tgt, ok := LookupTarget("Event-Media")
	require.True(t, ok)
	assert.Equal(t, constants.BucketEventImages, tgt.Bucket)
	assert.Len(t, tgt.Constraints.Rules, 2)

	_, ok = LookupTarget("avatars")
	assert.False(t, ok)
}

func noisyPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 7), uint8(y * 13), uint8(x ^ y), 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestOptimizerDownscalesLargeImages(t *testing.T) {
	store := storage.NewMemoryStore("")
	w := New(store, WithOptimizer(NewImageOptimizer(200, 80)))

	res, err := w.Upload(context.Background(), FromBytes("wide.png", "image/png", noisyPNG(t, 800, 400)), "b", CulturalImage)
	require.NoError(t, err)

	obj, _ := store.Get("b", res.Path)
	cfg, err := png.DecodeConfig(bytes.NewReader(obj.Body))
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Width)
	assert.Equal(t, 100, cfg.Height)
}

func TestOptimizerLeavesSmallAndUnknownAlone(t *testing.T) {
	o := NewImageOptimizer(1000, 80)
	small := noisyPNG(t, 50, 50)
	assert.Equal(t, small, o.Optimize(small, "image/png"))

	garbage := []byte("not an image")
	assert.Equal(t, garbage, o.Optimize(garbage, "image/jpeg"))
	assert.Equal(t, garbage, o.Optimize(garbage, "image/gif"))
}
