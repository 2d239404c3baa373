package upload

import (
	"bytes"
	"image"
	"math"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/draw"
)

// ImageOptimizer downscales oversized photos before they are stored. Anything it
// cannot decode is passed through untouched.
type ImageOptimizer struct {
	MaxDimension int
	WebPQuality  float32
	JPEGQuality  int
}

func NewImageOptimizer(maxDimension int, webpQuality float32) *ImageOptimizer {
	if webpQuality <= 0 {
		webpQuality = 80
	}
	return &ImageOptimizer{MaxDimension: maxDimension, WebPQuality: webpQuality, JPEGQuality: 85}
}

func (o *ImageOptimizer) Optimize(data []byte, contentType string) []byte {
	if o == nil || o.MaxDimension <= 0 {
		return data
	}
	format, ok := formatOf(contentType)
	if !ok {
		return data
	}

	img, err := decode(data, format)
	if err != nil {
		log.Debug().Err(err).Str("content_type", contentType).Msg("optimize: decode skipped")
		return data
	}
	b := img.Bounds()
	if b.Dx() <= o.MaxDimension && b.Dy() <= o.MaxDimension {
		return data
	}

	out, err := o.encode(downscale(img, o.MaxDimension), format)
	if err != nil {
		log.Warn().Err(err).Str("content_type", contentType).Msg("optimize: encode failed, keeping original")
		return data
	}
	if len(out) >= len(data) {
		return data
	}
	return out
}

func formatOf(contentType string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "image/jpeg", "image/jpg":
		return "jpeg", true
	case "image/png":
		return "png", true
	case "image/webp":
		return "webp", true
	default:
		return "", false
	}
}

func decode(data []byte, format string) (image.Image, error) {
	if format == "webp" {
		return webp.Decode(bytes.NewReader(data))
	}
	return imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
}

// downscale keeps the aspect ratio, CatmullRom.
func downscale(src image.Image, limit int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	scale := math.Min(float64(limit)/float64(w), float64(limit)/float64(h))
	nw := int(math.Max(1, math.Round(float64(w)*scale)))
	nh := int(math.Max(1, math.Round(float64(h)*scale)))
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func (o *ImageOptimizer) encode(img image.Image, format string) ([]byte, error) {
	buf := new(bytes.Buffer)
	var err error
	switch format {
	case "webp":
		err = webp.Encode(buf, img, &webp.Options{Quality: o.WebPQuality})
	case "png":
		err = imaging.Encode(buf, img, imaging.PNG)
	default:
		err = imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(o.JPEGQuality))
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
