package upload

import (
	"fmt"
	"strings"

	"basamu_backend/internals/constants"
)

// Rule admits one MIME family up to MaxBytes.
type Rule struct {
	Prefix   string
	MaxBytes int64
}

type Constraints struct {
	Rules []Rule
	// Optimize downscales images that exceed the optimizer's max dimension.
	Optimize bool
}

var (
	ExecutivePhoto = Constraints{
		Rules:    []Rule{{Prefix: "image/", MaxBytes: constants.MaxImageBytes}},
		Optimize: true,
	}
	EventMedia = Constraints{
		Rules: []Rule{
			{Prefix: "image/", MaxBytes: constants.MaxImageBytes},
			{Prefix: "video/", MaxBytes: constants.MaxVideoBytes},
		},
		Optimize: true,
	}
	CulturalImage = Constraints{
		Rules:    []Rule{{Prefix: "image/", MaxBytes: constants.MaxImageBytes}},
		Optimize: true,
	}
	Avatar = Constraints{
		Rules:    []Rule{{Prefix: "image/", MaxBytes: constants.MaxImageBytes}},
		Optimize: true,
	}
)

// Target is an admin upload slot: where files go and what they may be.
type Target struct {
	Bucket      string
	Constraints Constraints
}

var targets = map[string]Target{
	"executive-photo": {Bucket: constants.BucketExecutivePhotos, Constraints: ExecutivePhoto},
	"event-media":     {Bucket: constants.BucketEventImages, Constraints: EventMedia},
	"cultural-image":  {Bucket: constants.BucketCulturalImages, Constraints: CulturalImage},
}

func LookupTarget(slot string) (Target, bool) {
	t, ok := targets[strings.ToLower(strings.TrimSpace(slot))]
	return t, ok
}

// Check validates type first, then size. It never touches the network.
func (c Constraints) Check(contentType string, size int64) (Rule, constants.MediaKind, error) {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	for _, r := range c.Rules {
		if !strings.HasPrefix(ct, r.Prefix) {
			continue
		}
		if size > r.MaxBytes {
			return r, "", fmt.Errorf("%w: %s is limited to %d MB", ErrFileTooLarge, strings.TrimSuffix(r.Prefix, "/"), r.MaxBytes/constants.MB)
		}
		if size <= 0 {
			return r, "", ErrEmptyFile
		}
		kind, ok := constants.MediaKindFromMIME(ct)
		if !ok {
			return r, "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
		}
		return r, kind, nil
	}
	return Rule{}, "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
}
