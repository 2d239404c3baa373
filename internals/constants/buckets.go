package constants

const (
	BucketExecutivePhotos = "executive-photos"
	BucketEventImages     = "event-images"
	BucketCulturalImages  = "cultural-images"
	BucketAvatars         = "avatars"
)

const (
	MB int64 = 1 << 20

	MaxImageBytes = 5 * MB
	MaxVideoBytes = 50 * MB
)

// Buckets lists every bucket the site writes to.
var Buckets = []string{
	BucketExecutivePhotos,
	BucketEventImages,
	BucketCulturalImages,
	BucketAvatars,
}
