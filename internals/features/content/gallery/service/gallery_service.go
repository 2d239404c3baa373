package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"basamu_backend/internals/constants"
	"basamu_backend/internals/features/content/gallery/repository"
	"basamu_backend/internals/helpers/storage"
)

// BlobOutcome is what happened to the stored file during a delete.
type BlobOutcome string

const (
	BlobDeleted BlobOutcome = "deleted"
	BlobMissing BlobOutcome = "missing"
	BlobFailed  BlobOutcome = "failed"
	// the URL does not point into the bucket, nothing to remove
	BlobSkipped BlobOutcome = "skipped"
)

type Gallery struct {
	repo    repository.Repository
	store   storage.Store
	bucket  string
	observe func(bucket, outcome string)
}

func NewGallery(repo repository.Repository, store storage.Store, observe func(bucket, outcome string)) *Gallery {
	return &Gallery{repo: repo, store: store, bucket: constants.BucketCulturalImages, observe: observe}
}

// Delete removes the blob and then the row. The row delete runs whatever happened
// to the blob; only the row outcome is returned as an error. Blob failures are
// logged and reported in the outcome.
func (g *Gallery) Delete(ctx context.Context, id uuid.UUID) (BlobOutcome, error) {
	img, err := g.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}

	outcome := g.deleteBlob(ctx, id, img.CulturalImageURL)
	if g.observe != nil {
		g.observe(g.bucket, string(outcome))
	}

	if err := g.repo.Delete(ctx, id); err != nil {
		return outcome, fmt.Errorf("delete cultural image row: %w", err)
	}
	return outcome, nil
}

func (g *Gallery) deleteBlob(ctx context.Context, id uuid.UUID, url string) BlobOutcome {
	path, err := g.store.PathFromURL(g.bucket, url)
	if err != nil {
		log.Warn().Err(err).
			Str("cultural_image_id", id.String()).
			Str("url", url).
			Msg("cannot derive storage path, skipping blob delete")
		return BlobSkipped
	}

	err = g.store.Delete(ctx, g.bucket, path)
	switch {
	case err == nil:
		return BlobDeleted
	case errors.Is(err, storage.ErrNotFound):
		log.Info().Str("bucket", g.bucket).Str("path", path).Msg("blob already gone")
		return BlobMissing
	default:
		log.Error().Err(err).
			Str("cultural_image_id", id.String()).
			Str("bucket", g.bucket).
			Str("path", path).
			Msg("blob delete failed")
		return BlobFailed
	}
}
