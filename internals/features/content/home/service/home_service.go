package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	galleryModel "basamu_backend/internals/features/content/gallery/model"
	"basamu_backend/internals/features/content/home/dto"
	"basamu_backend/internals/features/content/home/model"
	"basamu_backend/internals/features/content/home/repository"
)

var ErrContentNotFound = repository.ErrContentNotFound

type GalleryLister interface {
	List(ctx context.Context) ([]galleryModel.CulturalImageModel, error)
}

type Home struct {
	repo    repository.Repository
	gallery GalleryLister
}

func NewHome(repo repository.Repository, gallery GalleryLister) *Home {
	return &Home{repo: repo, gallery: gallery}
}

func (h *Home) Current(ctx context.Context) (*model.HomeContentModel, error) {
	return h.repo.Get(ctx)
}

// Update needs the id of a previously fetched row. A nil id fails fast without
// touching the repository; an unknown one fails there. Neither creates a row.
func (h *Home) Update(ctx context.Context, id uuid.UUID, d model.HomeContentDetails) (*model.HomeContentModel, error) {
	if id == uuid.Nil {
		return nil, ErrContentNotFound
	}
	return h.repo.Update(ctx, id, d)
}

// Page builds the public home page. Read failures degrade to the bundled
// defaults and are logged.
func (h *Home) Page(ctx context.Context) dto.HomePageResponse {
	page := dto.HomePageResponse{Content: DefaultContent, IsDefault: true}

	content, err := h.repo.Get(ctx)
	switch {
	case err == nil:
		page.Content, page.IsDefault = *content, false
	case errors.Is(err, ErrContentNotFound):
	default:
		log.Error().Err(err).Msg("load home content failed, serving defaults")
	}

	images, err := h.gallery.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("load gallery for home failed, serving placeholders")
	}
	if len(images) == 0 {
		page.Gallery = append([]dto.GalleryItem(nil), PlaceholderGallery...)
		page.GalleryIsPlaceholder = true
		return page
	}
	page.Gallery = make([]dto.GalleryItem, 0, len(images))
	for _, img := range images {
		page.Gallery = append(page.Gallery, dto.GalleryItem{ImageURL: img.CulturalImageURL, Caption: img.CulturalImageCaption})
	}
	return page
}
