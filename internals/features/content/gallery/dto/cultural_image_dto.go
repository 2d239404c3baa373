package dto

import (
	"strings"

	"basamu_backend/internals/features/content/gallery/model"
)

// CreateCulturalImageRequest needs a finished upload: the URL comes from
// POST /api/a/uploads/cultural-image.
type CreateCulturalImageRequest struct {
	CulturalImageURL     string `json:"cultural_image_url" validate:"required,url"`
	CulturalImageCaption string `json:"cultural_image_caption" validate:"required,max=500"`
}

func (r *CreateCulturalImageRequest) Normalize() {
	r.CulturalImageURL = strings.TrimSpace(r.CulturalImageURL)
	r.CulturalImageCaption = strings.TrimSpace(r.CulturalImageCaption)
}

func (r CreateCulturalImageRequest) ToModel() model.CulturalImageModel {
	return model.CulturalImageModel{
		CulturalImageURL:     r.CulturalImageURL,
		CulturalImageCaption: r.CulturalImageCaption,
	}
}
