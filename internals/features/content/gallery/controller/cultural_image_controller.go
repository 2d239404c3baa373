package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"basamu_backend/internals/features/content/gallery/dto"
	"basamu_backend/internals/features/content/gallery/model"
	"basamu_backend/internals/features/content/gallery/repository"
	"basamu_backend/internals/features/content/gallery/service"
	helper "basamu_backend/internals/helpers"
)

type CulturalImageController struct {
	Repo    repository.Repository
	Gallery *service.Gallery
}

func NewCulturalImageController(repo repository.Repository, gallery *service.Gallery) *CulturalImageController {
	return &CulturalImageController{Repo: repo, Gallery: gallery}
}

// POST /api/a/cultural-images
func (cc *CulturalImageController) Create(c *fiber.Ctx) error {
	var req dto.CreateCulturalImageRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}

	m := req.ToModel()
	if err := cc.Repo.Create(c.UserContext(), &m); err != nil {
		log.Error().Err(err).Str("url", req.CulturalImageURL).Msg("create cultural image failed")
		return helper.JsonErrorWithDraft(c, fiber.StatusInternalServerError, "Failed to add cultural image", req)
	}
	return helper.JsonCreated(c, "Image added", m)
}

// GET /api/a/cultural-images and GET /api/public/gallery
func (cc *CulturalImageController) List(c *fiber.Ctx) error {
	rows, err := cc.Repo.List(c.UserContext())
	if err != nil {
		log.Error().Err(err).Msg("list cultural images failed")
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load images")
	}
	return helper.JsonList(c, "ok", nonNil(rows), fiber.Map{"total": len(rows)})
}

// DELETE /api/a/cultural-images/:id answers with the refreshed list.
func (cc *CulturalImageController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}

	outcome, err := cc.Gallery.Delete(c.UserContext(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Image not found")
	}
	if err != nil {
		log.Error().Err(err).Str("cultural_image_id", id.String()).Msg("delete cultural image failed")
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete image")
	}

	rows, err := cc.Repo.List(c.UserContext())
	if err != nil {
		log.Error().Err(err).Msg("reload cultural images failed")
		rows = nil
	}
	return helper.JsonList(c, "Image deleted", nonNil(rows), fiber.Map{
		"total": len(rows),
		"blob":  outcome,
	})
}

func nonNil(rows []model.CulturalImageModel) []model.CulturalImageModel {
	if rows == nil {
		return []model.CulturalImageModel{}
	}
	return rows
}
