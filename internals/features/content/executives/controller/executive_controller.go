package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"basamu_backend/internals/features/content/executives/dto"
	"basamu_backend/internals/features/content/executives/repository"
	helper "basamu_backend/internals/helpers"
	authMw "basamu_backend/internals/middlewares/auth"
)

type ExecutiveController struct {
	Repo repository.Repository
	Gate authMw.AdminChecker
}

func NewExecutiveController(repo repository.Repository, gate authMw.AdminChecker) *ExecutiveController {
	return &ExecutiveController{Repo: repo, Gate: gate}
}

// POST /api/a/executives
func (ec *ExecutiveController) Create(c *fiber.Ctx) error {
	var req dto.CreateExecutiveRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}

	m := req.ToModel()
	if err := ec.Repo.Create(c.UserContext(), &m); err != nil {
		log.Error().Err(err).Str("name", req.ExecutiveName).Msg("create executive failed")
		return helper.JsonErrorWithDraft(c, fiber.StatusInternalServerError, "Failed to add executive", req)
	}
	return helper.JsonCreated(c, "Executive added", m)
}

// PATCH /api/a/executives/:id
func (ec *ExecutiveController) UpdateDetails(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateExecutiveRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}

	m, err := ec.Repo.UpdateDetails(c.UserContext(), id, req.ToDetails())
	if errors.Is(err, repository.ErrNotFound) {
		return helper.JsonErrorWithDraft(c, fiber.StatusNotFound, "Executive not found", req)
	}
	if err != nil {
		log.Error().Err(err).Str("executive_id", id.String()).Msg("update executive failed")
		return helper.JsonErrorWithDraft(c, fiber.StatusInternalServerError, "Failed to update executive", req)
	}
	return helper.JsonUpdated(c, "Executive updated", m)
}

// PATCH /api/a/executives/:id/photo
func (ec *ExecutiveController) ReplacePhoto(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.ReplacePhotoRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}

	m, err := ec.Repo.UpdatePhoto(c.UserContext(), id, req.ExecutivePhotoURL)
	if errors.Is(err, repository.ErrNotFound) {
		return helper.JsonErrorWithDraft(c, fiber.StatusNotFound, "Executive not found", req)
	}
	if err != nil {
		log.Error().Err(err).Str("executive_id", id.String()).Msg("replace executive photo failed")
		return helper.JsonErrorWithDraft(c, fiber.StatusInternalServerError, "Failed to update photo", req)
	}
	return helper.JsonUpdated(c, "Photo updated", m)
}

// GET /api/public/executives?year=
func (ec *ExecutiveController) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	year := strings.TrimSpace(c.Query("year"))

	rows, err := ec.Repo.List(ctx, year)
	if err != nil {
		log.Error().Err(err).Msg("list executives failed")
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load executives")
	}
	years, err := ec.Repo.Years(ctx)
	if err != nil {
		log.Error().Err(err).Msg("list executive years failed")
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load executives")
	}

	return helper.JsonOK(c, "ok", dto.ExecutiveListResponse{
		Executives: rows,
		Years:      years,
		CanEdit:    authMw.CanEdit(c, ec.Gate),
	})
}
