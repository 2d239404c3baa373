package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"basamu_backend/internals/features/content/home/dto"
	"basamu_backend/internals/features/content/home/service"
	helper "basamu_backend/internals/helpers"
)

const msgContentNotFound = "content not found"

type HomeContentController struct {
	Home *service.Home
}

func NewHomeContentController(home *service.Home) *HomeContentController {
	return &HomeContentController{Home: home}
}

// GET /api/a/home-content
func (hc *HomeContentController) Get(c *fiber.Ctx) error {
	m, err := hc.Home.Current(c.UserContext())
	if errors.Is(err, service.ErrContentNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, msgContentNotFound)
	}
	if err != nil {
		log.Error().Err(err).Msg("load home content failed")
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load home content")
	}
	return helper.JsonOK(c, "ok", m)
}

// PUT /api/a/home-content/:id
//
// An id that does not parse is treated as "never fetched".
func (hc *HomeContentController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		id = uuid.Nil
	}
	var req dto.UpdateHomeContentRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}

	m, err := hc.Home.Update(c.UserContext(), id, req.ToDetails())
	if errors.Is(err, service.ErrContentNotFound) {
		return helper.JsonErrorWithDraft(c, fiber.StatusNotFound, msgContentNotFound, req)
	}
	if err != nil {
		log.Error().Err(err).Str("home_content_id", id.String()).Msg("update home content failed")
		return helper.JsonErrorWithDraft(c, fiber.StatusInternalServerError, "Failed to update home content", req)
	}
	return helper.JsonUpdated(c, "Home content updated", m)
}

// GET /api/public/home
func (hc *HomeContentController) Page(c *fiber.Ctx) error {
	return helper.JsonOK(c, "ok", hc.Home.Page(c.UserContext()))
}
