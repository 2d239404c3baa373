package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"basamu_backend/internals/features/content/events/dto"
	"basamu_backend/internals/features/content/events/repository"
	"basamu_backend/internals/features/content/events/service"
	helper "basamu_backend/internals/helpers"
	authMw "basamu_backend/internals/middlewares/auth"
)

const msgBadDate = "must be a date (YYYY-MM-DD) or date-time"

type EventController struct {
	Repo repository.Repository
	Gate authMw.AdminChecker
}

func NewEventController(repo repository.Repository, gate authMw.AdminChecker) *EventController {
	return &EventController{Repo: repo, Gate: gate}
}

// POST /api/a/events
func (ec *EventController) Create(c *fiber.Ctx) error {
	var req dto.CreateEventRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	m, err := req.ToModel()
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"event_date": {msgBadDate}})
	}

	if err := ec.Repo.Create(c.UserContext(), &m); err != nil {
		log.Error().Err(err).Str("title", req.EventTitle).Msg("create event failed")
		return helper.JsonErrorWithDraft(c, fiber.StatusInternalServerError, "Failed to add event", req)
	}
	return helper.JsonCreated(c, "Event added", m)
}

// PATCH /api/a/events/:id
func (ec *EventController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateEventRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	details, err := req.ToDetails()
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"event_date": {msgBadDate}})
	}

	m, err := ec.Repo.Update(c.UserContext(), id, details)
	if errors.Is(err, repository.ErrNotFound) {
		return helper.JsonErrorWithDraft(c, fiber.StatusNotFound, "Event not found", req)
	}
	if err != nil {
		log.Error().Err(err).Str("event_id", id.String()).Msg("update event failed")
		return helper.JsonErrorWithDraft(c, fiber.StatusInternalServerError, "Failed to update event", req)
	}
	return helper.JsonUpdated(c, "Event updated", m)
}

// GET /api/public/events?q=&year=&sort=newest|oldest
//
// One fetch, then the search/year/sort filter runs over the fetched rows.
func (ec *EventController) List(c *fiber.Ctx) error {
	rows, err := ec.Repo.List(c.UserContext())
	if err != nil {
		log.Error().Err(err).Msg("list events failed")
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load events")
	}

	matched := service.FilterEvents(rows, service.Filter{
		Query: c.Query("q"),
		Year:  c.Query("year"),
		Sort:  service.ParseSortOrder(c.Query("sort")),
	})

	return helper.JsonOK(c, "ok", dto.EventListResponse{
		Events:  matched,
		State:   string(service.StateOf(len(rows), len(matched))),
		Total:   len(rows),
		Matched: len(matched),
		Years:   service.Years(rows),
		CanEdit: authMw.CanEdit(c, ec.Gate),
	})
}
