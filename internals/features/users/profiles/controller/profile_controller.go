package controller

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"basamu_backend/internals/constants"
	"basamu_backend/internals/features/users/profiles/dto"
	"basamu_backend/internals/features/users/profiles/repository"
	userModel "basamu_backend/internals/features/users/user/model"
	helper "basamu_backend/internals/helpers"
	"basamu_backend/internals/helpers/upload"
	authMw "basamu_backend/internals/middlewares/auth"
)

// MetadataWriter mirrors saved names into the account so the navbar picks them up.
type MetadataWriter interface {
	UpdateUserMetadata(ctx context.Context, userID uuid.UUID, meta datatypes.JSON) error
}

type ProfileController struct {
	Repo     repository.Repository
	Accounts MetadataWriter
	Workflow *upload.Workflow
	now      func() time.Time
}

func NewProfileController(repo repository.Repository, accounts MetadataWriter, w *upload.Workflow) *ProfileController {
	return &ProfileController{Repo: repo, Accounts: accounts, Workflow: w, now: time.Now}
}

// GET /api/u/profile
func (pc *ProfileController) Get(c *fiber.Ctx) error {
	sess, ok := authMw.SessionFrom(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Not signed in")
	}

	row, err := pc.Repo.FindByUserID(c.UserContext(), sess.UserID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		// never saved: prefill from the account
		return helper.JsonOK(c, "Profile loaded", dto.ProfileResponse{
			UserID:    sess.UserID,
			Email:     sess.Email,
			FirstName: sess.Metadata.FirstName,
			LastName:  sess.Metadata.LastName,
		})
	case err != nil:
		log.Error().Err(err).Str("user_id", sess.UserID.String()).Msg("load profile failed")
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load profile")
	}
	return helper.JsonOK(c, "Profile loaded", dto.FromModel(*row, sess.Email))
}

// PUT /api/u/profile
func (pc *ProfileController) Update(c *fiber.Ctx) error {
	sess, ok := authMw.SessionFrom(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Not signed in")
	}
	var req dto.UpdateProfileRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}

	row, err := pc.Repo.UpsertNames(c.UserContext(), sess.UserID, req.ProfileFirstName, req.ProfileLastName)
	if err != nil {
		log.Error().Err(err).Str("user_id", sess.UserID.String()).Msg("save profile failed")
		return helper.JsonErrorWithDraft(c, fiber.StatusInternalServerError, "Failed to update profile", req)
	}

	meta := userModel.NewMetadata(req.ProfileFirstName, req.ProfileLastName)
	if err := pc.Accounts.UpdateUserMetadata(c.UserContext(), sess.UserID, meta); err != nil {
		log.Warn().Err(err).Str("user_id", sess.UserID.String()).Msg("mirror profile names to account failed")
	}
	return helper.JsonUpdated(c, "Profile updated", dto.FromModel(*row, sess.Email))
}

// POST /api/u/profile/avatar (multipart field "file")
//
// Overwrites <user_id>/avatar.<ext>; the stored URL carries a ?t= stamp so
// caches drop the previous picture.
func (pc *ProfileController) UploadAvatar(c *fiber.Ctx) error {
	sess, ok := authMw.SessionFrom(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Not signed in")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"file": {"is required"}})
	}
	file, closer, err := upload.FromMultipart(fh)
	if err != nil {
		log.Error().Err(err).Msg("open avatar upload failed")
		return helper.JsonError(c, fiber.StatusBadRequest, "Could not read the uploaded file")
	}
	defer closer.Close()

	res, err := pc.Workflow.UploadAt(c.UserContext(), file, constants.BucketAvatars, sess.UserID.String()+"/avatar", upload.Avatar)
	if err != nil {
		if status, ok := upload.Rejection(err); ok {
			return helper.JsonError(c, status, err.Error())
		}
		log.Error().Err(err).Str("user_id", sess.UserID.String()).Msg("avatar upload failed")
		return helper.JsonError(c, fiber.StatusBadGateway, "Failed to upload avatar")
	}

	stamped := res.URL + "?t=" + strconv.FormatInt(pc.now().UnixMilli(), 10)
	row, err := pc.Repo.SetAvatar(c.UserContext(), sess.UserID, stamped)
	if err != nil {
		log.Error().Err(err).Str("user_id", sess.UserID.String()).Msg("save avatar url failed")
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update profile")
	}
	return helper.JsonUpdated(c, "Avatar updated", dto.FromModel(*row, sess.Email))
}
