package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	helper "basamu_backend/internals/helpers"
	"basamu_backend/internals/helpers/upload"
)

// failure messages per slot, named after what the admin was doing
var uploadFailedMessage = map[string]string{
	"executive-photo": "Failed to upload photo",
	"event-media":     "Failed to upload media",
	"cultural-image":  "Failed to upload image",
}

type UploadController struct {
	Workflow *upload.Workflow
}

func NewUploadController(w *upload.Workflow) *UploadController {
	return &UploadController{Workflow: w}
}

// POST /api/a/uploads/:slot (multipart field "file")
//
// Answers with the public URL and media kind the form then submits with the record.
func (uc *UploadController) Upload(c *fiber.Ctx) error {
	slot := c.Params("slot")
	target, ok := upload.LookupTarget(slot)
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "Unknown upload slot")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"file": {"is required"}})
	}
	file, closer, err := upload.FromMultipart(fh)
	if err != nil {
		log.Error().Err(err).Str("slot", slot).Msg("open multipart upload failed")
		return helper.JsonError(c, fiber.StatusBadRequest, "Could not read the uploaded file")
	}
	defer closer.Close()

	res, err := uc.Workflow.Upload(c.UserContext(), file, target.Bucket, target.Constraints)
	if err != nil {
		return uploadError(c, slot, err)
	}
	return helper.JsonCreated(c, "File uploaded", res)
}

func uploadError(c *fiber.Ctx, slot string, err error) error {
	if status, ok := upload.Rejection(err); ok {
		return helper.JsonError(c, status, err.Error())
	}
	log.Error().Err(err).Str("slot", slot).Msg("upload failed")
	msg, ok := uploadFailedMessage[slot]
	if !ok {
		msg = "Failed to upload file"
	}
	return helper.JsonError(c, fiber.StatusBadGateway, msg)
}
