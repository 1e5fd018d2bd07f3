package handler

import (
	"errors"
	"strings"

	"job-portal/internal/delivery/http/middleware"
	"job-portal/internal/infrastructure/storage"
	"job-portal/internal/pkg/validator"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

const formFileField = "file"

func currentUserID(c fiber.Ctx) (uuid.UUID, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return id, nil
}

func uuidParam(c fiber.Ctx, name, invalidMsg string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, invalidMsg, nil, err)
	}
	return id, nil
}

// bindJSON decodes and validates the body. Validation failures keep their
// field map so the client can tell what is missing.
func bindJSON(c fiber.Ctx, out any, missingMsg string) error {
	if err := c.Bind().Body(out); err != nil {
		if fields, ok := validator.Fields(err); ok {
			return middleware.NewAppError(fiber.StatusBadRequest, missingMsg, fields, err)
		}
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	return nil
}

// optionalFile returns the multipart "file" field read into memory, or nil
// when the request is not multipart or carries no file. A multipart body that
// cannot be parsed is a 400.
func optionalFile(c fiber.Ctx, maxBytes int64) (*storage.File, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, fasthttp.ErrNoMultipartForm) {
			return nil, nil
		}
		return nil, middleware.NewAppError(fiber.StatusBadRequest, "Could not read uploaded file", nil, err)
	}
	headers := form.File[formFileField]
	if len(headers) == 0 {
		return nil, nil
	}

	f, err := storage.ReadMultipart(headers[0], maxBytes)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrFileTooLarge):
			return nil, middleware.NewAppError(fiber.StatusRequestEntityTooLarge, "File too large", nil, err)
		case errors.Is(err, storage.ErrEmptyFile):
			return nil, middleware.NewAppError(fiber.StatusBadRequest, "Uploaded file is empty", nil, err)
		default:
			return nil, middleware.NewAppError(fiber.StatusBadRequest, "Could not read uploaded file", nil, err)
		}
	}
	return &f, nil
}

func formValue(c fiber.Ctx, key string) string {
	return strings.TrimSpace(c.FormValue(key))
}

func internalError(err error) error {
	return middleware.NewAppError(fiber.StatusInternalServerError, "internal server error", nil, err)
}
