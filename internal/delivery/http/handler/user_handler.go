package handler

import (
	"errors"

	"job-portal/internal/delivery/http/dto"
	"job-portal/internal/delivery/http/middleware"
	"job-portal/internal/pkg/response"
	"job-portal/internal/usecase"
	useruc "job-portal/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc             usecase.UserUsecase
	uploadMaxBytes int64
}

func NewUserHandler(uc usecase.UserUsecase, uploadMaxBytes int64) *UserHandler {
	return &UserHandler{uc: uc, uploadMaxBytes: uploadMaxBytes}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router, auth *middleware.AuthMiddleware) {
	if r == nil || auth == nil {
		return
	}

	r.Get("/me", auth.Middleware(), h.GetMe)
	r.Post("/profile/update", auth.Middleware(), h.UpdateProfile)
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	usr, err := h.uc.GetProfile(c.Context(), userID)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(usr))
}

// UpdateProfile reads multipart fields; an attached file replaces the resume.
func (h *UserHandler) UpdateProfile(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	resume, err := optionalFile(c, h.uploadMaxBytes)
	if err != nil {
		return err
	}

	usr, err := h.uc.UpdateProfile(c.Context(), userID, useruc.UpdateProfileInput{
		FullName:    formValue(c, "fullname"),
		Email:       formValue(c, "email"),
		PhoneNumber: formValue(c, "phoneNumber"),
		Bio:         formValue(c, "bio"),
		Skills:      formValue(c, "skills"),
		Resume:      resume,
	})
	if err != nil {
		return mapUserUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "Profile updated successfully.", dto.NewUserResponse(usr))
}

func mapUserUsecaseError(err error) error {
	switch {
	case errors.Is(err, useruc.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found.", nil, err)
	case errors.Is(err, useruc.ErrEmailTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Email already in use.", nil, err)
	case errors.Is(err, useruc.ErrInvalidFile):
		return middleware.NewAppError(fiber.StatusBadRequest, "Resume must be a PDF, Word document or image", nil, err)
	case errors.Is(err, useruc.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	default:
		return internalError(err)
	}
}
