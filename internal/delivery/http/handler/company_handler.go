package handler

import (
	"errors"

	"job-portal/internal/delivery/http/dto"
	"job-portal/internal/delivery/http/middleware"
	"job-portal/internal/domain/user"
	"job-portal/internal/pkg/response"
	"job-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CompanyHandler struct {
	uc             usecase.CompanyUsecase
	uploadMaxBytes int64
}

type registerCompanyRequest struct {
	CompanyName string `json:"companyName" validate:"required"`
}

func NewCompanyHandler(uc usecase.CompanyUsecase, uploadMaxBytes int64) *CompanyHandler {
	return &CompanyHandler{uc: uc, uploadMaxBytes: uploadMaxBytes}
}

// RegisterRoutes expects r to be authenticated already.
func (h *CompanyHandler) RegisterRoutes(r fiber.Router, auth *middleware.AuthMiddleware) {
	if r == nil || auth == nil {
		return
	}

	r.Post("/register", auth.RequireRole(user.RoleRecruiter), h.Register)
	r.Get("/get", h.ListMine)
	r.Get("/get/:id", h.Get)
	r.Put("/update/:id", h.Update)
}

func (h *CompanyHandler) Register(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req registerCompanyRequest
	if err := bindJSON(c, &req, "Company name is required."); err != nil {
		return err
	}

	created, err := h.uc.Register(c.Context(), userID, req.CompanyName)
	if err != nil {
		return mapCompanyUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Company registered successfully.", dto.NewCompanyResponse(created))
}

func (h *CompanyHandler) ListMine(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListMine(c.Context(), userID)
	if err != nil {
		return mapCompanyUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCompanyListResponse(items))
}

func (h *CompanyHandler) Get(c fiber.Ctx) error {
	id, err := uuidParam(c, "id", "Invalid company ID")
	if err != nil {
		return err
	}

	item, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapCompanyUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCompanyResponse(item))
}

func (h *CompanyHandler) Update(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id", "Invalid company ID")
	if err != nil {
		return err
	}

	logo, err := optionalFile(c, h.uploadMaxBytes)
	if err != nil {
		return err
	}

	updated, err := h.uc.Update(c.Context(), userID, id, usecase.UpdateCompanyInput{
		Name:        formValue(c, "name"),
		Description: formValue(c, "description"),
		Website:     formValue(c, "website"),
		Location:    formValue(c, "location"),
		Logo:        logo,
	})
	if err != nil {
		return mapCompanyUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Company information updated.", dto.NewCompanyResponse(updated))
}

func mapCompanyUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Company name is required.", nil, err)
	case errors.Is(err, usecase.ErrCompanyNameTaken):
		return middleware.NewAppError(fiber.StatusConflict, "You can't register same company.", nil, err)
	case errors.Is(err, usecase.ErrCompanyNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Company not found.", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "You can only manage your own companies.", nil, err)
	case errors.Is(err, usecase.ErrInvalidFile):
		return middleware.NewAppError(fiber.StatusBadRequest, "Logo must be an image", nil, err)
	default:
		return internalError(err)
	}
}
