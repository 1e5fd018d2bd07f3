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

type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

// RegisterRoutes expects r to be authenticated already.
func (h *ApplicationHandler) RegisterRoutes(r fiber.Router, auth *middleware.AuthMiddleware) {
	if r == nil || auth == nil {
		return
	}

	r.Post("/apply/:jobId", auth.RequireRole(user.RoleStudent), h.Apply)
	r.Get("/get", h.ListMine)
	r.Get("/recent/:jobId", h.Recent)
	r.Post("/status/:applicationId/update", h.UpdateStatus)
	r.Get("/:jobId/applicants", h.Applicants)
	r.Get("/:jobId/details", h.Details)
}

func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "jobId", "Invalid job ID")
	if err != nil {
		return err
	}

	created, err := h.uc.Apply(c.Context(), userID, jobID)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Applied successfully", dto.NewApplicationResponse(created, false))
}

func (h *ApplicationHandler) ListMine(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListMine(c.Context(), userID)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationListResponse(items, false))
}

func (h *ApplicationHandler) Applicants(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "jobId", "Invalid job ID")
	if err != nil {
		return err
	}

	res, err := h.uc.Applicants(c.Context(), userID, jobID)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}

	out := dto.NewJobResponse(res.Job)
	out.Applications = dto.NewApplicationListResponse(res.Applications, true)
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ApplicationHandler) UpdateStatus(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	appID, err := uuidParam(c, "applicationId", "Invalid application ID")
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := bindJSON(c, &req, "status is required"); err != nil {
		return err
	}

	updated, err := h.uc.UpdateStatus(c.Context(), userID, appID, req.Status)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Status updated", dto.NewApplicationResponse(updated, false))
}

func (h *ApplicationHandler) Details(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "jobId", "Invalid job ID")
	if err != nil {
		return err
	}

	d, err := h.uc.Details(c.Context(), userID, jobID)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.JobDetailsResponse{
		Job:             dto.NewJobResponse(d.Job),
		TotalApplicants: d.TotalApplicants,
		HasApplied:      d.HasApplied,
	})
}

func (h *ApplicationHandler) Recent(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "jobId", "Invalid job ID")
	if err != nil {
		return err
	}

	items, err := h.uc.Recent(c.Context(), userID, jobID)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationListResponse(items, true))
}

func mapApplicationUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found.", nil, err)
	case errors.Is(err, usecase.ErrAlreadyApplied):
		return middleware.NewAppError(fiber.StatusConflict, "Already applied to this job", nil, err)
	case errors.Is(err, usecase.ErrInvalidStatus):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid status", nil, err)
	case errors.Is(err, usecase.ErrApplicationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found.", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Only the recruiter who posted this job can do that.", nil, err)
	default:
		return internalError(err)
	}
}
