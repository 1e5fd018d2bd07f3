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

type JobHandler struct {
	uc usecase.JobUsecase
}

type postJobRequest struct {
	Title        string             `json:"title" validate:"required"`
	Description  string             `json:"description" validate:"required"`
	Requirements string             `json:"requirements" validate:"required"`
	Salary       dto.NumberOrString `json:"salary" validate:"required"`
	Location     string             `json:"location" validate:"required"`
	JobType      string             `json:"jobType" validate:"required"`
	Experience   dto.NumberOrString `json:"experience" validate:"required"`
	Position     dto.NumberOrString `json:"position" validate:"required"`
	CompanyID    string             `json:"companyId" validate:"required"`
}

func NewJobHandler(uc usecase.JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

// RegisterRoutes mixes public and authenticated routes, so guards are
// attached per route.
func (h *JobHandler) RegisterRoutes(r fiber.Router, auth *middleware.AuthMiddleware) {
	if r == nil || auth == nil {
		return
	}

	r.Post("/post", auth.Middleware(), auth.RequireRole(user.RoleRecruiter), h.Post)
	r.Get("/get", h.List)
	r.Get("/getadminjobs", auth.Middleware(), h.ListAdmin)
	r.Get("/get/:id", h.Get)
}

func (h *JobHandler) Post(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req postJobRequest
	if err := bindJSON(c, &req, "Something is missing."); err != nil {
		return err
	}

	created, err := h.uc.Post(c.Context(), userID, usecase.PostJobInput{
		Title:           req.Title,
		Description:     req.Description,
		Requirements:    req.Requirements,
		Salary:          string(req.Salary),
		Location:        req.Location,
		JobType:         req.JobType,
		ExperienceLevel: string(req.Experience),
		Position:        string(req.Position),
		CompanyID:       req.CompanyID,
	})
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "New job created successfully.", dto.NewJobResponse(created))
}

func (h *JobHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context(), c.Query("keyword"))
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobListResponse(items))
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := uuidParam(c, "id", "Invalid job ID")
	if err != nil {
		return err
	}

	res, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapJobUsecaseError(err)
	}

	out := dto.NewJobResponse(res.Job)
	out.Applications = dto.NewApplicationListResponse(res.Applications, false)
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *JobHandler) ListAdmin(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListByCreator(c.Context(), userID)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobListResponse(items))
}

func mapJobUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrMissingFields):
		return middleware.NewAppError(fiber.StatusBadRequest, "Something is missing.", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job details", nil, err)
	case errors.Is(err, usecase.ErrCompanyNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Company not found.", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "You can only post jobs for your own company.", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found.", nil, err)
	default:
		return internalError(err)
	}
}
