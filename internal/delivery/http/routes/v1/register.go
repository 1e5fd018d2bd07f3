package v1

import (
	"job-portal/internal/delivery/http/handler"
	"job-portal/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	Company     *handler.CompanyHandler
	Job         *handler.JobHandler
	Application *handler.ApplicationHandler
}

func Register(r fiber.Router, h Handlers, auth *middleware.AuthMiddleware) {
	if r == nil || auth == nil {
		return
	}

	userGroup := r.Group("/user")
	if h.Auth != nil {
		h.Auth.RegisterRoutes(userGroup)
	}
	if h.User != nil {
		h.User.RegisterRoutes(userGroup, auth)
	}

	if h.Company != nil {
		h.Company.RegisterRoutes(r.Group("/company", auth.Middleware()), auth)
	}

	if h.Job != nil {
		h.Job.RegisterRoutes(r.Group("/job"), auth)
	}

	if h.Application != nil {
		h.Application.RegisterRoutes(r.Group("/application", auth.Middleware()), auth)
	}
}
