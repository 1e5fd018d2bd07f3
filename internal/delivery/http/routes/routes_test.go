package routes

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"job-portal/internal/delivery/http/middleware"
	v1 "job-portal/internal/delivery/http/routes/v1"
	"job-portal/internal/domain/user"
	"job-portal/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func TestRegistry_EventsEndpointRequiresToken(t *testing.T) {
	svc := jwt.NewHMACService("test", "access", "refresh", time.Hour, time.Hour)
	var seen uuid.UUID
	events := func(c fiber.Ctx) error {
		seen, _ = middleware.UserID(c)
		return c.SendStatus(fiber.StatusOK)
	}

	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(log.New(io.Discard, "", 0)).Middleware())
	NewRegistry(nil, v1.Handlers{}, middleware.NewAuthMiddleware(svc), events).Register(app)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ws/events", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("anonymous upgrade must be refused, got %d", resp.StatusCode)
	}

	id := uuid.New()
	tok, err := svc.GenerateAccessToken(id, string(user.RoleStudent))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	req := httptest.NewRequest(fiber.MethodGet, "/ws/events", nil)
	req.AddCookie(&http.Cookie{Name: middleware.TokenCookieName, Value: tok})
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK || seen != id {
		t.Fatalf("token cookie should reach the events handler, status=%d user=%s", resp.StatusCode, seen)
	}
}
