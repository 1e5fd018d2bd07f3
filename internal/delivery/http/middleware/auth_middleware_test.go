package middleware

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"job-portal/internal/domain/user"
	"job-portal/internal/pkg/jwt"
	"job-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func newAuthTestApp(svc jwt.Service) *fiber.App {
	auth := NewAuthMiddleware(svc)
	app := fiber.New()
	app.Use(NewErrorMiddleware(log.New(io.Discard, "", 0)).Middleware())
	app.Get("/me", auth.Middleware(), func(c fiber.Ctx) error {
		id, _ := UserID(c)
		return response.Success(c, fiber.StatusOK, "", id.String())
	})
	app.Get("/recruiter", auth.Middleware(), auth.RequireRole(user.RoleRecruiter), func(c fiber.Ctx) error {
		return response.Success(c, fiber.StatusOK, "", nil)
	})
	return app
}

func testJWT() *jwt.HMACService {
	return jwt.NewHMACService("test", "access", "refresh", time.Hour, time.Hour)
}

func getWith(t *testing.T, app *fiber.App, path string, mutate func(r *http.Request)) (int, response.SemanticResponse) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if mutate != nil {
		mutate(req)
	}
	return testRequest(t, app, req)
}

func TestAuthMiddleware_NoToken(t *testing.T) {
	status, env := getWith(t, newAuthTestApp(testJWT()), "/me", nil)
	if status != fiber.StatusUnauthorized || env.Message != "No token provided" {
		t.Fatalf("unexpected response %d %+v", status, env)
	}
}

func TestAuthMiddleware_BearerToken(t *testing.T) {
	svc := testJWT()
	id := uuid.New()
	tok, err := svc.GenerateAccessToken(id, string(user.RoleStudent))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	status, env := getWith(t, newAuthTestApp(svc), "/me", func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+tok)
	})
	if status != fiber.StatusOK || env.Data != id.String() {
		t.Fatalf("unexpected response %d %+v", status, env)
	}
}

func TestAuthMiddleware_CookieFallback(t *testing.T) {
	svc := testJWT()
	id := uuid.New()
	tok, _ := svc.GenerateAccessToken(id, string(user.RoleStudent))

	status, env := getWith(t, newAuthTestApp(svc), "/me", func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: TokenCookieName, Value: tok})
	})
	if status != fiber.StatusOK || env.Data != id.String() {
		t.Fatalf("unexpected response %d %+v", status, env)
	}
}

func TestAuthMiddleware_RejectsRefreshToken(t *testing.T) {
	svc := testJWT()
	tok, _ := svc.GenerateRefreshToken(uuid.New())

	status, env := getWith(t, newAuthTestApp(svc), "/me", func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+tok)
	})
	if status != fiber.StatusUnauthorized || env.Message != "Invalid token" {
		t.Fatalf("unexpected response %d %+v", status, env)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	status, env := getWith(t, newAuthTestApp(testJWT()), "/me", func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer garbage")
	})
	if status != fiber.StatusUnauthorized || env.Message != "Invalid token" {
		t.Fatalf("unexpected response %d %+v", status, env)
	}
}

func TestRequireRole(t *testing.T) {
	svc := testJWT()
	app := newAuthTestApp(svc)

	student, _ := svc.GenerateAccessToken(uuid.New(), string(user.RoleStudent))
	status, _ := getWith(t, app, "/recruiter", func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+student)
	})
	if status != fiber.StatusForbidden {
		t.Fatalf("expected 403 for student, got %d", status)
	}

	recruiter, _ := svc.GenerateAccessToken(uuid.New(), string(user.RoleRecruiter))
	status, _ = getWith(t, app, "/recruiter", func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+recruiter)
	})
	if status != fiber.StatusOK {
		t.Fatalf("expected 200 for recruiter, got %d", status)
	}
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"Bearer abc":   "abc",
		"bearer  abc ": "abc",
		"Basic abc":    "",
		"Bearer":       "",
		"":             "",
	}
	for in, want := range cases {
		got, ok := BearerToken(in)
		if got != want || ok != (want != "") {
			t.Errorf("BearerToken(%q) = %q, %v", in, got, ok)
		}
	}
}
