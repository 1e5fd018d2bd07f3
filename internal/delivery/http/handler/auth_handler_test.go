package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"job-portal/internal/delivery/http/middleware"
	"job-portal/internal/domain/user"
	"job-portal/internal/usecase"
	ucauth "job-portal/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00\x90wS\xde")

type fakeAuthUsecase struct {
	registered ucauth.RegisterInput
	err        error
	refreshErr error
}

func (f *fakeAuthUsecase) Register(_ context.Context, in ucauth.RegisterInput) (user.User, error) {
	f.registered = in
	if f.err != nil {
		return user.User{}, f.err
	}
	return user.User{ID: uuid.New(), FullName: in.FullName, Email: in.Email, Role: user.Role(in.Role)}, nil
}

func (f *fakeAuthUsecase) Login(_ context.Context, in ucauth.LoginInput) (user.User, string, string, error) {
	if f.err != nil {
		return user.User{}, "", "", f.err
	}
	return user.User{ID: uuid.New(), FullName: "Ana", Email: in.Email, Role: user.Role(in.Role)}, "access-tok", "refresh-tok", nil
}

func (f *fakeAuthUsecase) Refresh(context.Context, string) (string, string, error) {
	if f.refreshErr != nil {
		return "", "", f.refreshErr
	}
	return "new-access", "new-refresh", nil
}

func newAuthApp(uc usecase.AuthUsecase) *fiber.App {
	app := newTestApp()
	NewAuthHandler(uc, CookieOptions{MaxAge: time.Hour}, 1<<20).RegisterRoutes(app.Group("/user"))
	return app
}

func registerForm(t *testing.T, withPhoto bool) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range map[string]string{
		"fullname":    "Ana",
		"email":       "ana@example.com",
		"phoneNumber": "0812",
		"password":    "secret123",
		"role":        "student",
	} {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if withPhoto {
		fw, err := w.CreateFormFile("file", "me.png")
		if err != nil {
			t.Fatalf("create file: %v", err)
		}
		_, _ = fw.Write(pngHeader)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestAuthHandler_Register(t *testing.T) {
	uc := &fakeAuthUsecase{}
	body, ct := registerForm(t, true)
	req := httptest.NewRequest(fiber.MethodPost, "/user/register", body)
	req.Header.Set("Content-Type", ct)

	resp, env := do(t, newAuthApp(uc), req)
	if resp.StatusCode != fiber.StatusCreated || env.Message != "Account created successfully." {
		t.Fatalf("unexpected response %d %+v", resp.StatusCode, env)
	}
	if uc.registered.Photo == nil || uc.registered.Photo.MIME != "image/png" {
		t.Fatalf("expected png photo, got %+v", uc.registered.Photo)
	}
	if uc.registered.Email != "ana@example.com" || uc.registered.PhoneNumber != "0812" {
		t.Fatalf("unexpected input %+v", uc.registered)
	}
}

func TestAuthHandler_RegisterWithoutPhoto(t *testing.T) {
	body, ct := registerForm(t, false)
	req := httptest.NewRequest(fiber.MethodPost, "/user/register", body)
	req.Header.Set("Content-Type", ct)

	resp, env := do(t, newAuthApp(&fakeAuthUsecase{}), req)
	if resp.StatusCode != fiber.StatusBadRequest || env.Message != "Something is missing." {
		t.Fatalf("unexpected response %d %+v", resp.StatusCode, env)
	}
}

func TestAuthHandler_RegisterMalformedMultipart(t *testing.T) {
	uc := &fakeAuthUsecase{}
	req := httptest.NewRequest(fiber.MethodPost, "/user/register", strings.NewReader("--nope\r\ngarbage"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")

	resp, env := do(t, newAuthApp(uc), req)
	if resp.StatusCode != fiber.StatusBadRequest || env.Message != "Could not read uploaded file" {
		t.Fatalf("unexpected response %d %+v", resp.StatusCode, env)
	}
	if uc.registered.Email != "" {
		t.Fatalf("usecase must not run for an unreadable body")
	}
}

func TestAuthHandler_RegisterDuplicateEmail(t *testing.T) {
	body, ct := registerForm(t, true)
	req := httptest.NewRequest(fiber.MethodPost, "/user/register", body)
	req.Header.Set("Content-Type", ct)

	resp, env := do(t, newAuthApp(&fakeAuthUsecase{err: ucauth.ErrEmailAlreadyRegistered}), req)
	if resp.StatusCode != fiber.StatusConflict || env.Message != "User already exist with this email." {
		t.Fatalf("unexpected response %d %+v", resp.StatusCode, env)
	}
}

func TestAuthHandler_LoginSetsCookie(t *testing.T) {
	req := jsonRequest(fiber.MethodPost, "/user/login", `{"email":"ana@example.com","password":"secret123","role":"student"}`)

	resp, env := do(t, newAuthApp(&fakeAuthUsecase{}), req)
	if resp.StatusCode != fiber.StatusOK || env.Message != "Welcome back Ana" {
		t.Fatalf("unexpected response %d %+v", resp.StatusCode, env)
	}

	cookie := resp.Header.Get("Set-Cookie")
	if !strings.HasPrefix(cookie, middleware.TokenCookieName+"=access-tok") || !strings.Contains(strings.ToLower(cookie), "httponly") {
		t.Fatalf("unexpected cookie %q", cookie)
	}

	var data struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	decodeData(t, env, &data)
	if data.AccessToken != "access-tok" || data.RefreshToken != "refresh-tok" {
		t.Fatalf("unexpected tokens %+v", data)
	}
}

func TestAuthHandler_LoginErrors(t *testing.T) {
	cases := map[error]struct {
		status int
		msg    string
	}{
		ucauth.ErrInvalidCredentials: {fiber.StatusUnauthorized, "Incorrect email or password."},
		ucauth.ErrRoleMismatch:       {fiber.StatusBadRequest, "Account doesn't exist with current role."},
	}
	for cause, want := range cases {
		req := jsonRequest(fiber.MethodPost, "/user/login", `{"email":"a@b.c","password":"x","role":"student"}`)
		resp, env := do(t, newAuthApp(&fakeAuthUsecase{err: cause}), req)
		if resp.StatusCode != want.status || env.Message != want.msg {
			t.Errorf("%v: unexpected response %d %+v", cause, resp.StatusCode, env)
		}
	}
}

func TestAuthHandler_LoginMissingFields(t *testing.T) {
	req := jsonRequest(fiber.MethodPost, "/user/login", `{"email":"a@b.c"}`)
	resp, env := do(t, newAuthApp(&fakeAuthUsecase{}), req)
	if resp.StatusCode != fiber.StatusBadRequest || env.Message != "Something is missing." {
		t.Fatalf("unexpected response %d %+v", resp.StatusCode, env)
	}
}

func TestAuthHandler_LogoutClearsCookie(t *testing.T) {
	resp, env := do(t, newAuthApp(&fakeAuthUsecase{}), httptest.NewRequest(fiber.MethodGet, "/user/logout", nil))
	if resp.StatusCode != fiber.StatusOK || env.Message != "Logged out successfully." {
		t.Fatalf("unexpected response %d %+v", resp.StatusCode, env)
	}
	if cookie := resp.Header.Get("Set-Cookie"); !strings.HasPrefix(cookie, middleware.TokenCookieName+"=;") {
		t.Fatalf("expected cleared cookie, got %q", cookie)
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	req := httptest.NewRequest(fiber.MethodPost, "/user/refresh", nil)
	resp, _ := do(t, newAuthApp(&fakeAuthUsecase{}), req)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without bearer, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest(fiber.MethodPost, "/user/refresh", nil)
	req.Header.Set("Authorization", "Bearer r")
	resp, env := do(t, newAuthApp(&fakeAuthUsecase{refreshErr: usecase.ErrRefreshTokenExpired}), req)
	if resp.StatusCode != fiber.StatusUnauthorized || env.Message != "Refresh token expired" {
		t.Fatalf("unexpected response %d %+v", resp.StatusCode, env)
	}

	req = httptest.NewRequest(fiber.MethodPost, "/user/refresh", nil)
	req.Header.Set("Authorization", "Bearer r")
	resp, _ = do(t, newAuthApp(&fakeAuthUsecase{}), req)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
