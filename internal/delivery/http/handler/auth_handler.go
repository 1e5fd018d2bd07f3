package handler

import (
	"errors"
	"time"

	"job-portal/internal/delivery/http/dto"
	"job-portal/internal/delivery/http/middleware"
	"job-portal/internal/pkg/response"
	"job-portal/internal/usecase"
	ucauth "job-portal/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type CookieOptions struct {
	Secure bool
	MaxAge time.Duration
}

type AuthHandler struct {
	uc             usecase.AuthUsecase
	cookie         CookieOptions
	uploadMaxBytes int64
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

func NewAuthHandler(uc usecase.AuthUsecase, cookie CookieOptions, uploadMaxBytes int64) *AuthHandler {
	return &AuthHandler{uc: uc, cookie: cookie, uploadMaxBytes: uploadMaxBytes}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Get("/logout", h.Logout)
	r.Post("/refresh", h.Refresh)
}

// Register takes multipart form fields plus a required profile photo.
func (h *AuthHandler) Register(c fiber.Ctx) error {
	photo, err := optionalFile(c, h.uploadMaxBytes)
	if err != nil {
		return err
	}

	in := ucauth.RegisterInput{
		FullName:    formValue(c, "fullname"),
		Email:       formValue(c, "email"),
		PhoneNumber: formValue(c, "phoneNumber"),
		Password:    c.FormValue("password"),
		Role:        formValue(c, "role"),
		Photo:       photo,
	}
	if in.FullName == "" || in.Email == "" || in.PhoneNumber == "" || in.Password == "" || in.Role == "" || photo == nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Something is missing.", nil, nil)
	}

	usr, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Account created successfully.", dto.NewUserResponse(usr))
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := bindJSON(c, &req, "Something is missing."); err != nil {
		return err
	}

	usr, access, refresh, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password, Role: req.Role})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    access,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		MaxAge:   int(h.cookie.MaxAge.Seconds()),
	})

	data := map[string]any{
		"user":          dto.NewUserResponse(usr),
		"access_token":  access,
		"refresh_token": refresh,
	}
	return response.Success(c, fiber.StatusOK, "Welcome back "+usr.FullName, data)
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Unix(0, 0),
	})
	return response.Success(c, fiber.StatusOK, "Logged out successfully.", nil)
}

func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	tok, ok := middleware.BearerToken(c.Get("Authorization"))
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	access, refresh, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		if errors.Is(err, usecase.ErrRefreshTokenExpired) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Refresh token expired", nil, err)
		}
		if errors.Is(err, usecase.ErrInvalidRefreshToken) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
		}
		if errors.Is(err, usecase.ErrUnauthorized) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
		}
		return internalError(err)
	}

	data := map[string]any{
		"access_token":  access,
		"refresh_token": refresh,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func mapAuthUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "User already exist with this email.", nil, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Incorrect email or password.", nil, err)
	case errors.Is(err, ucauth.ErrRoleMismatch):
		return middleware.NewAppError(fiber.StatusBadRequest, "Account doesn't exist with current role.", nil, err)
	case errors.Is(err, ucauth.ErrInvalidFile):
		return middleware.NewAppError(fiber.StatusBadRequest, "Profile photo must be an image", nil, err)
	case errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid registration details", nil, err)
	default:
		return internalError(err)
	}
}
