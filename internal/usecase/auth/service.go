package auth

import (
	"context"
	"errors"
	"strings"

	"job-portal/internal/domain/user"
	"job-portal/internal/infrastructure/storage"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrRoleMismatch           = errors.New("account does not exist with this role")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidFile            = errors.New("invalid file")
	ErrInternal               = errors.New("internal error")
)

const profilePhotoFolder = "profiles"

type RegisterInput struct {
	FullName    string
	Email       string
	PhoneNumber string
	Password    string
	Role        string
	Photo       *storage.File
}

type LoginInput struct {
	Email    string
	Password string
	Role     string
}

type Service struct {
	users    user.Repository
	uploader storage.Uploader
}

func NewService(users user.Repository, uploader storage.Uploader) *Service {
	return &Service{users: users, uploader: uploader}
}

// Register validates the input, uploads the profile photo and stores the
// user with a bcrypt hash. The photo is checked before any remote call.
func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	fullName := strings.TrimSpace(in.FullName)
	phone := strings.TrimSpace(in.PhoneNumber)
	email := normalizeEmail(in.Email)
	role, ok := user.ParseRole(in.Role)
	if fullName == "" || phone == "" || email == "" || !ok || in.Photo == nil {
		return user.User{}, ErrInvalidInput
	}
	if !isValidPassword(in.Password) {
		return user.User{}, ErrInvalidInput
	}
	if err := in.Photo.RequireImage(); err != nil {
		return user.User{}, ErrInvalidFile
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, ErrInternal
	}
	if exists {
		return user.User{}, ErrEmailAlreadyRegistered
	}

	photoURL, err := s.uploader.Upload(ctx, *in.Photo, profilePhotoFolder)
	if err != nil {
		return user.User{}, ErrInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, ErrInternal
	}

	u := user.User{
		ID:           uuid.New(),
		FullName:     fullName,
		Email:        email,
		PhoneNumber:  phone,
		PasswordHash: string(hash),
		Role:         role,
		Profile:      user.Profile{ProfilePhoto: photoURL, Skills: []string{}},
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return user.User{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, ErrInternal
	}

	created, err := s.users.GetByID(ctx, u.ID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return sanitizeUser(created), nil
}

// Login checks credentials first and the role second, so a wrong role is
// only reported to someone who knows the password.
func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" || strings.TrimSpace(in.Role) == "" {
		return user.User{}, ErrInvalidInput
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}

	role, ok := user.ParseRole(in.Role)
	if !ok || role != u.Role {
		return user.User{}, ErrRoleMismatch
	}

	return sanitizeUser(u), nil
}

func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	return strings.ToLower(email)
}

func isValidPassword(pw string) bool {
	pw = strings.TrimSpace(pw)
	if len(pw) < 8 {
		return false
	}
	return true
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
