package user

import (
	"context"
	"errors"
	"strings"

	"job-portal/internal/domain/user"
	"job-portal/internal/infrastructure/storage"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidFile  = errors.New("invalid file")
	ErrEmailTaken   = errors.New("email already registered")
	ErrNotFound     = errors.New("user not found")
	ErrInternal     = errors.New("internal error")
)

const resumeFolder = "resumes"

// UpdateProfileInput carries the multipart fields. Empty strings leave the
// stored value unchanged.
type UpdateProfileInput struct {
	FullName    string
	Email       string
	PhoneNumber string
	Bio         string
	Skills      string
	Resume      *storage.File
}

type Service struct {
	users    user.Repository
	uploader storage.Uploader
}

func NewService(users user.Repository, uploader storage.Uploader) *Service {
	return &Service{users: users, uploader: uploader}
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	return sanitizeUser(usr), nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (user.User, error) {
	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, ErrInternal
	}

	if v := strings.TrimSpace(in.FullName); v != "" {
		usr.FullName = v
	}
	if v := strings.TrimSpace(in.PhoneNumber); v != "" {
		usr.PhoneNumber = v
	}
	if v := strings.TrimSpace(in.Bio); v != "" {
		usr.Profile.Bio = v
	}
	if strings.TrimSpace(in.Skills) != "" {
		usr.Profile.Skills = SplitList(in.Skills)
	}

	if email := normalizeEmail(in.Email); email != "" && email != usr.Email {
		taken, err := s.users.ExistsByEmail(ctx, email)
		if err != nil {
			return user.User{}, ErrInternal
		}
		if taken {
			return user.User{}, ErrEmailTaken
		}
		usr.Email = email
	}

	if in.Resume != nil {
		if err := in.Resume.RequireResume(); err != nil {
			return user.User{}, ErrInvalidFile
		}
		url, err := s.uploader.Upload(ctx, *in.Resume, resumeFolder)
		if err != nil {
			return user.User{}, ErrInternal
		}
		usr.Profile.Resume = url
		usr.Profile.ResumeOriginalName = in.Resume.Name
	}

	if err := s.users.Update(ctx, usr); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return user.User{}, ErrEmailTaken
		}
		return user.User{}, ErrInternal
	}

	updated, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return sanitizeUser(updated), nil
}

// SplitList splits a comma separated form value, dropping blanks.
func SplitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	return strings.ToLower(email)
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
