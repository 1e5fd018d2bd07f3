package usecase

import (
	"context"
	"errors"
	"testing"

	"job-portal/internal/domain/user"
	"job-portal/internal/infrastructure/storage"
	ucuser "job-portal/internal/usecase/user"

	"github.com/google/uuid"
)

func seedUser(t *testing.T, users *fakeUserRepo, email string) user.User {
	t.Helper()
	u := user.User{
		ID:           uuid.New(),
		FullName:     "Grace Hopper",
		Email:        email,
		PhoneNumber:  "0800",
		PasswordHash: "hash",
		Role:         user.RoleStudent,
		Profile:      user.Profile{Bio: "old bio", Skills: []string{"cobol"}},
	}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestUser_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	up := &fakeUploader{}
	uc := NewUserUsecase(users, up)
	u := seedUser(t, users, "grace@example.com")

	resume := storage.File{Name: "cv.pdf", Data: []byte("%PDF"), MIME: "application/pdf"}
	got, err := uc.UpdateProfile(ctx, u.ID, ucuser.UpdateProfileInput{
		Bio:    "compiler pioneer",
		Skills: "go, , postgres ,redis",
		Resume: &resume,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if got.FullName != "Grace Hopper" || got.PhoneNumber != "0800" {
		t.Fatalf("empty fields must not overwrite, got %+v", got)
	}
	if got.Profile.Bio != "compiler pioneer" {
		t.Fatalf("bio = %q", got.Profile.Bio)
	}
	if len(got.Profile.Skills) != 3 || got.Profile.Skills[2] != "redis" {
		t.Fatalf("skills = %v", got.Profile.Skills)
	}
	if got.Profile.ResumeOriginalName != "cv.pdf" || got.Profile.Resume == "" {
		t.Fatalf("resume not stored: %+v", got.Profile)
	}
	if got.PasswordHash != "" {
		t.Fatalf("password hash must be stripped")
	}
	if up.calls != 1 || up.folders[0] != "resumes" {
		t.Fatalf("unexpected uploads: %+v", up)
	}
}

func TestUser_UpdateProfileErrors(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	uc := NewUserUsecase(users, &fakeUploader{})
	u := seedUser(t, users, "one@example.com")
	seedUser(t, users, "two@example.com")

	if _, err := uc.UpdateProfile(ctx, u.ID, ucuser.UpdateProfileInput{Email: "TWO@example.com"}); !errors.Is(err, ucuser.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	txt := storage.File{Name: "notes.txt", Data: []byte("hi"), MIME: "text/plain; charset=utf-8"}
	if _, err := uc.UpdateProfile(ctx, u.ID, ucuser.UpdateProfileInput{Resume: &txt}); !errors.Is(err, ucuser.ErrInvalidFile) {
		t.Fatalf("expected ErrInvalidFile, got %v", err)
	}

	if _, err := uc.GetProfile(ctx, uuid.New()); !errors.Is(err, ucuser.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
