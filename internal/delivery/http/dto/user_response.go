package dto

import (
	"time"

	"job-portal/internal/domain/user"

	"github.com/google/uuid"
)

type ProfileResponse struct {
	Bio                string   `json:"bio"`
	Skills             []string `json:"skills"`
	Resume             string   `json:"resume"`
	ResumeOriginalName string   `json:"resume_original_name"`
	ProfilePhoto       string   `json:"profile_photo"`
}

type UserResponse struct {
	ID          uuid.UUID       `json:"id"`
	FullName    string          `json:"fullname"`
	Email       string          `json:"email"`
	PhoneNumber string          `json:"phone_number"`
	Role        string          `json:"role"`
	Profile     ProfileResponse `json:"profile"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ApplicantSummary is what anonymous readers of a job see of its applicants.
type ApplicantSummary struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"fullname"`
}

func NewUserResponse(u user.User) UserResponse {
	skills := u.Profile.Skills
	if skills == nil {
		skills = []string{}
	}
	return UserResponse{
		ID:          u.ID,
		FullName:    u.FullName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        string(u.Role),
		Profile: ProfileResponse{
			Bio:                u.Profile.Bio,
			Skills:             skills,
			Resume:             u.Profile.Resume,
			ResumeOriginalName: u.Profile.ResumeOriginalName,
			ProfilePhoto:       u.Profile.ProfilePhoto,
		},
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
