package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleStudent   Role = "student"
	RoleRecruiter Role = "recruiter"
)

func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleStudent:
		return RoleStudent, true
	case RoleRecruiter:
		return RoleRecruiter, true
	default:
		return "", false
	}
}

type Profile struct {
	Bio                string
	Skills             []string
	Resume             string
	ResumeOriginalName string
	ProfilePhoto       string
}

type User struct {
	ID           uuid.UUID
	FullName     string
	Email        string
	PhoneNumber  string
	PasswordHash string
	Role         Role
	Profile      Profile
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
