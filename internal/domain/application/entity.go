package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"job-portal/internal/domain/job"
	"job-portal/internal/domain/user"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, true
	case StatusApproved:
		return StatusApproved, true
	case StatusRejected:
		return StatusRejected, true
	default:
		return "", false
	}
}

var (
	ErrNotFound       = errors.New("application not found")
	ErrAlreadyApplied = errors.New("already applied to this job")
)

type Application struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	ApplicantID uuid.UUID
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Populated depending on the query.
	Job       *job.Job
	Applicant *user.User
}

type Repository interface {
	// Create fails with ErrAlreadyApplied when the applicant already has an
	// application for the job.
	Create(ctx context.Context, a Application) error
	GetByID(ctx context.Context, id uuid.UUID) (Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID, limit int) ([]Application, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]Application, error)
	CountByJob(ctx context.Context, jobID uuid.UUID) (int, error)
	Exists(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (Application, error)
}
