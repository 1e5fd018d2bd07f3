package job

import (
	"context"
	"errors"
	"time"

	"job-portal/internal/domain/company"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("job not found")

type Job struct {
	ID              uuid.UUID
	Title           string
	Description     string
	Requirements    []string
	Salary          float64
	Location        string
	JobType         string
	ExperienceLevel int
	Position        int
	CompanyID       uuid.UUID
	CreatedBy       uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Company is populated by listing queries only.
	Company *company.Company
}

// ListFilter narrows List. Keyword matches title or description,
// case-insensitively and literally.
type ListFilter struct {
	Keyword   string
	CreatedBy *uuid.UUID
}

type Repository interface {
	Create(ctx context.Context, j Job) error
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	List(ctx context.Context, f ListFilter) ([]Job, error)
}
