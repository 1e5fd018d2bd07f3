package dto

import (
	"time"

	"job-portal/internal/domain/application"

	"github.com/google/uuid"
)

type ApplicationResponse struct {
	ID          uuid.UUID    `json:"id"`
	JobID       uuid.UUID    `json:"job_id"`
	ApplicantID uuid.UUID    `json:"applicant_id"`
	Status      string       `json:"status"`
	Job         *JobResponse `json:"job,omitempty"`
	Applicant   any          `json:"applicant,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewApplicationResponse renders a. With full set the applicant's whole
// profile is included, otherwise only id and name.
func NewApplicationResponse(a application.Application, full bool) ApplicationResponse {
	res := ApplicationResponse{
		ID:          a.ID,
		JobID:       a.JobID,
		ApplicantID: a.ApplicantID,
		Status:      string(a.Status),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	if a.Job != nil {
		j := NewJobResponse(*a.Job)
		res.Job = &j
	}
	if a.Applicant != nil {
		if full {
			res.Applicant = NewUserResponse(*a.Applicant)
		} else {
			res.Applicant = ApplicantSummary{ID: a.Applicant.ID, FullName: a.Applicant.FullName}
		}
	}
	return res
}

func NewApplicationListResponse(items []application.Application, full bool) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(items))
	for _, a := range items {
		out = append(out, NewApplicationResponse(a, full))
	}
	return out
}
