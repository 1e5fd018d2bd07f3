package dto

import (
	"time"

	"job-portal/internal/domain/job"

	"github.com/google/uuid"
)

type JobResponse struct {
	ID              uuid.UUID        `json:"id"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Requirements    []string         `json:"requirements"`
	Salary          float64          `json:"salary"`
	Location        string           `json:"location"`
	JobType         string           `json:"job_type"`
	ExperienceLevel int              `json:"experience_level"`
	Position        int              `json:"position"`
	CompanyID       uuid.UUID        `json:"company_id"`
	CreatedBy       uuid.UUID        `json:"created_by"`
	Company         *CompanyResponse `json:"company,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`

	Applications []ApplicationResponse `json:"applications,omitempty"`
}

func NewJobResponse(j job.Job) JobResponse {
	reqs := j.Requirements
	if reqs == nil {
		reqs = []string{}
	}
	res := JobResponse{
		ID:              j.ID,
		Title:           j.Title,
		Description:     j.Description,
		Requirements:    reqs,
		Salary:          j.Salary,
		Location:        j.Location,
		JobType:         j.JobType,
		ExperienceLevel: j.ExperienceLevel,
		Position:        j.Position,
		CompanyID:       j.CompanyID,
		CreatedBy:       j.CreatedBy,
		CreatedAt:       j.CreatedAt,
		UpdatedAt:       j.UpdatedAt,
	}
	if j.Company != nil {
		c := NewCompanyResponse(*j.Company)
		res.Company = &c
	}
	return res
}

func NewJobListResponse(items []job.Job) []JobResponse {
	out := make([]JobResponse, 0, len(items))
	for _, j := range items {
		out = append(out, NewJobResponse(j))
	}
	return out
}

type JobDetailsResponse struct {
	Job             JobResponse `json:"job"`
	TotalApplicants int         `json:"total_applicants"`
	HasApplied      bool        `json:"has_applied"`
}
