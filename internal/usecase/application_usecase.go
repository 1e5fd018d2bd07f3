package usecase

import (
	"context"
	"errors"
	"log"

	"job-portal/internal/domain/application"
	"job-portal/internal/domain/job"
	"job-portal/internal/events"

	"github.com/google/uuid"
)

const recentApplicantsLimit = 5

type JobDetails struct {
	Job             job.Job
	TotalApplicants int
	HasApplied      bool
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, userID, jobID uuid.UUID) (application.Application, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]application.Application, error)
	Applicants(ctx context.Context, userID, jobID uuid.UUID) (JobWithApplications, error)
	UpdateStatus(ctx context.Context, userID, applicationID uuid.UUID, status string) (application.Application, error)
	Details(ctx context.Context, userID, jobID uuid.UUID) (JobDetails, error)
	Recent(ctx context.Context, userID, jobID uuid.UUID) ([]application.Application, error)
}

type Application struct {
	applications application.Repository
	jobs         job.Repository
	events       events.Publisher
	logger       *log.Logger
}

func NewApplicationUsecase(applications application.Repository, jobs job.Repository, publisher events.Publisher, logger *log.Logger) *Application {
	return &Application{applications: applications, jobs: jobs, events: publisher, logger: logger}
}

func (u *Application) Apply(ctx context.Context, userID, jobID uuid.UUID) (application.Application, error) {
	j, err := u.getJob(ctx, jobID)
	if err != nil {
		return application.Application{}, err
	}

	exists, err := u.applications.Exists(ctx, jobID, userID)
	if err != nil {
		return application.Application{}, ErrInternal
	}
	if exists {
		return application.Application{}, ErrAlreadyApplied
	}

	a := application.Application{
		ID:          uuid.New(),
		JobID:       jobID,
		ApplicantID: userID,
		Status:      application.StatusPending,
	}
	if err := u.applications.Create(ctx, a); err != nil {
		if errors.Is(err, application.ErrAlreadyApplied) {
			return application.Application{}, ErrAlreadyApplied
		}
		return application.Application{}, ErrInternal
	}

	created, err := u.applications.GetByID(ctx, a.ID)
	if err != nil {
		return application.Application{}, ErrInternal
	}

	u.emit(ctx, events.New(events.TypeApplicationCreated, jobID).
		WithApplication(created.ID).
		WithUser(userID).
		WithStatus(string(created.Status)).
		WithAudience(j.CreatedBy, userID))
	return created, nil
}

func (u *Application) ListMine(ctx context.Context, userID uuid.UUID) ([]application.Application, error) {
	items, err := u.applications.ListByApplicant(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	if items == nil {
		items = []application.Application{}
	}
	return items, nil
}

func (u *Application) Applicants(ctx context.Context, userID, jobID uuid.UUID) (JobWithApplications, error) {
	j, err := u.ownedJob(ctx, userID, jobID)
	if err != nil {
		return JobWithApplications{}, err
	}

	apps, err := u.applications.ListByJob(ctx, jobID, 0)
	if err != nil {
		return JobWithApplications{}, ErrInternal
	}
	if apps == nil {
		apps = []application.Application{}
	}
	return JobWithApplications{Job: j, Applications: apps}, nil
}

// UpdateStatus is allowed for the recruiter who created the application's
// job. status is matched case-insensitively.
func (u *Application) UpdateStatus(ctx context.Context, userID, applicationID uuid.UUID, status string) (application.Application, error) {
	st, ok := application.ParseStatus(status)
	if !ok {
		return application.Application{}, ErrInvalidStatus
	}

	a, err := u.applications.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, ErrInternal
	}

	j, err := u.ownedJob(ctx, userID, a.JobID)
	if err != nil {
		return application.Application{}, err
	}

	updated, err := u.applications.UpdateStatus(ctx, applicationID, st)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, ErrInternal
	}

	u.emit(ctx, events.New(events.TypeApplicationStatusUpdated, a.JobID).
		WithApplication(applicationID).
		WithUser(a.ApplicantID).
		WithStatus(string(st)).
		WithAudience(j.CreatedBy, a.ApplicantID))
	if u.logger != nil {
		u.logger.Printf("[Applications] status updated id=%s status=%s by=%s", applicationID, st, userID)
	}
	return updated, nil
}

func (u *Application) Details(ctx context.Context, userID, jobID uuid.UUID) (JobDetails, error) {
	j, err := u.getJob(ctx, jobID)
	if err != nil {
		return JobDetails{}, err
	}

	total, err := u.applications.CountByJob(ctx, jobID)
	if err != nil {
		return JobDetails{}, ErrInternal
	}
	applied, err := u.applications.Exists(ctx, jobID, userID)
	if err != nil {
		return JobDetails{}, ErrInternal
	}

	return JobDetails{Job: j, TotalApplicants: total, HasApplied: applied}, nil
}

func (u *Application) Recent(ctx context.Context, userID, jobID uuid.UUID) ([]application.Application, error) {
	if _, err := u.ownedJob(ctx, userID, jobID); err != nil {
		return nil, err
	}

	items, err := u.applications.ListByJob(ctx, jobID, recentApplicantsLimit)
	if err != nil {
		return nil, ErrInternal
	}
	if items == nil {
		items = []application.Application{}
	}
	return items, nil
}

func (u *Application) getJob(ctx context.Context, jobID uuid.UUID) (job.Job, error) {
	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, ErrInternal
	}
	return j, nil
}

func (u *Application) ownedJob(ctx context.Context, userID, jobID uuid.UUID) (job.Job, error) {
	j, err := u.getJob(ctx, jobID)
	if err != nil {
		return job.Job{}, err
	}
	if j.CreatedBy != userID {
		return job.Job{}, ErrForbidden
	}
	return j, nil
}

func (u *Application) emit(ctx context.Context, e events.Event) {
	if u.events == nil {
		return
	}
	if err := u.events.Publish(ctx, e); err != nil && u.logger != nil {
		u.logger.Printf("[Applications] event publish failed type=%s err=%v", e.Type, err)
	}
}
