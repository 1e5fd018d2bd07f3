package usecase

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"job-portal/internal/domain/application"
	"job-portal/internal/domain/company"
	"job-portal/internal/domain/job"
	"job-portal/internal/events"
	ucuser "job-portal/internal/usecase/user"

	"github.com/google/uuid"
)

// PostJobInput holds the raw request values. Numbers arrive as strings so
// that both JSON numbers and numeric strings are accepted.
type PostJobInput struct {
	Title           string
	Description     string
	Requirements    string
	Salary          string
	Location        string
	JobType         string
	ExperienceLevel string
	Position        string
	CompanyID       string
}

type JobWithApplications struct {
	Job          job.Job
	Applications []application.Application
}

type JobUsecase interface {
	Post(ctx context.Context, userID uuid.UUID, in PostJobInput) (job.Job, error)
	List(ctx context.Context, keyword string) ([]job.Job, error)
	Get(ctx context.Context, id uuid.UUID) (JobWithApplications, error)
	ListByCreator(ctx context.Context, userID uuid.UUID) ([]job.Job, error)
}

type Job struct {
	jobs         job.Repository
	companies    company.Repository
	applications application.Repository
	cache        ListingCache
	events       events.Publisher
	logger       *log.Logger
}

func NewJobUsecase(jobs job.Repository, companies company.Repository, applications application.Repository, cache ListingCache, publisher events.Publisher, logger *log.Logger) *Job {
	return &Job{jobs: jobs, companies: companies, applications: applications, cache: cache, events: publisher, logger: logger}
}

func (u *Job) Post(ctx context.Context, userID uuid.UUID, in PostJobInput) (job.Job, error) {
	fields := []string{in.Title, in.Description, in.Requirements, in.Salary, in.Location, in.JobType, in.ExperienceLevel, in.Position, in.CompanyID}
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return job.Job{}, ErrMissingFields
		}
	}

	salary, err := strconv.ParseFloat(strings.TrimSpace(in.Salary), 64)
	if err != nil || salary < 0 {
		return job.Job{}, ErrInvalidInput
	}
	experience, err := strconv.Atoi(strings.TrimSpace(in.ExperienceLevel))
	if err != nil || experience < 0 {
		return job.Job{}, ErrInvalidInput
	}
	position, err := strconv.Atoi(strings.TrimSpace(in.Position))
	if err != nil || position < 0 {
		return job.Job{}, ErrInvalidInput
	}
	companyID, err := uuid.Parse(strings.TrimSpace(in.CompanyID))
	if err != nil {
		return job.Job{}, ErrInvalidInput
	}

	c, err := u.companies.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return job.Job{}, ErrCompanyNotFound
		}
		return job.Job{}, ErrInternal
	}
	if c.UserID != userID {
		return job.Job{}, ErrForbidden
	}

	j := job.Job{
		ID:              uuid.New(),
		Title:           strings.TrimSpace(in.Title),
		Description:     strings.TrimSpace(in.Description),
		Requirements:    ucuser.SplitList(in.Requirements),
		Salary:          salary,
		Location:        strings.TrimSpace(in.Location),
		JobType:         strings.TrimSpace(in.JobType),
		ExperienceLevel: experience,
		Position:        position,
		CompanyID:       companyID,
		CreatedBy:       userID,
	}
	if err := u.jobs.Create(ctx, j); err != nil {
		return job.Job{}, ErrInternal
	}

	created, err := u.jobs.GetByID(ctx, j.ID)
	if err != nil {
		return job.Job{}, ErrInternal
	}

	invalidateJobListings(ctx, u.cache, u.logger)
	u.emit(ctx, events.New(events.TypeJobPosted, created.ID).WithUser(userID))
	if u.logger != nil {
		u.logger.Printf("[Jobs] posted id=%s company_id=%s user_id=%s", created.ID, companyID, userID)
	}
	return created, nil
}

// List returns jobs matching keyword, newest first. Results are cached per
// normalized keyword; a lock keeps concurrent misses from all hitting the
// database. An unavailable or failing cache sends every call straight to the
// repository.
func (u *Job) List(ctx context.Context, keyword string) ([]job.Job, error) {
	keyword = strings.TrimSpace(keyword)
	if !cacheAvailable(u.cache) {
		return u.listFromRepository(ctx, keyword)
	}

	generation, err := u.cache.GetInt(ctx, jobsGenerationKey)
	if err != nil {
		return u.listFromRepository(ctx, keyword)
	}
	cacheKey := JobsSearchCacheKey(generation, keyword)
	lockKey := JobsSearchLockKey(cacheKey)

	var cached []job.Job
	if hit, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		if u.logger != nil {
			u.logger.Printf("[Jobs] Cache HIT: %s", cacheKey)
		}
		return cached, nil
	}
	if u.logger != nil {
		u.logger.Printf("[Jobs] Cache MISS: %s", cacheKey)
	}

	ok, err := u.cache.SetIfNotExists(ctx, lockKey, "1", 30*time.Second)
	if err != nil {
		return u.listFromRepository(ctx, keyword)
	}
	if ok {
		defer func() { _ = u.cache.Delete(context.WithoutCancel(ctx), lockKey) }()
	} else {
		jitter := time.Duration(time.Now().UnixNano()%201) * time.Millisecond
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(300*time.Millisecond + jitter):
		}
		var cached []job.Job
		if hit, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
		if u.logger != nil {
			u.logger.Printf("[Jobs] Lock wait fallback: %s", lockKey)
		}
	}

	items, err := u.listFromRepository(ctx, keyword)
	if err != nil {
		return nil, err
	}
	if err := u.cache.SetJSON(ctx, cacheKey, items, 0); err == nil && u.logger != nil {
		u.logger.Printf("[Jobs] Cache SET: %s", cacheKey)
	}
	return items, nil
}

func (u *Job) listFromRepository(ctx context.Context, keyword string) ([]job.Job, error) {
	items, err := u.jobs.List(ctx, job.ListFilter{Keyword: keyword})
	if err != nil {
		return nil, ErrInternal
	}
	if items == nil {
		items = []job.Job{}
	}
	return items, nil
}

func (u *Job) Get(ctx context.Context, id uuid.UUID) (JobWithApplications, error) {
	j, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return JobWithApplications{}, ErrJobNotFound
		}
		return JobWithApplications{}, ErrInternal
	}

	apps, err := u.applications.ListByJob(ctx, id, 0)
	if err != nil {
		return JobWithApplications{}, ErrInternal
	}
	if apps == nil {
		apps = []application.Application{}
	}
	return JobWithApplications{Job: j, Applications: apps}, nil
}

func (u *Job) ListByCreator(ctx context.Context, userID uuid.UUID) ([]job.Job, error) {
	items, err := u.jobs.List(ctx, job.ListFilter{CreatedBy: &userID})
	if err != nil {
		return nil, ErrInternal
	}
	if items == nil {
		items = []job.Job{}
	}
	return items, nil
}

func (u *Job) emit(ctx context.Context, e events.Event) {
	if u.events == nil {
		return
	}
	if err := u.events.Publish(ctx, e); err != nil && u.logger != nil {
		u.logger.Printf("[Jobs] event publish failed type=%s err=%v", e.Type, err)
	}
}
