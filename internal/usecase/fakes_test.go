package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"job-portal/internal/domain/application"
	"job-portal/internal/domain/company"
	"job-portal/internal/domain/job"
	"job-portal/internal/domain/user"
	"job-portal/internal/events"
	"job-portal/internal/infrastructure/storage"

	"github.com/google/uuid"
)

var testPNG = storage.File{Name: "photo.png", Data: []byte("png"), MIME: "image/png"}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]user.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return user.ErrEmailTaken
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return user.ErrNotFound
	}
	r.users[u.ID] = u
	return nil
}

type fakeCompanyRepo struct {
	items map[uuid.UUID]company.Company
}

func newFakeCompanyRepo(items ...company.Company) *fakeCompanyRepo {
	r := &fakeCompanyRepo{items: map[uuid.UUID]company.Company{}}
	for _, c := range items {
		r.items[c.ID] = c
	}
	return r
}

func (r *fakeCompanyRepo) Create(_ context.Context, c company.Company) error {
	for _, existing := range r.items {
		if strings.EqualFold(existing.Name, c.Name) {
			return company.ErrNameTaken
		}
	}
	r.items[c.ID] = c
	return nil
}

func (r *fakeCompanyRepo) GetByID(_ context.Context, id uuid.UUID) (company.Company, error) {
	c, ok := r.items[id]
	if !ok {
		return company.Company{}, company.ErrNotFound
	}
	return c, nil
}

func (r *fakeCompanyRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]company.Company, error) {
	var out []company.Company
	for _, c := range r.items {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCompanyRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, c := range r.items {
		if strings.EqualFold(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCompanyRepo) Update(_ context.Context, c company.Company) error {
	if _, ok := r.items[c.ID]; !ok {
		return company.ErrNotFound
	}
	r.items[c.ID] = c
	return nil
}

type fakeJobRepo struct {
	items     map[uuid.UUID]job.Job
	listCalls int
	clock     time.Time
}

func newFakeJobRepo(items ...job.Job) *fakeJobRepo {
	r := &fakeJobRepo{items: map[uuid.UUID]job.Job{}, clock: time.Unix(1_700_000_000, 0).UTC()}
	for _, j := range items {
		r.items[j.ID] = j
	}
	return r
}

func (r *fakeJobRepo) Create(_ context.Context, j job.Job) error {
	r.clock = r.clock.Add(time.Minute)
	j.CreatedAt = r.clock
	r.items[j.ID] = j
	return nil
}

func (r *fakeJobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	j, ok := r.items[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}

func (r *fakeJobRepo) List(_ context.Context, f job.ListFilter) ([]job.Job, error) {
	r.listCalls++
	kw := strings.ToLower(f.Keyword)
	var out []job.Job
	for _, j := range r.items {
		if f.CreatedBy != nil && j.CreatedBy != *f.CreatedBy {
			continue
		}
		if kw != "" && !strings.Contains(strings.ToLower(j.Title), kw) && !strings.Contains(strings.ToLower(j.Description), kw) {
			continue
		}
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out, nil
}

type fakeApplicationRepo struct {
	items []application.Application
	clock time.Time
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{clock: time.Unix(1_700_000_000, 0).UTC()}
}

func (r *fakeApplicationRepo) Create(_ context.Context, a application.Application) error {
	for _, existing := range r.items {
		if existing.JobID == a.JobID && existing.ApplicantID == a.ApplicantID {
			return application.ErrAlreadyApplied
		}
	}
	r.clock = r.clock.Add(time.Minute)
	a.CreatedAt = r.clock
	r.items = append(r.items, a)
	return nil
}

func (r *fakeApplicationRepo) GetByID(_ context.Context, id uuid.UUID) (application.Application, error) {
	for _, a := range r.items {
		if a.ID == id {
			return a, nil
		}
	}
	return application.Application{}, application.ErrNotFound
}

func (r *fakeApplicationRepo) ListByJob(_ context.Context, jobID uuid.UUID, limit int) ([]application.Application, error) {
	var out []application.Application
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].JobID == jobID {
			out = append(out, r.items[i])
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeApplicationRepo) ListByApplicant(_ context.Context, applicantID uuid.UUID) ([]application.Application, error) {
	var out []application.Application
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].ApplicantID == applicantID {
			out = append(out, r.items[i])
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) CountByJob(ctx context.Context, jobID uuid.UUID) (int, error) {
	items, _ := r.ListByJob(ctx, jobID, 0)
	return len(items), nil
}

func (r *fakeApplicationRepo) Exists(_ context.Context, jobID, applicantID uuid.UUID) (bool, error) {
	for _, a := range r.items {
		if a.JobID == jobID && a.ApplicantID == applicantID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeApplicationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status application.Status) (application.Application, error) {
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Status = status
			return r.items[i], nil
		}
	}
	return application.Application{}, application.ErrNotFound
}

type fakeUploader struct {
	calls   int
	folders []string
	err     error
}

func (u *fakeUploader) Upload(_ context.Context, f storage.File, folder string) (string, error) {
	u.calls++
	u.folders = append(u.folders, folder)
	if u.err != nil {
		return "", u.err
	}
	return "https://files.example/" + folder + "/" + f.Name, nil
}

// fakeCache stores raw values; GetJSON only supports []job.Job, which is all
// the job listing caches.
type fakeCache struct {
	values        map[string]any
	counters      map[string]int64
	locks         map[string]bool
	deletedByPatt []string
	unavailable   bool
	lockCalls     int
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]any{}, counters: map[string]int64{}, locks: map[string]bool{}}
}

func (c *fakeCache) Available() bool { return !c.unavailable }

func (c *fakeCache) GetInt(_ context.Context, key string) (int64, error) {
	return c.counters[key], nil
}

func (c *fakeCache) Incr(_ context.Context, key string) (int64, error) {
	c.counters[key]++
	return c.counters[key], nil
}

func (c *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	v, ok := c.values[key]
	if !ok {
		return false, nil
	}
	if dst, ok := out.(*[]job.Job); ok {
		*dst = v.([]job.Job)
		return true, nil
	}
	return false, nil
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.values[key] = value
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	delete(c.values, key)
	delete(c.locks, key)
	return nil
}

func (c *fakeCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.deletedByPatt = append(c.deletedByPatt, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.values {
		if strings.HasPrefix(k, prefix) {
			delete(c.values, k)
		}
	}
	return nil
}

func (c *fakeCache) SetIfNotExists(_ context.Context, key string, _ string, _ time.Duration) (bool, error) {
	c.lockCalls++
	if c.locks[key] {
		return false, nil
	}
	c.locks[key] = true
	return true, nil
}

type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.events = append(p.events, e)
	return nil
}
