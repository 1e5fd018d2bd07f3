package seeder

import (
	"context"
	"fmt"

	"job-portal/internal/database"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	DemoRecruiterEmail    = "recruiter@demo.local"
	DemoRecruiterPassword = "recruiter123"
	DemoCompanyName       = "Demo Labs"
)

type demoJob struct {
	Title           string
	Description     string
	Requirements    []string
	Salary          float64
	Location        string
	JobType         string
	ExperienceLevel int
	Position        int
}

var demoJobs = []demoJob{
	{
		Title:           "Backend Engineer",
		Description:     "Build and operate Go services behind the job board API.",
		Requirements:    []string{"Go", "PostgreSQL", "Redis"},
		Salary:          18,
		Location:        "Jakarta",
		JobType:         "Full-time",
		ExperienceLevel: 2,
		Position:        2,
	},
	{
		Title:           "Frontend Developer",
		Description:     "Own the candidate-facing web app.",
		Requirements:    []string{"TypeScript", "React"},
		Salary:          15,
		Location:        "Bandung",
		JobType:         "Full-time",
		ExperienceLevel: 1,
		Position:        1,
	},
	{
		Title:           "Data Analyst Intern",
		Description:     "Help the hiring team make sense of application funnels.",
		Requirements:    []string{"SQL", "Python"},
		Salary:          4,
		Location:        "Remote",
		JobType:         "Internship",
		ExperienceLevel: 0,
		Position:        3,
	},
}

// DemoSeeder creates one recruiter, one company owned by it and a handful of
// jobs. Reruns are no-ops.
type DemoSeeder struct {
	// Password overrides DemoRecruiterPassword when set.
	Password string
}

func (DemoSeeder) Name() string { return "demo" }

func (s DemoSeeder) Run(ctx context.Context, db database.DB) error {
	for table, cols := range demoSchema {
		if err := EnsureTableColumns(ctx, db, table, cols...); err != nil {
			return err
		}
	}

	password := s.Password
	if password == "" {
		password = DemoRecruiterPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		recruiterID, err := upsertRecruiter(ctx, tx, string(hash))
		if err != nil {
			return err
		}
		companyID, err := upsertCompany(ctx, tx, recruiterID)
		if err != nil {
			return err
		}
		return insertJobsOnce(ctx, tx, companyID, recruiterID)
	})
}

var demoSchema = map[string][]string{
	"users":     {"id", "fullname", "email", "phone_number", "password_hash", "role"},
	"companies": {"id", "name", "description", "website", "location", "user_id"},
	"jobs": {"id", "title", "description", "requirements", "salary", "location",
		"job_type", "experience_level", "position", "company_id", "created_by"},
}

func upsertRecruiter(ctx context.Context, q database.Querier, passwordHash string) (uuid.UUID, error) {
	if _, err := q.Exec(ctx,
		`INSERT INTO users (id, fullname, email, phone_number, password_hash, role)
		 VALUES ($1, $2, $3, $4, $5, 'recruiter')
		 ON CONFLICT (email) DO NOTHING`,
		uuid.New(), "Demo Recruiter", DemoRecruiterEmail, "081200000000", passwordHash,
	); err != nil {
		return uuid.Nil, err
	}

	var id uuid.UUID
	if err := q.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, DemoRecruiterEmail).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("load recruiter: %w", err)
	}
	return id, nil
}

func upsertCompany(ctx context.Context, q database.Querier, ownerID uuid.UUID) (uuid.UUID, error) {
	if _, err := q.Exec(ctx,
		`INSERT INTO companies (id, name, description, website, location, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (name) DO NOTHING`,
		uuid.New(), DemoCompanyName, "A small product studio hiring across engineering and data.",
		"https://demo.local", "Jakarta", ownerID,
	); err != nil {
		return uuid.Nil, err
	}

	var id uuid.UUID
	if err := q.QueryRow(ctx, `SELECT id FROM companies WHERE name = $1`, DemoCompanyName).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("load company: %w", err)
	}
	return id, nil
}

// jobs has no natural key, so the demo jobs are only inserted into a company
// that has none yet.
func insertJobsOnce(ctx context.Context, q database.Querier, companyID, createdBy uuid.UUID) error {
	var existing int
	if err := q.QueryRow(ctx, `SELECT COUNT(1) FROM jobs WHERE company_id = $1`, companyID).Scan(&existing); err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	for _, j := range demoJobs {
		if _, err := q.Exec(ctx,
			`INSERT INTO jobs (id, title, description, requirements, salary, location, job_type,
				experience_level, position, company_id, created_by)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			uuid.New(), j.Title, j.Description, j.Requirements, j.Salary, j.Location, j.JobType,
			j.ExperienceLevel, j.Position, companyID, createdBy,
		); err != nil {
			return fmt.Errorf("insert job %q: %w", j.Title, err)
		}
	}
	return nil
}
