package repository

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"job-portal/internal/database"
	"job-portal/internal/database/postgres"
	"job-portal/internal/domain/job"

	"github.com/google/uuid"
)

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (id, title, description, requirements, salary, location, job_type,
			experience_level, position, company_id, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		j.ID, j.Title, j.Description, nonNilStrings(j.Requirements), j.Salary, j.Location, j.JobType,
		j.ExperienceLevel, j.Position, j.CompanyID, j.CreatedBy,
	)
	return err
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+jobColumns+`, `+companyColumns+`
		 FROM jobs j
		 JOIN companies c ON c.id = j.company_id
		 WHERE j.id = $1`,
		id,
	)
	j, err := scanJobWithCompany(row)
	if err != nil {
		if postgres.IsNoRows(err) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) List(ctx context.Context, f job.ListFilter) ([]job.Job, error) {
	where, args := listConditions(f)

	q := `SELECT ` + jobColumns + `, ` + companyColumns + `
		 FROM jobs j
		 JOIN companies c ON c.id = j.company_id`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY j.created_at DESC`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJobWithCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// listConditions builds the WHERE clauses for f. The keyword is quoted so
// that it is matched literally by the case-insensitive regex operator.
func listConditions(f job.ListFilter) ([]string, []any) {
	var where []string
	var args []any
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if kw := strings.TrimSpace(f.Keyword); kw != "" {
		p := next(regexp.QuoteMeta(kw))
		where = append(where, "(j.title ~* "+p+" OR j.description ~* "+p+")")
	}
	if f.CreatedBy != nil {
		where = append(where, "j.created_by = "+next(*f.CreatedBy))
	}
	return where, args
}
