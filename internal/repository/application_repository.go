package repository

import (
	"context"

	"job-portal/internal/database"
	"job-portal/internal/database/postgres"
	"job-portal/internal/domain/application"
	"job-portal/internal/domain/user"

	"github.com/google/uuid"
)

const applicationColumns = `a.id, a.job_id, a.applicant_id, a.status, a.created_at, a.updated_at`

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO applications (id, job_id, applicant_id, status) VALUES ($1, $2, $3, $4)`,
		a.ID, a.JobID, a.ApplicantID, string(a.Status),
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return application.ErrAlreadyApplied
		}
		return err
	}
	return nil
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	row := r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications a WHERE a.id = $1`, id)
	a, err := scanApplication(row)
	if err != nil {
		if postgres.IsNoRows(err) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}

// ListByJob returns the job's applications newest first with the applicant
// populated. limit <= 0 means no limit.
func (r *PostgresApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID, limit int) ([]application.Application, error) {
	q := `SELECT ` + applicationColumns + `, ` + userColumns + `
		 FROM applications a
		 JOIN users u ON u.id = a.applicant_id
		 WHERE a.job_id = $1
		 ORDER BY a.created_at DESC`
	args := []any{jobID}
	if limit > 0 {
		q += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		var a application.Application
		var status string
		var u user.User
		var role string
		dest := append([]any{&a.ID, &a.JobID, &a.ApplicantID, &status, &a.CreatedAt, &a.UpdatedAt}, userDest(&u, &role)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		a.Status = application.Status(status)
		u.Role = user.Role(role)
		u.PasswordHash = ""
		a.Applicant = &u
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByApplicant returns the applicant's applications newest first with the
// job and its company populated.
func (r *PostgresApplicationRepository) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]application.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+`, `+jobColumns+`, `+companyColumns+`
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 JOIN companies c ON c.id = j.company_id
		 WHERE a.applicant_id = $1
		 ORDER BY a.created_at DESC`,
		applicantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		var a application.Application
		var status string
		jr := jobRowScanner{}
		dest := append([]any{&a.ID, &a.JobID, &a.ApplicantID, &status, &a.CreatedAt, &a.UpdatedAt}, jr.dest()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		a.Status = application.Status(status)
		j := jr.job()
		a.Job = &j
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) CountByJob(ctx context.Context, jobID uuid.UUID) (int, error) {
	var n int
	row := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM applications WHERE job_id = $1`, jobID)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresApplicationRepository) Exists(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND applicant_id = $2)`,
		jobID, applicantID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE applications a SET status = $2, updated_at = now()
		 WHERE a.id = $1
		 RETURNING `+applicationColumns,
		id, string(status),
	)
	a, err := scanApplication(row)
	if err != nil {
		if postgres.IsNoRows(err) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}

func scanApplication(row scanner) (application.Application, error) {
	var a application.Application
	var status string
	if err := row.Scan(&a.ID, &a.JobID, &a.ApplicantID, &status, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	return a, nil
}
