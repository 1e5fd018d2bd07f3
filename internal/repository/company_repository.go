package repository

import (
	"context"

	"job-portal/internal/database"
	"job-portal/internal/database/postgres"
	"job-portal/internal/domain/company"

	"github.com/google/uuid"
)

type PostgresCompanyRepository struct {
	db database.DB
}

func NewPostgresCompanyRepository(db database.DB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

func (r *PostgresCompanyRepository) Create(ctx context.Context, c company.Company) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO companies (id, name, description, website, location, logo_url, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.Name, c.Description, c.Website, c.Location, c.Logo, c.UserID,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return company.ErrNameTaken
		}
		return err
	}
	return nil
}

func (r *PostgresCompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (company.Company, error) {
	row := r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies c WHERE c.id = $1`, id)
	c, err := scanCompany(row)
	if err != nil {
		if postgres.IsNoRows(err) {
			return company.Company{}, company.ErrNotFound
		}
		return company.Company{}, err
	}
	return c, nil
}

func (r *PostgresCompanyRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]company.Company, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+companyColumns+`
		 FROM companies c
		 WHERE c.user_id = $1
		 ORDER BY c.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]company.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCompanyRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM companies WHERE lower(name) = lower($1))`, name)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresCompanyRepository) Update(ctx context.Context, c company.Company) error {
	n, err := r.db.Exec(ctx,
		`UPDATE companies
		 SET name = $2, description = $3, website = $4, location = $5, logo_url = $6, updated_at = now()
		 WHERE id = $1`,
		c.ID, c.Name, c.Description, c.Website, c.Location, c.Logo,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return company.ErrNameTaken
		}
		return err
	}
	if n == 0 {
		return company.ErrNotFound
	}
	return nil
}
