package repository

import (
	"context"

	"job-portal/internal/database"
	"job-portal/internal/database/postgres"
	"job-portal/internal/domain/user"

	"github.com/google/uuid"
)

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, fullname, email, phone_number, password_hash, role,
			bio, skills, resume_url, resume_original_name, profile_photo_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		u.ID, u.FullName, u.Email, u.PhoneNumber, u.PasswordHash, string(u.Role),
		u.Profile.Bio, nonNilStrings(u.Profile.Skills), u.Profile.Resume, u.Profile.ResumeOriginalName, u.Profile.ProfilePhoto,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return user.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = $1`, id)
	return scanUserRow(row)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE u.email = $1`, email)
	return scanUserRow(row)
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserRepository) Update(ctx context.Context, u user.User) error {
	n, err := r.db.Exec(ctx,
		`UPDATE users
		 SET fullname = $2, email = $3, phone_number = $4, password_hash = $5,
			 bio = $6, skills = $7, resume_url = $8, resume_original_name = $9,
			 profile_photo_url = $10, updated_at = now()
		 WHERE id = $1`,
		u.ID, u.FullName, u.Email, u.PhoneNumber, u.PasswordHash,
		u.Profile.Bio, nonNilStrings(u.Profile.Skills), u.Profile.Resume, u.Profile.ResumeOriginalName,
		u.Profile.ProfilePhoto,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return user.ErrEmailTaken
		}
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func scanUserRow(row scanner) (user.User, error) {
	u, err := scanUser(row)
	if err != nil {
		if postgres.IsNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

// nonNilStrings keeps NOT NULL text[] columns from receiving NULL.
func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
