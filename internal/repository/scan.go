package repository

import (
	"job-portal/internal/domain/company"
	"job-portal/internal/domain/job"
	"job-portal/internal/domain/user"
)

type scanner interface {
	Scan(dest ...any) error
}

const userColumns = `u.id, u.fullname, u.email, u.phone_number, u.password_hash, u.role,
	u.bio, u.skills, u.resume_url, u.resume_original_name, u.profile_photo_url,
	u.created_at, u.updated_at`

const companyColumns = `c.id, c.name, c.description, c.website, c.location, c.logo_url,
	c.user_id, c.created_at, c.updated_at`

const jobColumns = `j.id, j.title, j.description, j.requirements, j.salary, j.location,
	j.job_type, j.experience_level, j.position, j.company_id, j.created_by,
	j.created_at, j.updated_at`

func userDest(u *user.User, role *string) []any {
	return []any{
		&u.ID, &u.FullName, &u.Email, &u.PhoneNumber, &u.PasswordHash, role,
		&u.Profile.Bio, &u.Profile.Skills, &u.Profile.Resume, &u.Profile.ResumeOriginalName, &u.Profile.ProfilePhoto,
		&u.CreatedAt, &u.UpdatedAt,
	}
}

func companyDest(c *company.Company) []any {
	return []any{
		&c.ID, &c.Name, &c.Description, &c.Website, &c.Location, &c.Logo,
		&c.UserID, &c.CreatedAt, &c.UpdatedAt,
	}
}

func jobDest(j *job.Job) []any {
	return []any{
		&j.ID, &j.Title, &j.Description, &j.Requirements, &j.Salary, &j.Location,
		&j.JobType, &j.ExperienceLevel, &j.Position, &j.CompanyID, &j.CreatedBy,
		&j.CreatedAt, &j.UpdatedAt,
	}
}

func scanUser(row scanner) (user.User, error) {
	var u user.User
	var role string
	if err := row.Scan(userDest(&u, &role)...); err != nil {
		return user.User{}, err
	}
	u.Role = user.Role(role)
	return u, nil
}

func scanCompany(row scanner) (company.Company, error) {
	var c company.Company
	if err := row.Scan(companyDest(&c)...); err != nil {
		return company.Company{}, err
	}
	return c, nil
}

// jobRowScanner collects jobColumns followed by companyColumns.
type jobRowScanner struct {
	j job.Job
	c company.Company
}

func (s *jobRowScanner) dest() []any {
	return append(jobDest(&s.j), companyDest(&s.c)...)
}

func (s *jobRowScanner) job() job.Job {
	j := s.j
	c := s.c
	j.Company = &c
	return j
}

func scanJobWithCompany(row scanner) (job.Job, error) {
	var s jobRowScanner
	if err := row.Scan(s.dest()...); err != nil {
		return job.Job{}, err
	}
	return s.job(), nil
}
