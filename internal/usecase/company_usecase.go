package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"job-portal/internal/domain/company"
	"job-portal/internal/infrastructure/storage"

	"github.com/google/uuid"
)

const companyLogoFolder = "logos"

type UpdateCompanyInput struct {
	Name        string
	Description string
	Website     string
	Location    string
	Logo        *storage.File
}

type CompanyUsecase interface {
	Register(ctx context.Context, userID uuid.UUID, name string) (company.Company, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]company.Company, error)
	Get(ctx context.Context, id uuid.UUID) (company.Company, error)
	Update(ctx context.Context, userID, id uuid.UUID, in UpdateCompanyInput) (company.Company, error)
}

type Company struct {
	companies company.Repository
	uploader  storage.Uploader
	listings  ListingCache
	logger    *log.Logger
}

// NewCompanyUsecase takes the job listing cache because listings embed the
// company name and logo.
func NewCompanyUsecase(companies company.Repository, uploader storage.Uploader, listings ListingCache, logger *log.Logger) *Company {
	return &Company{companies: companies, uploader: uploader, listings: listings, logger: logger}
}

func (u *Company) Register(ctx context.Context, userID uuid.UUID, name string) (company.Company, error) {
	name = strings.TrimSpace(name)
	if name == "" || userID == uuid.Nil {
		return company.Company{}, ErrInvalidInput
	}

	taken, err := u.companies.ExistsByName(ctx, name)
	if err != nil {
		return company.Company{}, ErrInternal
	}
	if taken {
		return company.Company{}, ErrCompanyNameTaken
	}

	c := company.Company{ID: uuid.New(), Name: name, UserID: userID}
	if err := u.companies.Create(ctx, c); err != nil {
		if errors.Is(err, company.ErrNameTaken) {
			return company.Company{}, ErrCompanyNameTaken
		}
		return company.Company{}, ErrInternal
	}

	created, err := u.companies.GetByID(ctx, c.ID)
	if err != nil {
		return company.Company{}, ErrInternal
	}
	if u.logger != nil {
		u.logger.Printf("[Company] registered id=%s user_id=%s", created.ID, userID)
	}
	return created, nil
}

func (u *Company) ListMine(ctx context.Context, userID uuid.UUID) ([]company.Company, error) {
	items, err := u.companies.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	if items == nil {
		items = []company.Company{}
	}
	return items, nil
}

func (u *Company) Get(ctx context.Context, id uuid.UUID) (company.Company, error) {
	c, err := u.companies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return company.Company{}, ErrCompanyNotFound
		}
		return company.Company{}, ErrInternal
	}
	return c, nil
}

// Update applies the non-empty fields. Only the owner may update.
func (u *Company) Update(ctx context.Context, userID, id uuid.UUID, in UpdateCompanyInput) (company.Company, error) {
	c, err := u.Get(ctx, id)
	if err != nil {
		return company.Company{}, err
	}
	if c.UserID != userID {
		return company.Company{}, ErrForbidden
	}

	if name := strings.TrimSpace(in.Name); name != "" && !strings.EqualFold(name, c.Name) {
		taken, err := u.companies.ExistsByName(ctx, name)
		if err != nil {
			return company.Company{}, ErrInternal
		}
		if taken {
			return company.Company{}, ErrCompanyNameTaken
		}
		c.Name = name
	}
	if v := strings.TrimSpace(in.Description); v != "" {
		c.Description = v
	}
	if v := strings.TrimSpace(in.Website); v != "" {
		c.Website = v
	}
	if v := strings.TrimSpace(in.Location); v != "" {
		c.Location = v
	}

	if in.Logo != nil {
		if err := in.Logo.RequireImage(); err != nil {
			return company.Company{}, ErrInvalidFile
		}
		url, err := u.uploader.Upload(ctx, *in.Logo, companyLogoFolder)
		if err != nil {
			if u.logger != nil {
				u.logger.Printf("[Company] logo upload failed id=%s err=%v", id, err)
			}
			return company.Company{}, ErrInternal
		}
		c.Logo = url
	}

	if err := u.companies.Update(ctx, c); err != nil {
		switch {
		case errors.Is(err, company.ErrNameTaken):
			return company.Company{}, ErrCompanyNameTaken
		case errors.Is(err, company.ErrNotFound):
			return company.Company{}, ErrCompanyNotFound
		default:
			return company.Company{}, ErrInternal
		}
	}

	invalidateJobListings(ctx, u.listings, u.logger)
	return u.Get(ctx, id)
}
