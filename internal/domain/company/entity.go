package company

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("company not found")
	ErrNameTaken = errors.New("company name already registered")
)

type Company struct {
	ID          uuid.UUID
	Name        string
	Description string
	Website     string
	Location    string
	Logo        string
	UserID      uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Repository interface {
	Create(ctx context.Context, c Company) error
	GetByID(ctx context.Context, id uuid.UUID) (Company, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Company, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Update(ctx context.Context, c Company) error
}
