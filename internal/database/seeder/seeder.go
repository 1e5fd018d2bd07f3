package seeder

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"job-portal/internal/database"
)

// Seeder inserts demo or reference rows. Run must be safe to repeat.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

func Defaults() []Seeder {
	return []Seeder{
		DemoSeeder{},
	}
}

// Runner applies Seeders in order and stops at the first failure.
type Runner struct {
	Seeders []Seeder
	Logger  *log.Logger
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return errors.New("nil db")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		start := time.Now()
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		if r.Logger != nil {
			r.Logger.Printf("[Seeder] done | name=%s duration=%s", s.Name(), time.Since(start).Round(time.Millisecond))
		}
	}
	return nil
}
