package main

import (
	"context"
	"flag"
	"log"
	"time"

	"job-portal/internal/app"
	"job-portal/internal/config"
	"job-portal/internal/database/migration"
	dbpostgres "job-portal/internal/database/postgres"
	"job-portal/internal/database/seeder"
	"job-portal/migrations"
)

func main() {
	seed := flag.Bool("seed", false, "insert demo recruiter, company and jobs after migrating")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := app.NewLogger(cfg.App.AppName)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	n, err := migration.Runner{Source: migrations.FS, Logger: logger}.Run(ctx, db.SQLDB())
	if err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	logger.Printf("[Migration] up to date | applied=%d", n)

	if !*seed {
		return
	}
	if err := (seeder.Runner{Seeders: seeder.Defaults(), Logger: logger}).Run(ctx, db); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	logger.Printf("[Seeder] done | recruiter=%s", seeder.DemoRecruiterEmail)
}
