package app

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"job-portal/internal/config"
	"job-portal/internal/database"
	"job-portal/internal/database/migration"
	dbpostgres "job-portal/internal/database/postgres"
	"job-portal/internal/events"
	"job-portal/internal/infrastructure/cache"
	"job-portal/internal/infrastructure/messaging"
	"job-portal/internal/infrastructure/storage"
	"job-portal/internal/pkg/jwt"
	"job-portal/internal/repository"
	"job-portal/internal/usecase"
	"job-portal/internal/ws"
	"job-portal/migrations"
)

// Container owns the process-wide dependencies and their shutdown order.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB       database.DB
	Cache    *cache.Redis
	Queue    *messaging.RabbitMQ
	Uploader storage.Uploader
	Hub      *ws.Hub
	Events   events.Publisher
	JWT      *jwt.HMACService

	Auth        *usecase.Auth
	Users       *usecase.User
	Companies   *usecase.Company
	Jobs        *usecase.Job
	Application *usecase.Application
}

func NewLogger(appName string) *log.Logger {
	return log.New(os.Stdout, "["+appName+"] ", log.LstdFlags|log.LUTC|log.Lmicroseconds)
}

func NewContainer(ctx context.Context, cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = NewLogger(cfg.App.AppName)
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	c := &Container{Config: cfg, Logger: logger, DB: db}

	c.Cache = cache.NewRedis(connectCtx, cfg.Redis, logger)

	c.Queue, err = messaging.NewRabbitMQ(cfg.RabbitMQ, logger)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	c.Uploader, err = storage.NewUploader(cfg.Cloudinary, logger)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	c.Hub = ws.NewHub(logger)
	sinks := []events.Publisher{ws.NewPublisher(c.Hub)}
	if c.Queue != nil {
		sinks = append(sinks, c.Queue)
	}
	c.Events = events.NewFanout(logger, sinks...)

	c.JWT = jwt.NewHMACService(
		cfg.App.AppName,
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	users := repository.NewPostgresUserRepository(db)
	companies := repository.NewPostgresCompanyRepository(db)
	jobs := repository.NewPostgresJobRepository(db)
	applications := repository.NewPostgresApplicationRepository(db)

	c.Auth = usecase.NewAuthUsecase(users, c.Uploader, c.JWT)
	c.Users = usecase.NewUserUsecase(users, c.Uploader)
	c.Companies = usecase.NewCompanyUsecase(companies, c.Uploader, c.Cache, logger)
	c.Jobs = usecase.NewJobUsecase(jobs, companies, applications, c.Cache, c.Events, logger)
	c.Application = usecase.NewApplicationUsecase(applications, jobs, c.Events, logger)

	return c, nil
}

// Migrate applies the embedded SQL migrations.
func (c *Container) Migrate(ctx context.Context) (int, error) {
	if c == nil || c.DB == nil {
		return 0, errors.New("nil container")
	}
	return migration.Runner{Source: migrations.FS, Logger: c.Logger}.Run(ctx, c.DB.SQLDB())
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.Queue != nil {
		errs = append(errs, c.Queue.Close())
	}
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
