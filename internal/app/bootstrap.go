package app

import (
	"context"
	"fmt"
	"strings"

	"job-portal/internal/config"
	"job-portal/internal/delivery/http/handler"
	"job-portal/internal/delivery/http/middleware"
	"job-portal/internal/delivery/http/routes"
	v1 "job-portal/internal/delivery/http/routes/v1"
	"job-portal/internal/pkg/validator"
	"job-portal/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

// multipartOverhead leaves room for form fields around the largest upload.
const multipartOverhead = 1 << 20

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	cfg := c.Config
	f := fiber.New(fiber.Config{
		AppName:         cfg.App.AppName,
		BodyLimit:       int(cfg.Upload.MaxBytes) + multipartOverhead,
		StructValidator: validator.New(),
	})

	registerGlobalMiddleware(f, cfg, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container and the HTTP app and starts the websocket
// hub. The returned cleanup stops the hub and closes every connection.
func Bootstrap(ctx context.Context, cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, nil)
	if err != nil {
		return nil, nil, err
	}

	if cfg.App.MigrationsOnStart {
		n, err := c.Migrate(ctx)
		if err != nil {
			_ = c.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		c.Logger.Printf("[Migration] up to date | applied=%d", n)
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	app := New(c)
	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, cfg config.Config, c *Container) {
	if app == nil {
		return
	}

	accessLog := middleware.NewAccessLogMiddleware(c.Logger)
	app.Use(accessLog.Middleware())

	errMw := middleware.NewErrorMiddleware(c.Logger)
	app.Use(errMw.Middleware())

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowCredentials: !allowsAnyOrigin(cfg.CORS.AllowOrigins),
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{middleware.HeaderRequestID},
	}))
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	cfg := c.Config
	maxUpload := cfg.Upload.MaxBytes
	cookie := handler.CookieOptions{Secure: cfg.Cookie.Secure || cfg.IsProduction(), MaxAge: cfg.Cookie.MaxAge}

	handlers := v1.Handlers{
		Auth:        handler.NewAuthHandler(c.Auth, cookie, maxUpload),
		User:        handler.NewUserHandler(c.Users, maxUpload),
		Company:     handler.NewCompanyHandler(c.Companies, maxUpload),
		Job:         handler.NewJobHandler(c.Jobs),
		Application: handler.NewApplicationHandler(c.Application),
	}

	health := handler.NewHealthHandler(c.DB, c.Cache)
	wsHandler := ws.NewHandler(c.Hub, cfg.CORS.AllowOrigins, middleware.UserID, c.Logger)
	authMw := middleware.NewAuthMiddleware(c.JWT)

	routes.NewRegistry(health, handlers, authMw, wsHandler.HandleEvents).Register(app)
}

// Credentialed CORS cannot be combined with a wildcard origin.
func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if strings.TrimSpace(o) == "*" {
			return true
		}
	}
	return false
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
