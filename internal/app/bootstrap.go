package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"resume-coach/internal/config"
	"resume-coach/internal/delivery/http/handler"
	"resume-coach/internal/delivery/http/middleware"
	"resume-coach/internal/delivery/http/routes"
	v1 "resume-coach/internal/delivery/http/routes/v1"
	"resume-coach/internal/usecase"
	"resume-coach/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

// Multipart framing on top of the file itself.
const bodyLimitSlack = 1 << 20

type App struct {
	Fiber     *fiber.App
	WS        *http.Server
	container *Container
}

func New(c *Container) *App {
	cfg := c.Config
	em := middleware.NewErrorMiddleware(c.Logger)
	em.OversizedBody(routes.AnalyzePath, fiber.StatusBadRequest, usecase.ErrFileTooLarge.Error())

	f := fiber.New(fiber.Config{
		AppName:      cfg.App.AppName,
		BodyLimit:    int(cfg.Resume.MaxBytes) + bodyLimitSlack,
		ErrorHandler: em.ErrorHandler(),
	})

	registerGlobalMiddleware(f, c, em)
	registerRoutes(f, c)

	a := &App{Fiber: f, container: c}
	if addr, err := ListenAddr(cfg.App.WSPort); err == nil {
		a.WS = ws.NewServer(addr, ws.NewHandler(c.Hub, cfg.App.CORSOrigins, c.Verifier, c.Logger))
	}
	return a
}

func Bootstrap(ctx context.Context, cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return New(c), c.Close, nil
}

// StartBackground runs the WebSocket hub and the cache warmer until ctx is
// done.
func (a *App) StartBackground(ctx context.Context) error {
	go a.container.Hub.Run(ctx)
	if a.container.Warmer == nil {
		return nil
	}
	if err := a.container.Warmer.Start(ctx); err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		a.container.Warmer.Stop()
	}()
	return nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container, em *middleware.ErrorMiddleware) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	app.Use(em.Middleware())
	app.Use(cors.New(corsConfig(c.Config.App.CORSOrigins)))
	app.Use(middleware.NewIdentityMiddleware(c.Verifier).Middleware())
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowHeaders:  []string{fiber.HeaderOrigin, fiber.HeaderContentType, fiber.HeaderAccept, fiber.HeaderAuthorization, middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
	}
	if len(origins) > 0 {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	health := handler.NewHealthHandler(c.Config.App.AppName, c.AIEnabled, c.JobsEnabled)
	routes.NewRegistry(health, v1.Handlers{
		Resume: handler.NewResumeHandler(c.Analysis, c.Generation, c.Config.Resume.MaxBytes),
		Chat:   handler.NewChatHandler(c.Chat),
		Jobs:   handler.NewJobsHandler(c.JobSearch, c.Recommendation),
	}).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
