package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"resume-coach/internal/config"
	"resume-coach/internal/database"
	"resume-coach/internal/database/migration"
	dbpostgres "resume-coach/internal/database/postgres"
	"resume-coach/internal/domain/chatbot"
	"resume-coach/internal/infrastructure/ai"
	"resume-coach/internal/infrastructure/cache"
	"resume-coach/internal/infrastructure/events"
	"resume-coach/internal/infrastructure/jobsearch"
	"resume-coach/internal/infrastructure/storage"
	"resume-coach/internal/pkg/jwt"
	"resume-coach/internal/repository"
	"resume-coach/internal/scheduler"
	"resume-coach/internal/usecase"
	"resume-coach/internal/ws"
)

// Container owns every long-lived dependency. Optional integrations that are
// not configured are left nil and the features using them run offline.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB       database.DB
	Cache    *cache.Redis
	Hub      *ws.Hub
	Verifier jwt.Verifier
	Warmer   *scheduler.Warmer

	AIEnabled   bool
	JobsEnabled bool

	Analysis       usecase.ResumeAnalysisUsecase
	Generation     usecase.ResumeGenerationUsecase
	Chat           usecase.ChatUsecase
	JobSearch      usecase.JobSearchUsecase
	Recommendation usecase.JobRecommendationUsecase

	closers []func() error
}

func NewContainer(ctx context.Context, cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}
	c := &Container{Config: cfg, Logger: logger}

	var gen ai.Generator
	if cfg.AI.Enabled() {
		g, err := ai.NewGeminiGenerator(ctx, cfg.AI, logger)
		if err != nil {
			return nil, err
		}
		gen = g
		c.AIEnabled = true
	} else {
		logger.Printf("[AI] AI_API_KEY not set, AI features serve fallback data")
	}

	jobsClient := jobsearch.NewClient(cfg.Jobs, logger)
	c.JobsEnabled = jobsClient != nil
	if !c.JobsEnabled {
		logger.Printf("[Jobs] Job API credentials not set, job search serves fallback data")
	}

	c.Cache = cache.NewRedis(cfg.Redis, logger)
	c.closers = append(c.closers, c.Cache.Close)

	var repo repository.AnalysisRepository = repository.NoopAnalysisRepository{}
	if cfg.Database.Enabled() {
		dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		db, err := dbpostgres.Open(dbCtx, cfg.Database)
		cancel()
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		c.DB = db
		c.closers = append(c.closers, db.Close)

		if err := migration.NewRunner(logger).Run(ctx, db.SQLDB()); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		repo = repository.NewPostgresAnalysisRepository(db)
	}

	var store storage.ObjectStore
	if cfg.Storage.Enabled() {
		s, err := storage.NewS3Store(ctx, cfg.Storage, logger)
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		store = s
	}

	c.Hub = ws.NewHub(logger)
	publishers := events.Fanout{ws.NewPublisher(c.Hub)}
	if cfg.Events.AMQPURL != "" {
		p, err := events.NewAMQPPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange, logger)
		if err != nil {
			logger.Printf("[Events] AMQP unavailable, events go to WebSocket clients only: %v", err)
		} else {
			publishers = append(publishers, p)
			c.closers = append(c.closers, p.Close)
		}
	}

	if cfg.Auth.JWTSecret != "" {
		c.Verifier = jwt.NewHMACVerifier(cfg.Auth.JWTSecret)
	}

	c.Analysis = usecase.NewResumeAnalysisUsecase(usecase.ResumeAnalysisDeps{
		AI:       gen,
		Store:    store,
		Repo:     repo,
		Events:   publishers,
		MaxBytes: cfg.Resume.MaxBytes,
		Logger:   logger,
	})
	c.Generation = usecase.NewResumeGenerationUsecase(gen, publishers, logger)
	c.Chat = usecase.NewChatUsecase(gen, chatbot.NewResponder(nil), logger)

	var searchCache usecase.SearchCache
	if c.Cache.Available() {
		searchCache = c.Cache
	}
	search := usecase.NewJobSearchUsecase(jobsClient, searchCache, cfg.Redis.TTL, cfg.Jobs.PageSize, logger)
	c.JobSearch = search
	c.Recommendation = usecase.NewJobRecommendationUsecase(search, logger)

	// Warming only pays off when live results can be cached.
	if c.JobsEnabled && searchCache != nil {
		c.Warmer = scheduler.NewWarmer(search, scheduler.ParseWarmQueries(cfg.Jobs.WarmQueries), cfg.Jobs.WarmSchedule, logger)
	}

	return c, nil
}

// Close releases dependencies in reverse order of creation.
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
