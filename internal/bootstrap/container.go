package bootstrap

import (
	"context"
	"fmt"
	"time"

	"tv-keuzehulp-be/internal/config"
	"tv-keuzehulp-be/internal/constant"
	"tv-keuzehulp-be/internal/controller"
	"tv-keuzehulp-be/internal/pkg/logger"
	"tv-keuzehulp-be/internal/pkg/metrics"
	"tv-keuzehulp-be/internal/repository/contract"
	"tv-keuzehulp-be/internal/repository/memory"
	pgrepo "tv-keuzehulp-be/internal/repository/postgres"
	redisrepo "tv-keuzehulp-be/internal/repository/redis"
	"tv-keuzehulp-be/internal/service"
	"tv-keuzehulp-be/pkg/catalog"
	"tv-keuzehulp-be/pkg/database"
	"tv-keuzehulp-be/pkg/llm"
	"tv-keuzehulp-be/pkg/llm/factory"
	"tv-keuzehulp-be/pkg/llm/ollama"
	pktNats "tv-keuzehulp-be/pkg/nats"
	"tv-keuzehulp-be/pkg/questionnaire"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const eventTopic = "keuzehulp_events"

// Overrides replaces infrastructure that tests and tools provide themselves
type Overrides struct {
	Logger      logger.ILogger
	LLMProvider llm.LLMProvider
	Catalog     *catalog.Catalog
}

type Container struct {
	Logger      logger.ILogger
	Metrics     *metrics.Metrics
	SessionRepo contract.SessionRepository
	Catalog     *catalog.Catalog

	EventService     service.IEventService
	KeuzehulpService service.IKeuzehulpService
	AuthService      service.IAuthService

	KeuzehulpController controller.IKeuzehulpController
	AuthController      controller.IAuthController

	closers []func()
}

func NewContainer(cfg *config.Config, o Overrides) (*Container, error) {
	// 1. Core Facades
	sysLogger := o.Logger
	auditLogger := o.Logger
	if sysLogger == nil {
		sysLogger = logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
		auditLogger = logger.NewIsolatedLogger("logs/keuzehulp_events.log")
	}
	m := metrics.NewMetrics()

	c := &Container{Logger: sysLogger, Metrics: m}

	// 2. Catalog (read-only for the lifetime of the process)
	products := o.Catalog
	if products == nil {
		loaded, err := catalog.LoadCSV(cfg.Keuzehulp.CatalogPath)
		if err != nil {
			sysLogger.Warn(constant.ModuleKeuzehulp, "catalog not loaded, recommendations disabled", map[string]interface{}{
				"path":  cfg.Keuzehulp.CatalogPath,
				"error": err.Error(),
			})
			loaded = catalog.New(nil)
		}
		products = loaded
	}
	c.Catalog = products
	m.CatalogProducts.Set(float64(products.Len()))
	sysLogger.Info(constant.ModuleKeuzehulp, "catalog ready", map[string]interface{}{
		"products": products.Len(),
		"columns":  products.Columns(),
	})

	// 3. LLM Provider
	llmProvider := o.LLMProvider
	if llmProvider == nil {
		p, err := factory.NewLLMProvider(factory.ProviderConfig{
			Provider:      cfg.Ai.LLMProvider,
			Model:         cfg.Ai.LLMModel,
			OpenAIKey:     cfg.Ai.OpenAIKey,
			OpenAIBaseURL: cfg.Ai.OpenAIBaseURL,
			AnthropicKey:  cfg.Ai.AnthropicKey,
			OllamaBaseURL: cfg.Ai.OllamaBaseURL,
			HFKey:         cfg.Ai.HFKey,
			HFBaseURL:     cfg.Ai.HFBaseURL,
		})
		if err != nil {
			return nil, fmt.Errorf("initialize LLM provider: %w", err)
		}
		llmProvider = p
		if op, ok := p.(*ollama.OllamaProvider); ok {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			if err := op.CheckModel(ctx); err != nil {
				sysLogger.Warn(constant.ModuleKeuzehulp, "ollama model not available yet", map[string]interface{}{
					"model": cfg.Ai.LLMModel,
					"error": err.Error(),
				})
			}
			cancel()
		}
		sysLogger.Info(constant.ModuleKeuzehulp, "using LLM provider", map[string]interface{}{
			"provider": cfg.Ai.LLMProvider,
			"model":    cfg.Ai.LLMModel,
		})
	}

	// 4. Session storage
	c.SessionRepo = c.newSessionRepository(cfg)

	// 5. Event Bus, forwarded to NATS when configured
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	var forwarder service.EventForwarder
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn(constant.ModuleEvents, "failed to connect to NATS publisher", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			forwarder = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}
	c.EventService = service.NewEventService(pubSub, eventTopic, forwarder, auditLogger, sysLogger)

	// 6. Services
	c.KeuzehulpService = service.NewKeuzehulpService(
		c.SessionRepo,
		llmProvider,
		products,
		questionnaire.NewSequencer(constant.KeuzehulpQuestions),
		c.EventService,
		m,
		sysLogger,
		service.RelayConfig{
			Model:        cfg.Ai.LLMModel,
			MaxTokens:    cfg.Ai.MaxTokens,
			Temperature:  cfg.Ai.Temperature,
			HistoryLimit: cfg.Ai.HistoryLimit,
			SystemPrompt: constant.KeuzehulpSystemPromptV1,
		},
	)

	authService, err := service.NewAuthService(
		cfg.Keuzehulp.Password,
		cfg.Session.Secret,
		cfg.Session.TTL,
		c.SessionRepo,
		c.EventService,
		m,
		sysLogger,
	)
	if err != nil {
		return nil, err
	}
	c.AuthService = authService

	// 7. Controllers
	c.KeuzehulpController = controller.NewKeuzehulpController(
		c.KeuzehulpService,
		authService.Enabled(),
		cfg.Keuzehulp.ExposeProducts,
	)
	c.AuthController = controller.NewAuthController(authService)

	return c, nil
}

func (c *Container) newSessionRepository(cfg *config.Config) contract.SessionRepository {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	switch cfg.Session.Store {
	case "redis":
		client, err := redisrepo.NewClient(ctx, cfg.App.RedisURL)
		if err == nil {
			c.closers = append(c.closers, func() { _ = client.Close() })
			c.Logger.Info(constant.ModuleSession, "using redis session store", nil)
			return redisrepo.NewSessionRepository(client, cfg.Session.TTL)
		}
		c.Logger.Warn(constant.ModuleSession, "redis unavailable, falling back to memory sessions", map[string]interface{}{
			"error": err.Error(),
		})
	case "postgres":
		repo, err := c.newPostgresRepository(ctx, cfg)
		if err == nil {
			c.Logger.Info(constant.ModuleSession, "using postgres session store", nil)
			return repo
		}
		c.Logger.Warn(constant.ModuleSession, "postgres unavailable, falling back to memory sessions", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return memory.NewSessionRepository(cfg.Session.TTL)
}

func (c *Container) newPostgresRepository(ctx context.Context, cfg *config.Config) (*pgrepo.SessionRepository, error) {
	if cfg.App.DatabaseURL == "" {
		return nil, fmt.Errorf("DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(ctx, cfg.App.DatabaseURL, !cfg.IsProduction())
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pgrepo.Migrate(db); err != nil {
		database.Close(db)
		return nil, fmt.Errorf("migrate sessions: %w", err)
	}

	repo := pgrepo.NewSessionRepository(db, cfg.Session.TTL)
	purgeCtx, stop := context.WithCancel(context.Background())
	go repo.RunPurger(purgeCtx, 10*time.Minute, func(err error) {
		c.Logger.Warn(constant.ModuleSession, "failed to purge expired sessions", map[string]interface{}{
			"error": err.Error(),
		})
	})
	c.closers = append(c.closers, func() {
		stop()
		database.Close(db)
	})
	return repo, nil
}

// Close releases connections in reverse order of creation
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}
