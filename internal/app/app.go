package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/buildmate/server/internal/module/board"
	"github.com/buildmate/server/internal/module/connection"
	"github.com/buildmate/server/internal/module/matching"
	"github.com/buildmate/server/internal/module/profile"
	"github.com/buildmate/server/internal/module/team"
	sharedcache "github.com/buildmate/server/internal/shared/cache"
	"github.com/buildmate/server/internal/shared/config"
	"github.com/buildmate/server/internal/shared/database"
	"github.com/buildmate/server/internal/shared/events"
	"github.com/buildmate/server/internal/shared/logger"
	"github.com/buildmate/server/internal/shared/metrics"
	"github.com/buildmate/server/internal/shared/middleware"
	"github.com/buildmate/server/internal/shared/ratelimit"
	"github.com/buildmate/server/internal/shared/tracing"
)

// App represents the application.
type App struct {
	config    *config.Config
	db        *gorm.DB
	redis     redis.UniversalClient
	router    *gin.Engine
	logger    *logger.Logger
	zapLogger *zap.Logger

	registry        *prometheus.Registry
	metrics         *metrics.Metrics
	eventBus        *events.Bus
	limiter         ratelimit.Limiter
	shutdownTracing func(context.Context) error

	// Handlers
	profileHandler    *profile.Handler
	matchingHandler   *matching.Handler
	connectionHandler *connection.Handler
	teamHandler       *team.Handler
	boardHandler      *board.Handler
}

// New creates a new application instance.
func New(cfg *config.Config) (*App, error) {
	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	zapLog, err := logger.NewZapLogger(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("init zap logger: %w", err)
	}

	app := &App{
		config:    cfg,
		logger:    log,
		zapLogger: zapLog,
	}

	ctx := context.Background()

	shutdown, err := tracing.Setup(ctx, &cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	app.shutdownTracing = shutdown

	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	app.db = db

	if cfg.Database.AutoMigrate {
		if err := app.migrate(); err != nil {
			app.Stop()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}

	// Redis is optional: without it matches are not cached and
	// connection submissions are not rate limited.
	if cfg.Redis.Address != "" {
		client, err := sharedcache.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			zapLog.Warn("redis unavailable, continuing without cache", zap.Error(err))
		} else {
			app.redis = client
			app.limiter = ratelimit.NewRedisLimiter(client)
		}
	}

	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = metrics.New("buildmate", app.registry)

	app.initModules()
	app.router = app.setupRouter()

	return app, nil
}

// migrate creates every module's tables.
func (a *App) migrate() error {
	return database.Migrate(a.db,
		database.MigratorFunc(profile.Migrate),
		database.MigratorFunc(connection.Migrate),
		database.MigratorFunc(team.Migrate),
		database.MigratorFunc(board.Migrate),
	)
}

// initModules wires repositories, services and handlers.
func (a *App) initModules() {
	a.eventBus = events.NewBus(a.zapLogger)

	// Profiles
	profileService := profile.NewService(profile.NewRepository(a.db), a.eventBus, a.zapLogger)
	a.profileHandler = profile.NewHandler(profileService)

	// Matching
	var matchCache matching.Cache = matching.NopCache{}
	if a.redis != nil {
		matchCache = matching.NewRedisCache(a.redis, &matching.CacheConfig{
			Prefix:           "matches:",
			TTL:              a.config.Matching.CacheTTL,
			FailureThreshold: a.config.Matching.FailureThreshold,
			BreakerTimeout:   a.config.Matching.BreakerTimeout,
		})
	}
	matchingService := matching.NewService(profileService, matchCache, a.metrics, a.zapLogger)
	a.matchingHandler = matching.NewHandler(matchingService, a.config.Matching.DefaultLimit)

	// Connections
	connectionService := connection.NewService(connection.NewRepository(a.db), profileService, a.eventBus, a.zapLogger)
	a.connectionHandler = connection.NewHandler(connectionService)

	// Teams and boards share the transaction that creates a team's project.
	boardRepo := board.NewRepository(a.db)
	teamService := team.NewService(team.NewRepository(a.db), boardRepo, a.eventBus, a.zapLogger)
	a.teamHandler = team.NewHandler(teamService)

	boardService := board.NewService(boardRepo, teamService, a.eventBus, a.zapLogger)
	a.boardHandler = board.NewHandler(boardService)

	a.registerEventHandlers(matchingService)
}

// registerEventHandlers registers all domain event handlers.
func (a *App) registerEventHandlers(matchingService *matching.Service) {
	a.eventBus.Register(matchingService.InvalidationHandler())
	a.eventBus.Register(newMetricsHandler(a.metrics))
}

// setupRouter creates and configures the Gin router.
func (a *App) setupRouter() *gin.Engine {
	if a.config.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.Recovery(a.logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(a.logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics(a.metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})))

	verifier := middleware.NewTokenVerifier(a.config.Auth.JWTSecret, a.config.Auth.Issuer)
	api := r.Group("/api/v1")
	api.Use(middleware.RequireAuth(verifier))

	a.profileHandler.RegisterRoutes(api)
	a.matchingHandler.RegisterRoutes(api)
	a.connectionHandler.RegisterRoutes(api,
		middleware.RateLimitByUser(a.limiter, a.config.RateLimit.ConnectionLimit, a.config.RateLimit.ConnectionWindow),
	)
	a.teamHandler.RegisterRoutes(api)
	a.boardHandler.RegisterRoutes(api)

	return r
}

// Router returns the HTTP router.
func (a *App) Router() *gin.Engine {
	return a.router
}

// Stop stops the application and releases resources.
func (a *App) Stop() {
	if a.shutdownTracing != nil {
		_ = a.shutdownTracing(context.Background())
	}

	if a.zapLogger != nil {
		_ = a.zapLogger.Sync()
	}

	if a.redis != nil {
		_ = sharedcache.Close(a.redis)
	}

	if a.db != nil {
		_ = database.Close(a.db)
	}
}
