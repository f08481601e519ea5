package internal

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/beyondeth/shop/internal/adapters/cache"
	logger_adapter "github.com/beyondeth/shop/internal/adapters/logger"
	"github.com/beyondeth/shop/internal/adapters/metrics"
	"github.com/beyondeth/shop/internal/adapters/notifier"
	"github.com/beyondeth/shop/internal/adapters/platform_client"
	postgres_adapter "github.com/beyondeth/shop/internal/adapters/postgres"
	rabbitmq_adapter "github.com/beyondeth/shop/internal/adapters/rabbitmq"
	"github.com/beyondeth/shop/internal/adapters/rest"
	"github.com/beyondeth/shop/internal/configs"
	"github.com/beyondeth/shop/internal/contracts"
	"github.com/beyondeth/shop/internal/core/mutation"
	"github.com/beyondeth/shop/internal/core/port"
	"github.com/beyondeth/shop/internal/core/session"
	"github.com/beyondeth/shop/internal/core/usecase"
	fluentlogger "github.com/beyondeth/shop/pkg/fluent_logger"
	"github.com/beyondeth/shop/pkg/postgres"
	"github.com/beyondeth/shop/pkg/rabbitmq/rabbitmq_common"
	"github.com/beyondeth/shop/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

type App struct {
	config    *configs.AppConfig
	apiServer *rest.Server

	sessions    *session.Store
	notifier    *notifier.SSENotifier
	metrics     *metrics.StorefrontMetrics
	memoryCache *cache.MemoryQueryCache
	redisCache  *cache.RedisQueryCache

	dbPool      *pgxpool.Pool
	db          *sql.DB
	connManager *rabbitmq_common.ConnectionManager
	publisher   *rabbitmq_producer.Publisher

	logger       port.LoggerPort
	fluentClient *fluent.Fluent
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ЛОГГЕРЫ ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    logger_adapter.ParseLevel(appConfig.StdoutLogger.Level),
		IsJSON:   appConfig.StdoutLogger.IsJSON,
		UseColor: !appConfig.StdoutLogger.IsJSON,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, logger_adapter.ParseLevel(appConfig.FluentBit.Level))
		if err != nil {
			fluentClient.Close()
			return nil, fmt.Errorf("failed to create fluentbit adapter: %w", err)
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{"service_name": appConfig.AppName})
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	application := &App{
		config:       appConfig,
		logger:       appLogger,
		fluentClient: fluentClient,
		metrics:      metrics.NewStorefrontMetrics(),
		sessions:     session.NewStore(),
	}

	// --- 2. ПЛАТФОРМА И КЭШ ---
	platformClient := platform_client.NewClient(platform_client.Options{
		BaseURL:      appConfig.Platform.BaseURL,
		APIKey:       appConfig.Platform.APIKey,
		StoreBaseURL: appConfig.Platform.StoreBaseURL,
		Timeout:      appConfig.Platform.Timeout,
		Observer:     application.metrics,
	})

	var queryCache port.QueryCachePort
	if appConfig.Cache.RedisAddr != "" {
		redisCache := cache.NewRedisQueryCache(appConfig.Cache.RedisAddr, appConfig.Cache.RedisPassword, appConfig.Cache.RedisDB)
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := redisCache.Ping(pingCtx)
		cancel()
		if err != nil {
			// витрина работает и без общего кэша
			appLogger.Warn("Redis is unavailable, falling back to in-memory cache", port.Fields{"error": err.Error()})
			redisCache.Close()
		} else {
			application.redisCache = redisCache
			queryCache = redisCache
			appLogger.Info("Redis query cache connected", port.Fields{"addr": appConfig.Cache.RedisAddr})
		}
	}
	if queryCache == nil {
		application.memoryCache = cache.NewMemoryQueryCache()
		queryCache = application.memoryCache
	}
	platform := cache.NewCachedPlatform(platformClient, queryCache, appConfig.Cache.TTL, appConfig.Platform.Timeout, application.metrics)

	// --- 3. СОБЫТИЯ (необязательно) ---
	var events port.EventPublisherPort
	if appConfig.RabbitMQ.Enabled {
		connManagerBridge := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"}))
		rabbitCfg := rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL}

		connManager, err := rabbitmq_common.NewManager(rabbitCfg, connManagerBridge)
		if err != nil {
			application.closeResources()
			return nil, fmt.Errorf("failed to create connection manager: %w", err)
		}
		application.connManager = connManager

		publisher, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
			Config:                   rabbitCfg,
			ExchangeName:             appConfig.RabbitMQ.EventsExchange,
			ExchangeType:             "topic",
			DurableExchange:          true,
			DeclareExchangeIfMissing: true,
			Logger:                   rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})),
		}, connManager)
		if err != nil {
			application.closeResources()
			return nil, fmt.Errorf("failed to create events publisher: %w", err)
		}
		application.publisher = publisher

		eventsAdapter, err := rabbitmq_adapter.NewEventPublisherAdapter(publisher)
		if err != nil {
			application.closeResources()
			return nil, err
		}
		events = eventsAdapter
		appLogger.Info("RabbitMQ events publisher initialized", port.Fields{"exchange": appConfig.RabbitMQ.EventsExchange})
	}

	// --- 4. ЖУРНАЛ МУТАЦИЙ (необязательно) ---
	observers := []mutation.Observer{application.metrics}
	if appConfig.Postgres.DatabaseURL != "" {
		dbPool, err := postgres.NewClient(context.Background(), postgres.Config{
			DatabaseURL: appConfig.Postgres.DatabaseURL,
			MaxConns:    int32(appConfig.Postgres.MaxConns),
		})
		if err != nil {
			application.closeResources()
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		application.dbPool = dbPool
		application.db = postgres.OpenDB(dbPool)

		journal, err := postgres_adapter.NewPostgresJournalRepository(application.db)
		if err != nil {
			application.closeResources()
			return nil, err
		}
		if err := journal.EnsureSchema(context.Background()); err != nil {
			application.closeResources()
			return nil, fmt.Errorf("failed to prepare mutation journal: %w", err)
		}
		observers = append(observers, usecase.NewJournalObserver(journal, baseLogger.WithFields(port.Fields{"component": "mutation_journal"})))
		appLogger.Info("Mutation journal enabled", nil)
	}

	// --- 5. USE CASES ---
	application.notifier = notifier.NewSSENotifier(baseLogger)

	mutationDeps := usecase.MutationDeps{
		Sessions:  application.sessions,
		Notifier:  application.notifier,
		Observers: observers,
		Events:    events,
	}

	registry, err := contracts.NewRegistry()
	if err != nil {
		application.closeResources()
		return nil, fmt.Errorf("failed to compile request schemas: %w", err)
	}

	handlers := rest.NewHandlers(rest.HandlersDeps{
		ProductPage:     usecase.NewGetProductPageUseCase(platform),
		ResolveProduct:  usecase.NewResolveProductByIDUseCase(platform),
		CollectionPage:  usecase.NewGetCollectionPageUseCase(platform),
		ShopPage:        usecase.NewGetShopPageUseCase(platform),
		CheckoutSuccess: usecase.NewGetCheckoutSuccessPageUseCase(platform, events, appConfig.Storefront.CartClearWindow),
		ProfilePage:     usecase.NewGetProfilePageUseCase(platform),
		OrderHistory:    usecase.NewOrderHistoryUseCase(platform, application.sessions),
		Reviews:         usecase.NewListProductReviewsUseCase(platform),
		Checkout:        usecase.NewCheckoutUseCase(platform, mutationDeps),
		UpdateMember:    usecase.NewUpdateMemberUseCase(platform, mutationDeps, appConfig.Storefront.RefreshDelay),
		CreateReview:    usecase.NewCreateReviewUseCase(platform, mutationDeps),
		Sessions:        application.sessions,
		Notifications:   application.notifier,
		Validator:       registry,
		Pages:           application.metrics,
	})
	appLogger.Info("All use cases initialized.", nil)

	application.apiServer = rest.NewServer(rest.ServerConfig{
		Port:           appConfig.Rest.Port,
		AllowedOrigins: appConfig.Rest.CORSAllowedOrigins,
	}, handlers, application.metrics.Handler(), baseLogger)
	appLogger.Info("REST API server configured.", nil)

	return application, nil
}

func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())

	var wg sync.WaitGroup

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		// SSE-потоки сами не завершаются, их закрывает остановка нотификатора
		if a.notifier != nil {
			a.notifier.Stop()
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.apiServer.Stop(shutdownCtx); err != nil {
			a.logger.Error("Error during API server shutdown", err, nil)
		}

		wg.Wait()
		a.closeResources()
		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	errorsCh := make(chan error, 1)

	go func() {
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			errorsCh <- fmt.Errorf("HTTP server start error: %w", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		a.sweepSessions(appCtx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or component error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", err, nil)
	}

	cancelApp()

	return nil
}

// sweepSessions удаляет простаивающие сессии и устаревшие записи локального кэша.
func (a *App) sweepSessions(ctx context.Context) {
	ticker := time.NewTicker(a.config.Storefront.SessionSweep)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := a.sessions.Sweep(a.config.Storefront.SessionTTL)
			a.metrics.SetActiveSessions(a.sessions.Len())

			purged := 0
			if a.memoryCache != nil {
				purged = a.memoryCache.Purge()
			}
			if removed > 0 || purged > 0 {
				a.logger.Debug("Idle state swept", port.Fields{"sessions_removed": removed, "cache_entries_purged": purged})
			}
		}
	}
}

// closeResources закрывает все, что успело открыться. Безопасно вызывать на
// частично собранном приложении.
func (a *App) closeResources() {
	if a.notifier != nil {
		a.notifier.Stop()
	}
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Error("Error closing events publisher", err, nil)
		}
	}
	if a.connManager != nil {
		if err := a.connManager.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection manager", err, nil)
		}
	}
	if a.redisCache != nil {
		if err := a.redisCache.Close(); err != nil {
			a.logger.Error("Error closing redis client", err, nil)
		}
	}
	if a.db != nil {
		a.db.Close()
	}
	if a.dbPool != nil {
		a.dbPool.Close()
		a.logger.Info("PostgreSQL pool closed.", nil)
	}
}
