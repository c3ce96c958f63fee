package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"

	token_adapter "github.com/albertoDabu/crm-immobiliaria/internal/adapters/jwt"
	logger_adapter "github.com/albertoDabu/crm-immobiliaria/internal/adapters/logger"
	memory_adapter "github.com/albertoDabu/crm-immobiliaria/internal/adapters/memory"
	outreach_adapter "github.com/albertoDabu/crm-immobiliaria/internal/adapters/outreach"
	postgres_adapter "github.com/albertoDabu/crm-immobiliaria/internal/adapters/postgres"
	rabbitmq_adapter "github.com/albertoDabu/crm-immobiliaria/internal/adapters/rabbitmq"
	"github.com/albertoDabu/crm-immobiliaria/internal/adapters/rest"
	snapshot_adapter "github.com/albertoDabu/crm-immobiliaria/internal/adapters/snapshot"
	"github.com/albertoDabu/crm-immobiliaria/internal/configs"
	"github.com/albertoDabu/crm-immobiliaria/internal/constants"
	"github.com/albertoDabu/crm-immobiliaria/internal/contextkeys"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/port"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/usecase"
	fluentlogger "github.com/albertoDabu/crm-immobiliaria/pkg/fluent_logger"
	"github.com/albertoDabu/crm-immobiliaria/pkg/postgres"
	"github.com/albertoDabu/crm-immobiliaria/pkg/rabbitmq"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	config    *configs.AppConfig
	dbPool    *pgxpool.Pool
	apiServer *rest.Server

	rabbitManager *rabbitmq.ConnectionManager
	publisher     *rabbitmq.Publisher

	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

// NewLogger собирает stdout-логгер и, если включен, Fluent Bit в один мультилоггер.
// Возвращенный fluent-клиент нужно закрыть при остановке (может быть nil).
func NewLogger(cfg *configs.AppConfig) (port.LoggerPort, *fluent.Fluent, error) {
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    logger_adapter.ParseLevel(cfg.StdoutLogger.Level),
		IsJSON:   cfg.StdoutLogger.JSON,
		UseColor: !cfg.StdoutLogger.JSON,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if cfg.FluentBit.Enabled {
		var err error
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      cfg.FluentBit.Host,
			Port:      cfg.FluentBit.Port,
			TagPrefix: cfg.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, logger_adapter.ParseLevel(cfg.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		if fluentClient != nil {
			fluentClient.Close()
		}
		return nil, nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{"service_name": cfg.AppName})
	return baseLogger, fluentClient, nil
}

// Migrate применяет схему PostgreSQL и закрывает пул.
func Migrate(ctx context.Context, cfg *configs.AppConfig, logger port.LoggerPort) error {
	if cfg.Store.Driver != configs.StoreDriverPostgres {
		return fmt.Errorf("migrations require STORE_DRIVER=postgres, got %q", cfg.Store.Driver)
	}
	pool, err := postgres.NewClient(ctx, postgres.Config{DatabaseURL: cfg.Database.URL, MaxConns: cfg.Database.MaxConns})
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer pool.Close()
	return postgres_adapter.Migrate(contextkeys.ContextWithLogger(ctx, logger), pool)
}

func NewApp(cfg *configs.AppConfig) (*App, error) {
	baseLogger, fluentClient, err := NewLogger(cfg)
	if err != nil {
		return nil, err
	}

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{"fluent_enabled": cfg.FluentBit.Enabled})

	app := &App{
		config:       cfg,
		fluentClient: fluentClient,
		logger:       appLogger,
	}
	initCtx := contextkeys.ContextWithLogger(context.Background(), baseLogger)

	// --- Хранилище контактов ---
	var store port.ContactStorePort
	switch cfg.Store.Driver {
	case configs.StoreDriverPostgres:
		dbPool, err := postgres.NewClient(initCtx, postgres.Config{DatabaseURL: cfg.Database.URL, MaxConns: cfg.Database.MaxConns})
		if err != nil {
			appLogger.Error("Failed to connect to PostgreSQL", err, nil)
			app.close()
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		app.dbPool = dbPool
		appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

		if err := postgres_adapter.Migrate(initCtx, dbPool); err != nil {
			app.close()
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}

		repo, err := postgres_adapter.NewPostgresContactRepository(dbPool)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("failed to create postgres contact repository: %w", err)
		}
		store = repo
	default:
		appLogger.Warn("Using in-memory contact store, data is lost on restart", nil)
		store = memory_adapter.NewContactStore()
	}

	// --- Публикация событий ---
	var publisher port.OutreachEventPublisherPort = rabbitmq_adapter.NoopOutreachPublisher{}
	if cfg.RabbitMQ.Enabled {
		bridge := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq"}))
		manager, err := rabbitmq.NewConnectionManager(cfg.RabbitMQ.URL, bridge)
		if err != nil {
			appLogger.Error("Failed to connect to RabbitMQ", err, nil)
			app.close()
			return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		app.rabbitManager = manager

		producer, err := rabbitmq.NewPublisher(rabbitmq.PublisherConfig{
			ExchangeName:             cfg.RabbitMQ.Exchange,
			ExchangeType:             constants.ExchangeTypeCRM,
			Durable:                  true,
			DeclareExchangeIfMissing: true,
			Logger:                   bridge,
		}, manager)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("failed to create RabbitMQ publisher: %w", err)
		}
		app.publisher = producer

		outreachPublisher, err := rabbitmq_adapter.NewOutreachEventPublisher(producer, constants.RoutingKeyOutreachRecorded)
		if err != nil {
			app.close()
			return nil, err
		}
		publisher = outreachPublisher
		appLogger.Info("RabbitMQ publisher initialized", port.Fields{"exchange": cfg.RabbitMQ.Exchange})
	}

	// --- Аутентификация ---
	authMiddleware := rest.HeaderAuthMiddleware
	if cfg.Auth.Mode == configs.AuthModeJWT {
		verifier, err := token_adapter.NewTokenVerifier(cfg.Auth.JWTSecret)
		if err != nil {
			app.close()
			return nil, err
		}
		authMiddleware = rest.JWTAuthMiddleware(verifier)
	}

	// --- Use cases ---
	clock := port.Clock(time.Now)
	links := outreach_adapter.NewLinkBuilder()
	jsonCodec := snapshot_adapter.NewJSONCodec()

	getContact := usecase.NewGetContactUseCase(store)
	bulkContact := usecase.NewBulkContactUseCase(store, publisher, clock, cfg.Outreach.SimulatedDelay)

	handlers := rest.Handlers{
		Contacts: rest.NewContactsHandler(
			usecase.NewListContactsUseCase(store),
			usecase.NewSearchContactsUseCase(store, clock),
			getContact,
			usecase.NewCreateContactUseCase(store, clock),
			usecase.NewUpdateContactUseCase(store),
			usecase.NewDeleteContactUseCase(store),
			usecase.NewGetStatsUseCase(store, clock),
			cfg.StatsWindows,
		),
		History: rest.NewHistoryHandler(
			usecase.NewAddHistoryEntryUseCase(store, clock),
			usecase.NewUpdateHistoryEntryUseCase(store),
			usecase.NewDeleteHistoryEntryUseCase(store),
		),
		Outreach: rest.NewOutreachHandler(
			bulkContact,
			usecase.NewMatchBuyersUseCase(store, links),
			usecase.NewSendMatchesUseCase(store, bulkContact),
			usecase.NewSendToContactUseCase(store, links, bulkContact),
			getContact,
			links,
		),
		Snapshot: rest.NewSnapshotHandler(
			usecase.NewExportSnapshotUseCase(store, clock, jsonCodec, snapshot_adapter.NewXLSXEncoder()),
			usecase.NewImportSnapshotUseCase(store, jsonCodec),
		),
	}

	router := rest.NewRouter(handlers, authMiddleware, cfg.Rest.AllowedOrigins, baseLogger)
	app.apiServer = rest.NewServer(cfg.Rest.PORT, router, baseLogger)
	appLogger.Info("REST API server configured.", port.Fields{
		"store_driver": cfg.Store.Driver,
		"auth_mode":    cfg.Auth.Mode,
	})

	return app, nil
}

// close освобождает ресурсы в обратном порядке создания.
func (a *App) close() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ publisher", err, nil)
		}
	}
	if a.rabbitManager != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.rabbitManager.Close(ctx); err != nil {
			a.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
		cancel()
	}
	if a.dbPool != nil {
		a.dbPool.Close()
		a.logger.Info("PostgreSQL pool closed.", nil)
	}
	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			// fluent может быть уже недоступен
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
	}
}

// Run запускает сервер и ждет сигнала или отмены ctx.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.apiServer.Stop(shutdownCtx); err != nil {
			a.logger.Error("Error during API server shutdown", err, nil)
		}

		a.logger.Info("Application shut down gracefully.", nil)
		a.close()
	}()

	serverErrors := make(chan error, 1)
	go func() {
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	a.logger.Info("Application running. Waiting for signals or server error...", port.Fields{"port": a.config.Rest.PORT})
	select {
	case <-ctx.Done():
		a.logger.Warn("Received shutdown signal", port.Fields{"pid": os.Getpid()})
		return nil
	case err := <-serverErrors:
		a.logger.Error("Server failed to start, shutting down", err, nil)
		return err
	}
}
