// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/allisson/canarydrop/internal/canary/service"
	"github.com/allisson/canarydrop/internal/canary/usecase"
	"github.com/allisson/canarydrop/internal/config"
	"github.com/allisson/canarydrop/internal/database"
	"github.com/allisson/canarydrop/internal/metrics"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access,
// so commands that never touch the store never open it.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics
	alertJournal    *lumberjack.Logger

	// Managers
	txManager database.TxManager

	// Services
	tokenFactory    service.TokenFactory
	alertDispatcher usecase.AlertDispatcher

	// Repositories
	canaryRepository      usecase.CanaryRepository
	accessEventRepository usecase.AccessEventRepository

	// Use Cases
	canaryUseCase      usecase.CanaryUseCase
	accessEventUseCase usecase.AccessEventUseCase
	reportUseCase      usecase.ReportUseCase

	// Initialization flags and mutex for thread-safety
	mu                        sync.Mutex
	loggerInit                sync.Once
	dbInit                    sync.Once
	txManagerInit             sync.Once
	metricsProviderInit       sync.Once
	businessMetricsInit       sync.Once
	tokenFactoryInit          sync.Once
	alertDispatcherInit       sync.Once
	canaryRepositoryInit      sync.Once
	accessEventRepositoryInit sync.Once
	canaryUseCaseInit         sync.Once
	accessEventUseCaseInit    sync.Once
	reportUseCaseInit         sync.Once
	initErrors                map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
// It applies pending migrations when auto-migrate is enabled and connects on first access.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
// It requires a database connection to be initialized first.
func (c *Container) TxManager() (database.TxManager, error) {
	var err error
	c.txManagerInit.Do(func() {
		c.txManager, err = c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = c.initMetricsProvider()
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. A no-op recorder is returned
// when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// MigrateDB applies pending migrations with a dedicated connection and returns the
// resulting schema version.
func (c *Container) MigrateDB() (uint, error) {
	version, err := database.RunMigrations(c.databaseConfig())
	if err != nil {
		return 0, fmt.Errorf("failed to run migrations: %w", err)
	}
	return version, nil
}

// Shutdown performs cleanup of all initialized resources.
// It writes the metrics textfile before the provider stops, then closes the store and
// the alert journal. It must run on every exit path.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.metricsProvider != nil {
		if err := c.metricsProvider.WriteTextfile(c.config.MetricsTextfilePath); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics textfile: %w", err))
		}
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	// Close database connection if initialized
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if c.alertJournal != nil {
		if err := c.alertJournal.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("alert journal close: %w", err))
		}
	}

	return errors.Join(shutdownErrors...)
}

// ParseLogLevel maps a configured level name to a slog level. Unknown names select warn.
func ParseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// initLogger creates a structured logger writing to stderr, keeping stdout for command
// output.
func (c *Container) initLogger() *slog.Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: ParseLogLevel(c.config.LogLevel),
	})

	return slog.New(handler)
}

// databaseConfig maps the application configuration to a database configuration.
func (c *Container) databaseConfig() database.Config {
	return database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	}
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	cfg := c.databaseConfig()

	if c.config.DBAutoMigrate {
		version, err := database.RunMigrations(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		c.Logger().Debug("database schema ready", slog.Uint64("version", uint64(version)))
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initTxManager creates the transaction manager using the database connection.
func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

// initMetricsProvider creates the metrics provider when metrics are enabled.
func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}
	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

// initBusinessMetrics creates the business metrics recorder.
func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}
	return metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
}
