package app

import (
	"fmt"

	"github.com/allisson/canarydrop/internal/alert"
	canaryMySQL "github.com/allisson/canarydrop/internal/canary/repository/mysql"
	canaryPostgreSQL "github.com/allisson/canarydrop/internal/canary/repository/postgresql"
	canarySQLite "github.com/allisson/canarydrop/internal/canary/repository/sqlite"
	"github.com/allisson/canarydrop/internal/canary/service"
	"github.com/allisson/canarydrop/internal/canary/usecase"
	"github.com/allisson/canarydrop/internal/database"
)

// TokenFactory returns the token factory used to mint canaries.
func (c *Container) TokenFactory() service.TokenFactory {
	c.tokenFactoryInit.Do(func() {
		c.tokenFactory = service.NewTokenFactory(nil)
	})
	return c.tokenFactory
}

// AlertDispatcher returns the simulated alert dispatcher. The alert journal is opened
// on first access when enabled.
func (c *Container) AlertDispatcher() (usecase.AlertDispatcher, error) {
	var err error
	c.alertDispatcherInit.Do(func() {
		c.alertDispatcher, err = c.initAlertDispatcher()
		if err != nil {
			c.initErrors["alertDispatcher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["alertDispatcher"]; exists {
		return nil, storedErr
	}
	return c.alertDispatcher, nil
}

// CanaryRepository returns the canary repository based on database driver.
func (c *Container) CanaryRepository() (usecase.CanaryRepository, error) {
	var err error
	c.canaryRepositoryInit.Do(func() {
		c.canaryRepository, err = c.initCanaryRepository()
		if err != nil {
			c.initErrors["canaryRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["canaryRepository"]; exists {
		return nil, storedErr
	}
	return c.canaryRepository, nil
}

// AccessEventRepository returns the access event repository based on database driver.
func (c *Container) AccessEventRepository() (usecase.AccessEventRepository, error) {
	var err error
	c.accessEventRepositoryInit.Do(func() {
		c.accessEventRepository, err = c.initAccessEventRepository()
		if err != nil {
			c.initErrors["accessEventRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accessEventRepository"]; exists {
		return nil, storedErr
	}
	return c.accessEventRepository, nil
}

// CanaryUseCase returns the canary use case.
func (c *Container) CanaryUseCase() (usecase.CanaryUseCase, error) {
	var err error
	c.canaryUseCaseInit.Do(func() {
		c.canaryUseCase, err = c.initCanaryUseCase()
		if err != nil {
			c.initErrors["canaryUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["canaryUseCase"]; exists {
		return nil, storedErr
	}
	return c.canaryUseCase, nil
}

// AccessEventUseCase returns the access event use case.
func (c *Container) AccessEventUseCase() (usecase.AccessEventUseCase, error) {
	var err error
	c.accessEventUseCaseInit.Do(func() {
		c.accessEventUseCase, err = c.initAccessEventUseCase()
		if err != nil {
			c.initErrors["accessEventUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accessEventUseCase"]; exists {
		return nil, storedErr
	}
	return c.accessEventUseCase, nil
}

// ReportUseCase returns the report use case.
func (c *Container) ReportUseCase() (usecase.ReportUseCase, error) {
	var err error
	c.reportUseCaseInit.Do(func() {
		c.reportUseCase, err = c.initReportUseCase()
		if err != nil {
			c.initErrors["reportUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["reportUseCase"]; exists {
		return nil, storedErr
	}
	return c.reportUseCase, nil
}

// initAlertDispatcher creates the dispatcher, with the rotating journal when enabled.
func (c *Container) initAlertDispatcher() (usecase.AlertDispatcher, error) {
	if !c.config.AlertJournalEnabled {
		return alert.NewDispatcher(nil), nil
	}

	journal, err := alert.OpenJournal(alert.JournalConfig{
		Path:       c.config.AlertJournalPath,
		MaxSizeMB:  c.config.AlertJournalMaxSizeMB,
		MaxBackups: c.config.AlertJournalMaxBackups,
		MaxAgeDays: c.config.AlertJournalMaxAgeDays,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open alert journal: %w", err)
	}

	c.mu.Lock()
	c.alertJournal = journal
	c.mu.Unlock()

	return alert.NewDispatcher(journal), nil
}

// initCanaryRepository creates the canary repository based on the database driver.
func (c *Container) initCanaryRepository() (usecase.CanaryRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for canary repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverSQLite:
		return canarySQLite.NewCanaryRepository(db), nil
	case database.DriverPostgres:
		return canaryPostgreSQL.NewCanaryRepository(db), nil
	case database.DriverMySQL:
		return canaryMySQL.NewCanaryRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAccessEventRepository creates the access event repository based on the database driver.
func (c *Container) initAccessEventRepository() (usecase.AccessEventRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for access event repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverSQLite:
		return canarySQLite.NewAccessEventRepository(db), nil
	case database.DriverPostgres:
		return canaryPostgreSQL.NewAccessEventRepository(db), nil
	case database.DriverMySQL:
		return canaryMySQL.NewAccessEventRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// repositories resolves the dependencies shared by every canary use case.
func (c *Container) repositories(
	name string,
) (database.TxManager, usecase.CanaryRepository, usecase.AccessEventRepository, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get tx manager for %s: %w", name, err)
	}

	canaryRepository, err := c.CanaryRepository()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get canary repository for %s: %w", name, err)
	}

	accessEventRepository, err := c.AccessEventRepository()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get access event repository for %s: %w", name, err)
	}

	return txManager, canaryRepository, accessEventRepository, nil
}

// initCanaryUseCase creates the canary use case with all its dependencies.
func (c *Container) initCanaryUseCase() (usecase.CanaryUseCase, error) {
	txManager, canaryRepository, accessEventRepository, err := c.repositories("canary use case")
	if err != nil {
		return nil, err
	}

	baseUseCase := usecase.NewCanaryUseCase(
		txManager,
		canaryRepository,
		accessEventRepository,
		c.TokenFactory(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for canary use case: %w", err)
		}
		return usecase.NewCanaryUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initAccessEventUseCase creates the access event use case with all its dependencies.
func (c *Container) initAccessEventUseCase() (usecase.AccessEventUseCase, error) {
	txManager, canaryRepository, accessEventRepository, err := c.repositories("access event use case")
	if err != nil {
		return nil, err
	}

	dispatcher, err := c.AlertDispatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to get alert dispatcher for access event use case: %w", err)
	}

	baseUseCase := usecase.NewAccessEventUseCase(
		txManager,
		canaryRepository,
		accessEventRepository,
		dispatcher,
		c.Logger(),
		c.config.AccessLogDefaultLimit,
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for access event use case: %w", err)
		}
		return usecase.NewAccessEventUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initReportUseCase creates the report use case with all its dependencies.
func (c *Container) initReportUseCase() (usecase.ReportUseCase, error) {
	txManager, canaryRepository, accessEventRepository, err := c.repositories("report use case")
	if err != nil {
		return nil, err
	}

	baseUseCase := usecase.NewReportUseCase(
		txManager,
		canaryRepository,
		accessEventRepository,
		c.config.StatsAccessLogLimit,
		c.config.ExportAccessLogLimit,
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for report use case: %w", err)
		}
		return usecase.NewReportUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
