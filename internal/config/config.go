// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// DefaultHomeDirName is the directory created under the user's home directory when
// CANARYDROP_HOME is not set.
const DefaultHomeDirName = ".canarydrop"

// Config holds all application configuration.
type Config struct {
	// HomeDir is the directory holding the local store, alert journal and metrics file.
	HomeDir string

	// DBDriver is the database driver to use ("sqlite", "postgres" or "mysql").
	DBDriver string
	// DBConnectionString is the connection string for the database. For sqlite it is a file path.
	DBConnectionString string
	// DBMaxOpenConnections is the maximum number of open connections to the database.
	// Ignored for sqlite, which always uses a single connection.
	DBMaxOpenConnections int
	// DBMaxIdleConnections is the maximum number of idle connections in the database pool.
	DBMaxIdleConnections int
	// DBConnMaxLifetime is the maximum amount of time a connection may be reused.
	DBConnMaxLifetime time.Duration
	// DBAutoMigrate applies pending migrations when the store is opened.
	DBAutoMigrate bool

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// AccessLogDefaultLimit caps access history queries that do not set a limit.
	AccessLogDefaultLimit int
	// StatsAccessLogLimit caps the access events considered by statistics.
	StatsAccessLogLimit int
	// ExportAccessLogLimit caps the access events written to an export snapshot.
	ExportAccessLogLimit int

	// AlertJournalEnabled indicates whether simulated alerts are appended to the journal file.
	AlertJournalEnabled bool
	// AlertJournalPath is the journal file for simulated alerts.
	AlertJournalPath string
	// AlertJournalMaxSizeMB is the size in megabytes at which the journal is rotated.
	AlertJournalMaxSizeMB int
	// AlertJournalMaxBackups is the number of rotated journal files to keep.
	AlertJournalMaxBackups int
	// AlertJournalMaxAgeDays is the number of days rotated journal files are kept.
	AlertJournalMaxAgeDays int

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsTextfilePath is where metrics are written in Prometheus text format on shutdown.
	MetricsTextfilePath string
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	homeDir := env.GetString("CANARYDROP_HOME", defaultHomeDir())

	return &Config{
		HomeDir: homeDir,

		// Database configuration
		DBDriver:             env.GetString("DB_DRIVER", "sqlite"),
		DBConnectionString:   env.GetString("DB_CONNECTION_STRING", filepath.Join(homeDir, "canaries.db")),
		DBMaxOpenConnections: env.GetInt("DB_MAX_OPEN_CONNECTIONS", 25),
		DBMaxIdleConnections: env.GetInt("DB_MAX_IDLE_CONNECTIONS", 5),
		DBConnMaxLifetime:    env.GetDuration("DB_CONN_MAX_LIFETIME", 5, time.Minute),
		DBAutoMigrate:        env.GetBool("DB_AUTO_MIGRATE", true),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "warn"),

		// Query caps
		AccessLogDefaultLimit: env.GetInt("ACCESS_LOG_DEFAULT_LIMIT", 100),
		StatsAccessLogLimit:   env.GetInt("STATS_ACCESS_LOG_LIMIT", 1000),
		ExportAccessLogLimit:  env.GetInt("EXPORT_ACCESS_LOG_LIMIT", 10000),

		// Alert journal
		AlertJournalEnabled:    env.GetBool("ALERT_JOURNAL_ENABLED", true),
		AlertJournalPath:       env.GetString("ALERT_JOURNAL_PATH", filepath.Join(homeDir, "alerts.log")),
		AlertJournalMaxSizeMB:  env.GetInt("ALERT_JOURNAL_MAX_SIZE_MB", 10),
		AlertJournalMaxBackups: env.GetInt("ALERT_JOURNAL_MAX_BACKUPS", 5),
		AlertJournalMaxAgeDays: env.GetInt("ALERT_JOURNAL_MAX_AGE_DAYS", 90),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", false),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "canarydrop"),
		MetricsTextfilePath: env.GetString(
			"METRICS_TEXTFILE_PATH",
			filepath.Join(homeDir, "canarydrop.prom"),
		),
	}
}

// defaultHomeDir returns ~/.canarydrop, or a relative .canarydrop when the user's home
// directory cannot be determined.
func defaultHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return DefaultHomeDirName
	}
	return filepath.Join(home, DefaultHomeDirName)
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
