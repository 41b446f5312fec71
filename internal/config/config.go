// Package config loads and validates the server configuration.
package config

import (
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Config holds the application configuration.
type Config struct {
	Database      DatabaseConfig      `mapstructure:"database"`
	Server        ServerConfig        `mapstructure:"server"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	Observability ObservabilityConfig `mapstructure:"observability"`
	Pagination    PaginationConfig    `mapstructure:"pagination"`
}

// DatabaseConfig holds database connection parameters.
type DatabaseConfig struct {
	// ConnectionString is a complete go-sql-driver/mysql DSN. When set, it
	// overrides the discrete fields below.
	ConnectionString string `mapstructure:"dsn"`
	Host             string `mapstructure:"host"`
	Port             int    `mapstructure:"port"`
	User             string `mapstructure:"user"`
	Password         string `mapstructure:"password"`
	Database         string `mapstructure:"database"`

	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns a MySQL-compatible data source name with the timestamp
// handling the scanners rely on.
func (d *DatabaseConfig) DSN() string {
	if d.ConnectionString != "" {
		return d.ConnectionString
	}

	cfg := mysql.NewConfig()
	cfg.User = d.User
	cfg.Passwd = d.Password
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", d.Host, d.Port)
	cfg.DBName = d.Database
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN()
}

// ServerConfig holds HTTP server parameters.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig holds logging parameters.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ObservabilityConfig holds trace/log export parameters. An empty endpoint
// disables OTLP export.
type ObservabilityConfig struct {
	ServiceName      string  `mapstructure:"service_name"`
	ServiceVersion   string  `mapstructure:"service_version"`
	Environment      string  `mapstructure:"environment"`
	OTLPEndpoint     string  `mapstructure:"otlp_endpoint"`
	OTLPInsecure     bool    `mapstructure:"otlp_insecure"`
	TraceSampleRatio float64 `mapstructure:"trace_sample_ratio"`
}

// PaginationConfig holds paging defaults. No upper bound on the page size
// is enforced.
type PaginationConfig struct {
	DefaultLimit int `mapstructure:"default_limit"`
}

// Validate checks the configuration for errors that would prevent startup.
func (c *Config) Validate() error {
	if c.Database.ConnectionString == "" {
		if c.Database.Host == "" {
			return fmt.Errorf("database.host or database.dsn must be set")
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database.database must be set")
		}
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must be set")
	}
	if c.Pagination.DefaultLimit <= 0 {
		return fmt.Errorf("pagination.default_limit must be positive")
	}
	return nil
}
