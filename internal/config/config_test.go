package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSNFromDiscreteFields(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.example.com",
		Port:     3306,
		User:     "reader",
		Password: "secret",
		Database: "sales",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "reader:secret@tcp(db.example.com:3306)/sales")
	assert.Contains(t, dsn, "parseTime=true")
}

func TestDSNOverride(t *testing.T) {
	d := DatabaseConfig{
		ConnectionString: "reader:secret@tcp(other:4000)/sales?parseTime=true",
		Host:             "ignored",
	}
	assert.Equal(t, "reader:secret@tcp(other:4000)/sales?parseTime=true", d.DSN())
}

func TestValidate(t *testing.T) {
	valid := Config{
		Database:   DatabaseConfig{Host: "localhost", Database: "sales"},
		Server:     ServerConfig{Addr: ":8080", ShutdownTimeout: 15 * time.Second},
		Pagination: PaginationConfig{DefaultLimit: 10},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing host and dsn", func(c *Config) { c.Database.Host = "" }},
		{"missing database name", func(c *Config) { c.Database.Database = "" }},
		{"missing addr", func(c *Config) { c.Server.Addr = "" }},
		{"non-positive default limit", func(c *Config) { c.Pagination.DefaultLimit = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateAcceptsDSNOnly(t *testing.T) {
	cfg := Config{
		Database:   DatabaseConfig{ConnectionString: "u:p@tcp(h:3306)/db"},
		Server:     ServerConfig{Addr: ":8080"},
		Pagination: PaginationConfig{DefaultLimit: 10},
	}
	assert.NoError(t, cfg.Validate())
}
