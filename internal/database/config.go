package database

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/koustreak/sqlbridge/internal/errs"
)

// Driver identifies the database engine.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverMySQL    Driver = "mysql"
)

// Config holds all settings needed to connect to and pool a database.
type Config struct {
	// Driver is the database engine (e.g. DriverMySQL).
	Driver Driver `yaml:"driver"`

	// DSN is the full data source name / connection string.
	// Example: "user:pass@tcp(localhost:3306)/mydb?parseTime=true"
	DSN string `yaml:"dsn"`

	// Pool tuning
	MaxConns        int32         `yaml:"max_conns"`          // maximum number of connections in the pool
	MinConns        int32         `yaml:"min_conns"`          // minimum number of idle connections kept alive
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"`  // maximum time a connection may be reused
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time"` // maximum time a connection may sit idle

	// Timeouts
	ConnectTimeout time.Duration `yaml:"connect_timeout"` // time limit for establishing a new connection
	QueryTimeout   time.Duration `yaml:"query_timeout"`   // default per-query deadline (applied by callers)
}

// DefaultConfig returns production-ready pool settings for the given DSN.
func DefaultConfig(dsn string) *Config {
	return &Config{
		Driver:          DriverMySQL,
		DSN:             dsn,
		MaxConns:        25,
		MinConns:        5,
		MaxConnLifetime: 30 * time.Minute,
		MaxConnIdleTime: 5 * time.Minute,
		ConnectTimeout:  5 * time.Second,
		QueryTimeout:    30 * time.Second,
	}
}

// LoadConfig reads a Config from a YAML file. Fields not present in the
// file keep the DefaultConfig values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput,
			fmt.Sprintf("cannot read config file %s", path), err)
	}

	cfg := DefaultConfig("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput,
			fmt.Sprintf("cannot parse config file %s", path), err)
	}
	if cfg.DSN == "" {
		return nil, errs.New(errs.ErrKindInvalidInput, "config is missing dsn")
	}
	return cfg, nil
}
