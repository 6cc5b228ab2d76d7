// File: internal/persistence/connection.go
// Project: EC4X Engine
// Description: Database connection pool management with retry logic, metrics tracking, and transaction support (§4.11)
// Version: 1.0.0
// Created: 2026-07-30

// Package persistence implements the relational store §4.11 describes: one
// table per entity arena, a games table carrying per-game metadata, and an
// invites table for the join flow (§6.4). Every entity row stores its
// current value as a JSON blob alongside indexed owner/location/turn
// columns, so the read path is a straight "load every row into an arena"
// reconstruction rather than a column-by-column mapping per entity kind.
package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ec4x/engine/internal/errors"
	"github.com/ec4x/engine/internal/logger"
	"github.com/ec4x/engine/internal/metrics"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
)

var log = logger.WithComponent("Persistence")

// DB wraps the connection pool and adds metrics tracking to every query.
type DB struct {
	*sql.DB
}

// Config holds database configuration, overridable via environment
// variables (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME, DB_SSLMODE,
// DB_MAX_OPEN_CONNS, DB_MAX_IDLE_CONNS).
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConfig returns a Config seeded with EC4X's defaults, overridden by
// any matching environment variable.
func DefaultConfig() *Config {
	cfg := &Config{
		Host:            getEnv("DB_HOST", "localhost"),
		Port:            getEnvAsInt("DB_PORT", 5432),
		User:            getEnv("DB_USER", "ec4x"),
		Password:        getEnv("DB_PASSWORD", ""),
		Database:        getEnv("DB_NAME", "ec4x"),
		SSLMode:         getEnv("DB_SSLMODE", "disable"),
		MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 10 * time.Minute,
	}
	if cfg.Password == "" {
		log.Warn("Database password not set! Set DB_PASSWORD environment variable for security")
	}
	return cfg
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Warn("Invalid integer value for %s: %s, using default: %d", key, v, defaultValue)
	}
	return defaultValue
}

// NewDB opens a connection pool with retry logic for transient startup
// failures (common when the database container is still coming up).
func NewDB(cfg *Config) (*DB, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	log.Info("Connecting to database: host=%s port=%d database=%s", cfg.Host, cfg.Port, cfg.Database)
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode)

	var db *sql.DB
	retryConfig := errors.DefaultRetryConfig()
	err := errors.Retry(context.Background(), func() error {
		var err error
		db, err = sql.Open("pgx", dsn)
		if err != nil {
			errors.RecordGlobalError("persistence", "connection_open", err)
			return err
		}
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			errors.RecordGlobalError("persistence", "connection_ping", err)
			if closeErr := db.Close(); closeErr != nil {
				log.Warn("Failed to close database during cleanup: error=%v", closeErr)
			}
			return err
		}
		return nil
	}, retryConfig, errors.IsTransientError)

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info("Database connection established successfully")
	return &DB{DB: db}, nil
}

// Close shuts down the connection pool.
func (db *DB) Close() error {
	log.Info("Closing database connection")
	return db.DB.Close()
}

func (db *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	metrics.Global().IncrementDBQueries()
	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		metrics.Global().IncrementDBErrors()
	}
	return rows, err
}

func (db *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	metrics.Global().IncrementDBQueries()
	return db.DB.QueryRowContext(ctx, query, args...)
}

func (db *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	metrics.Global().IncrementDBQueries()
	result, err := db.DB.ExecContext(ctx, query, args...)
	if err != nil {
		metrics.Global().IncrementDBErrors()
	}
	return result, err
}

// WithTransaction runs fn inside a transaction, rolling back on error or
// panic and committing otherwise.
func (db *DB) WithTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		errors.RecordGlobalError("persistence", "transaction_begin", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("Rollback failed during panic: rollback_error=%v, panic=%v", rbErr, p)
			}
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		errors.RecordGlobalError("persistence", "transaction_error", err)
		if rbErr := tx.Rollback(); rbErr != nil {
			errors.RecordGlobalError("persistence", "transaction_rollback", rbErr)
			return fmt.Errorf("transaction error: %v, rollback error: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		errors.RecordGlobalError("persistence", "transaction_commit", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
