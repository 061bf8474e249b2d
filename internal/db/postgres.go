package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrMissingDSN = errors.New("DATABASE_URL not set")

// ConnectPostgres opens a pool, pings it and makes sure the schema exists.
func ConnectPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, ErrMissingDSN
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres connection failed: %w", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return db, nil
}

var schema = []string{
	// -------------------------------
	// USERS
	// -------------------------------
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password VARCHAR(255) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	// -------------------------------
	// PLANTS
	// -------------------------------
	`CREATE TABLE IF NOT EXISTS plants (
		id UUID PRIMARY KEY,
		owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL,
		species VARCHAR(255) NOT NULL,
		icon VARCHAR(64) NOT NULL DEFAULT 'leaf.fill',
		min_temperature DOUBLE PRECISION NOT NULL,
		max_temperature DOUBLE PRECISION NOT NULL,
		min_humidity DOUBLE PRECISION NOT NULL,
		max_humidity DOUBLE PRECISION NOT NULL,
		min_air_quality DOUBLE PRECISION NOT NULL,
		max_air_quality DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`ALTER TABLE plants ADD COLUMN IF NOT EXISTS photo_url VARCHAR(500) NULL`,
	`CREATE INDEX IF NOT EXISTS plants_owner_idx ON plants (owner_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS plant_seeds (
		owner_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		seeded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	// -------------------------------
	// SENSOR READINGS
	// -------------------------------
	`CREATE TABLE IF NOT EXISTS sensor_readings (
		id BIGSERIAL PRIMARY KEY,
		device_id VARCHAR(255) NOT NULL,
		temperature DOUBLE PRECISION NOT NULL,
		humidity DOUBLE PRECISION NOT NULL,
		air_quality DOUBLE PRECISION NOT NULL,
		recorded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS sensor_readings_recorded_idx ON sensor_readings (recorded_at DESC)`,
}

// initSchema creates or updates the database schema
func initSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
