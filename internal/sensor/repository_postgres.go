package sensor

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Save(ctx context.Context, reading Reading) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO sensor_readings (device_id, temperature, humidity, air_quality, recorded_at)
		VALUES ($1, $2, $3, $4, $5)
	`,
		reading.DeviceID,
		reading.Temperature,
		reading.Humidity,
		reading.AirQuality,
		reading.Timestamp,
	)
	return err
}

func (r *PostgresRepository) Latest(ctx context.Context) (*Reading, error) {
	var reading Reading
	err := r.db.QueryRow(ctx, `
		SELECT device_id, temperature, humidity, air_quality, recorded_at
		FROM sensor_readings
		ORDER BY recorded_at DESC
		LIMIT 1
	`).Scan(
		&reading.DeviceID,
		&reading.Temperature,
		&reading.Humidity,
		&reading.AirQuality,
		&reading.Timestamp,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoReading
	}
	if err != nil {
		return nil, err
	}
	return &reading, nil
}

func (r *PostgresRepository) Recent(ctx context.Context, limit int) ([]Reading, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx, `
		SELECT device_id, temperature, humidity, air_quality, recorded_at
		FROM sensor_readings
		ORDER BY recorded_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var readings []Reading
	for rows.Next() {
		var reading Reading
		if err := rows.Scan(
			&reading.DeviceID,
			&reading.Temperature,
			&reading.Humidity,
			&reading.AirQuality,
			&reading.Timestamp,
		); err != nil {
			return nil, err
		}
		readings = append(readings, reading)
	}

	return readings, rows.Err()
}
