package plant

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const plantColumns = `
	id,
	owner_id,
	name,
	species,
	icon,
	min_temperature,
	max_temperature,
	min_humidity,
	max_humidity,
	min_air_quality,
	max_air_quality,
	COALESCE(photo_url, ''),
	created_at
`

// --------------------------------------------------
// Create a new plant
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, p *Plant) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	query := `
		INSERT INTO plants (
			id,
			owner_id,
			name,
			species,
			icon,
			min_temperature,
			max_temperature,
			min_humidity,
			max_humidity,
			min_air_quality,
			max_air_quality
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at
	`

	c := p.IdealConditions
	return r.db.QueryRow(
		ctx,
		query,
		p.ID,
		p.OwnerID,
		p.Name,
		p.Species,
		p.Icon,
		c.MinTemperature,
		c.MaxTemperature,
		c.MinHumidity,
		c.MaxHumidity,
		c.MinAirQuality,
		c.MaxAirQuality,
	).Scan(&p.CreatedAt)
}

// --------------------------------------------------
// List plants owned by a user
// --------------------------------------------------
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*Plant, error) {
	query := `SELECT ` + plantColumns + `
		FROM plants
		WHERE owner_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plants []*Plant
	for rows.Next() {
		p, err := scanPlant(rows)
		if err != nil {
			return nil, err
		}
		plants = append(plants, p)
	}

	return plants, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Plant, error) {
	// ids from the URL are not guaranteed to be UUIDs
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	row := r.db.QueryRow(ctx, `SELECT `+plantColumns+` FROM plants WHERE id = $1`, id)

	p, err := scanPlant(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM plants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) UpdatePhoto(ctx context.Context, id string, photoURL string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE plants
		SET photo_url = $1
		WHERE id = $2
	`, photoURL, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) MarkSeeded(ctx context.Context, ownerID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO plant_seeds (owner_id)
		VALUES ($1)
		ON CONFLICT (owner_id) DO NOTHING
	`, ownerID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func scanPlant(row pgx.Row) (*Plant, error) {
	var p Plant
	c := &p.IdealConditions
	if err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Name,
		&p.Species,
		&p.Icon,
		&c.MinTemperature,
		&c.MaxTemperature,
		&c.MinHumidity,
		&c.MaxHumidity,
		&c.MinAirQuality,
		&c.MaxAirQuality,
		&p.PhotoURL,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
