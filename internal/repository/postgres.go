package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"staybook/internal/model"
	"staybook/internal/service"
)

// foreignKeyViolation is the PostgreSQL error code for a failed FK check
const foreignKeyViolation = "23503"

const propertyColumns = `
	id, name, city, territory, country, rate, stars, house_type, place_type,
	host_id, image_src, image_alt_text`

// overlapCondition matches reservations of property $1 that intersect a
// stay of $3 nights starting at $2
const overlapCondition = `
	property_id = $1
	AND checkin_date < $2::date + $3::int
	AND checkin_date + duration > $2::date`

// Schema creates the tables the repository reads and writes
const Schema = `
CREATE TABLE IF NOT EXISTS properties (
	id             TEXT PRIMARY KEY,
	name           TEXT NOT NULL,
	city           TEXT NOT NULL DEFAULT '',
	territory      TEXT NOT NULL DEFAULT '',
	country        TEXT NOT NULL,
	rate           DOUBLE PRECISION NOT NULL,
	stars          DOUBLE PRECISION NOT NULL,
	house_type     TEXT NOT NULL,
	place_type     TEXT NOT NULL,
	host_id        TEXT NOT NULL,
	image_src      TEXT NOT NULL DEFAULT '',
	image_alt_text TEXT NOT NULL DEFAULT '',
	position       SERIAL
);

CREATE TABLE IF NOT EXISTS reservations (
	id           UUID PRIMARY KEY,
	property_id  TEXT NOT NULL REFERENCES properties(id),
	checkin_date DATE NOT NULL,
	duration     INT NOT NULL CHECK (duration > 0),
	guests       INT NOT NULL CHECK (guests > 0),
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS reservations_property_checkin_idx
	ON reservations (property_id, checkin_date);
`

// PostgresRepository handles database operations
type PostgresRepository struct {
	db *sqlx.DB
}

// Ensure PostgresRepository implements service.Backend
var _ service.Backend = (*PostgresRepository)(nil)

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// Migrate creates the schema if it does not exist yet
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// ListProperties returns every property in insertion order
func (r *PostgresRepository) ListProperties(ctx context.Context) ([]model.Property, error) {
	query := fmt.Sprintf(`SELECT %s FROM properties ORDER BY position`, propertyColumns)

	properties := []model.Property{}
	if err := r.db.SelectContext(ctx, &properties, query); err != nil {
		return nil, fmt.Errorf("failed to fetch properties: %w", err)
	}
	return properties, nil
}

// GetProperty retrieves a single property by its ID
func (r *PostgresRepository) GetProperty(ctx context.Context, id string) (*model.Property, error) {
	query := fmt.Sprintf(`SELECT %s FROM properties WHERE id = $1`, propertyColumns)

	var property model.Property
	err := r.db.GetContext(ctx, &property, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return &property, nil
}

// CheckAvailability reports whether no reservation overlaps the requested stay
func (r *PostgresRepository) CheckAvailability(ctx context.Context, propertyID, checkinDate string, duration int) (bool, error) {
	query := `
		SELECT
			EXISTS (SELECT 1 FROM properties WHERE id = $1) AS found,
			NOT EXISTS (SELECT 1 FROM reservations WHERE ` + overlapCondition + `) AS available
	`

	var row struct {
		Found     bool `db:"found"`
		Available bool `db:"available"`
	}
	if err := r.db.GetContext(ctx, &row, query, propertyID, checkinDate, duration); err != nil {
		return false, fmt.Errorf("failed to check availability: %w", err)
	}
	if !row.Found {
		return false, model.ErrPropertyNotFound
	}
	return row.Available, nil
}

// Reserve inserts a reservation unless it overlaps an existing one
func (r *PostgresRepository) Reserve(ctx context.Context, propertyID string, req model.ReservationRequest) (*model.Reservation, error) {
	query := `
		INSERT INTO reservations (id, property_id, checkin_date, duration, guests)
		SELECT $4::uuid, $1, $2::date, $3::int, $5::int
		WHERE NOT EXISTS (SELECT 1 FROM reservations WHERE ` + overlapCondition + `)
		RETURNING id, property_id, to_char(checkin_date, 'YYYY-MM-DD') AS checkin_date, duration, guests, created_at
	`

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var reservation model.Reservation
	err = tx.GetContext(ctx, &reservation, query,
		propertyID, req.CheckinDate, req.Duration, uuid.New().String(), req.Guests)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUnavailable
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
			return nil, model.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to insert reservation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &reservation, nil
}

// SeedProperties upserts properties, keeping the order they are given in
func (r *PostgresRepository) SeedProperties(ctx context.Context, properties []model.Property) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareNamedContext(ctx, `
		INSERT INTO properties (id, name, city, territory, country, rate, stars, house_type, place_type, host_id, image_src, image_alt_text)
		VALUES (:id, :name, :city, :territory, :country, :rate, :stars, :house_type, :place_type, :host_id, :image_src, :image_alt_text)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, city = EXCLUDED.city, territory = EXCLUDED.territory,
			country = EXCLUDED.country, rate = EXCLUDED.rate, stars = EXCLUDED.stars,
			house_type = EXCLUDED.house_type, place_type = EXCLUDED.place_type,
			host_id = EXCLUDED.host_id, image_src = EXCLUDED.image_src,
			image_alt_text = EXCLUDED.image_alt_text
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, p := range properties {
		if _, err := stmt.ExecContext(ctx, p); err != nil {
			return 0, fmt.Errorf("property %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return len(properties), nil
}
