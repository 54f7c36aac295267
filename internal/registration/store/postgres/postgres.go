// Package postgres implements the registration store on PostgreSQL for
// deployments that outgrow the workbook file. Uniqueness is enforced by the
// database itself, so concurrent appends cannot race past the duplicate
// check.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"regportal/internal/registration"
	"regportal/internal/registration/store"
)

const uniqueViolation = "23505"

// Store persists registrants in a registrations table with a unique index on
// the uppercased national ID.
type Store struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, now: time.Now}
}

// WithClock replaces the timestamp source, for tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) Init(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS registrations (
			id               BIGSERIAL PRIMARY KEY,
			last_name        TEXT NOT NULL,
			first_name       TEXT NOT NULL,
			national_id      TEXT NOT NULL,
			phone            TEXT NOT NULL,
			organization     TEXT NOT NULL,
			preferred_period TEXT NOT NULL,
			sex              TEXT NOT NULL,
			age              INT  NOT NULL,
			level            TEXT NOT NULL,
			attendance_mode  TEXT NOT NULL,
			registered_at    TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("create registrations table: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		CREATE UNIQUE INDEX IF NOT EXISTS registrations_national_id_key
		ON registrations (upper(national_id))`)
	if err != nil {
		return fmt.Errorf("create national ID index: %w", err)
	}
	return nil
}

func (s *Store) Append(ctx context.Context, candidate registration.Registrant) (registration.Registrant, error) {
	candidate.NationalID = registration.NormalizeNationalID(candidate.NationalID)
	candidate.RegisteredAt = s.now().Truncate(time.Second)

	_, err := s.pool.Exec(ctx, `
		INSERT INTO registrations (
			last_name, first_name, national_id, phone, organization,
			preferred_period, sex, age, level, attendance_mode, registered_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		candidate.LastName,
		candidate.FirstName,
		candidate.NationalID,
		candidate.Phone,
		candidate.Organization,
		candidate.PreferredPeriod,
		string(candidate.Sex),
		candidate.Age,
		string(candidate.Level),
		string(candidate.AttendanceMode),
		candidate.RegisteredAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return registration.Registrant{}, store.ErrDuplicateID
		}
		return registration.Registrant{}, fmt.Errorf("insert registration: %w", err)
	}
	return candidate, nil
}

func (s *Store) ListAll(ctx context.Context) ([]registration.Registrant, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT last_name, first_name, national_id, phone, organization,
		       preferred_period, sex, age, level, attendance_mode, registered_at
		FROM registrations
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (registration.Registrant, error) {
		var rec registration.Registrant
		var sex, level, mode string
		err := row.Scan(
			&rec.LastName, &rec.FirstName, &rec.NationalID, &rec.Phone,
			&rec.Organization, &rec.PreferredPeriod, &sex, &rec.Age,
			&level, &mode, &rec.RegisteredAt,
		)
		rec.Sex = registration.Sex(sex)
		rec.Level = registration.Level(level)
		rec.AttendanceMode = registration.AttendanceMode(mode)
		return rec, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan registrations: %w", err)
	}
	return records, nil
}
