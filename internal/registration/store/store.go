// Package store defines the registration store contract. Stores are
// interface-driven so the workbook, Postgres, and in-memory implementations
// can be swapped without rewiring business code.
package store

import (
	"context"
	"errors"

	"regportal/internal/registration"
)

// Sentinel errors for store facts. Services translate these into domain
// errors; stores return them optionally wrapped.
var (
	// ErrDuplicateID signals that the candidate's national ID already exists
	// in the dataset (case-insensitive). The dataset is left untouched.
	ErrDuplicateID = errors.New("national ID already registered")
)

// Store owns the authoritative, durable collection of registrants and
// enforces the national ID uniqueness invariant atomically with respect to a
// single append.
type Store interface {
	// Init ensures the backing dataset exists with the correct header.
	// Idempotent: calling it on every startup never alters existing rows.
	Init(ctx context.Context) error

	// Append checks the candidate's normalized national ID against every
	// existing record, stamps RegisteredAt, and persists. On a match it
	// returns ErrDuplicateID without mutating storage. Persistence either
	// fully reflects the new record or fully fails.
	Append(ctx context.Context, candidate registration.Registrant) (registration.Registrant, error)

	// ListAll returns a snapshot of all registrants in insertion order.
	ListAll(ctx context.Context) ([]registration.Registrant, error)
}
