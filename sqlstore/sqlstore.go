// Package sqlstore resolves connection records from a relational database.
//
// It expects a table with conn_id, host, login, password, and extra columns,
// such as:
//
//	CREATE TABLE connection (
//	    conn_id  TEXT PRIMARY KEY,
//	    host     TEXT,
//	    login    TEXT,
//	    password TEXT,
//	    extra    TEXT
//	);
//
// The table is read-only to this package; provisioning connections is the
// hosting platform's concern. Any database/sql driver works; use WithPostgres
// for drivers that expect numbered placeholders, such as lib/pq.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	discordhook "github.com/oklahomer/go-discord-hook"
)

// DefaultTable is the table connection records are read from.
const DefaultTable = "connection"

// Option defines a function signature for Store's functional options.
type Option func(store *Store)

// WithTable creates an Option that overrides DefaultTable.
func WithTable(table string) Option {
	return func(store *Store) {
		store.table = table
	}
}

// WithPostgres creates an Option that switches the lookup query to numbered
// placeholders for PostgreSQL drivers.
func WithPostgres() Option {
	return func(store *Store) {
		store.postgres = true
	}
}

// Store is a discordhook.ConnectionStore backed by a *sql.DB.
type Store struct {
	db       *sql.DB
	table    string
	postgres bool
}

var _ discordhook.ConnectionStore = (*Store)(nil)

// New creates a new Store reading from the given database handle.
func New(db *sql.DB, options ...Option) *Store {
	store := &Store{
		db:    db,
		table: DefaultTable,
	}

	for _, opt := range options {
		opt(store)
	}

	return store
}

// GetConnection reads the connection row with the given ID.
func (s *Store) GetConnection(ctx context.Context, connID string) (*discordhook.Connection, error) {
	var host, login, password, extra sql.NullString

	err := s.db.QueryRowContext(ctx, s.lookupQuery(), connID).Scan(&host, &login, &password, &extra)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no row for connection %q in table %s: %w", connID, s.table, discordhook.ErrConnectionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read connection %q: %w", connID, err)
	}

	return &discordhook.Connection{
		ID:       connID,
		Host:     host.String,
		Login:    login.String,
		Password: password.String,
		Extra:    extra.String,
	}, nil
}

func (s *Store) lookupQuery() string {
	placeholder := "?"
	if s.postgres {
		placeholder = "$1"
	}
	return fmt.Sprintf("SELECT host, login, password, extra FROM %s WHERE conn_id = %s", s.table, placeholder)
}
