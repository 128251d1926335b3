// Package envstore resolves connection records from environment variables.
//
// Each connection is declared as a single variable whose name is the upper-cased
// connection ID prefixed with DISCORD_CONN_, and whose value is a connection URI:
//
//	export DISCORD_CONN_DISCORD_DEFAULT="https://:bot-token@discord.com/api/?channel=1234"
//
// The URI's user-info password populates Connection.Password, the remainder of
// the URI forms Connection.Host, and the query parameters become the
// connection's extra configuration.
package envstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"

	discordhook "github.com/oklahomer/go-discord-hook"
)

// DefaultPrefix is the environment variable prefix connection IDs are looked up under.
const DefaultPrefix = "DISCORD_CONN_"

// Option defines a function signature for Store's functional options.
type Option func(store *Store)

// WithPrefix creates an Option that overrides DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(store *Store) {
		store.prefix = prefix
	}
}

// Store is a discordhook.ConnectionStore backed by environment variables.
type Store struct {
	prefix string
}

var _ discordhook.ConnectionStore = (*Store)(nil)

// New creates a new Store with the given options.
func New(options ...Option) *Store {
	store := &Store{
		prefix: DefaultPrefix,
	}

	for _, opt := range options {
		opt(store)
	}

	return store
}

// NewFromDotenv loads the given dotenv files into the process environment and
// returns a new Store. With no filenames, ".env" in the working directory is
// loaded. Variables already present in the environment are not overridden.
func NewFromDotenv(filenames []string, options ...Option) (*Store, error) {
	if err := godotenv.Load(filenames...); err != nil {
		return nil, fmt.Errorf("failed to load dotenv file: %w", err)
	}

	return New(options...), nil
}

// GetConnection looks up a connection URI in the environment and parses it.
func (s *Store) GetConnection(_ context.Context, connID string) (*discordhook.Connection, error) {
	key := s.prefix + strings.ToUpper(connID)

	uri, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(uri) == "" {
		return nil, fmt.Errorf("environment variable %s is not set: %w", key, discordhook.ErrConnectionNotFound)
	}

	conn, err := parseURI(connID, uri)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection URI in %s: %w", key, err)
	}

	return conn, nil
}

// parseURI converts a connection URI to a Connection record.
func parseURI(connID, uri string) (*discordhook.Connection, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, err
	}

	conn := &discordhook.Connection{
		ID: connID,
	}

	if u.User != nil {
		conn.Login = u.User.Username()
		conn.Password, _ = u.User.Password()
	}

	// The host is the URI stripped of user info, query, and fragment.
	host := *u
	host.User = nil
	host.RawQuery = ""
	host.Fragment = ""
	conn.Host = host.String()

	query := u.Query()
	if len(query) > 0 {
		extra := make(map[string]string, len(query))
		for key := range query {
			extra[key] = query.Get(key)
		}

		raw, err := json.Marshal(extra)
		if err != nil {
			return nil, err
		}
		conn.Extra = string(raw)
	}

	return conn, nil
}
