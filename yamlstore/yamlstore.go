// Package yamlstore resolves connection records from a local YAML file.
//
// The file declares connections by ID:
//
//	connections:
//	  discord_default:
//	    host: https://discord.com/api/
//	    password: bot-token
//	    extra:
//	      channel: "1234"
//
// The file is read once on construction; later edits are not picked up.
package yamlstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	discordhook "github.com/oklahomer/go-discord-hook"
)

// file is the top-level YAML document structure.
type file struct {
	Connections map[string]entry `yaml:"connections"`
}

// entry is one connection declaration.
type entry struct {
	Host     string            `yaml:"host"`
	Login    string            `yaml:"login"`
	Password string            `yaml:"password"`
	Extra    map[string]string `yaml:"extra"`
}

// Store is a discordhook.ConnectionStore backed by a YAML file.
type Store struct {
	connections map[string]*discordhook.Connection
}

var _ discordhook.ConnectionStore = (*Store)(nil)

// New reads the YAML file at the given path and creates a new Store.
func New(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read connections file: %w", err)
	}

	return NewFromBytes(raw)
}

// NewFromBytes creates a new Store from YAML document content.
func NewFromBytes(raw []byte) (*Store, error) {
	doc := &file{}
	if err := yaml.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("failed to parse connections file: %w", err)
	}

	connections := make(map[string]*discordhook.Connection, len(doc.Connections))
	for id, e := range doc.Connections {
		conn := &discordhook.Connection{
			ID:       id,
			Host:     e.Host,
			Login:    e.Login,
			Password: e.Password,
		}

		if len(e.Extra) > 0 {
			extra, err := json.Marshal(e.Extra)
			if err != nil {
				return nil, fmt.Errorf("failed to encode extra configuration of connection %q: %w", id, err)
			}
			conn.Extra = string(extra)
		}

		connections[id] = conn
	}

	return &Store{connections: connections}, nil
}

// GetConnection returns the connection declared under the given ID.
func (s *Store) GetConnection(_ context.Context, connID string) (*discordhook.Connection, error) {
	conn, ok := s.connections[connID]
	if !ok {
		return nil, fmt.Errorf("connection %q is not declared in the connections file: %w", connID, discordhook.ErrConnectionNotFound)
	}

	// Hand out a copy so callers cannot mutate the store.
	copied := *conn
	return &copied, nil
}
