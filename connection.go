package discordhook

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Connection is a named, externally persisted configuration entry holding the
// credentials and endpoint metadata of one Discord integration.
// Connections are read-only to this package.
type Connection struct {
	// ID is the name the connection is looked up by.
	ID string

	// Host overrides Config.BaseURL as the API base when non-empty.
	Host string

	// Login is kept for parity with the hosting platform's connection schema.
	// Discord bot authentication does not use it.
	Login string

	// Password holds the bot token. This is the preferred token location.
	Password string

	// Extra is a free-form JSON object holding provider-specific keys.
	// See ConnectionExtra for the keys recognized by this package.
	Extra string
}

// ConnectionExtra holds the keys this package recognizes inside a
// connection's extra configuration.
type ConnectionExtra struct {
	// BotToken is a deprecated token location, consulted only when the
	// connection's Password is empty.
	BotToken string `json:"bot_token"`

	// Channel is the ID of the channel messages are sent to.
	Channel string `json:"channel"`

	// Endpoint is a literal endpoint path, consulted only when neither an
	// explicit channel nor a Channel field is given.
	Endpoint string `json:"endpoint"`
}

// ExtraConfig decodes the connection's extra JSON.
// An empty Extra yields a zero ConnectionExtra without error.
func (c *Connection) ExtraConfig() (*ConnectionExtra, error) {
	extra := &ConnectionExtra{}
	if strings.TrimSpace(c.Extra) == "" {
		return extra, nil
	}

	if err := json.Unmarshal([]byte(c.Extra), extra); err != nil {
		return nil, fmt.Errorf("failed to parse extra configuration of connection %q: %w", c.ID, err)
	}

	return extra, nil
}

// ConnectionStore looks up connection records by ID.
//
// Implementations must treat stored connections as read-only and return an
// error wrapping ErrConnectionNotFound when no connection with the given ID
// exists. The envstore, yamlstore, and sqlstore subpackages provide
// implementations backed by environment variables, a YAML file, and a
// relational database respectively.
type ConnectionStore interface {
	GetConnection(ctx context.Context, connID string) (*Connection, error)
}
