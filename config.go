package discordhook

import "github.com/bwmarrin/discordgo"

// DefaultConnectionID is the connection ID used when Config does not name one.
const DefaultConnectionID = "discord_default"

// Config contains configuration variables for the Discord hook.
type Config struct {
	// ConnectionID names the connection record to resolve the bot token and
	// the target endpoint from.
	ConnectionID string `json:"connection_id" yaml:"connection_id"`

	// Channel is the ID of the channel messages are sent to.
	// When set, it takes precedence over any channel or endpoint configured on
	// the connection record.
	Channel string `json:"channel" yaml:"channel"`

	// BaseURL is the API base the resolved endpoint path is appended to.
	// It is only consulted when the connection record declares no host.
	BaseURL string `json:"base_url" yaml:"base_url"`
}

// NewConfig creates and returns a new Config instance with default settings.
// Channel is empty and the endpoint is resolved from the connection record
// unless a channel is set before use.
func NewConfig() *Config {
	return &Config{
		ConnectionID: DefaultConnectionID,
		Channel:      "",
		BaseURL:      discordgo.EndpointAPI,
	}
}
