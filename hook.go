package discordhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/oklahomer/go-kasumi/logger"
)

// MaxMessageLength is the maximum number of characters Discord accepts in one
// message. This is a hard contract of the remote API.
const MaxMessageLength = 2000

// Message is the payload sent to a Discord channel.
type Message struct {
	// Content is the message text. At most MaxMessageLength characters.
	Content string `json:"content"`

	// TTS marks the message for text-to-speech delivery.
	TTS bool `json:"tts"`
}

// httpClient is an internal interface that abstracts the *http.Client method
// used by the Hook. This allows mocking the transport in tests.
// *http.Client satisfies this interface.
type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// HookOption defines a function signature for Hook's functional options.
type HookOption func(hook *Hook)

// WithHTTPClient creates a HookOption with the given *http.Client.
// Use this to control transport behavior such as timeouts.
// If this option is not given, NewHook uses http.DefaultClient.
func WithHTTPClient(client *http.Client) HookOption {
	return func(hook *Hook) {
		hook.client = client
	}
}

// Hook sends messages to Discord over the bot-messaging REST API.
//
// On each send, the bot token and the target endpoint are resolved anew from
// the connection record named by Config.ConnectionID; nothing is cached
// between sends.
type Hook struct {
	config *Config
	store  ConnectionStore
	client httpClient
}

// NewHook creates a new Hook with the given Config, ConnectionStore and options.
func NewHook(config *Config, store ConnectionStore, options ...HookOption) (*Hook, error) {
	if store == nil {
		return nil, ErrMissingConnectionStore
	}

	hook := &Hook{
		config: config,
		store:  store,
	}

	for _, opt := range options {
		opt(hook)
	}

	if hook.client == nil {
		hook.client = http.DefaultClient
	}

	return hook, nil
}

// Send sends the given message to the channel configured via Config.Channel,
// or to the channel or endpoint the connection record declares when
// Config.Channel is empty.
func (h *Hook) Send(ctx context.Context, message Message) error {
	return h.SendTo(ctx, h.config.Channel, message)
}

// SendTo sends the given message to the given channel.
// An empty channel falls back to the channel or endpoint the connection
// record declares.
func (h *Hook) SendTo(ctx context.Context, channel string, message Message) error {
	if n := utf8.RuneCountInString(message.Content); n > MaxMessageLength {
		return fmt.Errorf("%w: got %d characters", ErrMessageTooLong, n)
	}

	token, endpoint, err := h.resolve(ctx, channel)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to serialize message payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bot "+token)

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message to %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("discord API responded with %s: %s", resp.Status, bytes.TrimSpace(body))
	}

	return nil
}

// resolve derives the bot token and the absolute endpoint URL from the
// configured connection record and the given explicit channel.
func (h *Hook) resolve(ctx context.Context, channel string) (string, string, error) {
	connID := h.config.ConnectionID
	if connID == "" {
		return "", "", ErrMissingConnectionID
	}

	conn, err := h.store.GetConnection(ctx, connID)
	if err != nil {
		return "", "", fmt.Errorf("failed to look up connection %q: %w", connID, err)
	}

	extra, err := conn.ExtraConfig()
	if err != nil {
		return "", "", err
	}

	token := conn.Password
	if token == "" {
		token = extra.BotToken
		if token == "" {
			return "", "", fmt.Errorf("connection %q: %w", connID, ErrMissingToken)
		}
		logger.Warnf("Connection %q supplies the bot token via the deprecated bot_token extra field. Set the token in the password field instead.", connID)
	}

	var path string
	switch {
	case channel != "":
		path = channelEndpoint(channel)
	case extra.Channel != "":
		path = channelEndpoint(extra.Channel)
	case extra.Endpoint != "":
		path = extra.Endpoint
	default:
		return "", "", fmt.Errorf("connection %q: %w", connID, ErrMissingEndpoint)
	}

	base := conn.Host
	if base == "" {
		base = h.config.BaseURL
	}

	return token, joinEndpoint(base, path), nil
}

// channelEndpoint returns the bot-messaging endpoint path for the given channel.
func channelEndpoint(channel string) string {
	return fmt.Sprintf("channels/%s/messages", channel)
}

func joinEndpoint(base, path string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
}
