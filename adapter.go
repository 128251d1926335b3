package discordhook

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/oklahomer/go-kasumi/logger"
	"github.com/oklahomer/go-sarah/v4"
)

const (
	// DISCORD is a designated sarah.BotType for Discord integration.
	DISCORD sarah.BotType = "discord"
)

// messageSender is an internal interface that abstracts the Hook method used
// by the Adapter. This allows mocking the hook in tests.
// *Hook satisfies this interface.
type messageSender interface {
	SendTo(ctx context.Context, channel string, message Message) error
}

// ChannelID represents a Discord channel as sarah.OutputDestination.
type ChannelID string

var _ sarah.OutputDestination = ChannelID("")

// AdapterOption defines a function signature for Adapter's functional options.
type AdapterOption func(adapter *Adapter)

// WithHook creates an AdapterOption with the given *Hook.
// Use this to inject a pre-configured hook.
// If this option is not given, NewAdapter creates a new hook from the given
// Config and ConnectionStore.
func WithHook(hook *Hook) AdapterOption {
	return func(adapter *Adapter) {
		adapter.sender = hook
	}
}

// Adapter is an outbound-only sarah.Adapter implementation for Discord.
//
// Dispatched sarah.Output is delivered over the bot-messaging REST API through
// a Hook, so no gateway session is opened and no message input is ever
// enqueued. This suits announcement-style bots whose output originates from
// scheduled tasks rather than user conversation.
type Adapter struct {
	config *Config
	sender messageSender
}

var _ sarah.Adapter = (*Adapter)(nil)

// NewAdapter creates a new Adapter with the given Config, ConnectionStore and options.
func NewAdapter(config *Config, store ConnectionStore, options ...AdapterOption) (*Adapter, error) {
	adapter := &Adapter{
		config: config,
	}

	for _, opt := range options {
		opt(adapter)
	}

	if adapter.sender == nil {
		hook, err := NewHook(config, store)
		if err != nil {
			return nil, fmt.Errorf("failed to create Discord hook: %w", err)
		}
		adapter.sender = hook
	}

	return adapter, nil
}

// BotType returns a designated BotType for Discord integration.
func (a *Adapter) BotType() sarah.BotType {
	return DISCORD
}

// Run blocks until the context is canceled.
// The adapter is outbound-only, so enqueueInput is never called and no
// connection is established up front; each outgoing message is sent as an
// individual REST call.
func (a *Adapter) Run(ctx context.Context, _ func(sarah.Input) error, _ func(error)) {
	logger.Infof("Discord REST adapter is running in outbound-only mode. No message input is received.")
	<-ctx.Done()
}

// SendMessage sends the given message to Discord via the REST hook.
// The output destination must be a ChannelID; it overrides any channel or
// endpoint configured on the connection record.
func (a *Adapter) SendMessage(ctx context.Context, output sarah.Output) {
	destination, ok := output.Destination().(ChannelID)
	if !ok {
		logger.Errorf("Destination is not instance of ChannelID. %#v.", output.Destination())
		return
	}

	channel := string(destination)

	switch content := output.Content().(type) {
	case string:
		err := a.sender.SendTo(ctx, channel, Message{Content: content})
		if err != nil {
			logger.Errorf("Failed to send message to %s: %+v", channel, err)
		}

	case Message:
		err := a.sender.SendTo(ctx, channel, content)
		if err != nil {
			logger.Errorf("Failed to send message to %s: %+v", channel, err)
		}

	case *discordgo.MessageSend:
		// Only the text portion travels over this endpoint.
		if len(content.Embeds) > 0 || len(content.Files) > 0 {
			logger.Warnf("Embeds and files are not supported by the REST hook and are dropped for %s.", channel)
		}
		err := a.sender.SendTo(ctx, channel, Message{Content: content.Content, TTS: content.TTS})
		if err != nil {
			logger.Errorf("Failed to send message to %s: %+v", channel, err)
		}

	case *sarah.CommandHelps:
		lines := make([]string, 0, len(*content))
		for _, h := range *content {
			lines = append(lines, fmt.Sprintf("**%s**: %s", h.Identifier, h.Instruction))
		}
		err := a.sender.SendTo(ctx, channel, Message{Content: strings.Join(lines, "\n")})
		if err != nil {
			logger.Errorf("Failed to send help message to %s: %+v", channel, err)
		}

	default:
		logger.Warnf("Unexpected output %#v", output)
	}
}
