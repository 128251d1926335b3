package discordhook

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/oklahomer/go-sarah/v4"
)

// mockSender implements the messageSender interface for testing.
type mockSender struct {
	sendToFunc func(ctx context.Context, channel string, message Message) error
	called     int
}

func (m *mockSender) SendTo(ctx context.Context, channel string, message Message) error {
	m.called++
	if m.sendToFunc != nil {
		return m.sendToFunc(ctx, channel, message)
	}
	return nil
}

func TestBotTypeValue(t *testing.T) {
	if DISCORD != sarah.BotType("discord") {
		t.Errorf("Expected DISCORD to be %q, got %q", "discord", DISCORD)
	}
}

func TestChannelID_OutputDestination(t *testing.T) {
	var dest sarah.OutputDestination = ChannelID("test")

	if dest != ChannelID("test") {
		t.Error("ChannelID should be usable as sarah.OutputDestination")
	}
}

func TestNewAdapter(t *testing.T) {
	t.Run("with store", func(t *testing.T) {
		config := NewConfig()

		adapter, err := NewAdapter(config, &mockStore{})
		if err != nil {
			t.Fatalf("Unexpected error: %+v", err)
		}

		if adapter == nil {
			t.Fatal("Expected non-nil adapter")
		}

		if adapter.config != config {
			t.Error("Config not set correctly")
		}

		if adapter.sender == nil {
			t.Error("Expected a hook to be created")
		}
	})

	t.Run("without store and without hook", func(t *testing.T) {
		_, err := NewAdapter(NewConfig(), nil)
		if err == nil {
			t.Fatal("Expected an error when no store and no hook is given")
		}
	})

	t.Run("with injected hook", func(t *testing.T) {
		hook := &Hook{config: NewConfig(), store: &mockStore{}, client: &mockTransport{}}

		adapter, err := NewAdapter(NewConfig(), nil, WithHook(hook))
		if err != nil {
			t.Fatalf("Unexpected error: %+v", err)
		}

		if adapter.sender != hook {
			t.Error("Expected injected hook to be used")
		}
	})
}

func TestAdapter_BotType(t *testing.T) {
	adapter := &Adapter{config: NewConfig()}

	if adapter.BotType() != DISCORD {
		t.Errorf("Expected BotType to be %q, got %q", DISCORD, adapter.BotType())
	}
}

func TestAdapter_Run(t *testing.T) {
	adapter := &Adapter{
		config: NewConfig(),
		sender: &mockSender{},
	}

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		adapter.Run(ctx, func(input sarah.Input) error { return nil }, func(err error) {})
		close(done)
	}()

	// Cancel context to unblock Run
	cancel()
	<-done
}

func TestAdapter_SendMessage(t *testing.T) {
	t.Run("string content", func(t *testing.T) {
		var gotChannel string
		var gotMessage Message
		mock := &mockSender{
			sendToFunc: func(_ context.Context, channel string, message Message) error {
				gotChannel = channel
				gotMessage = message
				return nil
			},
		}
		adapter := &Adapter{config: NewConfig(), sender: mock}

		output := sarah.NewOutputMessage(ChannelID("ch-1"), "hello world")
		adapter.SendMessage(context.Background(), output)

		if gotChannel != "ch-1" {
			t.Errorf("Expected channel %q, got %q", "ch-1", gotChannel)
		}
		if gotMessage.Content != "hello world" {
			t.Errorf("Expected content %q, got %q", "hello world", gotMessage.Content)
		}
		if gotMessage.TTS {
			t.Error("Expected tts to be false")
		}
	})

	t.Run("Message content", func(t *testing.T) {
		var gotMessage Message
		mock := &mockSender{
			sendToFunc: func(_ context.Context, channel string, message Message) error {
				gotMessage = message
				return nil
			},
		}
		adapter := &Adapter{config: NewConfig(), sender: mock}

		output := sarah.NewOutputMessage(ChannelID("ch-1"), Message{Content: "spoken", TTS: true})
		adapter.SendMessage(context.Background(), output)

		if gotMessage.Content != "spoken" {
			t.Errorf("Expected content %q, got %q", "spoken", gotMessage.Content)
		}
		if !gotMessage.TTS {
			t.Error("Expected tts to be carried through")
		}
	})

	t.Run("MessageSend content", func(t *testing.T) {
		var gotChannel string
		var gotMessage Message
		mock := &mockSender{
			sendToFunc: func(_ context.Context, channel string, message Message) error {
				gotChannel = channel
				gotMessage = message
				return nil
			},
		}
		adapter := &Adapter{config: NewConfig(), sender: mock}

		msg := &discordgo.MessageSend{Content: "complex msg", TTS: true}
		output := sarah.NewOutputMessage(ChannelID("ch-2"), msg)
		adapter.SendMessage(context.Background(), output)

		if gotChannel != "ch-2" {
			t.Errorf("Expected channel %q, got %q", "ch-2", gotChannel)
		}
		if gotMessage.Content != "complex msg" {
			t.Errorf("Expected content %q, got %q", "complex msg", gotMessage.Content)
		}
		if !gotMessage.TTS {
			t.Error("Expected tts to be carried through")
		}
	})

	t.Run("CommandHelps content", func(t *testing.T) {
		var gotMessage Message
		mock := &mockSender{
			sendToFunc: func(_ context.Context, channel string, message Message) error {
				gotMessage = message
				return nil
			},
		}
		adapter := &Adapter{config: NewConfig(), sender: mock}

		helps := &sarah.CommandHelps{
			{Identifier: "echo", Instruction: "echo a message"},
			{Identifier: "hello", Instruction: "receive a greeting"},
		}
		output := sarah.NewOutputMessage(ChannelID("ch-3"), helps)
		adapter.SendMessage(context.Background(), output)

		if !strings.Contains(gotMessage.Content, "**echo**: echo a message") {
			t.Errorf("Expected help text to contain the echo entry, got %q", gotMessage.Content)
		}
		if !strings.Contains(gotMessage.Content, "**hello**: receive a greeting") {
			t.Errorf("Expected help text to contain the hello entry, got %q", gotMessage.Content)
		}
	})

	t.Run("invalid destination", func(t *testing.T) {
		mock := &mockSender{}
		adapter := &Adapter{config: NewConfig(), sender: mock}

		output := sarah.NewOutputMessage("not-a-channel-id", "hello")
		adapter.SendMessage(context.Background(), output)

		if mock.called != 0 {
			t.Error("Nothing should be sent for an invalid destination")
		}
	})

	t.Run("send error is handled gracefully", func(t *testing.T) {
		mock := &mockSender{
			sendToFunc: func(_ context.Context, _ string, _ Message) error {
				return fmt.Errorf("send failed")
			},
		}
		adapter := &Adapter{config: NewConfig(), sender: mock}

		output := sarah.NewOutputMessage(ChannelID("ch-1"), "hello")
		// Should not panic, just log the error
		adapter.SendMessage(context.Background(), output)
	})

	t.Run("unexpected content type", func(t *testing.T) {
		mock := &mockSender{}
		adapter := &Adapter{config: NewConfig(), sender: mock}

		output := sarah.NewOutputMessage(ChannelID("ch-1"), 42)
		adapter.SendMessage(context.Background(), output)

		if mock.called != 0 {
			t.Error("Nothing should be sent for unexpected content")
		}
	})
}
