package discordhook

import "testing"

func TestConnection_ExtraConfig(t *testing.T) {
	t.Run("empty extra", func(t *testing.T) {
		conn := &Connection{ID: "discord_default"}

		extra, err := conn.ExtraConfig()
		if err != nil {
			t.Fatalf("Unexpected error: %+v", err)
		}

		if extra.BotToken != "" || extra.Channel != "" || extra.Endpoint != "" {
			t.Errorf("Expected zero extra, got %+v", extra)
		}
	})

	t.Run("whitespace extra", func(t *testing.T) {
		conn := &Connection{ID: "discord_default", Extra: "  \n"}

		_, err := conn.ExtraConfig()
		if err != nil {
			t.Fatalf("Unexpected error: %+v", err)
		}
	})

	t.Run("recognized keys", func(t *testing.T) {
		conn := &Connection{
			ID:    "discord_default",
			Extra: `{"bot_token": "tok", "channel": "123", "endpoint": "webhooks/abc"}`,
		}

		extra, err := conn.ExtraConfig()
		if err != nil {
			t.Fatalf("Unexpected error: %+v", err)
		}

		if extra.BotToken != "tok" {
			t.Errorf("Expected bot_token %q, got %q", "tok", extra.BotToken)
		}
		if extra.Channel != "123" {
			t.Errorf("Expected channel %q, got %q", "123", extra.Channel)
		}
		if extra.Endpoint != "webhooks/abc" {
			t.Errorf("Expected endpoint %q, got %q", "webhooks/abc", extra.Endpoint)
		}
	})

	t.Run("unrecognized keys are ignored", func(t *testing.T) {
		conn := &Connection{
			ID:    "discord_default",
			Extra: `{"channel": "123", "timeout": 30}`,
		}

		extra, err := conn.ExtraConfig()
		if err != nil {
			t.Fatalf("Unexpected error: %+v", err)
		}

		if extra.Channel != "123" {
			t.Errorf("Expected channel %q, got %q", "123", extra.Channel)
		}
	})

	t.Run("malformed JSON", func(t *testing.T) {
		conn := &Connection{ID: "discord_default", Extra: "{not json"}

		_, err := conn.ExtraConfig()
		if err == nil {
			t.Fatal("Expected an error for malformed extra JSON")
		}
	})
}
