// This is an example program that demonstrates how to use go-discord-hook.
// It sends one message directly through a Hook, then registers the
// outbound-only Adapter with go-sarah and announces through the bot.
//
// Usage:
//
//	export DISCORD_CONN_DISCORD_DEFAULT="https://:your-bot-token@discord.com/api/?channel=1234"
//	go run . "Hello from go-discord-hook"
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/oklahomer/go-kasumi/logger"
	"github.com/oklahomer/go-sarah/v4"

	discordhook "github.com/oklahomer/go-discord-hook"
	"github.com/oklahomer/go-discord-hook/envstore"
)

func main() {
	message := "Hello from go-discord-hook"
	if len(os.Args) > 1 {
		message = strings.Join(os.Args[1:], " ")
	}

	// Resolve connections from DISCORD_CONN_* environment variables.
	store := envstore.New()

	config := discordhook.NewConfig()

	// Send one message directly through the hook. The token and the target
	// endpoint are resolved from the connection record on each call.
	hook, err := discordhook.NewHook(config, store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create hook: %s\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err = hook.Send(ctx, discordhook.Message{Content: message})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to send message: %s\n", err)
		os.Exit(1)
	}

	// The same hook can back a go-sarah bot. The adapter is outbound-only, so
	// this suits bots that announce scheduled-task results over REST without
	// a gateway connection.
	adapter, err := discordhook.NewAdapter(config, store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create adapter: %s\n", err)
		os.Exit(1)
	}

	bot := sarah.NewBot(adapter)
	sarah.RegisterBot(bot)

	err = sarah.Run(ctx, sarah.NewConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to run: %s\n", err)
		os.Exit(1)
	}

	// Announce to an explicit channel through the bot. The destination
	// overrides any channel configured on the connection record.
	bot.SendMessage(ctx, sarah.NewOutputMessage(discordhook.ChannelID("1234"), message))

	logger.Infof("Bot is running. Press Ctrl+C to stop.")
	<-ctx.Done()
}
