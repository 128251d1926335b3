// Command discordhook posts messages to Discord channels from the command line.
//
// Connection records are resolved from environment variables by default, or
// from a YAML connections file or a relational database when the matching
// flags are given:
//
//	export DISCORD_CONN_DISCORD_DEFAULT="https://:bot-token@discord.com/api/?channel=1234"
//	discordhook send "deploy finished"
//	discordhook send --channel 4321 --tts "deploy finished"
//	discordhook schedule --cron "0 9 * * *" "daily stand-up in 15 minutes"
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/oklahomer/go-kasumi/logger"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	// Drivers for the database-backed connection store.
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	discordhook "github.com/oklahomer/go-discord-hook"
	"github.com/oklahomer/go-discord-hook/envstore"
	"github.com/oklahomer/go-discord-hook/sqlstore"
	"github.com/oklahomer/go-discord-hook/yamlstore"
)

var (
	connID          string
	channel         string
	baseURL         string
	tts             bool
	envFiles        []string
	connectionsFile string
	dbDriver        string
	dbDSN           string
	dbTable         string
)

func main() {
	root := &cobra.Command{
		Use:   "discordhook",
		Short: "Post messages to Discord channels over the bot REST API",
		Long:  "discordhook resolves a bot token and a target endpoint from a named connection record and posts messages to Discord over the bot-messaging REST API.",
	}

	root.PersistentFlags().StringVar(&connID, "conn", discordhook.DefaultConnectionID, "ID of the connection record to use")
	root.PersistentFlags().StringVar(&channel, "channel", "", "target channel ID; overrides the connection's channel and endpoint")
	root.PersistentFlags().StringVar(&baseURL, "base-url", "", "API base URL; defaults to the Discord API base when the connection declares no host")
	root.PersistentFlags().BoolVar(&tts, "tts", false, "send as a text-to-speech message")
	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv file(s) to load before resolving connections from the environment")
	root.PersistentFlags().StringVar(&connectionsFile, "connections-file", "", "resolve connections from this YAML file instead of the environment")
	root.PersistentFlags().StringVar(&dbDriver, "db-driver", "sqlite", "database/sql driver for --db-dsn (sqlite or postgres)")
	root.PersistentFlags().StringVar(&dbDSN, "db-dsn", "", "resolve connections from this database instead of the environment")
	root.PersistentFlags().StringVar(&dbTable, "db-table", sqlstore.DefaultTable, "table holding connection rows")

	root.AddCommand(sendCmd())
	root.AddCommand(scheduleCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func sendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <message>",
		Short: "Send one message and exit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hook, err := buildHook()
			if err != nil {
				return err
			}

			return hook.Send(cmd.Context(), discordhook.Message{
				Content: strings.Join(args, " "),
				TTS:     tts,
			})
		},
	}
}

func scheduleCmd() *cobra.Command {
	var cronSpec string

	cmd := &cobra.Command{
		Use:   "schedule --cron <spec> <message>",
		Short: "Send a message on a cron schedule until interrupted",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hook, err := buildHook()
			if err != nil {
				return err
			}
			message := discordhook.Message{
				Content: strings.Join(args, " "),
				TTS:     tts,
			}

			c := cron.New()
			_, err = c.AddFunc(cronSpec, func() {
				if sendErr := hook.Send(context.Background(), message); sendErr != nil {
					logger.Errorf("Failed to send scheduled message: %+v", sendErr)
				}
			})
			if err != nil {
				return fmt.Errorf("invalid cron expression %q: %w", cronSpec, err)
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			c.Start()
			logger.Infof("Scheduled message on %q. Press Ctrl+C to stop.", cronSpec)
			<-ctx.Done()

			// Let an in-flight send finish before exiting.
			<-c.Stop().Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&cronSpec, "cron", "", "cron expression, e.g. \"0 9 * * *\"")
	_ = cmd.MarkFlagRequired("cron")

	return cmd
}

// buildHook assembles a Hook from the global flags.
func buildHook() (*discordhook.Hook, error) {
	store, err := buildStore()
	if err != nil {
		return nil, err
	}

	config := discordhook.NewConfig()
	config.ConnectionID = connID
	config.Channel = channel
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return discordhook.NewHook(config, store)
}

func buildStore() (discordhook.ConnectionStore, error) {
	switch {
	case connectionsFile != "":
		return yamlstore.New(connectionsFile)

	case dbDSN != "":
		db, err := sql.Open(dbDriver, dbDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open connection database: %w", err)
		}
		options := []sqlstore.Option{sqlstore.WithTable(dbTable)}
		if dbDriver == "postgres" {
			options = append(options, sqlstore.WithPostgres())
		}
		return sqlstore.New(db, options...), nil

	case len(envFiles) > 0:
		return envstore.NewFromDotenv(envFiles)

	default:
		return envstore.New(), nil
	}
}
