package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/krlohnes/album-club-bot/internal/bot"
	"github.com/krlohnes/album-club-bot/internal/config"
	"github.com/spf13/cobra"
)

var (
	botLogFile  string
	botLogLevel string
)

// botCmd represents the bot command
var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Discord bot",
	Long: `Run the Discord bot that serves the club's commands.

The bot will:
- Prefetch the next album pick so replies are instant
- Answer ~album next / ~album current / ~reviewer next / ~reviewer reset
- Record featured contributors into the rotation, clearing it when
  everyone has had a turn
- Attach a Spotify link to each pick when credentials are configured
- Handle graceful shutdown on SIGINT/SIGTERM

The bot runs in the foreground and logs to stderr by default.
Use the --log-file flag to log to a file.`,
	RunE: runBot,
}

func init() {
	rootCmd.AddCommand(botCmd)

	botCmd.Flags().StringVar(&botLogFile, "log-file", "", "Log file path (default: stderr)")
	botCmd.Flags().StringVar(&botLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}

func runBot(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg.Discord.Token == "" {
		return fmt.Errorf("discord token not configured. Set discord.token or ALBUMBOT_DISCORD_TOKEN")
	}

	// Set up logging
	logger := setupLogger(botLogFile, botLogLevel)

	logger.Info().
		Str("version", version).
		Str("store", cfg.Store).
		Msg("Starting albumbot")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, closeStore, err := buildStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	links, err := buildLinks(cfg, logger)
	if err != nil {
		return err
	}

	app := bot.NewApp(s, cfg.Ranges, links, logger)

	// The bot should not come up without a first pick ready.
	if err := app.Albums.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to prefetch first album: %w", err)
	}

	b, err := bot.New(cfg.Discord.Token, cfg.Discord.Prefix, app, logger)
	if err != nil {
		return err
	}

	if err := b.Open(); err != nil {
		return err
	}

	// Set up signal handling; second signal forces exit
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	logger.Info().Msg("Shutdown signal received, initiating graceful shutdown")
	go func() {
		<-sigChan
		logger.Warn().Msg("Second shutdown signal received, forcing exit")
		os.Exit(1)
	}()

	if err := b.Close(); err != nil {
		logger.Error().Err(err).Msg("Error closing discord session")
	}

	// Let any in-flight background refresh finish before the store goes away.
	app.Albums.Wait()

	logger.Info().Msg("Bot stopped")
	return nil
}
