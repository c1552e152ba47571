package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/krlohnes/album-club-bot/internal/config"
	"github.com/krlohnes/album-club-bot/internal/prefetch"
	"github.com/krlohnes/album-club-bot/internal/store"
	"github.com/krlohnes/album-club-bot/pkg/spotify"
	"github.com/rs/zerolog"
)

// buildStore creates the configured store backend. The returned closer is a
// no-op for backends without local resources.
func buildStore(ctx context.Context, cfg *config.Config) (store.Store, func() error, error) {
	switch cfg.Store {
	case "local":
		s, err := store.NewLocalStore(cfg.Local.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open local store: %w", err)
		}
		return s, s.Close, nil

	case "sheets":
		if cfg.Sheets.SheetID == "" {
			return nil, nil, fmt.Errorf("sheets.sheet_id is not configured")
		}
		s, err := store.NewSheetsStore(ctx, cfg.Sheets.SheetID, cfg.Sheets.CredentialsFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create sheets store: %w", err)
		}
		return s, func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q (want sheets or local)", cfg.Store)
	}
}

// buildLinks creates the Spotify link finder, or nil when no credentials
// are configured (picks are then served without links).
func buildLinks(cfg *config.Config, logger zerolog.Logger) (prefetch.LinkFinder, error) {
	if cfg.Spotify.ClientID == "" || cfg.Spotify.ClientSecret == "" {
		logger.Warn().Msg("Spotify credentials not configured, albums will be served without links")
		return nil, nil
	}

	client, err := spotify.NewClient(spotify.Config{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
		Market:       cfg.Spotify.Market,
		Logger:       debugLogger{logger},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create spotify client: %w", err)
	}

	return client, nil
}

// debugLogger adapts zerolog to the spotify.Logger interface.
type debugLogger struct {
	l zerolog.Logger
}

func (d debugLogger) Debugf(format string, args ...interface{}) {
	d.l.Debug().Msgf(format, args...)
}

// setupLogger creates a logger with the specified configuration
func setupLogger(logFile, logLevel string) zerolog.Logger {
	// Parse log level
	level := zerolog.InfoLevel
	switch logLevel {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	// Set up output
	var output *os.File
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			output = os.Stderr
		} else {
			output = f
		}
	} else {
		output = os.Stderr
	}

	// Create logger
	logger := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	// Use pretty console output if logging to stderr
	if output == os.Stderr {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	return logger
}
