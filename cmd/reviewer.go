package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/krlohnes/album-club-bot/internal/catalog"
	"github.com/krlohnes/album-club-bot/internal/config"
	"github.com/krlohnes/album-club-bot/internal/review"
	"github.com/krlohnes/album-club-bot/internal/rotation"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// reviewerCmd represents the reviewer command
var reviewerCmd = &cobra.Command{
	Use:   "reviewer",
	Short: "Draw the next reviewer from the roster",
	Long: `Draw the next reviewer from the roster and print their name.

The current album's contributor is excluded from the draw. Each process
builds its own shuffled queue, so repeated invocations may repeat names;
use the bot for queue-backed draws across a whole rotation.`,
	RunE: runReviewer,
}

func init() {
	rootCmd.AddCommand(reviewerCmd)

	reviewerCmd.Flags().Bool("reset", false, "Rebuild the queue without drawing")
}

func runReviewer(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	s, closeStore, err := buildStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	logger := zerolog.Nop()
	albums := catalog.NewReader(s, catalog.Ranges{
		Albums:  cfg.Ranges.Albums,
		Last:    cfg.Ranges.Last,
		Current: cfg.Ranges.Current,
	})
	tracker := rotation.NewTracker(s, rotation.Ranges{
		Rotation: cfg.Ranges.Rotation,
		Roster:   cfg.Ranges.Roster,
	}, logger)
	picker := review.NewPicker(albums, tracker, logger)

	if reset, _ := cmd.Flags().GetBool("reset"); reset {
		if err := picker.Reset(ctx); err != nil {
			return fmt.Errorf("failed to rebuild reviewer queue: %w", err)
		}
		fmt.Println("Reviewer queue rebuilt.")
		return nil
	}

	name, err := picker.Next(ctx)
	if err != nil {
		return fmt.Errorf("failed to draw a reviewer: %w", err)
	}

	fmt.Println(name)
	return nil
}
