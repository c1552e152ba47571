package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/krlohnes/album-club-bot/internal/catalog"
	"github.com/krlohnes/album-club-bot/internal/config"
	"github.com/krlohnes/album-club-bot/internal/rotation"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the bot's configuration",
	Long: `Verify the bot's configuration by exercising each dependency.

Checks performed:
1. The store backend is reachable and the catalog and roster are readable
2. Spotify credentials obtain a token and resolve a test album (if configured)
3. A Discord token is present (the gateway is not contacted)

Exit code is non-zero if any check fails.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Printf("Store backend: %s\n", cfg.Store)

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

	list, err := albums.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to read the album catalog: %w", err)
	}
	fmt.Printf("✓ Catalog readable (%d albums)\n", len(list))

	roster, err := tracker.Roster(ctx)
	if err != nil {
		return fmt.Errorf("failed to read the roster: %w", err)
	}
	if len(roster) == 0 {
		return fmt.Errorf("roster is empty; add members to %s", cfg.Ranges.Roster)
	}
	fmt.Printf("✓ Roster readable (%d members)\n", len(roster))

	current, err := tracker.Current(ctx)
	if err != nil {
		return fmt.Errorf("failed to read the rotation: %w", err)
	}
	fmt.Printf("✓ Rotation readable (%d of %d members featured)\n", len(current), len(roster))

	if cfg.Spotify.ClientID == "" || cfg.Spotify.ClientSecret == "" {
		fmt.Println("- Spotify credentials not configured, links will be skipped")
	} else {
		links, err := buildLinks(cfg, logger)
		if err != nil {
			return err
		}
		// A real search exercises both the token exchange and the API.
		link, err := links.AlbumLink(ctx, "Abbey Road", "The Beatles")
		if err != nil {
			return fmt.Errorf("spotify lookup failed: %w", err)
		}
		fmt.Printf("✓ Spotify credentials valid (%s)\n", link)
	}

	if cfg.Discord.Token == "" {
		fmt.Println("- Discord token not configured, 'albumbot bot' will refuse to start")
	} else {
		fmt.Println("✓ Discord token present")
	}

	fmt.Println("\nAll checks passed.")
	return nil
}
