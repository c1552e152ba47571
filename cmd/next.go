package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/krlohnes/album-club-bot/internal/catalog"
	"github.com/krlohnes/album-club-bot/internal/config"
	"github.com/krlohnes/album-club-bot/internal/rotation"
	"github.com/krlohnes/album-club-bot/internal/selection"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// nextCmd represents the next command
var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Draw the next album from the catalog",
	Long: `Draw the next album from the catalog and print it.

The draw applies the club's rules: contributors in the current rotation
are skipped, and the previous pick's genre and contributor are excluded.

The output format can be customized in ~/.config/albumbot/config.yaml
using a Go template. Available fields: .Title, .Artist, .Genre, .AddedBy

By default the draw is a dry run. Pass --commit to record the pick's
contributor in the rotation, exactly as the bot would.`,
	RunE: runNext,
}

func init() {
	rootCmd.AddCommand(nextCmd)

	// Add format flag to override config
	nextCmd.Flags().StringP("format", "f", "", "Output format template (overrides config)")
	// Add width flag to set fixed output width
	nextCmd.Flags().IntP("width", "w", 0, "Fixed output width (0=disabled)")
	nextCmd.Flags().Bool("commit", false, "Record the pick's contributor in the rotation")
}

func runNext(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Check for format flag override
	formatFlag, _ := cmd.Flags().GetString("format")
	if formatFlag != "" {
		cfg.OutputFormat = formatFlag
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
	picker := selection.NewPicker(albums, tracker, logger)

	album, err := picker.Next(ctx)
	if err != nil {
		if errors.Is(err, selection.ErrNoEligibleAlbum) {
			return fmt.Errorf("no album satisfies the club's rules right now")
		}
		return fmt.Errorf("failed to draw an album: %w", err)
	}

	if commit, _ := cmd.Flags().GetBool("commit"); commit {
		if err := tracker.Record(ctx, album.AddedBy); err != nil {
			return fmt.Errorf("failed to record %s in the rotation: %w", album.AddedBy, err)
		}
	}

	// Format and print output
	output, err := formatAlbum(album, cfg.OutputFormat)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	// Apply width padding if requested
	width, _ := cmd.Flags().GetInt("width")
	if width > 0 {
		output = padToWidth(output, width)
	}

	fmt.Println(output)
	return nil
}

// formatAlbum applies the template to the album data
func formatAlbum(album catalog.Album, templateStr string) (string, error) {
	tmpl, err := template.New("output").Parse(templateStr)
	if err != nil {
		return "", fmt.Errorf("invalid template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, album); err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}

	return buf.String(), nil
}

// padToWidth pads or truncates text to a fixed display width.
// Width is measured in display columns, accounting for Unicode characters.
// If width <= 0, returns text unchanged.
// If text is longer than width, truncates with "..." suffix.
// If text is shorter than width, pads with spaces.
func padToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}

	currentWidth := runewidth.StringWidth(text)

	if currentWidth > width {
		ellipsis := "..."
		ellipsisWidth := runewidth.StringWidth(ellipsis)

		if width <= ellipsisWidth {
			return runewidth.Truncate(ellipsis, width, "")
		}

		truncated := runewidth.Truncate(text, width-ellipsisWidth, "")
		result := truncated + ellipsis

		// Wide runes can make the truncation land a column short
		resultWidth := runewidth.StringWidth(result)
		if resultWidth < width {
			return result + strings.Repeat(" ", width-resultWidth)
		} else if resultWidth > width {
			return runewidth.Truncate(result, width, "")
		}
		return result
	} else if currentWidth < width {
		return text + strings.Repeat(" ", width-currentWidth)
	}

	return text
}
