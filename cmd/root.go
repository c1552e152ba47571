package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "albumbot",
	Short: "Album club bot for Discord",
	Long: `albumbot runs an album-of-the-week club over Discord.

The club's state lives in a spreadsheet: a catalog of candidate albums,
a rotation of recently featured members, and the member roster. The bot
picks the next album fairly (no repeated contributor until everyone has
had a turn, no back-to-back genres), assigns reviewers, and links the
pick on Spotify.

It also provides one-shot commands to draw an album or reviewer from
the command line, useful for dry runs against a local store.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
