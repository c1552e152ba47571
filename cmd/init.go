package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/krlohnes/album-club-bot/internal/config"
	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: `Write a starter config file with the default settings.

The file lands in ~/.config/albumbot/config.yaml. Fill in
sheets.sheet_id and sheets.credentials_file afterwards (or switch
store to "local" for a credential-free setup). Secrets such as
discord.token and the Spotify client pair are best supplied through
ALBUMBOT_ environment variables and are never written by this command.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	configFile := filepath.Join(config.GetConfigDir(), "config.yaml")

	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(configFile); err == nil && !force {
		return fmt.Errorf("%s already exists, pass --force to overwrite", configFile)
	}

	// Load picks up defaults plus anything already set in the environment,
	// so the written file reflects the effective configuration.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Wrote %s\n", configFile)
	fmt.Println("Edit it to point at your sheet, then run 'albumbot check'.")
	return nil
}
