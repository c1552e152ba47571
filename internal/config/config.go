package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Which store backend to use: "sheets" or "local"
	Store string

	// Output format template for the next command
	OutputFormat string

	Sheets  SheetsConfig
	Local   LocalConfig
	Ranges  RangesConfig
	Discord DiscordConfig
	Spotify SpotifyConfig
}

// SheetsConfig holds Google Sheets specific configuration
type SheetsConfig struct {
	SheetID         string
	CredentialsFile string
}

// LocalConfig holds the SQLite store configuration
type LocalConfig struct {
	Path string
}

// RangesConfig names the sheet ranges the bot reads and writes.
// Defaults match the club's sheet layout.
type RangesConfig struct {
	Albums   string // candidate catalog: artist, title, genre, added-by
	Rotation string // recently featured contributors
	Roster   string // all known contributors
	Last     string // last pick's genre and contributor
	Current  string // currently featured album row
}

// DiscordConfig holds the bot's Discord settings
type DiscordConfig struct {
	Token  string
	Prefix string
}

// SpotifyConfig holds Spotify API credentials
type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
	Market       string
}

// Load reads configuration from file and environment
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Config file locations (in order of precedence)
	configDir := getConfigDir()
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	// Set defaults
	v.SetDefault("store", "sheets")
	v.SetDefault("output_format", "{{.Title}} by {{.Artist}} ({{.Genre}}), added by {{.AddedBy}}")
	v.SetDefault("local.path", filepath.Join(dataDir(), "club.db"))
	v.SetDefault("ranges.albums", "Album Selection!A2:D")
	v.SetDefault("ranges.rotation", "Rotation!A:A")
	v.SetDefault("ranges.roster", "Roster!A:A")
	v.SetDefault("ranges.last", "Ratings!C2:D2")
	v.SetDefault("ranges.current", "Ratings!A2:D2")
	v.SetDefault("discord.prefix", "~")
	v.SetDefault("spotify.market", "US")

	// Read config file (optional - don't fail if missing)
	_ = v.ReadInConfig()

	// Read from environment variables
	// (nested keys map to underscores, e.g. ALBUMBOT_DISCORD_TOKEN)
	v.SetEnvPrefix("ALBUMBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Store:        v.GetString("store"),
		OutputFormat: v.GetString("output_format"),
		Sheets: SheetsConfig{
			SheetID:         v.GetString("sheets.sheet_id"),
			CredentialsFile: v.GetString("sheets.credentials_file"),
		},
		Local: LocalConfig{
			Path: v.GetString("local.path"),
		},
		Ranges: RangesConfig{
			Albums:   v.GetString("ranges.albums"),
			Rotation: v.GetString("ranges.rotation"),
			Roster:   v.GetString("ranges.roster"),
			Last:     v.GetString("ranges.last"),
			Current:  v.GetString("ranges.current"),
		},
		Discord: DiscordConfig{
			Token:  v.GetString("discord.token"),
			Prefix: v.GetString("discord.prefix"),
		},
		Spotify: SpotifyConfig{
			ClientID:     v.GetString("spotify.client_id"),
			ClientSecret: v.GetString("spotify.client_secret"),
			Market:       v.GetString("spotify.market"),
		},
	}

	return cfg, nil
}

// getConfigDir returns the configuration directory path
// Creates the directory if it doesn't exist
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, ".config", "albumbot")

	_ = os.MkdirAll(configDir, 0755)

	return configDir
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}

// dataDir returns the default data directory for the local store
func dataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, ".local", "share", "albumbot")
}

// Save writes configuration to file
func (c *Config) Save() error {
	v := viper.New()

	configDir := getConfigDir()
	configFile := filepath.Join(configDir, "config.yaml")

	v.Set("store", c.Store)
	v.Set("output_format", c.OutputFormat)
	v.Set("sheets.sheet_id", c.Sheets.SheetID)
	v.Set("sheets.credentials_file", c.Sheets.CredentialsFile)
	v.Set("local.path", c.Local.Path)
	v.Set("ranges.albums", c.Ranges.Albums)
	v.Set("ranges.rotation", c.Ranges.Rotation)
	v.Set("ranges.roster", c.Ranges.Roster)
	v.Set("ranges.last", c.Ranges.Last)
	v.Set("ranges.current", c.Ranges.Current)
	v.Set("discord.prefix", c.Discord.Prefix)
	v.Set("spotify.market", c.Spotify.Market)

	return v.WriteConfigAs(configFile)
}
