package spotify

import (
	"fmt"
	"net/http"
	"sync"
	"time"
)

const (
	// DefaultBaseURL is the default Spotify Web API endpoint.
	DefaultBaseURL = "https://api.spotify.com/v1"
	// DefaultAuthURL is the default token endpoint for the
	// client-credentials flow.
	DefaultAuthURL = "https://accounts.spotify.com/api/token"
	// DefaultMarket scopes searches to a market so region-locked albums
	// don't produce dead links.
	DefaultMarket = "US"
)

// Config holds client configuration.
type Config struct {
	ClientID     string       // Required: Spotify app client id
	ClientSecret string       // Required: Spotify app client secret
	Market       string       // Optional: search market (defaults to "US")
	HTTPClient   *http.Client // Optional: HTTP client (defaults to http.DefaultClient)
	BaseURL      string       // Optional: API base URL (used for testing)
	AuthURL      string       // Optional: token endpoint URL (used for testing)
	Logger       Logger       // Optional: logger interface for debug logging
}

// Logger is an optional interface for logging.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})
}

// Client is the main entry point for Spotify Web API operations.
type Client struct {
	clientID     string
	clientSecret string
	market       string
	httpClient   *http.Client
	baseURL      string
	authURL      string
	logger       Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient creates a new Spotify Web API client.
//
// Returns an error if required configuration (ClientID, ClientSecret) is
// missing.
func NewClient(cfg Config) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("spotify: ClientID is required")
	}
	if cfg.ClientSecret == "" {
		return nil, fmt.Errorf("spotify: ClientSecret is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	authURL := cfg.AuthURL
	if authURL == "" {
		authURL = DefaultAuthURL
	}

	market := cfg.Market
	if market == "" {
		market = DefaultMarket
	}

	return &Client{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		market:       market,
		httpClient:   httpClient,
		baseURL:      baseURL,
		authURL:      authURL,
		logger:       cfg.Logger,
	}, nil
}

// logDebugf logs a debug message if a logger is configured.
func (c *Client) logDebugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}
