package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file,
// with environment variables taking precedence over file values.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Playlist    PlaylistConfig    `toml:"playlist"`
	Database    DatabaseConfig    `toml:"database"`
	Server      ServerConfig      `toml:"server"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Telegram TelegramConfig `toml:"telegram"`
	Spotify  SpotifyConfig  `toml:"spotify"`
}

// TelegramConfig contains the Telegram bot credential.
type TelegramConfig struct {
	BotToken string `toml:"bot_token"`
}

// SpotifyConfig contains Spotify API credentials.
//
// RefreshToken is the long-lived token obtained via `bandolera setup token`;
// access tokens are derived from it at runtime and never stored.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RefreshToken string `toml:"refresh_token"`
	RedirectURI  string `toml:"redirect_uri"`
}

// PlaylistConfig identifies the target playlist and search market.
type PlaylistConfig struct {
	ID     string `toml:"id"`
	Market string `toml:"market"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains settings for the local OAuth callback server.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// LoadConfig reads and parses a TOML configuration file from the specified
// path, then applies environment overrides.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.applyEnv()
	return &config, nil
}

// DefaultConfig returns a Config with defaults loaded from the embedded
// example config, plus environment overrides.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	config.applyEnv()
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnv overrides config values with the original deployment's
// environment variable names, trimmed of surrounding whitespace.
func (c *Config) applyEnv() {
	overrides := []struct {
		key    string
		target *string
	}{
		{"TELEGRAM_BOT_TOKEN", &c.Credentials.Telegram.BotToken},
		{"SPOTIFY_CLIENT_ID", &c.Credentials.Spotify.ClientID},
		{"SPOTIFY_CLIENT_SECRET", &c.Credentials.Spotify.ClientSecret},
		{"SPOTIFY_REFRESH_TOKEN", &c.Credentials.Spotify.RefreshToken},
		{"SPOTIFY_PLAYLIST_ID", &c.Playlist.ID},
		{"SPOTIFY_MARKET", &c.Playlist.Market},
	}

	for _, o := range overrides {
		if v := strings.TrimSpace(os.Getenv(o.key)); v != "" {
			*o.target = v
		}
	}

	if strings.TrimSpace(c.Playlist.Market) == "" {
		c.Playlist.Market = "MX"
	}
}

// placeholder reports whether a value is empty or still the embedded
// example's "your_..." stand-in.
func placeholder(v string) bool {
	return v == "" || strings.HasPrefix(v, "your_")
}

// Validate checks that every required secret/identifier is present.
// Missing values are reported together; absence of any is startup-fatal.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"telegram bot_token (TELEGRAM_BOT_TOKEN)", c.Credentials.Telegram.BotToken},
		{"spotify client_id (SPOTIFY_CLIENT_ID)", c.Credentials.Spotify.ClientID},
		{"spotify client_secret (SPOTIFY_CLIENT_SECRET)", c.Credentials.Spotify.ClientSecret},
		{"spotify refresh_token (SPOTIFY_REFRESH_TOKEN)", c.Credentials.Spotify.RefreshToken},
		{"playlist id (SPOTIFY_PLAYLIST_ID)", c.Playlist.ID},
	}

	var missing []string
	for _, r := range required {
		if placeholder(r.value) {
			missing = append(missing, r.name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrMissingConfig, strings.Join(missing, ", "))
	}

	return nil
}

// ValidateCatalog checks only the values needed for catalog access,
// used by commands that never talk to Telegram.
func (c *Config) ValidateCatalog() error {
	var missing []string
	if placeholder(c.Credentials.Spotify.ClientID) {
		missing = append(missing, "spotify client_id")
	}
	if placeholder(c.Credentials.Spotify.ClientSecret) {
		missing = append(missing, "spotify client_secret")
	}
	if placeholder(c.Credentials.Spotify.RefreshToken) {
		missing = append(missing, "spotify refresh_token")
	}
	if placeholder(c.Playlist.ID) {
		missing = append(missing, "playlist id")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrMissingConfig, strings.Join(missing, ", "))
	}

	return nil
}

// SaveConfig writes the configuration back to the given path.
func SaveConfig(path string, config *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
