package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/handiism/erettsegi-downloader/internal/exam"
)

// EnvPrefix is the prefix of environment variables overriding settings.
const EnvPrefix = "ERETTSEGIT"

// DefaultClientTimeout applies when client_timeout is empty or invalid.
const DefaultClientTimeout = 60 * time.Second

// Settings holds all configuration options.
type Settings struct {
	// Download settings
	DownloadsPath string `json:"downloads_path" mapstructure:"downloads_path"` // {year}, {month}, {date}, {level}
	BaseURL       string `json:"base_url" mapstructure:"base_url"`
	KeepArchives  bool   `json:"keep_archives" mapstructure:"keep_archives"`

	// Presentation
	Language string `json:"lang" mapstructure:"lang"`
	LogLevel string `json:"log_level" mapstructure:"log_level"`

	// HTTP client
	UserAgent     string `json:"user_agent" mapstructure:"user_agent"`
	ClientTimeout string `json:"client_timeout" mapstructure:"client_timeout"` // Go duration string
	ProxyAddress  string `json:"proxy_address" mapstructure:"proxy_address"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		DownloadsPath: "erettsegi_{year}_{month}_{level}",
		BaseURL:       exam.DefaultBaseURL,
		KeepArchives:  false,

		Language: "hu",
		LogLevel: "warn",

		UserAgent:     "erettsegi-downloader",
		ClientTimeout: DefaultClientTimeout.String(),
	}
}

// Load reads settings from path, or from the default search locations when
// path is empty, then applies environment overrides.
func Load(path string) (*Settings, error) {
	v := viper.New()

	defaults := DefaultSettings()
	v.SetDefault("downloads_path", defaults.DownloadsPath)
	v.SetDefault("base_url", defaults.BaseURL)
	v.SetDefault("keep_archives", defaults.KeepArchives)
	v.SetDefault("lang", defaults.Language)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("user_agent", defaults.UserAgent)
	v.SetDefault("client_timeout", defaults.ClientTimeout)
	v.SetDefault("proxy_address", defaults.ProxyAddress)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("log_level", EnvPrefix+"_LOG_LEVEL", "LOG_LEVEL")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("erettsegit")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "erettsegit"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// Only the search for a default config file may come up empty.
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Timeout returns the parsed client timeout, falling back to
// DefaultClientTimeout.
func (s *Settings) Timeout() time.Duration {
	if s.ClientTimeout == "" {
		return DefaultClientTimeout
	}
	timeout, err := time.ParseDuration(s.ClientTimeout)
	if err != nil || timeout <= 0 {
		return DefaultClientTimeout
	}
	return timeout
}
