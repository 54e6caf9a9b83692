package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	ERP      ERPConfig
	Narrator NarratorConfig
	Matching MatchingConfig
	Token    TokenConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ERPConfig holds the upstream ERP API and OAuth2 configuration
type ERPConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	AuthURL      string        `mapstructure:"auth_url"`
	TokenURL     string        `mapstructure:"token_url"`
	ClientID     string        `mapstructure:"client_id"`
	ClientSecret string        `mapstructure:"client_secret"`
	RedirectURI  string        `mapstructure:"redirect_uri"`
	PageLimit    int           `mapstructure:"page_limit"`
	StateTTL     time.Duration `mapstructure:"state_ttl"`
}

// NarratorConfig holds the completion endpoint configuration
type NarratorConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// MatchingConfig holds product matching configuration
type MatchingConfig struct {
	Threshold float64 `mapstructure:"threshold"`
}

// TokenConfig holds token persistence configuration
type TokenConfig struct {
	Store string `mapstructure:"store"` // "file" or "memory"
	Path  string `mapstructure:"path"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/balcao/")

	// Environment variable settings
	v.SetEnvPrefix("BALCAO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// ERP defaults
	v.SetDefault("erp.base_url", "https://api.bling.com.br/Api/v3")
	v.SetDefault("erp.auth_url", "https://www.bling.com.br/Api/v3/oauth/authorize")
	v.SetDefault("erp.token_url", "https://www.bling.com.br/Api/v3/oauth/token")
	v.SetDefault("erp.page_limit", 100)
	v.SetDefault("erp.state_ttl", "10m")
	// Empty defaults so env-only credentials are visible to Unmarshal
	v.SetDefault("erp.client_id", "")
	v.SetDefault("erp.client_secret", "")
	v.SetDefault("erp.redirect_uri", "")

	// Narrator defaults
	v.SetDefault("narrator.enabled", false)
	v.SetDefault("narrator.base_url", "https://api.openai.com")
	v.SetDefault("narrator.model", "gpt-4o-mini")
	v.SetDefault("narrator.api_key", "")

	// Matching defaults
	v.SetDefault("matching.threshold", 0.6)

	// Token persistence defaults
	v.SetDefault("token.store", "file")
	v.SetDefault("token.path", "data/token.json")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.ERP.ClientID == "" {
		return fmt.Errorf("ERP client ID is required (set BALCAO_ERP_CLIENT_ID)")
	}
	if config.ERP.ClientSecret == "" {
		return fmt.Errorf("ERP client secret is required (set BALCAO_ERP_CLIENT_SECRET)")
	}
	if config.ERP.RedirectURI == "" {
		return fmt.Errorf("ERP redirect URI is required (set BALCAO_ERP_REDIRECT_URI)")
	}

	if config.Matching.Threshold <= 0 || config.Matching.Threshold > 1 {
		return fmt.Errorf("matching threshold must be in (0, 1], got: %.2f", config.Matching.Threshold)
	}

	if config.Token.Store != "file" && config.Token.Store != "memory" {
		return fmt.Errorf("token store must be 'file' or 'memory', got: %s", config.Token.Store)
	}
	if config.Token.Store == "file" && config.Token.Path == "" {
		return fmt.Errorf("token path is required when token store is 'file'")
	}

	if config.Narrator.Enabled && config.Narrator.APIKey == "" {
		return fmt.Errorf("narrator API key is required when narrator is enabled (set BALCAO_NARRATOR_API_KEY)")
	}

	return nil
}
