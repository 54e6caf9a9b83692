package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("BALCAO_SERVER_PORT")
		os.Unsetenv("BALCAO_SERVER_ENVIRONMENT")
		os.Unsetenv("BALCAO_ERP_CLIENT_ID")
		os.Unsetenv("BALCAO_ERP_CLIENT_SECRET")
		os.Unsetenv("BALCAO_ERP_REDIRECT_URI")
		os.Unsetenv("BALCAO_ERP_BASE_URL")
		os.Unsetenv("BALCAO_ERP_PAGE_LIMIT")
		os.Unsetenv("BALCAO_ERP_STATE_TTL")
		os.Unsetenv("BALCAO_MATCHING_THRESHOLD")
		os.Unsetenv("BALCAO_TOKEN_STORE")
		os.Unsetenv("BALCAO_TOKEN_PATH")
		os.Unsetenv("BALCAO_NARRATOR_ENABLED")
		os.Unsetenv("BALCAO_NARRATOR_API_KEY")
	}

	setRequired := func() {
		os.Setenv("BALCAO_ERP_CLIENT_ID", "client-id")
		os.Setenv("BALCAO_ERP_CLIENT_SECRET", "client-secret")
		os.Setenv("BALCAO_ERP_REDIRECT_URI", "https://app.example.com/auth/callback")
	}

	t.Run("loads with defaults when only credentials set", func(t *testing.T) {
		cleanupEnv()
		setRequired()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.ERP.BaseURL != "https://api.bling.com.br/Api/v3" {
			t.Errorf("ERP.BaseURL = %s, want https://api.bling.com.br/Api/v3", cfg.ERP.BaseURL)
		}
		if cfg.ERP.PageLimit != 100 {
			t.Errorf("ERP.PageLimit = %d, want 100", cfg.ERP.PageLimit)
		}
		if cfg.ERP.StateTTL != 10*time.Minute {
			t.Errorf("ERP.StateTTL = %v, want 10m", cfg.ERP.StateTTL)
		}
		if cfg.Matching.Threshold != 0.6 {
			t.Errorf("Matching.Threshold = %.2f, want 0.6", cfg.Matching.Threshold)
		}
		if cfg.Token.Store != "file" {
			t.Errorf("Token.Store = %s, want file", cfg.Token.Store)
		}
		if cfg.Narrator.Enabled {
			t.Error("Narrator.Enabled = true, want false by default")
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		setRequired()
		os.Setenv("BALCAO_SERVER_PORT", "9090")
		os.Setenv("BALCAO_SERVER_ENVIRONMENT", "production")
		os.Setenv("BALCAO_ERP_BASE_URL", "https://erp.example.com/api")
		os.Setenv("BALCAO_ERP_PAGE_LIMIT", "50")
		os.Setenv("BALCAO_MATCHING_THRESHOLD", "0.4")
		os.Setenv("BALCAO_TOKEN_STORE", "memory")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.ERP.BaseURL != "https://erp.example.com/api" {
			t.Errorf("ERP.BaseURL = %s, want https://erp.example.com/api", cfg.ERP.BaseURL)
		}
		if cfg.ERP.PageLimit != 50 {
			t.Errorf("ERP.PageLimit = %d, want 50", cfg.ERP.PageLimit)
		}
		if cfg.Matching.Threshold != 0.4 {
			t.Errorf("Matching.Threshold = %.2f, want 0.4", cfg.Matching.Threshold)
		}
		if cfg.Token.Store != "memory" {
			t.Errorf("Token.Store = %s, want memory", cfg.Token.Store)
		}
	})

	t.Run("fails validation when client ID is missing", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for missing client ID")
		}
	})

	t.Run("fails validation for threshold out of range", func(t *testing.T) {
		cleanupEnv()
		setRequired()
		os.Setenv("BALCAO_MATCHING_THRESHOLD", "1.5")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for threshold out of range")
		}
	})

	t.Run("fails validation for invalid token store", func(t *testing.T) {
		cleanupEnv()
		setRequired()
		os.Setenv("BALCAO_TOKEN_STORE", "redis")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for invalid token store")
		}
	})

	t.Run("fails validation when narrator enabled without API key", func(t *testing.T) {
		cleanupEnv()
		setRequired()
		os.Setenv("BALCAO_NARRATOR_ENABLED", "true")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for narrator without API key")
		}
	})
}
