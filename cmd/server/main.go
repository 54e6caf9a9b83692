package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/balcaohq/backend/config"
	httpDelivery "github.com/balcaohq/backend/internal/delivery/http"
	"github.com/balcaohq/backend/internal/domain"
	"github.com/balcaohq/backend/internal/infrastructure/bling"
	"github.com/balcaohq/backend/internal/infrastructure/narrator"
	"github.com/balcaohq/backend/internal/infrastructure/statestore"
	"github.com/balcaohq/backend/internal/infrastructure/tokenstore"
	"github.com/balcaohq/backend/internal/logger"
	"github.com/balcaohq/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.New(cfg.Server.Environment)

	slog.Info("Starting Balcao Backend",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port,
		"erp_base_url", cfg.ERP.BaseURL,
	)

	// Initialize infrastructure dependencies
	var tokens domain.TokenStore
	switch cfg.Token.Store {
	case "memory":
		tokens = tokenstore.NewMemoryStore()
	default:
		tokens = tokenstore.NewFileStore(cfg.Token.Path)
	}
	slog.Info("Token store configured", "store", cfg.Token.Store, "path", cfg.Token.Path)

	states := statestore.NewMemoryStore()

	blingClient := bling.NewClient(cfg.ERP.BaseURL)

	var narr domain.Narrator = narrator.Noop{}
	if cfg.Narrator.Enabled {
		narr = narrator.NewClient(cfg.Narrator.APIKey, cfg.Narrator.BaseURL, cfg.Narrator.Model)
		slog.Info("Narrator enabled", "model", cfg.Narrator.Model)
	} else {
		slog.Info("Narrator disabled, answers use raw match text")
	}

	// Initialize usecase layer
	authService := usecase.NewAuthService(tokens, states, usecase.AuthConfig{
		ClientID:     cfg.ERP.ClientID,
		ClientSecret: cfg.ERP.ClientSecret,
		AuthURL:      cfg.ERP.AuthURL,
		TokenURL:     cfg.ERP.TokenURL,
		RedirectURI:  cfg.ERP.RedirectURI,
		StateTTL:     cfg.ERP.StateTTL,
	})

	catalogService := usecase.NewCatalogService(tokens, blingClient, narr,
		usecase.CatalogServiceConfig{
			MatchThreshold: cfg.Matching.Threshold,
			PageLimit:      cfg.ERP.PageLimit,
		},
	)

	slog.Info("Matching configured", "threshold", cfg.Matching.Threshold, "page_limit", cfg.ERP.PageLimit)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(authService, catalogService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	slog.Info("Server listening", "addr", addr)

	if err := router.Run(addr); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
