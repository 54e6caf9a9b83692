package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/balcaohq/backend/internal/domain"
)

// defaultPageLimit caps how many catalog entries one search pulls from the
// ERP when relying on the matcher for filtering.
const defaultPageLimit = 100

// CatalogServiceConfig holds configuration for the catalog service.
type CatalogServiceConfig struct {
	MatchThreshold float64
	PageLimit      int
}

// CatalogService answers product queries: it loads the stored token, pulls
// candidate records from the ERP, runs the matcher and optionally narrates
// the result. Every search is a fresh upstream round trip; results are
// deliberately not cached.
type CatalogService struct {
	tokens    domain.TokenStore
	client    domain.CatalogClient
	narrator  domain.Narrator
	matcher   *Matcher
	pageLimit int
}

// NewCatalogService creates a catalog service with its dependencies.
func NewCatalogService(
	tokens domain.TokenStore,
	client domain.CatalogClient,
	narrator domain.Narrator,
	config CatalogServiceConfig,
) *CatalogService {
	pageLimit := config.PageLimit
	if pageLimit <= 0 {
		pageLimit = defaultPageLimit
	}

	return &CatalogService{
		tokens:    tokens,
		client:    client,
		narrator:  narrator,
		matcher:   NewMatcher(config.MatchThreshold),
		pageLimit: pageLimit,
	}
}

// SearchProduct matches the catalog against the product name. With no
// stored token it fails fast with ErrNotAuthenticated before any HTTP
// call. Upstream errors are surfaced verbatim, never retried.
func (s *CatalogService) SearchProduct(ctx context.Context, name string) (*domain.MatchResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidRequest
	}

	record, err := s.tokens.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoToken) {
			return nil, domain.ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to load token: %w", err)
	}

	products, err := s.client.ListProducts(ctx, record.AccessToken, name, s.pageLimit)
	if err != nil {
		return nil, err
	}

	result := s.matcher.Match(name, products)
	return &result, nil
}

// DescribeProduct searches and then paraphrases the match through the
// narrator. A narrator failure degrades to the raw match text and never
// aborts the query.
func (s *CatalogService) DescribeProduct(ctx context.Context, name string) (*domain.MatchResult, string, error) {
	result, err := s.SearchProduct(ctx, name)
	if err != nil {
		return nil, "", err
	}

	matchText := strings.Join(result.Lines, "\n")

	description, err := s.narrator.Describe(ctx, matchText)
	if err != nil {
		slog.Warn("narrator unavailable, returning raw match text", "error", err)
		description = matchText
	}

	return result, description, nil
}
