package bling

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/balcaohq/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client handles communication with the ERP product catalog API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
}

// NewClient creates a new catalog client.
func NewClient(baseURL string) *Client {
	// The ERP allows 3 requests per second per app
	limiter := rate.NewLimiter(rate.Limit(3), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// ListProducts fetches up to limit catalog entries matching the query.
// The server-side descricao filter has been unreliable across API
// versions, so the limit stays generous and final filtering is left to
// the matcher. Errors are surfaced immediately, never retried: a non-200
// here is an auth or parameter problem, not a transient one.
func (c *Client) ListProducts(ctx context.Context, accessToken, query string, limit int) ([]domain.ProductRecord, error) {
	if accessToken == "" {
		return nil, domain.ErrNotAuthenticated
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	endpoint := fmt.Sprintf("%s/produtos", c.baseURL)
	params := url.Values{}
	params.Add("pagina", "1")
	params.Add("limite", strconv.Itoa(limit))
	if query != "" {
		params.Add("descricao", query)
	}

	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "BalcaoBackend/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		slog.Warn("ERP rejected access token", "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", domain.ErrTokenRejected, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		slog.Warn("ERP catalog request failed", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrUpstream, resp.StatusCode, string(body))
	}

	records, err := parseProducts(body)
	if err != nil {
		slog.Warn("ERP response envelope unrecognized", "query", query)
		return nil, err
	}

	slog.Debug("catalog fetched", "query", query, "products", len(records))
	return records, nil
}
