package usecase

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/balcaohq/backend/internal/domain"
	"golang.org/x/oauth2"
)

// defaultStateTTL bounds how long a login attempt may stay pending before
// its callback is rejected.
const defaultStateTTL = 10 * time.Minute

// AuthConfig holds the static OAuth2 credentials and endpoints for the ERP.
type AuthConfig struct {
	ClientID     string
	ClientSecret string
	AuthURL      string
	TokenURL     string
	RedirectURI  string
	StateTTL     time.Duration
}

// AuthService runs the authorization-code flow against the ERP: it builds
// the authorization redirect URL, exchanges the callback code for an
// access token and persists the result.
type AuthService struct {
	oauth    oauth2.Config
	tokens   domain.TokenStore
	states   domain.StateStore
	stateTTL time.Duration
}

// NewAuthService creates the authorization flow with its dependencies.
func NewAuthService(tokens domain.TokenStore, states domain.StateStore, config AuthConfig) *AuthService {
	stateTTL := config.StateTTL
	if stateTTL == 0 {
		stateTTL = defaultStateTTL
	}

	return &AuthService{
		oauth: oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			RedirectURL:  config.RedirectURI,
			Endpoint: oauth2.Endpoint{
				AuthURL:  config.AuthURL,
				TokenURL: config.TokenURL,
				// The ERP token endpoint wants client credentials as HTTP
				// Basic auth, not form fields.
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		tokens:   tokens,
		states:   states,
		stateTTL: stateTTL,
	}
}

// BuildLoginURL generates a fresh unguessable state, records it as a
// pending login and returns the upstream authorization URL.
func (s *AuthService) BuildLoginURL(ctx context.Context) (string, error) {
	state := generateState()
	if err := s.states.Save(ctx, state, s.stateTTL); err != nil {
		return "", fmt.Errorf("failed to record pending login: %w", err)
	}

	return s.oauth.AuthCodeURL(state), nil
}

// CompleteLogin validates the callback and exchanges the code for a token.
// The state is consumed whatever the outcome; a failed exchange persists
// nothing, leaving any previously stored token untouched.
func (s *AuthService) CompleteLogin(ctx context.Context, code, state string) (*domain.TokenRecord, error) {
	if code == "" {
		return nil, domain.ErrMissingCode
	}

	if err := s.states.GetAndDelete(ctx, state); err != nil {
		if errors.Is(err, domain.ErrStateNotFound) {
			return nil, domain.ErrStateMismatch
		}
		return nil, fmt.Errorf("failed to verify login state: %w", err)
	}

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			status := 0
			if retrieveErr.Response != nil {
				status = retrieveErr.Response.StatusCode
			}
			return nil, fmt.Errorf("%w: status %d, body: %s",
				domain.ErrUpstreamRejected, status, retrieveErr.Body)
		}
		if strings.Contains(err.Error(), "missing access_token") {
			return nil, fmt.Errorf("%w: %v", domain.ErrNoTokenReturned, err)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamRejected, err)
	}
	if token.AccessToken == "" {
		return nil, domain.ErrNoTokenReturned
	}

	record := &domain.TokenRecord{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}
	if err := s.tokens.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist token: %w", err)
	}

	slog.Info("ERP login completed")
	return record, nil
}

// TokenStatus reports whether an access token is currently stored.
func (s *AuthService) TokenStatus(ctx context.Context) bool {
	_, err := s.tokens.Load(ctx)
	return err == nil
}

// Logout clears the stored token, forcing a new authorization flow.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.tokens.Clear(ctx)
}

// generateState returns 32 bytes of randomness, base64url-encoded.
func generateState() string {
	b := make([]byte, 32)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
