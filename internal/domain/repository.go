package domain

import (
	"context"
	"time"
)

// TokenStore is the durable holder of the current access token. It holds at
// most one record; Save overwrites (last-write-wins) and a concurrent
// reader never observes a partial write.
type TokenStore interface {
	Load(ctx context.Context) (*TokenRecord, error)
	Save(ctx context.Context, record *TokenRecord) error
	Clear(ctx context.Context) error
}

// StateStore tracks pending login attempts keyed by their anti-CSRF state
// token. Entries are single-use and expire after a TTL, so concurrent
// logins do not invalidate each other.
type StateStore interface {
	Save(ctx context.Context, state string, ttl time.Duration) error
	// GetAndDelete consumes the state, returning ErrStateNotFound when it
	// is unknown or already expired.
	GetAndDelete(ctx context.Context, state string) error
}

// CatalogClient talks to the ERP product-listing endpoint.
type CatalogClient interface {
	ListProducts(ctx context.Context, accessToken, query string, limit int) ([]ProductRecord, error)
}

// Narrator paraphrases matched-product text through a completion endpoint.
type Narrator interface {
	Describe(ctx context.Context, formattedMatch string) (string, error)
}
