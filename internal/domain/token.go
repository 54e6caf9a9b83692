package domain

// TokenRecord is the persisted ERP access token. The upstream does not
// reliably return an expiry, so there is no stored timestamp; an
// invalidated token is only detected by a 401/403 from the catalog API.
type TokenRecord struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}
