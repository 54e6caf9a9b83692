package domain

import "errors"

var (
	// ErrMissingCode is returned when the authorization callback carries no code.
	ErrMissingCode = errors.New("authorization callback missing code")

	// ErrStateMismatch is returned when the callback state does not match a pending login.
	ErrStateMismatch = errors.New("authorization state mismatch")

	// ErrUpstreamRejected is returned when the ERP token endpoint answers non-200.
	ErrUpstreamRejected = errors.New("token exchange rejected by upstream")

	// ErrNoTokenReturned is returned when the token exchange succeeds without an access token.
	ErrNoTokenReturned = errors.New("token exchange returned no access token")

	// ErrNotAuthenticated is returned when a catalog operation runs with no stored token.
	ErrNotAuthenticated = errors.New("not authenticated with the ERP")

	// ErrTokenRejected is returned when the ERP answers 401/403 to an
	// authenticated call. The caller should prompt for a new login.
	ErrTokenRejected = errors.New("ERP rejected the stored access token")

	// ErrUpstream is returned when the ERP catalog API fails with any other non-200.
	ErrUpstream = errors.New("ERP API request failed")

	// ErrMalformedResponse is returned when the product list cannot be
	// located under any known response envelope.
	ErrMalformedResponse = errors.New("unrecognized ERP response envelope")

	// ErrNarratorUnavailable is returned when the completion call fails.
	ErrNarratorUnavailable = errors.New("narrator call failed")

	// ErrInvalidRequest is returned when request parameters are invalid.
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrNoToken is returned by a TokenStore when no record has been persisted.
	ErrNoToken = errors.New("no token stored")

	// ErrStateNotFound is returned by a StateStore for an unknown or expired state.
	ErrStateNotFound = errors.New("pending login state not found")
)
