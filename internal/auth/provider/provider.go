package provider

import (
	"context"

	"github.com/duyng2512/devmeet/internal/auth/reconcile"
)

// OAuthProvider defines the contract every external identity provider
// integration must implement. Implementations perform the provider
// handshake and return a verified assertion; they must not create accounts,
// link identities, or issue tokens.
type OAuthProvider interface {
	// Name returns the provider identifier (e.g. "google").
	Name() string

	// AuthCodeURL returns the OAuth authorization URL.
	// State and PKCE parameters are provided by the caller.
	AuthCodeURL(state string, codeChallenge string) string

	// ExchangeCode exchanges the authorization code for provider credentials
	// and returns a verified profile assertion.
	ExchangeCode(
		ctx context.Context,
		code string,
		codeVerifier string,
	) (*reconcile.Assertion, error)
}
