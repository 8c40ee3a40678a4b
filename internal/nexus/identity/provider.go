// Package identity resolves external sign-ins into an email identity.
package identity

import (
	"context"
	"errors"
)

var ErrExchangeFailed = errors.New("identity: code exchange failed")

// Identity is what an external provider tells us about the person signing in.
type Identity struct {
	Email       string
	DisplayName string
	TenantID    string
}

// Provider is an external OAuth identity provider.
type Provider interface {
	// AuthURL returns the authorize URL the browser is sent to.
	AuthURL(redirectURI, state string) string

	// Exchange swaps an authorization code for the signed-in identity.
	Exchange(ctx context.Context, code, redirectURI string) (Identity, error)
}
