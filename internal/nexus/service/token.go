package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
	"github.com/aussiebroadwan/nexus/pkg/jwtx"
)

// TokenService issues and verifies session tokens. It holds no state beyond
// the signing secret, so Issue and Verify have no side effects.
type TokenService struct {
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Issuer   string
	TTL      time.Duration
	Now      func() time.Time
}

// NewTokenService builds an HS256 token service from a shared secret.
func NewTokenService(secret []byte, issuer string) (*TokenService, error) {
	signer, err := jwtx.NewSignerHS256(secret)
	if err != nil {
		return nil, err
	}
	return &TokenService{
		Signer:   signer,
		Verifier: jwtx.NewVerifierHS256(secret, issuer),
		Issuer:   issuer,
		TTL:      jwtx.DefaultSessionTTL,
	}, nil
}

// Issue signs a session token for u.
func (s *TokenService) Issue(u domain.User) (string, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}

	claims := jwtx.NewSessionClaims(
		u.ID,
		u.Email,
		u.Role.String(),
		u.OrganizationID,
		ttl,
		s.Issuer,
		clock(s.Now),
	)

	tok, err := s.Signer.Sign(claims)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return tok, nil
}

// Verify checks signature, algorithm, issuer and expiry. It satisfies
// jwtx.Verifier so the guard can use it directly.
func (s *TokenService) Verify(token string) (jwtx.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return jwtx.Claims{}, ErrUnauthenticated
	}

	claims, err := s.Verifier.Verify(token)
	if err != nil {
		return jwtx.Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}
