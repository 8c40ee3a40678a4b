package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/nexus/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const exampleIssuer = "nexus-test"

var exampleSecret = []byte(strings.Repeat("s", 32))

func TestHS256SignAndVerify(t *testing.T) {
	signer, err := jwtx.NewSignerHS256(exampleSecret)
	require.NoError(t, err)
	require.Equal(t, "HS256", signer.Alg())

	now := time.Now().UTC()
	claims := jwtx.NewSessionClaims(
		"user-123",
		"alice@acme.com",
		"org_admin",
		"org-1",
		jwtx.DefaultSessionTTL,
		exampleIssuer,
		now,
	)

	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	verifier := jwtx.NewVerifierHS256(exampleSecret, exampleIssuer)
	parsed, err := verifier.Verify(token)
	require.NoError(t, err)

	require.Equal(t, "user-123", parsed.UserID())
	require.Equal(t, "alice@acme.com", parsed.Email)
	require.Equal(t, "org_admin", parsed.Role)
	require.Equal(t, "org-1", parsed.OrganizationID)
	require.Equal(t, exampleIssuer, parsed.Issuer)
	require.NotEmpty(t, parsed.ID)
	require.WithinDuration(t, now.Add(24*time.Hour), parsed.ExpiresAt.Time, time.Second)
}

func TestHS256RejectsShortSecret(t *testing.T) {
	_, err := jwtx.NewSignerHS256([]byte("short"))
	require.Error(t, err)
}

func TestHS256VerifyFailures(t *testing.T) {
	signer, err := jwtx.NewSignerHS256(exampleSecret)
	require.NoError(t, err)

	now := time.Now().UTC()
	sign := func(c jwtx.Claims) string {
		tok, err := signer.Sign(c)
		require.NoError(t, err)
		return tok
	}

	t.Run("wrong secret", func(t *testing.T) {
		tok := sign(jwtx.NewSessionClaims("u", "e", "end_user", "o", time.Hour, exampleIssuer, now))
		other := jwtx.NewVerifierHS256([]byte(strings.Repeat("x", 32)), exampleIssuer)
		_, err := other.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		tok := sign(jwtx.NewSessionClaims("u", "e", "end_user", "o", time.Hour, exampleIssuer, now))
		v := jwtx.NewVerifierHS256(exampleSecret, "someone-else")
		_, err := v.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("expired", func(t *testing.T) {
		tok := sign(jwtx.NewSessionClaims("u", "e", "end_user", "o", time.Hour, exampleIssuer, now.Add(-2*time.Hour)))
		v := jwtx.NewVerifierHS256(exampleSecret, exampleIssuer)
		_, err := v.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("garbage", func(t *testing.T) {
		v := jwtx.NewVerifierHS256(exampleSecret, exampleIssuer)
		_, err := v.Verify("not-a-jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("alg none", func(t *testing.T) {
		c := jwtx.NewSessionClaims("u", "e", "super_admin", "o", time.Hour, exampleIssuer, now)
		tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, c).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		v := jwtx.NewVerifierHS256(exampleSecret, exampleIssuer)
		_, err = v.Verify(tok)
		require.Error(t, err)
	})
}

func TestValidateExpiryAt(t *testing.T) {
	now := time.Now().UTC()

	t.Run("valid token", func(t *testing.T) {
		c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		}}
		require.NoError(t, c.ValidateExpiryAt(now))
	})

	t.Run("not yet valid", func(t *testing.T) {
		c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{
			NotBefore: jwt.NewNumericDate(now.Add(time.Minute)),
		}}
		require.ErrorIs(t, c.ValidateExpiryAt(now), jwtx.ErrNotYetValid)
	})

	t.Run("no exp or nbf", func(t *testing.T) {
		c := &jwtx.Claims{}
		require.NoError(t, c.ValidateExpiryAt(now))
	})
}
