package service

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
	"github.com/stretchr/testify/require"
)

func TestTokenService(t *testing.T) {
	tokens, err := NewTokenService(testSecret, testIssuer)
	require.NoError(t, err)

	u := domain.User{ID: "user-1", Email: "sam@acmecorp.com", Role: domain.RoleTeamLead, OrganizationID: "org-1"}

	tok, err := tokens.Issue(u)
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		c, err := tokens.Verify(tok)
		require.NoError(t, err)
		require.Equal(t, "user-1", c.Subject)
		require.Equal(t, "sam@acmecorp.com", c.Email)
		require.Equal(t, "team_lead", c.Role)
		require.Equal(t, "org-1", c.OrganizationID)
		require.Equal(t, testIssuer, c.Issuer)
		require.WithinDuration(t, c.IssuedAt.Add(24*time.Hour), c.ExpiresAt.Time, time.Second)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := tokens.Verify("  ")
		require.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("tampered", func(t *testing.T) {
		parts := strings.Split(tok, ".")
		parts[2] = strings.Repeat("A", len(parts[2]))
		_, err := tokens.Verify(strings.Join(parts, "."))
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other secret", func(t *testing.T) {
		other, err := NewTokenService([]byte(strings.Repeat("z", 32)), testIssuer)
		require.NoError(t, err)
		_, err = other.Verify(tok)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		old, err := NewTokenService(testSecret, testIssuer)
		require.NoError(t, err)
		old.Now = func() time.Time { return time.Now().Add(-48 * time.Hour) }

		stale, err := old.Issue(u)
		require.NoError(t, err)
		_, err = tokens.Verify(stale)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("short secret", func(t *testing.T) {
		_, err := NewTokenService([]byte("short"), testIssuer)
		require.Error(t, err)
	})
}

func TestActorFromClaims(t *testing.T) {
	admin := claimsFor(domain.User{ID: "u", Role: domain.RoleOrgAdmin, OrganizationID: "o"})

	a, err := ActorFromClaims(admin)
	require.NoError(t, err)
	require.Equal(t, domain.RoleOrgAdmin, a.Role)

	bogus := admin
	bogus.Role = "root"
	_, err = ActorFromClaims(bogus)
	require.ErrorIs(t, err, ErrForbidden)

	anon := admin
	anon.Subject = ""
	_, err = ActorFromClaims(anon)
	require.ErrorIs(t, err, ErrUnauthenticated)

	_, err = adminFromClaims(claimsFor(domain.User{ID: "u", Role: domain.RoleEndUser}))
	require.ErrorIs(t, err, ErrForbidden)
}
