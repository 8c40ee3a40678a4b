package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, r := range domain.Roles {
		got, err := domain.ParseRole(string(r))
		require.NoError(t, err)
		require.Equal(t, r, got)
	}

	for _, bad := range []string{"", "admin", "ORG_ADMIN", "org-admin", "root"} {
		t.Run(bad, func(t *testing.T) {
			_, err := domain.ParseRole(bad)
			require.ErrorIs(t, err, domain.ErrUnknownRole)
		})
	}
}

func TestRolePrivileges(t *testing.T) {
	require.True(t, domain.RoleSuperAdmin.IsAdmin())
	require.True(t, domain.RoleOrgAdmin.IsAdmin())
	require.False(t, domain.RoleTeamLead.IsAdmin())
	require.False(t, domain.RoleEndUser.IsAdmin())
	require.False(t, domain.Role("bogus").IsAdmin())

	require.True(t, domain.RoleSuperAdmin.CanGrant(domain.RoleSuperAdmin))
	require.True(t, domain.RoleOrgAdmin.CanGrant(domain.RoleOrgAdmin))
	require.False(t, domain.RoleOrgAdmin.CanGrant(domain.RoleSuperAdmin))
	require.False(t, domain.RoleEndUser.CanGrant(domain.RoleEndUser))
}

func TestUserHelpers(t *testing.T) {
	u := domain.User{Email: "a@acme.com"}
	require.Equal(t, "a@acme.com", u.DisplayName())
	require.True(t, u.RequiresSetup())

	domain.ProfileFields{FirstName: " Ada ", LastName: "Lovelace"}.Apply(&u)
	require.Equal(t, "Ada Lovelace", u.DisplayName())
	require.False(t, u.RequiresSetup())

	domain.ProfileFields{Department: "R&D"}.Apply(&u)
	require.Equal(t, "Ada", u.FirstName, "empty fields keep old values")
	require.Equal(t, "R&D", u.Department)

	require.Equal(t, "a@acme.com", domain.NormalizeEmail("  A@Acme.COM "))
}

func TestInvitationState(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	inv := domain.Invitation{ExpiresAt: now.Add(domain.InvitationTTL)}

	require.True(t, inv.IsPending(now))
	require.False(t, inv.IsExpired(now.Add(domain.InvitationTTL-time.Second)))
	require.True(t, inv.IsExpired(now.Add(domain.InvitationTTL)))

	inv.RedeemedAt = &now
	require.False(t, inv.IsPending(now))
}

func TestConversationTitle(t *testing.T) {
	require.Equal(t, "hi...", domain.ConversationTitle("hi"))

	long := strings.Repeat("x", 80)
	require.Equal(t, strings.Repeat("x", 50)+"...", domain.ConversationTitle(long))

	// Multi-byte text is cut on rune boundaries.
	require.Equal(t, strings.Repeat("é", 50)+"...", domain.ConversationTitle(strings.Repeat("é", 60)))
}

func TestParseBotRequestStatus(t *testing.T) {
	s, err := domain.ParseBotRequestStatus("approved")
	require.NoError(t, err)
	require.Equal(t, domain.BotRequestApproved, s)

	_, err = domain.ParseBotRequestStatus("maybe")
	require.ErrorIs(t, err, domain.ErrUnknownBotRequestStatus)

	require.Equal(t, domain.BotRequestRejected, domain.DecisionStatus(false))
}
