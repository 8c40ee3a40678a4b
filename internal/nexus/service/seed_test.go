package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
	"github.com/aussiebroadwan/nexus/internal/nexus/store/drivers/sqlite"
	"github.com/aussiebroadwan/nexus/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestSeedDemoData(t *testing.T) {
	ctx := context.Background()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })

	passwords := cryptox.NewPasswordHasherWithPepper("test-pepper")
	seed := &SeedService{Store: s, Passwords: passwords}

	seeded, err := seed.Seed(ctx, DemoSeedData("demo-password"))
	require.NoError(t, err)
	require.True(t, seeded)

	org, err := s.Organizations().GetOrganizationByTenantID(ctx, "sample-tenant-id")
	require.NoError(t, err)
	require.Equal(t, "Acme Corp", org.Name)

	admin, err := s.Users().GetUserByEmail(ctx, org.ID, "admin@acmecorp.com")
	require.NoError(t, err)
	require.Equal(t, domain.RoleOrgAdmin, admin.Role)
	require.Equal(t, domain.UserStatusActive, admin.Status)
	require.NoError(t, passwords.Verify("demo-password", admin.PasswordHash))

	reqs, err := s.BotRequests().ListBotRequests(ctx, org.ID, nil)
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	require.Equal(t, "Product Development", reqs[0].ChannelName, "newest first")
	require.Equal(t, "Marketing Team", reqs[1].ChannelName)
	require.Equal(t, 12, reqs[1].MemberCount)

	// A second run leaves the store alone.
	seeded, err = seed.Seed(ctx, DemoSeedData("demo-password"))
	require.NoError(t, err)
	require.False(t, seeded)
}

func TestSeedWithoutPassword(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	// newEnv already provisioned an organization.
	seeded, err := (&SeedService{Store: e.store, Passwords: e.passwords}).Seed(ctx, DemoSeedData(""))
	require.NoError(t, err)
	require.False(t, seeded)

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })

	_, err = (&SeedService{Store: s, Passwords: e.passwords}).Seed(ctx, DemoSeedData("short"))
	require.ErrorIs(t, err, ErrInvalidRequest)

	seeded, err = (&SeedService{Store: s, Passwords: e.passwords}).Seed(ctx, DemoSeedData(""))
	require.NoError(t, err)
	require.True(t, seeded)

	users, err := s.Users().ListUsersByEmail(ctx, "admin@acmecorp.com")
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Empty(t, users[0].PasswordHash)
}
