package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
	"github.com/aussiebroadwan/nexus/internal/nexus/identity"
	"github.com/stretchr/testify/require"
)

func newUserService(e *env) *UserService {
	return &UserService{Store: e.store, Passwords: e.passwords, Now: e.clock}
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	svc := newUserService(e)

	member := e.addUser(t, e.org, "member@acmecorp.com", domain.RoleEndUser, domain.UserStatusActive)
	other := e.addOrg(t, "Globex", "globex-tenant")
	e.addUser(t, other, "admin@globex.com", domain.RoleOrgAdmin, domain.UserStatusActive)

	users, err := svc.ListUsers(ctx, claimsFor(e.admin))
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, e.admin.ID, users[0].ID)
	require.Equal(t, member.ID, users[1].ID)

	_, err = svc.ListUsers(ctx, claimsFor(member))
	require.ErrorIs(t, err, ErrForbidden)
}

func TestCompleteProfile(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	svc := newUserService(e)

	pending := domain.User{
		ID: "u-pending", OrganizationID: e.org.ID, Email: "new@acmecorp.com",
		Role: domain.RoleEndUser, Status: domain.UserStatusPending, Timezone: "UTC",
		CreatedAt: e.now, UpdatedAt: e.now,
	}
	require.NoError(t, e.store.Users().CreateUser(ctx, pending))
	require.True(t, pending.RequiresSetup())

	u, err := svc.CompleteProfile(ctx, claimsFor(pending), domain.ProfileFields{
		FirstName:  "Jane",
		LastName:   "Doe",
		Department: "Marketing",
	}, "correct-horse")
	require.NoError(t, err)
	require.Equal(t, domain.UserStatusActive, u.Status)
	require.Equal(t, "Jane Doe", u.DisplayName())
	require.Equal(t, "Marketing", u.Department)
	require.Equal(t, "UTC", u.Timezone, "empty fields keep their value")
	require.False(t, u.RequiresSetup())

	// The new password works for login.
	auth := newAuthService(e, identity.Identity{})
	sess, err := auth.Login(ctx, "new@acmecorp.com", "correct-horse")
	require.NoError(t, err)
	require.Equal(t, pending.ID, sess.User.ID)

	t.Run("short password", func(t *testing.T) {
		_, err := svc.CompleteProfile(ctx, claimsFor(pending), domain.ProfileFields{}, "short")
		require.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.CompleteProfile(ctx, claimsFor(domain.User{ID: "ghost"}), domain.ProfileFields{}, "")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("removed user", func(t *testing.T) {
		gone := e.addUser(t, e.org, "gone@acmecorp.com", domain.RoleEndUser, domain.UserStatusInactive)
		_, err := svc.CompleteProfile(ctx, claimsFor(gone), domain.ProfileFields{FirstName: "X"}, "")
		require.ErrorIs(t, err, ErrForbidden)
	})
}

func TestChangeRole(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	svc := newUserService(e)

	member := e.addUser(t, e.org, "member@acmecorp.com", domain.RoleEndUser, domain.UserStatusActive)
	boss := e.addUser(t, e.org, "boss@acmecorp.com", domain.RoleSuperAdmin, domain.UserStatusActive)
	other := e.addOrg(t, "Globex", "globex-tenant")
	outsider := e.addUser(t, other, "x@globex.com", domain.RoleEndUser, domain.UserStatusActive)

	u, err := svc.ChangeRole(ctx, claimsFor(e.admin), member.ID, "team_lead")
	require.NoError(t, err)
	require.Equal(t, domain.RoleTeamLead, u.Role)

	stored, err := e.store.Users().GetUserByID(ctx, member.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleTeamLead, stored.Role)

	tests := []struct {
		name   string
		caller domain.User
		target string
		role   string
		want   error
	}{
		{"unknown role", e.admin, member.ID, "owner", ErrInvalidRequest},
		{"grant super admin", e.admin, member.ID, "super_admin", ErrForbidden},
		{"demote super admin", e.admin, boss.ID, "end_user", ErrForbidden},
		{"other organization", e.admin, outsider.ID, "end_user", ErrNotFound},
		{"unknown user", e.admin, "ghost", "end_user", ErrNotFound},
		{"self", e.admin, e.admin.ID, "end_user", ErrInvalidRequest},
		{"non admin", member, e.admin.ID, "end_user", ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ChangeRole(ctx, claimsFor(tt.caller), tt.target, tt.role)
			require.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("super admin may grant super admin", func(t *testing.T) {
		u, err := svc.ChangeRole(ctx, claimsFor(boss), member.ID, "super_admin")
		require.NoError(t, err)
		require.Equal(t, domain.RoleSuperAdmin, u.Role)
	})
}

func TestRemoveUser(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	svc := newUserService(e)

	member := e.addUser(t, e.org, "member@acmecorp.com", domain.RoleEndUser, domain.UserStatusActive)
	member = e.setPassword(t, member, "password1")

	require.ErrorIs(t, svc.RemoveUser(ctx, claimsFor(e.admin), e.admin.ID), ErrInvalidRequest)
	require.ErrorIs(t, svc.RemoveUser(ctx, claimsFor(member), e.admin.ID), ErrForbidden)
	require.ErrorIs(t, svc.RemoveUser(ctx, claimsFor(e.admin), "ghost"), ErrNotFound)

	require.NoError(t, svc.RemoveUser(ctx, claimsFor(e.admin), member.ID))

	// Soft delete: the row stays, the account is inactive.
	stored, err := e.store.Users().GetUserByID(ctx, member.ID)
	require.NoError(t, err)
	require.Equal(t, domain.UserStatusInactive, stored.Status)

	_, err = newAuthService(e, identity.Identity{}).Login(ctx, "member@acmecorp.com", "password1")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// Removing twice is a no-op.
	require.NoError(t, svc.RemoveUser(ctx, claimsFor(e.admin), member.ID))
}
