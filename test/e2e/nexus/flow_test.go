package nexus_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/nexus/pkg/nexussdk"
	"github.com/stretchr/testify/require"
)

// TestInvitationFlow walks an invitee from email to first chat reply.
func TestInvitationFlow(t *testing.T) {
	c := setupNexusContainer(t)
	client := nexussdk.NewSDKClient(c.BaseURL)
	ctx := t.Context()

	admin := loginAdmin(t, client)

	invited, err := admin.InviteUser(ctx, "jane.doe@acmecorp.com", "team_lead")
	require.NoError(t, err)
	require.Equal(t, "team_lead", invited.Invitation.Role)

	token := c.lastInvitationToken(t)

	redeemed, err := client.RedeemInvitation(ctx, token, "jane.doe@acmecorp.com")
	require.NoError(t, err)
	require.True(t, redeemed.RequiresSetup)

	// Tokens are single use.
	_, err = client.RedeemInvitation(ctx, token, "jane.doe@acmecorp.com")
	assertAPIError(t, err, http.StatusBadRequest, nexussdk.ErrorCodeInvalidInvitation)

	jane := client.NewSession(redeemed.Token)
	_, err = jane.UpdateProfile(ctx, nexussdk.ProfileRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		JobTitle:  "Engineering Lead",
		Password:  "jane-password-1",
	})
	require.NoError(t, err)

	jane, err = client.AuthenticateWithPassword(ctx, "jane.doe@acmecorp.com", "jane-password-1")
	require.NoError(t, err)
	require.Equal(t, "Jane Doe", jane.User().Name)

	reply, err := jane.SendMessage(ctx, "When is the launch?", "")
	require.NoError(t, err)
	require.Len(t, reply.Sources, 2)

	conv, err := jane.GetConversation(ctx, reply.ConversationID)
	require.NoError(t, err)
	require.Len(t, conv.Messages, 2)

	// Team leads are not admins.
	_, err = jane.ListUsers(ctx)
	assertAPIError(t, err, http.StatusForbidden, nexussdk.ErrorCodeForbidden)
}

// TestBotApprovalFlow decides the seeded requests.
func TestBotApprovalFlow(t *testing.T) {
	c := setupNexusContainer(t)
	client := nexussdk.NewSDKClient(c.BaseURL)
	ctx := t.Context()

	admin := loginAdmin(t, client)

	pending, err := admin.ListBotRequests(ctx, "pending")
	require.NoError(t, err)
	require.Len(t, pending, 2)

	for i, br := range pending {
		resp, err := admin.DecideBotRequest(ctx, br.ID, i == 0, "")
		require.NoError(t, err)
		require.NotEqual(t, "pending", resp.Request.Status)
	}

	_, err = admin.DecideBotRequest(ctx, pending[0].ID, true, "")
	assertAPIError(t, err, http.StatusBadRequest, nexussdk.ErrorCodeConflict)

	pending, err = admin.ListBotRequests(ctx, "pending")
	require.NoError(t, err)
	require.Empty(t, pending)
}

func TestUnauthenticatedRequests(t *testing.T) {
	c := setupNexusContainer(t)
	client := nexussdk.NewSDKClient(c.BaseURL)

	_, err := client.NewSession("").ListInvitations(t.Context())
	assertAPIError(t, err, http.StatusUnauthorized, nexussdk.ErrorCodeUnauthenticated)

	_, err = client.Login(t.Context(), adminEmail, "wrong-password")
	assertAPIError(t, err, http.StatusUnauthorized, nexussdk.ErrorCodeInvalidCredentials)
}
