/*
Package nexussdk is a typed client for the Nexus API.

# SDKClient vs Session

SDKClient covers the public endpoints: health, password login, invitation
redemption and the Microsoft sign-in handshake. Each sign-in returns a
session token which a Session carries on every authenticated call.

	client := nexussdk.NewSDKClient("http://localhost:3001")

	session, err := client.AuthenticateWithPassword(ctx, "admin@acmecorp.com", "admin123")
	if err != nil {
		return err
	}

	inv, err := session.InviteUser(ctx, "new.user@acmecorp.com", "end_user")

Invited users sign in with the token from their email:

	resp, err := client.RedeemInvitation(ctx, token, "new.user@acmecorp.com")
	if resp.RequiresSetup {
		_, err = client.NewSession(resp.Token).UpdateProfile(ctx, nexussdk.ProfileRequest{
			FirstName: "Jane",
			LastName:  "Doe",
		})
	}

# Errors

Non-2xx responses are returned as *APIError carrying the HTTP status and the
server's error code:

	var apiErr *nexussdk.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden {
		// caller is not an admin
	}

# Paths

The server lets operators relocate every route. Set SDKClient.Paths to the
same table the server uses when the defaults do not apply.
*/
package nexussdk
