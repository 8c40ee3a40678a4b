package nexussdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient talks to a Nexus server. It covers unauthenticated operations and
// creates authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
	Paths      Paths
}

func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Paths:      DefaultPaths(),
	}
}

// NewSession wraps an existing session token.
func (c *SDKClient) NewSession(token string) *Session {
	return &Session{client: c, token: token}
}

// AuthenticateWithPassword logs in and returns a Session for the user.
func (c *SDKClient) AuthenticateWithPassword(ctx context.Context, email, password string) (*Session, error) {
	resp, err := c.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s := c.NewSession(resp.Token)
	s.user = resp.User
	return s, nil
}

// Login exchanges an email and password for a session token.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*SessionResponse, error) {
	var out SessionResponse
	if err := c.postJSON(ctx, c.Paths.Login, LoginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RedeemInvitation exchanges an emailed invitation token for a session token.
func (c *SDKClient) RedeemInvitation(ctx context.Context, inviteToken, email string) (*InviteLoginResponse, error) {
	var out InviteLoginResponse
	req := InviteLoginRequest{InviteToken: inviteToken, Email: email}
	if err := c.postJSON(ctx, c.Paths.InviteLogin, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BeginMicrosoftAuth returns the Microsoft authorize URL and the state the
// caller must compare on return.
func (c *SDKClient) BeginMicrosoftAuth(ctx context.Context, redirectURI string) (*MicrosoftAuthResponse, error) {
	var out MicrosoftAuthResponse
	if err := c.postJSON(ctx, c.Paths.MicrosoftAuth, MicrosoftAuthRequest{RedirectURI: redirectURI}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompleteMicrosoftAuth finishes the Microsoft sign-in with the returned code.
func (c *SDKClient) CompleteMicrosoftAuth(ctx context.Context, code, state, redirectURI string) (*SessionResponse, error) {
	var out SessionResponse
	req := CallbackRequest{Code: code, State: state, RedirectURI: redirectURI}
	if err := c.postJSON(ctx, c.Paths.Callback, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetHealth checks that the service is up.
func (c *SDKClient) GetHealth(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, c.Paths.Health)
}

// GetReadiness checks that the service can reach its database.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, c.Paths.Ready)
}

func (c *SDKClient) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}
	var out HealthResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
