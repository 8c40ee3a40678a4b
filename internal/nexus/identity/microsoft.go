package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"
)

// MicrosoftScopes are the delegated Graph permissions the bot needs to read
// Teams content on the user's behalf.
var MicrosoftScopes = []string{
	"User.Read",
	"Team.ReadBasic.All",
	"Channel.ReadBasic.All",
	"ChannelMessage.Read.All",
	"Chat.Read.All",
	"Files.Read.All",
}

const defaultGraphURL = "https://graph.microsoft.com"

type MicrosoftConfig struct {
	ClientID     string
	ClientSecret string

	// Tenant is an Azure AD tenant id, or "common" for multi-tenant apps.
	Tenant string
}

// MicrosoftProvider signs users in with Azure AD and reads their profile from
// Microsoft Graph.
type MicrosoftProvider struct {
	oauth    oauth2.Config
	tenant   string
	graphURL string
}

func NewMicrosoftProvider(cfg MicrosoftConfig) *MicrosoftProvider {
	tenant := cfg.Tenant
	if tenant == "" {
		tenant = "common"
	}
	return &MicrosoftProvider{
		oauth: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     microsoft.AzureADEndpoint(tenant),
			Scopes:       MicrosoftScopes,
		},
		tenant:   tenant,
		graphURL: defaultGraphURL,
	}
}

// WithEndpoints points the provider at alternative token and Graph hosts.
func (p *MicrosoftProvider) WithEndpoints(endpoint oauth2.Endpoint, graphURL string) *MicrosoftProvider {
	p.oauth.Endpoint = endpoint
	p.graphURL = strings.TrimSuffix(graphURL, "/")
	return p
}

func (p *MicrosoftProvider) AuthURL(redirectURI, state string) string {
	cfg := p.oauth
	cfg.RedirectURL = redirectURI
	return cfg.AuthCodeURL(state, oauth2.SetAuthURLParam("response_mode", "query"))
}

type graphMe struct {
	DisplayName       string `json:"displayName"`
	Mail              string `json:"mail"`
	UserPrincipalName string `json:"userPrincipalName"`
}

func (p *MicrosoftProvider) Exchange(ctx context.Context, code, redirectURI string) (Identity, error) {
	cfg := p.oauth
	cfg.RedirectURL = redirectURI

	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.graphURL+"/v1.0/me", nil)
	if err != nil {
		return Identity{}, err
	}
	resp, err := cfg.Client(ctx, tok).Do(req)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: graph: %v", ErrExchangeFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Identity{}, fmt.Errorf("%w: graph status %d", ErrExchangeFailed, resp.StatusCode)
	}

	var me graphMe
	if err := json.NewDecoder(resp.Body).Decode(&me); err != nil {
		return Identity{}, fmt.Errorf("%w: decode graph profile: %v", ErrExchangeFailed, err)
	}

	email := me.Mail
	if email == "" {
		email = me.UserPrincipalName
	}
	return Identity{Email: email, DisplayName: me.DisplayName, TenantID: p.tenant}, nil
}
