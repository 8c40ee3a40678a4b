package identity

import "context"

// DemoProvider builds the real authorize URL but skips the code exchange,
// signing every callback in as a fixed identity.
type DemoProvider struct {
	urls     *MicrosoftProvider
	identity Identity
}

func NewDemoProvider(cfg MicrosoftConfig, as Identity) *DemoProvider {
	return &DemoProvider{urls: NewMicrosoftProvider(cfg), identity: as}
}

func (p *DemoProvider) AuthURL(redirectURI, state string) string {
	return p.urls.AuthURL(redirectURI, state)
}

func (p *DemoProvider) Exchange(ctx context.Context, code, redirectURI string) (Identity, error) {
	if err := ctx.Err(); err != nil {
		return Identity{}, err
	}
	return p.identity, nil
}
