package service

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
	"github.com/aussiebroadwan/nexus/internal/nexus/mail"
	"github.com/aussiebroadwan/nexus/internal/nexus/store"
	"github.com/aussiebroadwan/nexus/internal/nexus/store/drivers/sqlite"
	"github.com/aussiebroadwan/nexus/pkg/cryptox"
	"github.com/aussiebroadwan/nexus/pkg/idx"
	"github.com/aussiebroadwan/nexus/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte(strings.Repeat("k", 32))

const testIssuer = "nexus-test"

// env is an organization with one admin on a fresh in-memory store. Its
// clock is fixed and can be moved with advance.
type env struct {
	store     store.Store
	tokens    *TokenService
	passwords *cryptox.PasswordHasher

	org   domain.Organization
	admin domain.User

	now time.Time
}

func newEnv(t *testing.T) *env {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })

	tokens, err := NewTokenService(testSecret, testIssuer)
	require.NoError(t, err)

	e := &env{
		store:     s,
		tokens:    tokens,
		passwords: cryptox.NewPasswordHasherWithPepper("test-pepper"),
		now:       time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC),
	}
	e.org = e.addOrg(t, "Acme Corp", "sample-tenant-id")
	e.admin = e.addUser(t, e.org, "admin@acmecorp.com", domain.RoleOrgAdmin, domain.UserStatusActive)
	return e
}

func (e *env) clock() time.Time { return e.now }

func (e *env) advance(d time.Duration) { e.now = e.now.Add(d) }

func (e *env) addOrg(t *testing.T, name, tenant string) domain.Organization {
	t.Helper()
	org := domain.Organization{
		ID:        idx.New().String(),
		Name:      name,
		Domain:    strings.ToLower(strings.ReplaceAll(name, " ", "")) + ".com",
		TenantID:  tenant,
		CreatedAt: e.now,
	}
	require.NoError(t, e.store.Organizations().CreateOrganization(context.Background(), org))
	return org
}

func (e *env) addUser(t *testing.T, org domain.Organization, email string, role domain.Role, status domain.UserStatus) domain.User {
	t.Helper()
	u := domain.User{
		ID:             idx.New().String(),
		OrganizationID: org.ID,
		Email:          email,
		FirstName:      "First",
		LastName:       "Last",
		Role:           role,
		Status:         status,
		CreatedAt:      e.now,
		UpdatedAt:      e.now,
	}
	require.NoError(t, e.store.Users().CreateUser(context.Background(), u))
	return u
}

func (e *env) setPassword(t *testing.T, u domain.User, password string) domain.User {
	t.Helper()
	hash, err := e.passwords.Hash(password)
	require.NoError(t, err)
	u.PasswordHash = hash
	require.NoError(t, e.store.Users().UpdateUser(context.Background(), u))
	return u
}

func claimsFor(u domain.User) jwtx.Claims {
	return jwtx.NewSessionClaims(u.ID, u.Email, u.Role.String(), u.OrganizationID, time.Hour, testIssuer, time.Now())
}

var linkToken = regexp.MustCompile(`token=([^&\s"]+)`)

// tokenFromMessage pulls the redemption token out of an invitation email.
func tokenFromMessage(t *testing.T, msg mail.Message) string {
	t.Helper()
	m := linkToken.FindStringSubmatch(msg.Text)
	require.Len(t, m, 2, "no token in message body")
	tok, err := url.QueryUnescape(m[1])
	require.NoError(t, err)
	return tok
}
