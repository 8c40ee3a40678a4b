package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
	"github.com/aussiebroadwan/nexus/internal/nexus/identity"
	"github.com/aussiebroadwan/nexus/internal/nexus/store"
	"github.com/aussiebroadwan/nexus/pkg/cryptox"
	"github.com/aussiebroadwan/nexus/pkg/jwtx"
	"github.com/aussiebroadwan/nexus/pkg/slogx"
	"github.com/google/uuid"
)

// Session is a signed-in user together with their session token.
type Session struct {
	User  domain.User
	Token string
}

// OAuthStart is where to send the browser to begin an external sign-in.
type OAuthStart struct {
	AuthURL string
	State   string
}

type AuthService struct {
	Store     store.Store
	Tokens    *TokenService
	Passwords *cryptox.PasswordHasher
	Identity  identity.Provider
	Now       func() time.Time
}

// Login authenticates an email and password. Inactive users and users who
// never set a password cannot log in this way.
func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	log := slogx.FromContext(ctx)

	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return Session{}, ErrInvalidCredentials
	}

	// 1. An address may be registered in more than one organization.
	candidates, err := s.Store.Users().ListUsersByEmail(ctx, email)
	if err != nil {
		log.Error("failed to look up users by email", slog.Any("error", err))
		return Session{}, err
	}

	// 2. Take the first active account whose hash matches.
	var user domain.User
	found := false
	for _, u := range candidates {
		if u.Status == domain.UserStatusInactive || u.PasswordHash == "" {
			continue
		}
		if s.Passwords.Verify(password, u.PasswordHash) == nil {
			user, found = u, true
			break
		}
	}
	if !found {
		log.Warn("login failed", slog.String("email", email))
		return Session{}, ErrInvalidCredentials
	}

	return s.startSession(ctx, user)
}

// BeginOAuth returns the provider authorize URL and a fresh state value.
// The caller keeps the state and compares it on return.
func (s *AuthService) BeginOAuth(ctx context.Context, redirectURI string) (OAuthStart, error) {
	redirectURI = strings.TrimSpace(redirectURI)
	if redirectURI == "" {
		return OAuthStart{}, ErrInvalidRequest
	}
	if err := validate.Var(redirectURI, "url"); err != nil {
		return OAuthStart{}, ErrInvalidRequest
	}

	state := uuid.NewString()
	slogx.FromContext(ctx).Debug("oauth sign-in started", slog.String("state", state))

	return OAuthStart{AuthURL: s.Identity.AuthURL(redirectURI, state), State: state}, nil
}

// CompleteOAuth exchanges an authorization code and signs the matching
// directory user in.
func (s *AuthService) CompleteOAuth(ctx context.Context, code, state, redirectURI string) (Session, error) {
	log := slogx.FromContext(ctx)

	if strings.TrimSpace(code) == "" {
		return Session{}, ErrInvalidRequest
	}

	// 1. Swap the code for an identity.
	ident, err := s.Identity.Exchange(ctx, code, redirectURI)
	if err != nil {
		log.Warn("oauth code exchange failed", slog.String("state", state), slog.Any("error", err))
		return Session{}, ErrInvalidCredentials
	}
	email := domain.NormalizeEmail(ident.Email)
	if email == "" {
		return Session{}, ErrInvalidCredentials
	}

	// 2. Resolve the user, preferring the organization bound to the tenant.
	user, err := s.resolveOAuthUser(ctx, ident.TenantID, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("oauth sign-in for unknown user",
				slog.String("email", email),
				slog.String("tenant_id", ident.TenantID),
			)
		}
		return Session{}, err
	}

	// 3. Record the connection.
	if !user.MicrosoftConnected {
		user.MicrosoftConnected = true
		user.UpdatedAt = clock(s.Now)
		if err := s.Store.Users().UpdateUser(ctx, user); err != nil {
			log.Error("failed to mark user as microsoft connected",
				slog.String("user_id", user.ID),
				slog.Any("error", err),
			)
			return Session{}, err
		}
	}

	return s.startSession(ctx, user)
}

func (s *AuthService) resolveOAuthUser(ctx context.Context, tenantID, email string) (domain.User, error) {
	if tenantID != "" {
		org, err := s.Store.Organizations().GetOrganizationByTenantID(ctx, tenantID)
		switch {
		case err == nil:
			u, err := s.Store.Users().GetUserByEmail(ctx, org.ID, email)
			if errors.Is(err, store.ErrNotFound) {
				return domain.User{}, ErrNotFound
			}
			if err != nil {
				return domain.User{}, err
			}
			if u.Status == domain.UserStatusInactive {
				return domain.User{}, ErrNotFound
			}
			return u, nil
		case !errors.Is(err, store.ErrNotFound):
			return domain.User{}, err
		}
	}

	// Multi-tenant sign-in: fall back to the address across organizations.
	users, err := s.Store.Users().ListUsersByEmail(ctx, email)
	if err != nil {
		return domain.User{}, err
	}
	for _, u := range users {
		if u.Status != domain.UserStatusInactive {
			return u, nil
		}
	}
	return domain.User{}, ErrNotFound
}

// CurrentUser loads the directory record behind a session.
func (s *AuthService) CurrentUser(ctx context.Context, claims jwtx.Claims) (domain.User, error) {
	if claims.Subject == "" {
		return domain.User{}, ErrUnauthenticated
	}
	u, err := s.Store.Users().GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}

func (s *AuthService) startSession(ctx context.Context, user domain.User) (Session, error) {
	log := slogx.FromContext(ctx)

	now := clock(s.Now)
	if err := s.Store.Users().TouchLastActive(ctx, user.ID, now); err != nil {
		log.Error("failed to touch last active", slog.String("user_id", user.ID), slog.Any("error", err))
		return Session{}, err
	}
	user.LastActiveAt = &now

	tok, err := s.Tokens.Issue(user)
	if err != nil {
		log.Error("failed to issue session token", slog.String("user_id", user.ID), slog.Any("error", err))
		return Session{}, err
	}

	log.Info("user signed in", slog.String("user_id", user.ID), slog.String("role", user.Role.String()))
	return Session{User: user, Token: tok}, nil
}
