package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
	"github.com/aussiebroadwan/nexus/internal/nexus/store"
	"github.com/aussiebroadwan/nexus/pkg/cryptox"
	"github.com/aussiebroadwan/nexus/pkg/jwtx"
	"github.com/aussiebroadwan/nexus/pkg/slogx"
)

// MinPasswordLength applies to passwords set during profile setup.
const MinPasswordLength = 8

type UserService struct {
	Store     store.Store
	Passwords *cryptox.PasswordHasher
	Now       func() time.Time
}

// ListUsers returns every member of the caller's organization.
func (s *UserService) ListUsers(ctx context.Context, claims jwtx.Claims) ([]domain.User, error) {
	actor, err := adminFromClaims(claims)
	if err != nil {
		return nil, err
	}

	users, err := s.Store.Users().ListUsersByOrganization(ctx, actor.OrganizationID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list users", slog.Any("error", err))
		return nil, err
	}
	return users, nil
}

// CompleteProfile merges fields into the caller's profile and activates the
// account. A non-empty password becomes the login credential.
func (s *UserService) CompleteProfile(ctx context.Context, claims jwtx.Claims, fields domain.ProfileFields, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	if claims.Subject == "" {
		return domain.User{}, ErrUnauthenticated
	}

	u, err := s.Store.Users().GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrNotFound
		}
		log.Error("failed to load user", slog.Any("error", err))
		return domain.User{}, err
	}

	// Removed members stay removed.
	if u.Status == domain.UserStatusInactive {
		log.Warn("profile update rejected for inactive user", slog.String("user_id", u.ID))
		return domain.User{}, ErrForbidden
	}

	if password != "" {
		if len(password) < MinPasswordLength {
			return domain.User{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidRequest, MinPasswordLength)
		}
		hash, err := s.Passwords.Hash(password)
		if err != nil {
			log.Error("failed to hash password", slog.Any("error", err))
			return domain.User{}, err
		}
		u.PasswordHash = hash
	}

	fields.Apply(&u)
	u.Status = domain.UserStatusActive
	u.UpdatedAt = clock(s.Now)

	if err := s.Store.Users().UpdateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrNotFound
		}
		log.Error("failed to update profile", slog.String("user_id", u.ID), slog.Any("error", err))
		return domain.User{}, err
	}

	log.Info("profile updated", slog.String("user_id", u.ID), slog.Bool("password_set", password != ""))
	return u, nil
}

// ChangeRole assigns a new role to a member of the caller's organization.
func (s *UserService) ChangeRole(ctx context.Context, claims jwtx.Claims, userID, roleName string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	actor, err := adminFromClaims(claims)
	if err != nil {
		return domain.User{}, err
	}

	role, err := domain.ParseRole(roleName)
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if userID == actor.UserID {
		return domain.User{}, fmt.Errorf("%w: cannot change your own role", ErrInvalidRequest)
	}

	u, err := s.orgMember(ctx, actor, userID)
	if err != nil {
		return domain.User{}, err
	}

	// The caller must outrank both the old and the new role.
	if !actor.Role.CanGrant(role) || !actor.Role.CanGrant(u.Role) {
		log.Warn("role change rejected",
			slog.String("actor_role", actor.Role.String()),
			slog.String("from", u.Role.String()),
			slog.String("to", role.String()),
		)
		return domain.User{}, ErrForbidden
	}

	from := u.Role
	u.Role = role
	u.UpdatedAt = clock(s.Now)
	if err := s.Store.Users().UpdateUser(ctx, u); err != nil {
		log.Error("failed to update role", slog.String("user_id", u.ID), slog.Any("error", err))
		return domain.User{}, err
	}

	log.Info("role changed",
		slog.String("user_id", u.ID),
		slog.String("from", from.String()),
		slog.String("to", role.String()),
		slog.String("by", actor.UserID),
	)
	return u, nil
}

// RemoveUser deactivates a member. Users are never deleted.
func (s *UserService) RemoveUser(ctx context.Context, claims jwtx.Claims, userID string) error {
	log := slogx.FromContext(ctx)

	actor, err := adminFromClaims(claims)
	if err != nil {
		return err
	}
	if userID == actor.UserID {
		return fmt.Errorf("%w: cannot remove yourself", ErrInvalidRequest)
	}

	u, err := s.orgMember(ctx, actor, userID)
	if err != nil {
		return err
	}
	if !actor.Role.CanGrant(u.Role) {
		return ErrForbidden
	}
	if u.Status == domain.UserStatusInactive {
		return nil
	}

	u.Status = domain.UserStatusInactive
	u.UpdatedAt = clock(s.Now)
	if err := s.Store.Users().UpdateUser(ctx, u); err != nil {
		log.Error("failed to deactivate user", slog.String("user_id", u.ID), slog.Any("error", err))
		return err
	}

	log.Info("user removed", slog.String("user_id", u.ID), slog.String("by", actor.UserID))
	return nil
}

func (s *UserService) orgMember(ctx context.Context, actor Actor, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, err
	}
	if u.OrganizationID != actor.OrganizationID {
		return domain.User{}, ErrNotFound
	}
	return u, nil
}
