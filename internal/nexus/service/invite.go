package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
	"github.com/aussiebroadwan/nexus/internal/nexus/mail"
	"github.com/aussiebroadwan/nexus/internal/nexus/store"
	"github.com/aussiebroadwan/nexus/pkg/cryptox"
	"github.com/aussiebroadwan/nexus/pkg/idx"
	"github.com/aussiebroadwan/nexus/pkg/jwtx"
	"github.com/aussiebroadwan/nexus/pkg/slogx"
)

// RedeemResult is the outcome of a successful invitation redemption.
type RedeemResult struct {
	User          domain.User
	RequiresSetup bool
	Token         string
}

type InviteService struct {
	Store     store.Store
	Tokens    *TokenService
	Mailer    mail.Mailer
	Templates *mail.Templates

	// FrontendURL is the base of the redemption link sent by email.
	FrontendURL string

	Now func() time.Time
}

// Invite records an invitation for email with role and emails the
// redemption link. If delivery fails the invitation is kept and the returned
// error wraps ErrDeliveryFailed; ResendInvitation is the retry path.
func (s *InviteService) Invite(ctx context.Context, claims jwtx.Claims, email, roleName string) (domain.Invitation, error) {
	log := slogx.FromContext(ctx)

	// 1. Only admins invite.
	actor, err := adminFromClaims(claims)
	if err != nil {
		log.Warn("invite rejected: caller is not an admin", slog.String("role", claims.Role))
		return domain.Invitation{}, err
	}

	// 2. Validate the request.
	email = domain.NormalizeEmail(email)
	if !validEmail(email) {
		return domain.Invitation{}, fmt.Errorf("%w: invalid email", ErrInvalidRequest)
	}
	role, err := domain.ParseRole(roleName)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if !actor.Role.CanGrant(role) {
		log.Warn("invite rejected: role above caller",
			slog.String("actor_role", actor.Role.String()),
			slog.String("role", role.String()),
		)
		return domain.Invitation{}, ErrForbidden
	}

	org, err := s.Store.Organizations().GetOrganizationByID(ctx, actor.OrganizationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, ErrForbidden
		}
		log.Error("failed to load organization", slog.Any("error", err))
		return domain.Invitation{}, err
	}

	// 3. The address must not already belong to a member.
	_, err = s.Store.Users().GetUserByEmail(ctx, org.ID, email)
	if err == nil {
		log.Warn("invite rejected: user already exists", slog.String("email", email))
		return domain.Invitation{}, fmt.Errorf("%w: user already exists", ErrConflict)
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check existing user", slog.Any("error", err))
		return domain.Invitation{}, err
	}

	// 4. Generate the token. Only its fingerprint is stored.
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate invitation token", slog.Any("error", err))
		return domain.Invitation{}, err
	}

	now := clock(s.Now)
	inv := domain.Invitation{
		ID:             idx.New().String(),
		TokenHash:      cryptox.FingerprintToken(token),
		Email:          email,
		Role:           role,
		OrganizationID: org.ID,
		CreatedBy:      actor.UserID,
		ExpiresAt:      now.Add(domain.InvitationTTL),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// 5. Persist.
	if err := s.Store.Invitations().CreateInvitation(ctx, inv); err != nil {
		log.Error("failed to create invitation", slog.String("invitation_id", inv.ID), slog.Any("error", err))
		return domain.Invitation{}, err
	}

	log.Info("invitation created",
		slog.String("invitation_id", inv.ID),
		slog.String("email", email),
		slog.String("role", role.String()),
		slog.String("created_by", actor.UserID),
	)

	// 6. Deliver.
	if err := s.deliver(ctx, org, inv, token); err != nil {
		return inv, err
	}
	return inv, nil
}

// Redeem exchanges an emailed token for a session. A new pending user is
// created on first redemption. Removed users cannot redeem.
func (s *InviteService) Redeem(ctx context.Context, token, email string) (RedeemResult, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input.
	email = domain.NormalizeEmail(email)
	if strings.TrimSpace(token) == "" || email == "" {
		return RedeemResult{}, ErrInvalidInvitation
	}

	now := clock(s.Now)
	fingerprint := cryptox.FingerprintToken(token)

	var user domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 2. The token and email must match the same invitation.
		inv, err := tx.Invitations().GetInvitationByTokenHash(ctx, fingerprint)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidInvitation
			}
			return err
		}
		if inv.Email != email {
			return ErrInvalidInvitation
		}

		// 3. Expired, then already used.
		if inv.IsExpired(now) {
			return ErrExpired
		}
		if inv.IsRedeemed() {
			return ErrInvalidInvitation
		}

		// 4. Find or create the member.
		user, err = tx.Users().GetUserByEmail(ctx, inv.OrganizationID, email)
		switch {
		case errors.Is(err, store.ErrNotFound):
			user = domain.User{
				ID:             idx.New().String(),
				OrganizationID: inv.OrganizationID,
				Email:          email,
				Role:           inv.Role,
				Status:         domain.UserStatusPending,
				LastActiveAt:   &now,
				CreatedAt:      now,
				UpdatedAt:      now,
			}
			if err := tx.Users().CreateUser(ctx, user); err != nil {
				return err
			}
		case err != nil:
			return err
		case user.Status == domain.UserStatusInactive:
			return ErrForbidden
		default:
			if err := tx.Users().TouchLastActive(ctx, user.ID, now); err != nil {
				return err
			}
			user.LastActiveAt = &now
		}

		// 5. Consume the invitation. A concurrent redeem loses here.
		if err := tx.Invitations().MarkInvitationRedeemed(ctx, inv.ID, now); err != nil {
			if errors.Is(err, store.ErrStale) {
				return ErrInvalidInvitation
			}
			return err
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInvitation), errors.Is(err, ErrExpired), errors.Is(err, ErrForbidden):
			log.Warn("invitation redemption rejected", slog.String("email", email), slog.Any("error", err))
		default:
			log.Error("invitation redemption failed", slog.Any("error", err))
		}
		return RedeemResult{}, err
	}

	// 6. Sign the user in.
	tok, err := s.Tokens.Issue(user)
	if err != nil {
		log.Error("failed to issue session token", slog.String("user_id", user.ID), slog.Any("error", err))
		return RedeemResult{}, err
	}

	log.Info("invitation redeemed", slog.String("user_id", user.ID), slog.String("email", email))

	return RedeemResult{User: user, RequiresSetup: user.RequiresSetup(), Token: tok}, nil
}

// ListInvitations returns the organization's invitations that can still be
// redeemed, newest first.
func (s *InviteService) ListInvitations(ctx context.Context, claims jwtx.Claims) ([]domain.Invitation, error) {
	actor, err := adminFromClaims(claims)
	if err != nil {
		return nil, err
	}

	all, err := s.Store.Invitations().ListUnredeemedInvitations(ctx, actor.OrganizationID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list invitations", slog.Any("error", err))
		return nil, err
	}

	now := clock(s.Now)
	out := make([]domain.Invitation, 0, len(all))
	for _, inv := range all {
		if inv.IsPending(now) {
			out = append(out, inv)
		}
	}
	return out, nil
}

// ResendInvitation issues a fresh token for an unredeemed invitation, resets
// its expiry and emails it again. The previous link stops working.
func (s *InviteService) ResendInvitation(ctx context.Context, claims jwtx.Claims, id string) (domain.Invitation, error) {
	log := slogx.FromContext(ctx)

	actor, err := adminFromClaims(claims)
	if err != nil {
		return domain.Invitation{}, err
	}

	inv, err := s.orgInvitation(ctx, actor, id)
	if err != nil {
		return domain.Invitation{}, err
	}
	if inv.IsRedeemed() {
		return domain.Invitation{}, fmt.Errorf("%w: invitation already redeemed", ErrConflict)
	}
	if !actor.Role.CanGrant(inv.Role) {
		return domain.Invitation{}, ErrForbidden
	}

	org, err := s.Store.Organizations().GetOrganizationByID(ctx, inv.OrganizationID)
	if err != nil {
		log.Error("failed to load organization", slog.Any("error", err))
		return domain.Invitation{}, err
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate invitation token", slog.Any("error", err))
		return domain.Invitation{}, err
	}

	now := clock(s.Now)
	inv.TokenHash = cryptox.FingerprintToken(token)
	inv.ExpiresAt = now.Add(domain.InvitationTTL)
	inv.UpdatedAt = now

	if err := s.Store.Invitations().RotateInvitationToken(ctx, inv.ID, inv.TokenHash, inv.ExpiresAt, now); err != nil {
		if errors.Is(err, store.ErrStale) {
			return domain.Invitation{}, fmt.Errorf("%w: invitation already redeemed", ErrConflict)
		}
		log.Error("failed to rotate invitation token", slog.String("invitation_id", inv.ID), slog.Any("error", err))
		return domain.Invitation{}, err
	}

	log.Info("invitation token rotated", slog.String("invitation_id", inv.ID), slog.String("by", actor.UserID))

	if err := s.deliver(ctx, org, inv, token); err != nil {
		return inv, err
	}
	return inv, nil
}

// RevokeInvitation deletes an invitation that has not been redeemed.
func (s *InviteService) RevokeInvitation(ctx context.Context, claims jwtx.Claims, id string) error {
	log := slogx.FromContext(ctx)

	actor, err := adminFromClaims(claims)
	if err != nil {
		return err
	}

	inv, err := s.orgInvitation(ctx, actor, id)
	if err != nil {
		return err
	}

	if err := s.Store.Invitations().DeleteInvitation(ctx, inv.ID); err != nil {
		if errors.Is(err, store.ErrStale) {
			return fmt.Errorf("%w: invitation already redeemed", ErrConflict)
		}
		log.Error("failed to delete invitation", slog.String("invitation_id", inv.ID), slog.Any("error", err))
		return err
	}

	log.Info("invitation revoked", slog.String("invitation_id", inv.ID), slog.String("by", actor.UserID))
	return nil
}

// orgInvitation loads an invitation and hides ones from other organizations.
func (s *InviteService) orgInvitation(ctx context.Context, actor Actor, id string) (domain.Invitation, error) {
	inv, err := s.Store.Invitations().GetInvitationByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, ErrNotFound
		}
		return domain.Invitation{}, err
	}
	if inv.OrganizationID != actor.OrganizationID {
		return domain.Invitation{}, ErrNotFound
	}
	return inv, nil
}

func (s *InviteService) deliver(ctx context.Context, org domain.Organization, inv domain.Invitation, token string) error {
	log := slogx.FromContext(ctx)

	msg, err := s.Templates.Invitation(inv.Email, mail.InvitationData{
		OrganizationName: org.Name,
		RoleLabel:        inv.Role.Label(),
		Link:             InvitationLink(s.FrontendURL, token, inv.Email),
		ExpiresInDays:    int(domain.InvitationTTL / (24 * time.Hour)),
	})
	if err != nil {
		log.Error("failed to render invitation email", slog.Any("error", err))
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	if err := s.Mailer.Send(ctx, msg); err != nil {
		log.Error("failed to send invitation email",
			slog.String("invitation_id", inv.ID),
			slog.String("email", inv.Email),
			slog.Any("error", err),
		)
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	log.Info("invitation email sent", slog.String("invitation_id", inv.ID))
	return nil
}

// InvitationLink is the frontend URL that redeems token for email.
func InvitationLink(frontendURL, token, email string) string {
	return strings.TrimRight(frontendURL, "/") +
		"/login?token=" + url.QueryEscape(token) +
		"&email=" + url.QueryEscape(email)
}
