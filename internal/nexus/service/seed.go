package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
	"github.com/aussiebroadwan/nexus/internal/nexus/store"
	"github.com/aussiebroadwan/nexus/pkg/cryptox"
	"github.com/aussiebroadwan/nexus/pkg/idx"
	"github.com/aussiebroadwan/nexus/pkg/slogx"
)

var ErrSeedFailed = errors.New("failed to seed demo data")

// SeedBotRequest is a pending bot access request created by the seed.
type SeedBotRequest struct {
	ChannelName string
	ChannelType string
	RequestedBy string
	MemberCount int
}

// SeedData describes the organization provisioned on an empty store.
type SeedData struct {
	OrganizationName string
	Domain           string
	TenantID         string

	AdminEmail     string
	AdminFirstName string
	AdminLastName  string
	// AdminPassword may be empty; the admin then signs in with Microsoft.
	AdminPassword string

	BotRequests []SeedBotRequest
}

// DemoSeedData is the Acme Corp demo organization.
func DemoSeedData(adminPassword string) SeedData {
	return SeedData{
		OrganizationName: "Acme Corp",
		Domain:           "acmecorp.com",
		TenantID:         "sample-tenant-id",
		AdminEmail:       "admin@acmecorp.com",
		AdminFirstName:   "Admin",
		AdminLastName:    "User",
		AdminPassword:    adminPassword,
		BotRequests: []SeedBotRequest{
			{ChannelName: "Marketing Team", ChannelType: "Team", RequestedBy: "Sarah Johnson", MemberCount: 12},
			{ChannelName: "Product Development", ChannelType: "Channel", RequestedBy: "Mike Chen", MemberCount: 8},
		},
	}
}

type SeedService struct {
	Store     store.Store
	Passwords *cryptox.PasswordHasher
	Now       func() time.Time
}

// Seed provisions data when no organization exists yet. It reports whether
// anything was written.
func (s *SeedService) Seed(ctx context.Context, data SeedData) (bool, error) {
	l := slogx.FromContext(ctx)
	now := clock(s.Now)

	// 1. Only seed an empty directory
	empty, err := s.Store.Organizations().IsEmpty(ctx)
	if err != nil {
		l.Error("failed to check organizations", slog.Any("error", err))
		return false, ErrSeedFailed
	}
	if !empty {
		l.Debug("directory already provisioned, skipping seed")
		return false, nil
	}

	// 2. Hash the admin password, if one was given
	var passHash string
	if data.AdminPassword != "" {
		if len(data.AdminPassword) < MinPasswordLength {
			return false, ErrInvalidRequest
		}
		passHash, err = s.Passwords.Hash(data.AdminPassword)
		if err != nil {
			l.Error("failed to hash admin password", slog.Any("error", err))
			return false, ErrSeedFailed
		}
	}

	// 3. Create organization, admin and bot requests together
	org := domain.Organization{
		ID:        idx.New().String(),
		Name:      data.OrganizationName,
		Domain:    data.Domain,
		TenantID:  data.TenantID,
		CreatedAt: now,
	}
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Organizations().CreateOrganization(ctx, org); err != nil {
			return err
		}

		err := tx.Users().CreateUser(ctx, domain.User{
			ID:             idx.New().String(),
			OrganizationID: org.ID,
			Email:          domain.NormalizeEmail(data.AdminEmail),
			FirstName:      data.AdminFirstName,
			LastName:       data.AdminLastName,
			Role:           domain.RoleOrgAdmin,
			Status:         domain.UserStatusActive,
			PasswordHash:   passHash,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
		if err != nil {
			return err
		}

		for i, br := range data.BotRequests {
			// Distinct timestamps keep the listing order stable.
			at := now.Add(time.Duration(i) * time.Second)
			err := tx.BotRequests().CreateBotRequest(ctx, domain.BotAccessRequest{
				ID:             idx.New().String(),
				OrganizationID: org.ID,
				ChannelName:    br.ChannelName,
				ChannelType:    br.ChannelType,
				RequestedBy:    br.RequestedBy,
				MemberCount:    br.MemberCount,
				Status:         domain.BotRequestPending,
				CreatedAt:      at,
				UpdatedAt:      at,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		l.Error("failed to seed demo data", slog.Any("error", err))
		return false, ErrSeedFailed
	}

	l.Info("seeded demo data",
		slog.String("organization_id", org.ID),
		slog.String("admin_email", data.AdminEmail),
		slog.Int("bot_requests", len(data.BotRequests)),
	)
	return true, nil
}
