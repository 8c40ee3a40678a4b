package domain

import "time"

// InvitationTTL is how long an invitation link stays redeemable.
const InvitationTTL = 7 * 24 * time.Hour

type Invitation struct {
	ID             string
	TokenHash      string // fingerprint of the opaque token, never the token itself
	Email          string
	Role           Role
	OrganizationID string
	CreatedBy      string
	ExpiresAt      time.Time
	RedeemedAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (i Invitation) IsExpired(now time.Time) bool { return !now.Before(i.ExpiresAt) }

func (i Invitation) IsRedeemed() bool { return i.RedeemedAt != nil }

// IsPending is true while the invitation can still be redeemed.
func (i Invitation) IsPending(now time.Time) bool {
	return !i.IsRedeemed() && !i.IsExpired(now)
}
