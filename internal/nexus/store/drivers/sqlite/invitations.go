package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
	"github.com/aussiebroadwan/nexus/internal/nexus/store"
)

type invitationsRepo struct {
	db dbtx
}

const invitationColumns = `id, token_hash, email, role, organization_id, created_by,
	expires_at, redeemed_at, created_at, updated_at`

func scanInvitation(row rowScanner) (domain.Invitation, error) {
	var (
		inv      domain.Invitation
		role     string
		redeemed sql.NullTime
	)
	err := row.Scan(
		&inv.ID, &inv.TokenHash, &inv.Email, &role, &inv.OrganizationID, &inv.CreatedBy,
		&inv.ExpiresAt, &redeemed, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	if inv.Role, err = domain.ParseRole(role); err != nil {
		return domain.Invitation{}, err
	}
	inv.RedeemedAt = mapNullTimePtr(redeemed)
	inv.ExpiresAt = inv.ExpiresAt.UTC()
	inv.CreatedAt = inv.CreatedAt.UTC()
	inv.UpdatedAt = inv.UpdatedAt.UTC()
	return inv, nil
}

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO invitations (`+invitationColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.TokenHash, inv.Email, string(inv.Role), inv.OrganizationID, inv.CreatedBy,
		inv.ExpiresAt.UTC(), mapOptionalTime(inv.RedeemedAt), inv.CreatedAt.UTC(), inv.UpdatedAt.UTC(),
	)
	return mapWriteErr(err)
}

func (r *invitationsRepo) GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error) {
	return scanInvitation(r.db.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE id = ?`, id))
}

func (r *invitationsRepo) GetInvitationByTokenHash(ctx context.Context, hash string) (domain.Invitation, error) {
	return scanInvitation(r.db.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE token_hash = ?`, hash))
}

func (r *invitationsRepo) ListUnredeemedInvitations(ctx context.Context, organizationID string) ([]domain.Invitation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations
		WHERE organization_id = ? AND redeemed_at IS NULL
		ORDER BY created_at DESC, id DESC`, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *invitationsRepo) MarkInvitationRedeemed(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE invitations SET redeemed_at = ?, updated_at = ?
		WHERE id = ? AND redeemed_at IS NULL`,
		at.UTC(), at.UTC(), id)
	if err != nil {
		return err
	}
	return expectOne(res, store.ErrStale)
}

func (r *invitationsRepo) RotateInvitationToken(
	ctx context.Context,
	id, tokenHash string,
	expiresAt, at time.Time,
) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE invitations SET token_hash = ?, expires_at = ?, updated_at = ?
		WHERE id = ? AND redeemed_at IS NULL`,
		tokenHash, expiresAt.UTC(), at.UTC(), id)
	if err != nil {
		return mapWriteErr(err)
	}
	return expectOne(res, store.ErrStale)
}

func (r *invitationsRepo) DeleteInvitation(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM invitations WHERE id = ? AND redeemed_at IS NULL`, id)
	if err != nil {
		return err
	}
	return expectOne(res, store.ErrStale)
}
