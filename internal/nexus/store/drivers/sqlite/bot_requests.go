package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
	"github.com/aussiebroadwan/nexus/internal/nexus/store"
)

type botRequestsRepo struct {
	db dbtx
}

const botRequestColumns = `id, organization_id, channel_name, channel_type, requested_by,
	member_count, status, approved_by, reason, created_at, updated_at`

func scanBotRequest(row rowScanner) (domain.BotAccessRequest, error) {
	var (
		br         domain.BotAccessRequest
		status     string
		approvedBy sql.NullString
		reason     sql.NullString
	)
	err := row.Scan(
		&br.ID, &br.OrganizationID, &br.ChannelName, &br.ChannelType, &br.RequestedBy,
		&br.MemberCount, &status, &approvedBy, &reason, &br.CreatedAt, &br.UpdatedAt,
	)
	if err != nil {
		return domain.BotAccessRequest{}, mapNotFound(err)
	}
	if br.Status, err = domain.ParseBotRequestStatus(status); err != nil {
		return domain.BotAccessRequest{}, err
	}
	br.ApprovedBy = mapNullString(approvedBy)
	br.Reason = mapNullString(reason)
	br.CreatedAt = br.CreatedAt.UTC()
	br.UpdatedAt = br.UpdatedAt.UTC()
	return br, nil
}

func (r *botRequestsRepo) CreateBotRequest(ctx context.Context, br domain.BotAccessRequest) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bot_requests (`+botRequestColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		br.ID, br.OrganizationID, br.ChannelName, br.ChannelType, br.RequestedBy,
		br.MemberCount, string(br.Status), mapStringNull(br.ApprovedBy), mapStringNull(br.Reason),
		br.CreatedAt.UTC(), br.UpdatedAt.UTC(),
	)
	return mapWriteErr(err)
}

func (r *botRequestsRepo) GetBotRequestByID(ctx context.Context, id string) (domain.BotAccessRequest, error) {
	return scanBotRequest(r.db.QueryRowContext(ctx,
		`SELECT `+botRequestColumns+` FROM bot_requests WHERE id = ?`, id))
}

func (r *botRequestsRepo) ListBotRequests(
	ctx context.Context,
	organizationID string,
	status *domain.BotRequestStatus,
) ([]domain.BotAccessRequest, error) {
	query := `SELECT ` + botRequestColumns + ` FROM bot_requests WHERE organization_id = ?`
	args := []any{organizationID}
	if status != nil {
		query += ` AND status = ?`
		args = append(args, string(*status))
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.BotAccessRequest
	for rows.Next() {
		br, err := scanBotRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, br)
	}
	return out, rows.Err()
}

func (r *botRequestsRepo) DecideBotRequest(
	ctx context.Context,
	id string,
	status domain.BotRequestStatus,
	approvedBy, reason string,
	at time.Time,
) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bot_requests SET status = ?, approved_by = ?, reason = ?, updated_at = ?
		WHERE id = ? AND status = 'pending'`,
		string(status), mapStringNull(approvedBy), mapStringNull(reason), at.UTC(), id)
	if err != nil {
		return err
	}
	return expectOne(res, store.ErrStale)
}
