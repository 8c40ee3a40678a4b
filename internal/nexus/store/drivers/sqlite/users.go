package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
	"github.com/aussiebroadwan/nexus/internal/nexus/store"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, organization_id, email, first_name, last_name, role, status,
	department, job_title, phone_number, timezone, password_hash,
	microsoft_connected, last_active_at, created_at, updated_at`

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u          domain.User
		role       string
		status     string
		lastActive sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.OrganizationID, &u.Email, &u.FirstName, &u.LastName, &role, &status,
		&u.Department, &u.JobTitle, &u.PhoneNumber, &u.Timezone, &u.PasswordHash,
		&u.MicrosoftConnected, &lastActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	// The schema CHECK constraints keep these in range; parse anyway so a
	// hand-edited row cannot smuggle an unknown role past the guard.
	if u.Role, err = domain.ParseRole(role); err != nil {
		return domain.User{}, err
	}
	if u.Status, err = domain.ParseUserStatus(status); err != nil {
		return domain.User{}, err
	}

	u.LastActiveAt = mapNullTimePtr(lastActive)
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}

func (r *usersRepo) listUsers(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.OrganizationID, u.Email, u.FirstName, u.LastName, string(u.Role), string(u.Status),
		u.Department, u.JobTitle, u.PhoneNumber, u.Timezone, u.PasswordHash,
		u.MicrosoftConnected, mapOptionalTime(u.LastActiveAt), u.CreatedAt.UTC(), u.UpdatedAt.UTC(),
	)
	return mapWriteErr(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, organizationID, email string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE organization_id = ? AND email = ?`,
		organizationID, email))
}

func (r *usersRepo) ListUsersByEmail(ctx context.Context, email string) ([]domain.User, error) {
	return r.listUsers(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ? ORDER BY created_at, id`, email)
}

func (r *usersRepo) ListUsersByOrganization(ctx context.Context, organizationID string) ([]domain.User, error) {
	return r.listUsers(ctx,
		`SELECT `+userColumns+` FROM users WHERE organization_id = ? ORDER BY created_at, id`, organizationID)
}

func (r *usersRepo) UpdateUser(ctx context.Context, u domain.User) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET
			first_name = ?, last_name = ?, role = ?, status = ?,
			department = ?, job_title = ?, phone_number = ?, timezone = ?,
			password_hash = ?, microsoft_connected = ?, last_active_at = ?, updated_at = ?
		WHERE id = ?`,
		u.FirstName, u.LastName, string(u.Role), string(u.Status),
		u.Department, u.JobTitle, u.PhoneNumber, u.Timezone,
		u.PasswordHash, u.MicrosoftConnected, mapOptionalTime(u.LastActiveAt), u.UpdatedAt.UTC(),
		u.ID,
	)
	if err != nil {
		return mapWriteErr(err)
	}
	return expectOne(res, store.ErrNotFound)
}

func (r *usersRepo) TouchLastActive(ctx context.Context, userID string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET last_active_at = ? WHERE id = ?`, at.UTC(), userID)
	if err != nil {
		return err
	}
	return expectOne(res, store.ErrNotFound)
}
