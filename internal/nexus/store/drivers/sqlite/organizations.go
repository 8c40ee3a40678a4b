package sqlite

import (
	"context"

	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
)

type organizationsRepo struct {
	db dbtx
}

const organizationColumns = `id, name, domain, tenant_id, created_at`

func scanOrganization(row rowScanner) (domain.Organization, error) {
	var o domain.Organization
	if err := row.Scan(&o.ID, &o.Name, &o.Domain, &o.TenantID, &o.CreatedAt); err != nil {
		return domain.Organization{}, mapNotFound(err)
	}
	o.CreatedAt = o.CreatedAt.UTC()
	return o, nil
}

func (r *organizationsRepo) CreateOrganization(ctx context.Context, o domain.Organization) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO organizations (`+organizationColumns+`) VALUES (?, ?, ?, ?, ?)`,
		o.ID, o.Name, o.Domain, o.TenantID, o.CreatedAt.UTC(),
	)
	return mapWriteErr(err)
}

func (r *organizationsRepo) GetOrganizationByID(ctx context.Context, id string) (domain.Organization, error) {
	return scanOrganization(r.db.QueryRowContext(ctx,
		`SELECT `+organizationColumns+` FROM organizations WHERE id = ?`, id))
}

func (r *organizationsRepo) GetOrganizationByTenantID(ctx context.Context, tenantID string) (domain.Organization, error) {
	return scanOrganization(r.db.QueryRowContext(ctx,
		`SELECT `+organizationColumns+` FROM organizations WHERE tenant_id = ?`, tenantID))
}

func (r *organizationsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM organizations`).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}
