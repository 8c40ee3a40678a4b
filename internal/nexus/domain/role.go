package domain

import (
	"errors"
	"fmt"
)

// Role is the fixed set of directory roles. Any other string is rejected by
// ParseRole, so a Role value is always one of the constants below.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleOrgAdmin   Role = "org_admin"
	RoleTeamLead   Role = "team_lead"
	RoleEndUser    Role = "end_user"
)

var ErrUnknownRole = errors.New("domain: unknown role")

// Roles lists every valid role, highest privilege first.
var Roles = []Role{RoleSuperAdmin, RoleOrgAdmin, RoleTeamLead, RoleEndUser}

// AdminRoles may manage users, invitations and bot approvals.
var AdminRoles = []Role{RoleOrgAdmin, RoleSuperAdmin}

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleSuperAdmin:
		return RoleSuperAdmin, nil
	case RoleOrgAdmin:
		return RoleOrgAdmin, nil
	case RoleTeamLead:
		return RoleTeamLead, nil
	case RoleEndUser:
		return RoleEndUser, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

func (r Role) String() string { return string(r) }

// IsAdmin reports whether r is an organization or platform admin.
func (r Role) IsAdmin() bool {
	switch r {
	case RoleSuperAdmin, RoleOrgAdmin:
		return true
	case RoleTeamLead, RoleEndUser:
		return false
	default:
		return false
	}
}

// CanGrant reports whether an actor holding r may assign target to someone.
// Only a super admin may hand out super_admin.
func (r Role) CanGrant(target Role) bool {
	switch r {
	case RoleSuperAdmin:
		return true
	case RoleOrgAdmin:
		return target != RoleSuperAdmin
	case RoleTeamLead, RoleEndUser:
		return false
	default:
		return false
	}
}

// Label is the human form used in emails, e.g. "end user".
func (r Role) Label() string {
	switch r {
	case RoleSuperAdmin:
		return "super admin"
	case RoleOrgAdmin:
		return "organization admin"
	case RoleTeamLead:
		return "team lead"
	case RoleEndUser:
		return "end user"
	default:
		return string(r)
	}
}
