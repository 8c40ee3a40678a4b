package service

import (
	"time"

	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
	"github.com/aussiebroadwan/nexus/pkg/jwtx"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Actor is the authenticated caller, derived from verified session claims.
type Actor struct {
	UserID         string
	OrganizationID string
	Email          string
	Role           domain.Role
}

// ActorFromClaims parses the caller's role. A token carrying a role outside
// the fixed set is refused.
func ActorFromClaims(c jwtx.Claims) (Actor, error) {
	if c.Subject == "" {
		return Actor{}, ErrUnauthenticated
	}
	role, err := domain.ParseRole(c.Role)
	if err != nil {
		return Actor{}, ErrForbidden
	}
	return Actor{
		UserID:         c.Subject,
		OrganizationID: c.OrganizationID,
		Email:          c.Email,
		Role:           role,
	}, nil
}

// adminFromClaims is ActorFromClaims restricted to organization and platform
// admins.
func adminFromClaims(c jwtx.Claims) (Actor, error) {
	a, err := ActorFromClaims(c)
	if err != nil {
		return Actor{}, err
	}
	if !a.Role.IsAdmin() {
		return Actor{}, ErrForbidden
	}
	return a, nil
}

func clock(now func() time.Time) time.Time {
	if now != nil {
		return now().UTC()
	}
	return time.Now().UTC()
}

func validEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}
