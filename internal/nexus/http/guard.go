package http

import (
	"slices"

	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
	"github.com/aussiebroadwan/nexus/pkg/httpx"
	"github.com/aussiebroadwan/nexus/pkg/jwtx"
)

// RequireRole lets through callers whose token role is one of allowed. Roles
// outside the fixed set are refused. It must run after AuthnMiddleware.
func RequireRole(allowed ...domain.Role) httpx.Middleware {
	return httpx.RequireClaims(func(c jwtx.Claims) bool {
		role, err := domain.ParseRole(c.Role)
		if err != nil {
			return false
		}
		return slices.Contains(allowed, role)
	})
}
