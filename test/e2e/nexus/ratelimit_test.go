package nexus_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/nexus/pkg/nexussdk"
	"github.com/stretchr/testify/require"
)

// TestRateLimitLoginEndpoint verifies the strict limit (5 req/min) on login.
func TestRateLimitLoginEndpoint(t *testing.T) {
	c := setupNexusContainerWithDefaultRateLimits(t)
	client := nexussdk.NewSDKClient(c.BaseURL)

	for i := range 5 {
		_, err := client.Login(t.Context(), adminEmail, "wrong-password")
		assertAPIError(t, err, http.StatusUnauthorized, nexussdk.ErrorCodeInvalidCredentials)
		require.False(t, nexussdk.IsCode(err, nexussdk.ErrorCodeRateLimited), "request %d limited too early", i+1)
	}

	_, err := client.Login(t.Context(), adminEmail, adminPassword)
	assertAPIError(t, err, http.StatusTooManyRequests, nexussdk.ErrorCodeRateLimited)
}
