package app

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/nexus/internal/nexus/mail"
	"github.com/stretchr/testify/require"
)

// clearEnv hides any settings inherited from the test environment.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENV", "PORT", "SHUTDOWN_GRACE_PERIOD", "JWT_SECRET", "MAIL_PROVIDER",
		"SMTP_HOST", "SMTP_PORT", "SENDGRID_API_KEY", "MICROSOFT_TENANT",
		"SEED_DEMO_DATA", "NEXUS_PATH_LOGIN", "NEXUS_PATH_USERS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	cfg := LoadConfig()

	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, 3001, cfg.Port)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	require.Equal(t, mail.ProviderLog, cfg.Mail.Provider)
	require.Equal(t, "common", cfg.Microsoft.Tenant)
	require.Equal(t, "/api/auth/login", cfg.Paths.Login)
	require.False(t, cfg.SeedDemoData)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "prod")
	t.Setenv("PORT", "9000")
	t.Setenv("SHUTDOWN_GRACE_PERIOD", "30")
	t.Setenv("JWT_SECRET", strings.Repeat("x", 32))
	t.Setenv("MAIL_PROVIDER", "SMTP")
	t.Setenv("SMTP_HOST", "mail.acmecorp.com")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SEED_DEMO_DATA", "true")
	t.Setenv("NEXUS_PATH_LOGIN", "/v2/login")
	t.Setenv("NEXUS_PATH_BOT_DECISION", "/v2/bots/{id}/decision")

	cfg := LoadConfig()

	require.Equal(t, 9000, cfg.Port)
	require.Equal(t, 30*time.Second, cfg.ShutdownGracePeriod)
	require.Equal(t, mail.ProviderSMTP, cfg.Mail.Provider)
	require.Equal(t, 2525, cfg.Mail.SMTP.Port)
	require.True(t, cfg.SeedDemoData)
	require.Equal(t, "/v2/login", cfg.Paths.Login)
	require.Equal(t, "/v2/bots/{id}/decision", cfg.Paths.BotDecision)
	require.Equal(t, "/api/auth/verify", cfg.Paths.Verify)
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	clearEnv(t)
	valid := func() Config {
		cfg := LoadConfig()
		cfg.Env = "prod"
		cfg.JWTSecret = strings.Repeat("x", 32)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing secret outside dev", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET is required"},
		{"short secret", func(c *Config) { c.JWTSecret = "short" }, "at least 32 bytes"},
		{"bad port", func(c *Config) { c.Port = 0 }, "PORT"},
		{"smtp without host", func(c *Config) { c.Mail.Provider = mail.ProviderSMTP }, "SMTP_HOST"},
		{"sendgrid without key", func(c *Config) { c.Mail.Provider = mail.ProviderSendgrid }, "SENDGRID_API_KEY"},
		{"unknown provider", func(c *Config) { c.Mail.Provider = "pigeon" }, "MAIL_PROVIDER"},
		{"relative path", func(c *Config) { c.Paths.Users = "api/users" }, "NEXUS_PATH_USERS"},
	}

	require.NoError(t, valid().Validate())

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)
			require.ErrorContains(t, err, tc.want)
		})
	}
}

func TestDevAllowsMissingSecret(t *testing.T) {
	clearEnv(t)
	cfg := LoadConfig()
	cfg.JWTSecret = ""
	require.True(t, cfg.IsDev())
	require.NoError(t, cfg.Validate())
}
