package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/nexus/internal/nexus/identity"
	"github.com/aussiebroadwan/nexus/internal/nexus/mail"
	"github.com/aussiebroadwan/nexus/pkg/nexussdk"
)

// minSecretLen matches the HS256 signer's minimum key size.
const minSecretLen = 32

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 3001)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)

	DatabaseFile string // Path to SQLite database file (default: ./nexus.db)
	PepperFile   string // Path to file containing the password pepper (default: ./pepper)
	Issuer       string // Issuer claim for session tokens (default: nexus)
	JWTSecret    string // HS256 signing secret, required outside dev

	APIBaseURL  string // Public URL of this server
	FrontendURL string // CORS origin and base of invitation links

	Mail      mail.Config
	Microsoft identity.MicrosoftConfig

	SeedDemoData      bool   // Provision the Acme Corp demo organization on an empty store
	SeedAdminPassword string // Password for the seeded admin, optional

	Paths nexussdk.Paths
}

func LoadConfig() Config {
	cfg := Config{
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 3001),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),

		DatabaseFile: getEnvOrDefault("NEXUS_DATABASE_FILE", "nexus.db"),
		PepperFile:   getEnvOrDefault("NEXUS_PEPPER_FILE", "pepper"),
		Issuer:       getEnvOrDefault("NEXUS_ISSUER", "nexus"),
		JWTSecret:    os.Getenv("JWT_SECRET"),

		APIBaseURL:  getEnvOrDefault("API_BASE_URL", "http://localhost:3001"),
		FrontendURL: getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),

		Mail: mail.Config{
			Provider: mail.Provider(strings.ToLower(getEnvOrDefault("MAIL_PROVIDER", string(mail.ProviderLog)))),
			From: mail.Sender{
				Address: getEnvOrDefault("SMTP_FROM", "noreply@nexus.local"),
				Name:    getEnvOrDefault("MAIL_FROM_NAME", "Nexus"),
			},
			SMTP: mail.SMTPConfig{
				Host:     os.Getenv("SMTP_HOST"),
				Port:     getEnvIntOrDefault("SMTP_PORT", 587),
				Username: os.Getenv("SMTP_USER"),
				Password: os.Getenv("SMTP_PASS"),
			},
			SendgridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		},

		Microsoft: identity.MicrosoftConfig{
			ClientID:     os.Getenv("MICROSOFT_CLIENT_ID"),
			ClientSecret: os.Getenv("MICROSOFT_CLIENT_SECRET"),
			Tenant:       getEnvOrDefault("MICROSOFT_TENANT", "common"),
		},

		SeedDemoData:      getEnvBoolOrDefault("SEED_DEMO_DATA", false),
		SeedAdminPassword: os.Getenv("SEED_ADMIN_PASSWORD"),

		Paths: loadPaths(),
	}

	return cfg
}

// IsDev reports whether the server runs in the development environment.
func (c Config) IsDev() bool { return c.Env == "dev" }

// Validate checks settings that would otherwise fail at first use.
func (c Config) Validate() error {
	var errs []error

	switch {
	case c.JWTSecret == "" && !c.IsDev():
		errs = append(errs, errors.New("JWT_SECRET is required outside dev"))
	case c.JWTSecret != "" && len(c.JWTSecret) < minSecretLen:
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d bytes", minSecretLen))
	}

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}

	switch c.Mail.Provider {
	case mail.ProviderLog:
	case mail.ProviderSMTP:
		if c.Mail.SMTP.Host == "" {
			errs = append(errs, errors.New("SMTP_HOST is required for the smtp mail provider"))
		}
	case mail.ProviderSendgrid:
		if c.Mail.SendgridAPIKey == "" {
			errs = append(errs, errors.New("SENDGRID_API_KEY is required for the sendgrid mail provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown MAIL_PROVIDER %q", c.Mail.Provider))
	}

	for name, p := range pathFields(&c.Paths) {
		if !strings.HasPrefix(*p, "/") {
			errs = append(errs, fmt.Errorf("NEXUS_PATH_%s must start with /", name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// pathFields maps NEXUS_PATH_<NAME> suffixes to route table fields.
func pathFields(p *nexussdk.Paths) map[string]*string {
	return map[string]*string{
		"HEALTH":            &p.Health,
		"READY":             &p.Ready,
		"MICROSOFT_AUTH":    &p.MicrosoftAuth,
		"CALLBACK":          &p.Callback,
		"LOGIN":             &p.Login,
		"INVITE_LOGIN":      &p.InviteLogin,
		"VERIFY":            &p.Verify,
		"USERS":             &p.Users,
		"INVITE":            &p.Invite,
		"INVITATIONS":       &p.Invitations,
		"INVITATION_RESEND": &p.InvitationResend,
		"INVITATION":        &p.Invitation,
		"PROFILE":           &p.Profile,
		"USER_ROLE":         &p.UserRole,
		"USER":              &p.User,
		"BOT_APPROVALS":     &p.BotApprovals,
		"BOT_DECISION":      &p.BotDecision,
		"CHAT_MESSAGE":      &p.ChatMessage,
		"CONVERSATION":      &p.Conversation,
		"REFERENCE":         &p.Reference,
	}
}

func loadPaths() nexussdk.Paths {
	paths := nexussdk.DefaultPaths()
	for name, p := range pathFields(&paths) {
		*p = getEnvOrDefault("NEXUS_PATH_"+name, *p)
	}
	return paths
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds.
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
