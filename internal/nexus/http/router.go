package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
	"github.com/aussiebroadwan/nexus/internal/nexus/service"
	"github.com/aussiebroadwan/nexus/internal/nexus/store"
	"github.com/aussiebroadwan/nexus/pkg/httpx"
	"github.com/aussiebroadwan/nexus/pkg/jwtx"
	"github.com/aussiebroadwan/nexus/pkg/nexussdk"
	"github.com/aussiebroadwan/nexus/pkg/slogx"
	"github.com/go-chi/cors"

	_ "github.com/aussiebroadwan/nexus/api/nexus" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// RateLimits selects the profile applied to each class of route.
type RateLimits struct {
	// Credentials covers login, invitation redemption and the OAuth callback.
	Credentials httpx.RateLimitConfig
	// Mail covers operations that send email.
	Mail httpx.RateLimitConfig
	// API covers every other route.
	API httpx.RateLimitConfig
}

func DefaultRateLimits() RateLimits {
	return RateLimits{
		Credentials: httpx.StrictLimit,
		Mail:        httpx.ModerateLimit,
		API:         httpx.LenientLimit,
	}
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	paths        nexussdk.Paths
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	Limits RateLimits

	AuthService        *service.AuthService
	InviteService      *service.InviteService
	UserService        *service.UserService
	BotApprovalService *service.BotApprovalService
	ChatService        *service.ChatService
}

func NewRouter(
	verifier jwtx.Verifier,
	paths nexussdk.Paths,
	allowedOrigins []string,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		paths:        paths,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		store:        st,
		Limits:       DefaultRateLimits(),
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		cors.Handler(cors.Options{
			AllowedOrigins:   allowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", slogx.RequestIDHeader},
			ExposedHeaders:   []string{slogx.RequestIDHeader, "Retry-After"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerInvitations()
	r.registerBotApprovals()
	r.registerChat()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Nexus API
//	@version		0.1.0
//	@description	Knowledge-assistant backend: invitations, user administration, bot access approvals and chat.
//	@description
//	@description				Session tokens are HS256 JWTs valid for 24 hours.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/nexus
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:3001
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authed is the chain for any signed-in caller.
func (r *Router) authed(h http.Handler, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(limit),
	)
}

// admin is the chain for organization and platform admins.
func (r *Router) admin(h http.Handler, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		RequireRole(domain.AdminRoles...),
		httpx.RateLimitByUser(limit),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService, InviteService: r.InviteService}

	// Credential endpoints: strict limit by IP.
	r.Mux.Handle("POST "+r.paths.Login,
		httpx.Chain(http.HandlerFunc(h.HandleLogin), httpx.RateLimitByIP(r.Limits.Credentials)))
	r.Mux.Handle("POST "+r.paths.InviteLogin,
		httpx.Chain(http.HandlerFunc(h.HandleInviteLogin), httpx.RateLimitByIP(r.Limits.Credentials)))
	r.Mux.Handle("POST "+r.paths.Callback,
		httpx.Chain(http.HandlerFunc(h.HandleCallback), httpx.RateLimitByIP(r.Limits.Credentials)))

	r.Mux.Handle("POST "+r.paths.MicrosoftAuth,
		httpx.Chain(http.HandlerFunc(h.HandleMicrosoft), httpx.RateLimitByIP(r.Limits.API)))

	r.Mux.Handle("GET "+r.paths.Verify, r.authed(http.HandlerFunc(h.HandleVerify), r.Limits.API))
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	r.Mux.Handle("GET "+r.paths.Users, r.admin(http.HandlerFunc(h.HandleList), r.Limits.API))
	r.Mux.Handle("PUT "+r.paths.Profile, r.authed(http.HandlerFunc(h.HandleProfile), r.Limits.API))
	r.Mux.Handle("PUT "+r.paths.UserRole, r.admin(http.HandlerFunc(h.HandleChangeRole), r.Limits.API))
	r.Mux.Handle("DELETE "+r.paths.User, r.admin(http.HandlerFunc(h.HandleRemove), r.Limits.API))
}

func (r *Router) registerInvitations() {
	h := &InvitationsHandler{InviteService: r.InviteService}

	// Sending mail: moderate limit.
	r.Mux.Handle("POST "+r.paths.Invite, r.admin(http.HandlerFunc(h.HandleInvite), r.Limits.Mail))
	r.Mux.Handle("POST "+r.paths.InvitationResend, r.admin(http.HandlerFunc(h.HandleResend), r.Limits.Mail))

	r.Mux.Handle("GET "+r.paths.Invitations, r.admin(http.HandlerFunc(h.HandleList), r.Limits.API))
	r.Mux.Handle("DELETE "+r.paths.Invitation, r.admin(http.HandlerFunc(h.HandleRevoke), r.Limits.API))
}

func (r *Router) registerBotApprovals() {
	h := &BotApprovalsHandler{BotApprovalService: r.BotApprovalService}

	r.Mux.Handle("GET "+r.paths.BotApprovals, r.admin(http.HandlerFunc(h.HandleList), r.Limits.API))
	r.Mux.Handle("POST "+r.paths.BotDecision, r.admin(http.HandlerFunc(h.HandleDecide), r.Limits.API))
}

func (r *Router) registerChat() {
	h := &ChatHandler{ChatService: r.ChatService}

	r.Mux.Handle("POST "+r.paths.ChatMessage, r.authed(http.HandlerFunc(h.HandleMessage), r.Limits.API))
	r.Mux.Handle("GET "+r.paths.Conversation, r.authed(http.HandlerFunc(h.HandleConversation), r.Limits.API))
	r.Mux.Handle("GET "+r.paths.Reference, r.authed(http.HandlerFunc(h.HandleReference), r.Limits.API))
}

func (r *Router) registerSystem() {
	// Probes: lenient limit, monitoring may poll frequently.
	r.Mux.Handle("GET "+r.paths.Health,
		httpx.Chain(HealthHandler(), httpx.RateLimitByIP(r.Limits.API)))
	r.Mux.Handle("GET "+r.paths.Ready,
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store), httpx.RateLimitByIP(r.Limits.API)))
}
