package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrStale is returned by conditional updates that matched no row because
	// the record already left the state the update expects.
	ErrStale = errors.New("store: record changed state")
)

// Store is the root data access interface. Drivers implement it and expose
// one sub-repository per entity.
//
// Repositories obtained from a Tx run inside that transaction. Never call the
// root Store from inside WithTx: the sqlite driver runs a single connection
// and the call would wait on the transaction that holds it.
type Store interface {
	Organizations() Organizations
	Users() Users
	Invitations() Invitations
	BotRequests() BotRequests
	Conversations() Conversations
	Messages() Messages

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Organizations interface {
	CreateOrganization(ctx context.Context, o domain.Organization) error
	GetOrganizationByID(ctx context.Context, id string) (domain.Organization, error)

	// GetOrganizationByTenantID resolves the organization of an external
	// identity provider tenant.
	GetOrganizationByTenantID(ctx context.Context, tenantID string) (domain.Organization, error)

	// IsEmpty returns true if no organization has been provisioned.
	IsEmpty(ctx context.Context) (bool, error)
}

type Users interface {
	// CreateUser inserts a user. ErrAlreadyExists if the (organization, email)
	// pair is taken.
	CreateUser(ctx context.Context, u domain.User) error

	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks the address up within a single organization.
	GetUserByEmail(ctx context.Context, organizationID, email string) (domain.User, error)

	// ListUsersByEmail returns every account using the address, across
	// organizations. Used by password login.
	ListUsersByEmail(ctx context.Context, email string) ([]domain.User, error)

	// ListUsersByOrganization returns users oldest first.
	ListUsersByOrganization(ctx context.Context, organizationID string) ([]domain.User, error)

	// UpdateUser writes every mutable column of u and bumps updated_at.
	UpdateUser(ctx context.Context, u domain.User) error

	TouchLastActive(ctx context.Context, userID string, at time.Time) error
}

type Invitations interface {
	// CreateInvitation stores a new invitation. ErrAlreadyExists on a token
	// fingerprint collision.
	CreateInvitation(ctx context.Context, inv domain.Invitation) error

	GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error)
	GetInvitationByTokenHash(ctx context.Context, hash string) (domain.Invitation, error)

	// ListUnredeemedInvitations returns invitations of the organization that
	// have not been redeemed, newest first. Expired ones are included.
	ListUnredeemedInvitations(ctx context.Context, organizationID string) ([]domain.Invitation, error)

	// MarkInvitationRedeemed sets redeemed_at if it is still unset, else
	// ErrStale.
	MarkInvitationRedeemed(ctx context.Context, id string, at time.Time) error

	// RotateInvitationToken replaces the token fingerprint and expiry of an
	// unredeemed invitation, else ErrStale.
	RotateInvitationToken(ctx context.Context, id, tokenHash string, expiresAt, at time.Time) error

	// DeleteInvitation removes an unredeemed invitation, else ErrStale.
	DeleteInvitation(ctx context.Context, id string) error
}

type BotRequests interface {
	CreateBotRequest(ctx context.Context, r domain.BotAccessRequest) error
	GetBotRequestByID(ctx context.Context, id string) (domain.BotAccessRequest, error)

	// ListBotRequests returns the organization's requests newest first,
	// optionally filtered by status.
	ListBotRequests(ctx context.Context, organizationID string, status *domain.BotRequestStatus) ([]domain.BotAccessRequest, error)

	// DecideBotRequest moves a pending request to status. ErrStale if the
	// request was already decided.
	DecideBotRequest(ctx context.Context, id string, status domain.BotRequestStatus, approvedBy, reason string, at time.Time) error
}

type Conversations interface {
	CreateConversation(ctx context.Context, c domain.Conversation) error
	GetConversationByID(ctx context.Context, id string) (domain.Conversation, error)

	// TouchConversation bumps updated_at.
	TouchConversation(ctx context.Context, id string, at time.Time) error
}

type Messages interface {
	// CreateMessage appends a message. Messages are never updated.
	CreateMessage(ctx context.Context, m domain.Message) error

	// ListMessagesByConversation returns messages ordered by (created_at, id).
	ListMessagesByConversation(ctx context.Context, conversationID string) ([]domain.Message, error)
}
