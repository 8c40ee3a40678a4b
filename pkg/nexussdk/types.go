package nexussdk

import "time"

// ============================================================================
// Health
// ============================================================================

type HealthChecks struct {
	Database string `json:"database"`
}

type HealthResponse struct {
	Status    string        `json:"status"`
	Timestamp time.Time     `json:"timestamp,omitzero"`
	Uptime    string        `json:"uptime,omitempty"`
	Version   string        `json:"version,omitempty"`
	Checks    *HealthChecks `json:"checks,omitempty"`
}

// ============================================================================
// Authentication
// ============================================================================

// User is the compact user view returned by sign-in endpoints. Status and
// OrganizationID are only set by the verify endpoint.
type User struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	Status         string `json:"status,omitempty"`
	OrganizationID string `json:"organizationId,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse is returned by password login and the OAuth callback.
type SessionResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type InviteLoginRequest struct {
	InviteToken string `json:"invite_token" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
}

type InviteLoginResponse struct {
	User          User   `json:"user"`
	RequiresSetup bool   `json:"requires_setup"`
	Token         string `json:"token"`
}

type MicrosoftAuthRequest struct {
	RedirectURI string `json:"redirect_uri" validate:"required,url"`
}

type MicrosoftAuthResponse struct {
	AuthURL string `json:"auth_url"`
	State   string `json:"state"`
}

type CallbackRequest struct {
	Code        string `json:"code" validate:"required"`
	State       string `json:"state"`
	RedirectURI string `json:"redirect_uri,omitempty"`
}

type VerifyResponse struct {
	User User `json:"user"`
}

// ============================================================================
// Users and invitations
// ============================================================================

// UserSummary is one row of the admin user list. Name falls back to the email.
type UserSummary struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	Status     string     `json:"status"`
	Department string     `json:"department"`
	JobTitle   string     `json:"jobTitle"`
	LastActive *time.Time `json:"lastActive"`
}

type UsersResponse struct {
	Users []UserSummary `json:"users"`
}

type InviteRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=super_admin org_admin team_lead end_user"`
}

type Invitation struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type InvitationResponse struct {
	Message    string     `json:"message"`
	Invitation Invitation `json:"invitation"`
}

type InvitationsResponse struct {
	Invitations []Invitation `json:"invitations"`
}

// MessageResponse acknowledges an operation with no other payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// ProfileRequest updates the caller's profile. Empty fields are left alone.
type ProfileRequest struct {
	FirstName   string `json:"firstName,omitempty" validate:"max=100"`
	LastName    string `json:"lastName,omitempty" validate:"max=100"`
	Department  string `json:"department,omitempty" validate:"max=100"`
	JobTitle    string `json:"jobTitle,omitempty" validate:"max=100"`
	PhoneNumber string `json:"phoneNumber,omitempty" validate:"max=40"`
	Timezone    string `json:"timezone,omitempty" validate:"max=64"`
	Password    string `json:"password,omitempty" validate:"omitempty,min=8,max=256"`
}

type UserResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

type RoleRequest struct {
	Role string `json:"role" validate:"required,oneof=super_admin org_admin team_lead end_user"`
}

// ============================================================================
// Bot approvals
// ============================================================================

type BotRequest struct {
	ID          string    `json:"id"`
	ChannelName string    `json:"channel_name"`
	ChannelType string    `json:"channel_type"`
	RequestedBy string    `json:"requested_by"`
	MemberCount int       `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
	Status      string    `json:"status"`
}

type BotRequestsResponse struct {
	Requests []BotRequest `json:"requests"`
}

type DecisionRequest struct {
	Approved *bool  `json:"approved" validate:"required"`
	Reason   string `json:"reason,omitempty" validate:"max=500"`
}

type DecisionSummary struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type DecisionResponse struct {
	Message string          `json:"message"`
	Request DecisionSummary `json:"request"`
}

// ============================================================================
// Chat
// ============================================================================

type Source struct {
	Title string `json:"title"`
	ID    string `json:"id"`
}

type ChatRequest struct {
	Message        string `json:"message" validate:"required,max=4000"`
	ConversationID string `json:"conversation_id,omitempty"`
}

type ChatResponse struct {
	Response       string   `json:"response"`
	Sources        []Source `json:"sources"`
	ConversationID string   `json:"conversation_id"`
}

type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ChatMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Sources   []Source  `json:"sources,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ConversationResponse struct {
	Conversation Conversation  `json:"conversation"`
	Messages     []ChatMessage `json:"messages"`
}

type ReferenceMetadata struct {
	Channel      string   `json:"channel"`
	Team         string   `json:"team"`
	MessageID    string   `json:"messageId"`
	Participants []string `json:"participants"`
	URL          string   `json:"url"`
}

type ReferenceContext struct {
	ThreadContext   string `json:"threadContext"`
	PreviousMessage string `json:"previousMessage"`
	NextMessage     string `json:"nextMessage"`
}

type Reference struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Type        string            `json:"type"`
	Source      string            `json:"source"`
	Timestamp   time.Time         `json:"timestamp"`
	Author      string            `json:"author"`
	FullContent string            `json:"fullContent"`
	Metadata    ReferenceMetadata `json:"metadata"`
	Context     ReferenceContext  `json:"context"`
}

type ReferenceResponse struct {
	Reference Reference `json:"reference"`
}
