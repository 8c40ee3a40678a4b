package nexussdk

import (
	"net/url"
	"strings"
)

// Paths is the route table shared by the server and the client. Patterns use
// {id} for the single path parameter.
type Paths struct {
	Health string
	Ready  string

	MicrosoftAuth string
	Callback      string
	Login         string
	InviteLogin   string
	Verify        string

	Users            string
	Invite           string
	Invitations      string
	InvitationResend string
	Invitation       string
	Profile          string
	UserRole         string
	User             string

	BotApprovals string
	BotDecision  string

	ChatMessage  string
	Conversation string
	Reference    string
}

func DefaultPaths() Paths {
	return Paths{
		Health: "/api/health",
		Ready:  "/readyz",

		MicrosoftAuth: "/api/auth/microsoft",
		Callback:      "/api/auth/callback",
		Login:         "/api/auth/login",
		InviteLogin:   "/api/auth/invite-login",
		Verify:        "/api/auth/verify",

		Users:            "/api/users",
		Invite:           "/api/users/invite",
		Invitations:      "/api/users/invitations",
		InvitationResend: "/api/users/invitations/{id}/resend",
		Invitation:       "/api/users/invitations/{id}",
		Profile:          "/api/users/profile",
		UserRole:         "/api/users/{id}/role",
		User:             "/api/users/{id}",

		BotApprovals: "/api/bot-approvals",
		BotDecision:  "/api/bot-approvals/{id}/approve",

		ChatMessage:  "/api/chat/message",
		Conversation: "/api/chat/conversations/{id}",
		Reference:    "/api/chat/reference/{id}",
	}
}

// Expand substitutes id into pattern.
func Expand(pattern, id string) string {
	return strings.Replace(pattern, "{id}", url.PathEscape(id), 1)
}
