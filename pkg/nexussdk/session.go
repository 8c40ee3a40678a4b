package nexussdk

import (
	"context"
	"net/http"
	"net/url"
)

// Session is an authenticated caller. Tokens are not refreshed; sign in again
// once a request fails with invalid_token.
type Session struct {
	client *SDKClient
	token  string
	user   User
}

// Token is the bearer token this session sends.
func (s *Session) Token() string { return s.token }

// User is the user returned at sign-in, if the session came from one.
func (s *Session) User() User { return s.user }

func (s *Session) do(ctx context.Context, method, path string, body, out any) error {
	resp, err := s.client.doRequest(ctx, method, path, body, s.token)
	if err != nil {
		return err
	}
	return decodeJSON(resp, out, http.StatusOK)
}

// Verify returns the user behind the session token.
func (s *Session) Verify(ctx context.Context) (*User, error) {
	var out VerifyResponse
	if err := s.do(ctx, http.MethodGet, s.client.Paths.Verify, nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// ============================================================================
// Users
// ============================================================================

// ListUsers lists the caller's organization. Admin only.
func (s *Session) ListUsers(ctx context.Context) ([]UserSummary, error) {
	var out UsersResponse
	if err := s.do(ctx, http.MethodGet, s.client.Paths.Users, nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// UpdateProfile completes or edits the caller's profile.
func (s *Session) UpdateProfile(ctx context.Context, req ProfileRequest) (*UserResponse, error) {
	var out UserResponse
	if err := s.do(ctx, http.MethodPut, s.client.Paths.Profile, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangeRole assigns role to a member. Admin only.
func (s *Session) ChangeRole(ctx context.Context, userID, role string) (*UserResponse, error) {
	var out UserResponse
	path := Expand(s.client.Paths.UserRole, userID)
	if err := s.do(ctx, http.MethodPut, path, RoleRequest{Role: role}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveUser deactivates a member. Admin only.
func (s *Session) RemoveUser(ctx context.Context, userID string) (*MessageResponse, error) {
	var out MessageResponse
	if err := s.do(ctx, http.MethodDelete, Expand(s.client.Paths.User, userID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Invitations
// ============================================================================

// InviteUser emails an invitation. Admin only.
func (s *Session) InviteUser(ctx context.Context, email, role string) (*InvitationResponse, error) {
	var out InvitationResponse
	if err := s.do(ctx, http.MethodPost, s.client.Paths.Invite, InviteRequest{Email: email, Role: role}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListInvitations lists invitations that can still be redeemed. Admin only.
func (s *Session) ListInvitations(ctx context.Context) ([]Invitation, error) {
	var out InvitationsResponse
	if err := s.do(ctx, http.MethodGet, s.client.Paths.Invitations, nil, &out); err != nil {
		return nil, err
	}
	return out.Invitations, nil
}

// ResendInvitation rotates an invitation's token and emails it again.
func (s *Session) ResendInvitation(ctx context.Context, id string) (*InvitationResponse, error) {
	var out InvitationResponse
	if err := s.do(ctx, http.MethodPost, Expand(s.client.Paths.InvitationResend, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RevokeInvitation deletes an unredeemed invitation.
func (s *Session) RevokeInvitation(ctx context.Context, id string) (*MessageResponse, error) {
	var out MessageResponse
	if err := s.do(ctx, http.MethodDelete, Expand(s.client.Paths.Invitation, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Bot approvals
// ============================================================================

// ListBotRequests lists bot access requests, optionally by status.
func (s *Session) ListBotRequests(ctx context.Context, status string) ([]BotRequest, error) {
	path := s.client.Paths.BotApprovals
	if status != "" {
		path += "?" + url.Values{"status": {status}}.Encode()
	}

	var out BotRequestsResponse
	if err := s.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Requests, nil
}

// DecideBotRequest approves or rejects a pending request.
func (s *Session) DecideBotRequest(ctx context.Context, id string, approved bool, reason string) (*DecisionResponse, error) {
	var out DecisionResponse
	req := DecisionRequest{Approved: &approved, Reason: reason}
	if err := s.do(ctx, http.MethodPost, Expand(s.client.Paths.BotDecision, id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Chat
// ============================================================================

// SendMessage asks the assistant a question. An empty conversationID starts a
// new conversation.
func (s *Session) SendMessage(ctx context.Context, message, conversationID string) (*ChatResponse, error) {
	var out ChatResponse
	req := ChatRequest{Message: message, ConversationID: conversationID}
	if err := s.do(ctx, http.MethodPost, s.client.Paths.ChatMessage, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) GetConversation(ctx context.Context, id string) (*ConversationResponse, error) {
	var out ConversationResponse
	if err := s.do(ctx, http.MethodGet, Expand(s.client.Paths.Conversation, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetReference expands a source id cited by the assistant.
func (s *Session) GetReference(ctx context.Context, id string) (*Reference, error) {
	var out ReferenceResponse
	if err := s.do(ctx, http.MethodGet, Expand(s.client.Paths.Reference, id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Reference, nil
}
