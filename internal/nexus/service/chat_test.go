package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
	"github.com/aussiebroadwan/nexus/internal/nexus/responder"
	"github.com/stretchr/testify/require"
)

type failingResponder struct{}

func (failingResponder) Respond(context.Context, string) (responder.Reply, error) {
	return responder.Reply{}, errors.New("model offline")
}

func newChatService(e *env) *ChatService {
	return &ChatService{
		Store:      e.store,
		Responder:  responder.NewKeywordResponder(),
		References: responder.StaticReferences{Now: e.clock},
		Now:        e.clock,
	}
}

func TestSendMessage(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	svc := newChatService(e)
	user := e.addUser(t, e.org, "sam@acmecorp.com", domain.RoleEndUser, domain.UserStatusActive)

	first, err := svc.SendMessage(ctx, claimsFor(user), "What are our Q4 priorities for the whole marketing org?", domain.NewConversationSentinel)
	require.NoError(t, err)
	require.Contains(t, first.Response, "Q4 priorities")
	require.Equal(t, []domain.Source{
		{ID: "ref_1", Title: "Marketing Team Channel"},
		{ID: "ref_2", Title: "Product Development"},
		{ID: "ref_3", Title: "Q4 Planning Meeting"},
	}, first.Sources)
	require.NotEmpty(t, first.ConversationID)

	second, err := svc.SendMessage(ctx, claimsFor(user), "and the launch?", first.ConversationID)
	require.NoError(t, err)
	require.Equal(t, first.ConversationID, second.ConversationID)
	require.Equal(t, "ref_6", second.Sources[0].ID)

	view, err := svc.GetConversation(ctx, claimsFor(user), first.ConversationID)
	require.NoError(t, err)
	require.Equal(t, "What are our Q4 priorities for the whole marketing...", view.Conversation.Title)

	require.Len(t, view.Messages, 4)
	roles := make([]domain.MessageRole, 0, 4)
	for _, m := range view.Messages {
		roles = append(roles, m.Role)
	}
	require.Equal(t, []domain.MessageRole{
		domain.MessageRoleUser, domain.MessageRoleAssistant,
		domain.MessageRoleUser, domain.MessageRoleAssistant,
	}, roles)
	require.Equal(t, "and the launch?", view.Messages[2].Content)
	require.Nil(t, view.Messages[0].Sources)
	require.Len(t, view.Messages[1].Sources, 3)

	t.Run("empty id starts a new conversation", func(t *testing.T) {
		r, err := svc.SendMessage(ctx, claimsFor(user), "hello", "")
		require.NoError(t, err)
		require.NotEqual(t, first.ConversationID, r.ConversationID)
		require.Equal(t, "ref_general", r.Sources[0].ID)
	})

	t.Run("unknown conversation", func(t *testing.T) {
		_, err := svc.SendMessage(ctx, claimsFor(user), "hello", "missing")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("someone else's conversation", func(t *testing.T) {
		_, err := svc.SendMessage(ctx, claimsFor(e.admin), "hello", first.ConversationID)
		require.ErrorIs(t, err, ErrNotFound)
		_, err = svc.GetConversation(ctx, claimsFor(e.admin), first.ConversationID)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("blank message", func(t *testing.T) {
		_, err := svc.SendMessage(ctx, claimsFor(user), "   ", "")
		require.ErrorIs(t, err, ErrInvalidRequest)
	})
}

func TestSendMessageIsAtomic(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	svc := newChatService(e)

	first, err := svc.SendMessage(ctx, claimsFor(e.admin), "meeting notes", "")
	require.NoError(t, err)

	svc.Responder = failingResponder{}
	_, err = svc.SendMessage(ctx, claimsFor(e.admin), "another question", first.ConversationID)
	require.Error(t, err)

	// The user message of the failed exchange was rolled back.
	view, err := svc.GetConversation(ctx, claimsFor(e.admin), first.ConversationID)
	require.NoError(t, err)
	require.Len(t, view.Messages, 2)
}

func TestGetReferenceDetail(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	svc := newChatService(e)

	d, err := svc.GetReferenceDetail(ctx, claimsFor(e.admin), "ref_2")
	require.NoError(t, err)
	require.Equal(t, "ref_2", d.ID)
	require.Equal(t, "msg_ref_2", d.Metadata.MessageID)
	require.True(t, strings.HasPrefix(d.Metadata.URL, "https://teams.microsoft.com/"))

	_, err = svc.GetReferenceDetail(ctx, claimsFor(e.admin), "")
	require.ErrorIs(t, err, ErrNotFound)
}
