package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
	"github.com/aussiebroadwan/nexus/internal/nexus/responder"
	"github.com/aussiebroadwan/nexus/internal/nexus/store"
	"github.com/aussiebroadwan/nexus/pkg/idx"
	"github.com/aussiebroadwan/nexus/pkg/jwtx"
	"github.com/aussiebroadwan/nexus/pkg/slogx"
)

// ChatReply is the assistant's answer to one user message.
type ChatReply struct {
	Response       string
	Sources        []domain.Source
	ConversationID string
}

// ConversationView is a conversation with its messages in order.
type ConversationView struct {
	Conversation domain.Conversation
	Messages     []domain.Message
}

type ChatService struct {
	Store      store.Store
	Responder  responder.Responder
	References responder.ReferenceSource
	Now        func() time.Time
}

// SendMessage appends a user message and the assistant's reply to a
// conversation, starting a new one when conversationID is empty or the
// new-conversation sentinel.
func (s *ChatService) SendMessage(ctx context.Context, claims jwtx.Claims, text, conversationID string) (ChatReply, error) {
	log := slogx.FromContext(ctx)

	actor, err := ActorFromClaims(claims)
	if err != nil {
		return ChatReply{}, err
	}
	if strings.TrimSpace(text) == "" {
		return ChatReply{}, ErrInvalidRequest
	}

	now := clock(s.Now)
	var out ChatReply
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 1. Resolve or start the conversation.
		var conv domain.Conversation
		if conversationID == "" || conversationID == domain.NewConversationSentinel {
			conv = domain.Conversation{
				ID:        idx.New().String(),
				UserID:    actor.UserID,
				Title:     domain.ConversationTitle(text),
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := tx.Conversations().CreateConversation(ctx, conv); err != nil {
				return err
			}
		} else {
			c, err := tx.Conversations().GetConversationByID(ctx, conversationID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return ErrNotFound
				}
				return err
			}
			if c.UserID != actor.UserID {
				return ErrNotFound
			}
			conv = c
		}

		// 2. Record the question.
		if err := tx.Messages().CreateMessage(ctx, domain.Message{
			ID:             idx.New().String(),
			ConversationID: conv.ID,
			Role:           domain.MessageRoleUser,
			Content:        text,
			CreatedAt:      now,
		}); err != nil {
			return err
		}

		// 3. Answer and record the answer.
		reply, err := s.Responder.Respond(ctx, text)
		if err != nil {
			return err
		}
		if err := tx.Messages().CreateMessage(ctx, domain.Message{
			ID:             idx.New().String(),
			ConversationID: conv.ID,
			Role:           domain.MessageRoleAssistant,
			Content:        reply.Text,
			Sources:        reply.Sources,
			CreatedAt:      now,
		}); err != nil {
			return err
		}

		if err := tx.Conversations().TouchConversation(ctx, conv.ID, now); err != nil {
			return err
		}

		out = ChatReply{Response: reply.Text, Sources: reply.Sources, ConversationID: conv.ID}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("chat message for unknown conversation", slog.String("conversation_id", conversationID))
		} else {
			log.Error("failed to record chat exchange", slog.Any("error", err))
		}
		return ChatReply{}, err
	}

	log.Debug("chat exchange recorded",
		slog.String("conversation_id", out.ConversationID),
		slog.Int("sources", len(out.Sources)),
	)
	return out, nil
}

// GetConversation returns one of the caller's conversations.
func (s *ChatService) GetConversation(ctx context.Context, claims jwtx.Claims, id string) (ConversationView, error) {
	actor, err := ActorFromClaims(claims)
	if err != nil {
		return ConversationView{}, err
	}

	conv, err := s.Store.Conversations().GetConversationByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ConversationView{}, ErrNotFound
		}
		return ConversationView{}, err
	}
	if conv.UserID != actor.UserID {
		return ConversationView{}, ErrNotFound
	}

	msgs, err := s.Store.Messages().ListMessagesByConversation(ctx, conv.ID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list messages", slog.Any("error", err))
		return ConversationView{}, err
	}
	return ConversationView{Conversation: conv, Messages: msgs}, nil
}

// GetReferenceDetail expands a cited source id.
func (s *ChatService) GetReferenceDetail(ctx context.Context, claims jwtx.Claims, referenceID string) (responder.ReferenceDetail, error) {
	if _, err := ActorFromClaims(claims); err != nil {
		return responder.ReferenceDetail{}, err
	}
	if strings.TrimSpace(referenceID) == "" {
		return responder.ReferenceDetail{}, ErrNotFound
	}

	d, err := s.References.Reference(ctx, referenceID)
	if err != nil {
		if errors.Is(err, responder.ErrReferenceNotFound) {
			return responder.ReferenceDetail{}, ErrNotFound
		}
		return responder.ReferenceDetail{}, err
	}
	return d, nil
}
