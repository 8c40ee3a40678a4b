package http

import (
	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
	"github.com/aussiebroadwan/nexus/internal/nexus/responder"
	"github.com/aussiebroadwan/nexus/internal/nexus/service"
	"github.com/aussiebroadwan/nexus/pkg/nexussdk"
)

func toUser(u domain.User) nexussdk.User {
	return nexussdk.User{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.DisplayName(),
		Role:  u.Role.String(),
	}
}

func toSession(s service.Session) nexussdk.SessionResponse {
	return nexussdk.SessionResponse{User: toUser(s.User), Token: s.Token}
}

func toUserSummary(u domain.User) nexussdk.UserSummary {
	return nexussdk.UserSummary{
		ID:         u.ID,
		Name:       u.DisplayName(),
		Email:      u.Email,
		Role:       u.Role.String(),
		Status:     string(u.Status),
		Department: u.Department,
		JobTitle:   u.JobTitle,
		LastActive: u.LastActiveAt,
	}
}

func toInvitation(inv domain.Invitation) nexussdk.Invitation {
	return nexussdk.Invitation{
		ID:        inv.ID,
		Email:     inv.Email,
		Role:      inv.Role.String(),
		ExpiresAt: inv.ExpiresAt,
	}
}

func toBotRequest(br domain.BotAccessRequest) nexussdk.BotRequest {
	return nexussdk.BotRequest{
		ID:          br.ID,
		ChannelName: br.ChannelName,
		ChannelType: br.ChannelType,
		RequestedBy: br.RequestedBy,
		MemberCount: br.MemberCount,
		CreatedAt:   br.CreatedAt,
		Status:      string(br.Status),
	}
}

// toSources never returns nil so replies always carry a JSON array.
func toSources(src []domain.Source) []nexussdk.Source {
	out := make([]nexussdk.Source, 0, len(src))
	for _, s := range src {
		out = append(out, nexussdk.Source{Title: s.Title, ID: s.ID})
	}
	return out
}

func toConversation(v service.ConversationView) nexussdk.ConversationResponse {
	msgs := make([]nexussdk.ChatMessage, 0, len(v.Messages))
	for _, m := range v.Messages {
		cm := nexussdk.ChatMessage{
			ID:        m.ID,
			Role:      string(m.Role),
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		}
		if len(m.Sources) > 0 {
			cm.Sources = toSources(m.Sources)
		}
		msgs = append(msgs, cm)
	}
	return nexussdk.ConversationResponse{
		Conversation: nexussdk.Conversation{
			ID:        v.Conversation.ID,
			Title:     v.Conversation.Title,
			CreatedAt: v.Conversation.CreatedAt,
			UpdatedAt: v.Conversation.UpdatedAt,
		},
		Messages: msgs,
	}
}

func toReference(d responder.ReferenceDetail) nexussdk.Reference {
	return nexussdk.Reference{
		ID:          d.ID,
		Title:       d.Title,
		Type:        d.Type,
		Source:      d.Source,
		Timestamp:   d.Timestamp,
		Author:      d.Author,
		FullContent: d.FullContent,
		Metadata: nexussdk.ReferenceMetadata{
			Channel:      d.Metadata.Channel,
			Team:         d.Metadata.Team,
			MessageID:    d.Metadata.MessageID,
			Participants: d.Metadata.Participants,
			URL:          d.Metadata.URL,
		},
		Context: nexussdk.ReferenceContext{
			ThreadContext:   d.Context.ThreadContext,
			PreviousMessage: d.Context.PreviousMessage,
			NextMessage:     d.Context.NextMessage,
		},
	}
}
