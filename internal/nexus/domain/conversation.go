package domain

import "time"

// NewConversationSentinel is the conversation id clients send to start a new
// conversation.
const NewConversationSentinel = "current_conversation"

const conversationTitleLen = 50

type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

type Conversation struct {
	ID        string
	UserID    string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Source is a citation attached to an assistant reply.
type Source struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type Message struct {
	ID             string
	ConversationID string
	Role           MessageRole
	Content        string
	Sources        []Source // nil for user messages
	CreatedAt      time.Time
}

// ConversationTitle derives a title from the first message: its first 50
// characters followed by "...".
func ConversationTitle(firstMessage string) string {
	r := []rune(firstMessage)
	if len(r) > conversationTitleLen {
		r = r[:conversationTitleLen]
	}
	return string(r) + "..."
}
