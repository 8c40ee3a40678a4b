package responder

import (
	"context"
	"errors"
	"time"
)

var ErrReferenceNotFound = errors.New("responder: reference not found")

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

// ReferenceDetail is the full view of a cited source.
type ReferenceDetail struct {
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

// ReferenceSource looks up the detail behind a source id.
type ReferenceSource interface {
	Reference(ctx context.Context, id string) (ReferenceDetail, error)
}

// StaticReferences synthesises a detail record for any non-empty id.
type StaticReferences struct {
	Now func() time.Time
}

const referenceBody = `This is the full content of the reference. It contains detailed information about the topic discussed, including specific data points, decisions made, and action items identified during the conversation.

The discussion covered multiple aspects:
1. Technical implementation details
2. Timeline and milestones
3. Resource allocation
4. Risk assessment and mitigation strategies

Key participants shared their insights and the team reached consensus on the proposed approach.`

func (s StaticReferences) Reference(ctx context.Context, id string) (ReferenceDetail, error) {
	if err := ctx.Err(); err != nil {
		return ReferenceDetail{}, err
	}
	if id == "" {
		return ReferenceDetail{}, ErrReferenceNotFound
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	return ReferenceDetail{
		ID:          id,
		Title:       "Reference from Teams Channel",
		Type:        "message",
		Source:      "Marketing Team",
		Timestamp:   now().UTC(),
		Author:      "Team Member",
		FullContent: referenceBody,
		Metadata: ReferenceMetadata{
			Channel:      "Marketing Team",
			Team:         "Product Development",
			MessageID:    "msg_" + id,
			Participants: []string{"Sarah Johnson", "Mike Chen", "Alex Wilson"},
			URL:          "https://teams.microsoft.com/l/message/" + id,
		},
		Context: ReferenceContext{
			ThreadContext:   "This message was part of a larger thread about Q4 planning",
			PreviousMessage: "Previous context about the discussion topic...",
			NextMessage:     "Follow-up message with additional details...",
		},
	}, nil
}
