// Package responder produces the assistant side of a chat exchange.
package responder

import (
	"context"
	"strings"

	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
)

// Reply is an assistant answer with the sources it cites.
type Reply struct {
	Text    string
	Sources []domain.Source
}

// Responder answers a user's chat message.
type Responder interface {
	Respond(ctx context.Context, text string) (Reply, error)
}

// Rule maps a keyword to a canned reply.
type Rule struct {
	Keyword string
	Reply   Reply
}

// KeywordResponder matches the lowercased message against Rules in order.
// The first rule whose keyword appears wins; otherwise Fallback is returned.
type KeywordResponder struct {
	Rules    []Rule
	Fallback Reply
}

// NewKeywordResponder returns the demo responder with its built-in table.
func NewKeywordResponder() *KeywordResponder {
	return &KeywordResponder{Rules: DefaultRules(), Fallback: DefaultFallback()}
}

func (k *KeywordResponder) Respond(ctx context.Context, text string) (Reply, error) {
	if err := ctx.Err(); err != nil {
		return Reply{}, err
	}

	lower := strings.ToLower(text)
	for _, r := range k.Rules {
		if strings.Contains(lower, r.Keyword) {
			return clone(r.Reply), nil
		}
	}
	return clone(k.Fallback), nil
}

// clone keeps callers from aliasing the table's source slices.
func clone(r Reply) Reply {
	out := Reply{Text: r.Text}
	if r.Sources != nil {
		out.Sources = append([]domain.Source(nil), r.Sources...)
	}
	return out
}

func DefaultRules() []Rule {
	return []Rule{
		{
			Keyword: "q4",
			Reply: Reply{
				Text: "Based on discussions in the Marketing Team and Product Development channels, the key Q4 priorities include: " +
					"1) Launching the new product beta by October 15th, 2) Increasing customer acquisition by 25%, and " +
					"3) Implementing the new CRM system. The marketing team has allocated additional budget for digital campaigns, " +
					"and engineering is focusing on performance optimizations.",
				Sources: []domain.Source{
					{ID: "ref_1", Title: "Marketing Team Channel"},
					{ID: "ref_2", Title: "Product Development"},
					{ID: "ref_3", Title: "Q4 Planning Meeting"},
				},
			},
		},
		{
			Keyword: "meeting",
			Reply: Reply{
				Text: "From last week's standup notes in the Engineering channel: The team completed 8 story points, " +
					"resolved 3 critical bugs, and started work on the authentication system. Sarah mentioned the API " +
					"integration is 80% complete, and Mike flagged potential performance issues that need investigation. " +
					"Next sprint planning is scheduled for Friday.",
				Sources: []domain.Source{
					{ID: "ref_4", Title: "Engineering Standup"},
					{ID: "ref_5", Title: "Sprint Planning Notes"},
				},
			},
		},
		{
			Keyword: "launch",
			Reply: Reply{
				Text: "According to the Product Development channel, the beta release is scheduled for October 15th. " +
					"The current status shows: UI/UX design is complete, backend APIs are 85% done, and QA testing " +
					"begins next week. The team is confident about meeting the deadline, but they've identified " +
					"database optimization as a potential risk factor.",
				Sources: []domain.Source{
					{ID: "ref_6", Title: "Product Development"},
					{ID: "ref_7", Title: "Beta Release Timeline"},
				},
			},
		},
	}
}

func DefaultFallback() Reply {
	return Reply{
		Text: "I found relevant information from your Teams channels. Based on recent discussions, I can provide " +
			"insights about your team's projects, meetings, and shared documents. Could you be more specific " +
			"about what you'd like to know?",
		Sources: []domain.Source{
			{ID: "ref_general", Title: "General"},
			{ID: "ref_team", Title: "Team Discussions"},
		},
	}
}
