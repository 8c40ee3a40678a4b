package domain

import (
	"errors"
	"fmt"
	"time"
)

type BotRequestStatus string

const (
	BotRequestPending  BotRequestStatus = "pending"
	BotRequestApproved BotRequestStatus = "approved"
	BotRequestRejected BotRequestStatus = "rejected"
)

var ErrUnknownBotRequestStatus = errors.New("domain: unknown bot request status")

func ParseBotRequestStatus(s string) (BotRequestStatus, error) {
	switch BotRequestStatus(s) {
	case BotRequestPending, BotRequestApproved, BotRequestRejected:
		return BotRequestStatus(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBotRequestStatus, s)
	}
}

// BotAccessRequest asks an admin to let the chat bot read a channel. Status
// moves from pending to approved or rejected exactly once.
type BotAccessRequest struct {
	ID             string
	OrganizationID string
	ChannelName    string
	ChannelType    string // "Team" or "Channel"
	RequestedBy    string // display name of the requester
	MemberCount    int
	Status         BotRequestStatus
	ApprovedBy     string // user id of the deciding admin, empty while pending
	Reason         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DecisionStatus maps an approve/reject flag to its terminal status.
func DecisionStatus(approved bool) BotRequestStatus {
	if approved {
		return BotRequestApproved
	}
	return BotRequestRejected
}
