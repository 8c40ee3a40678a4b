package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
	"github.com/aussiebroadwan/nexus/internal/nexus/store"
	"github.com/aussiebroadwan/nexus/pkg/jwtx"
	"github.com/aussiebroadwan/nexus/pkg/slogx"
)

type BotApprovalService struct {
	Store store.Store
	Now   func() time.Time
}

// List returns the organization's bot access requests, newest first. An
// empty status lists every request.
func (s *BotApprovalService) List(ctx context.Context, claims jwtx.Claims, status string) ([]domain.BotAccessRequest, error) {
	actor, err := adminFromClaims(claims)
	if err != nil {
		return nil, err
	}

	var filter *domain.BotRequestStatus
	if status = strings.TrimSpace(status); status != "" {
		st, err := domain.ParseBotRequestStatus(status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
		filter = &st
	}

	reqs, err := s.Store.BotRequests().ListBotRequests(ctx, actor.OrganizationID, filter)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list bot requests", slog.Any("error", err))
		return nil, err
	}
	return reqs, nil
}

// Decide approves or rejects a pending request. A request is decided once;
// later attempts fail with ErrConflict.
func (s *BotApprovalService) Decide(ctx context.Context, claims jwtx.Claims, requestID string, approved bool, reason string) (domain.BotAccessRequest, error) {
	log := slogx.FromContext(ctx)

	actor, err := adminFromClaims(claims)
	if err != nil {
		return domain.BotAccessRequest{}, err
	}

	now := clock(s.Now)
	status := domain.DecisionStatus(approved)
	reason = strings.TrimSpace(reason)

	var decided domain.BotAccessRequest
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 1. Requests from other organizations do not exist for the caller.
		req, err := tx.BotRequests().GetBotRequestByID(ctx, requestID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		if req.OrganizationID != actor.OrganizationID {
			return ErrNotFound
		}

		// 2. Exactly once.
		if req.Status != domain.BotRequestPending {
			return fmt.Errorf("%w: request already %s", ErrConflict, req.Status)
		}
		if err := tx.BotRequests().DecideBotRequest(ctx, req.ID, status, actor.UserID, reason, now); err != nil {
			if errors.Is(err, store.ErrStale) {
				return fmt.Errorf("%w: request already decided", ErrConflict)
			}
			return err
		}

		decided, err = tx.BotRequests().GetBotRequestByID(ctx, req.ID)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrConflict):
			log.Warn("bot request decision rejected", slog.String("request_id", requestID), slog.Any("error", err))
		default:
			log.Error("failed to decide bot request", slog.String("request_id", requestID), slog.Any("error", err))
		}
		return domain.BotAccessRequest{}, err
	}

	log.Info("bot request decided",
		slog.String("request_id", decided.ID),
		slog.String("status", string(decided.Status)),
		slog.String("by", actor.UserID),
	)
	return decided, nil
}
