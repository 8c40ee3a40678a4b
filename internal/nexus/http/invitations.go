package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/nexus/internal/nexus/service"
	"github.com/aussiebroadwan/nexus/pkg/httpx"
	"github.com/aussiebroadwan/nexus/pkg/nexussdk"
	"github.com/aussiebroadwan/nexus/pkg/slogx"
)

type InvitationsHandler struct {
	InviteService *service.InviteService
}

// HandleInvite godoc
//
//	@Summary		Invite User
//	@Description	Create an invitation for an email address and send the sign-in link. Admin only.
//	@Description	If the email cannot be delivered the invitation is kept and can be resent.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		nexussdk.InviteRequest		true	"Invitee email and role"
//	@Success		200		{object}	nexussdk.InvitationResponse	"message, invitation"
//	@Failure		400		{object}	nexussdk.ErrorResponse		"error, message"
//	@Failure		403		{object}	nexussdk.ErrorResponse		"error, message"
//	@Failure		500		{object}	nexussdk.ErrorResponse		"delivery_failed"
//	@Security		BearerAuth
//	@Router			/api/users/invite [post].
func (h *InvitationsHandler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var req nexussdk.InviteRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	inv, err := h.InviteService.Invite(r.Context(), claims, req.Email, req.Role)
	if err != nil {
		if errors.Is(err, service.ErrDeliveryFailed) {
			slogx.FromContext(r.Context()).Warn("invitation stored but not delivered", "invitation_id", inv.ID)
		}
		writeServiceError(w, r, err, "create invitation")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, nexussdk.InvitationResponse{
		Message:    "Invitation sent successfully",
		Invitation: toInvitation(inv),
	})
}

// HandleList godoc
//
//	@Summary		List Pending Invitations
//	@Description	List unredeemed, unexpired invitations of the caller's organization. Admin only.
//	@Tags			Invitations
//	@Produce		json
//	@Success		200	{object}	nexussdk.InvitationsResponse	"invitations"
//	@Failure		403	{object}	nexussdk.ErrorResponse			"error, message"
//	@Security		BearerAuth
//	@Router			/api/users/invitations [get].
func (h *InvitationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	invs, err := h.InviteService.ListInvitations(r.Context(), claims)
	if err != nil {
		writeServiceError(w, r, err, "list invitations")
		return
	}

	resp := nexussdk.InvitationsResponse{Invitations: make([]nexussdk.Invitation, 0, len(invs))}
	for _, inv := range invs {
		resp.Invitations = append(resp.Invitations, toInvitation(inv))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleResend godoc
//
//	@Summary		Resend Invitation
//	@Description	Issue a fresh token for a pending invitation, extend its expiry and email the new link. The previous link stops working.
//	@Tags			Invitations
//	@Produce		json
//	@Param			id	path		string						true	"Invitation ID"
//	@Success		200	{object}	nexussdk.InvitationResponse	"message, invitation"
//	@Failure		400	{object}	nexussdk.ErrorResponse		"already redeemed"
//	@Failure		404	{object}	nexussdk.ErrorResponse		"error, message"
//	@Failure		500	{object}	nexussdk.ErrorResponse		"delivery_failed"
//	@Security		BearerAuth
//	@Router			/api/users/invitations/{id}/resend [post].
func (h *InvitationsHandler) HandleResend(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	inv, err := h.InviteService.ResendInvitation(r.Context(), claims, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err, "resend invitation")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, nexussdk.InvitationResponse{
		Message:    "Invitation resent successfully",
		Invitation: toInvitation(inv),
	})
}

// HandleRevoke godoc
//
//	@Summary		Revoke Invitation
//	@Description	Delete an unredeemed invitation. Admin only.
//	@Tags			Invitations
//	@Produce		json
//	@Param			id	path		string						true	"Invitation ID"
//	@Success		200	{object}	nexussdk.MessageResponse	"message"
//	@Failure		400	{object}	nexussdk.ErrorResponse		"already redeemed"
//	@Failure		404	{object}	nexussdk.ErrorResponse		"error, message"
//	@Security		BearerAuth
//	@Router			/api/users/invitations/{id} [delete].
func (h *InvitationsHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	if err := h.InviteService.RevokeInvitation(r.Context(), claims, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err, "revoke invitation")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, nexussdk.MessageResponse{Message: "Invitation revoked successfully"})
}
