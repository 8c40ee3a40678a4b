package http

import (
	"net/http"

	"github.com/aussiebroadwan/nexus/internal/nexus/service"
	"github.com/aussiebroadwan/nexus/pkg/httpx"
	"github.com/aussiebroadwan/nexus/pkg/nexussdk"
)

type BotApprovalsHandler struct {
	BotApprovalService *service.BotApprovalService
}

// HandleList godoc
//
//	@Summary		List Bot Access Requests
//	@Description	List the organization's bot access requests, newest first, optionally filtered by status. Admin only.
//	@Tags			Bot Approvals
//	@Produce		json
//	@Param			status	query		string							false	"pending, approved or rejected"
//	@Success		200		{object}	nexussdk.BotRequestsResponse	"requests"
//	@Failure		400		{object}	nexussdk.ErrorResponse			"error, message"
//	@Failure		403		{object}	nexussdk.ErrorResponse			"error, message"
//	@Security		BearerAuth
//	@Router			/api/bot-approvals [get].
func (h *BotApprovalsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	reqs, err := h.BotApprovalService.List(r.Context(), claims, r.URL.Query().Get("status"))
	if err != nil {
		writeServiceError(w, r, err, "list bot requests")
		return
	}

	resp := nexussdk.BotRequestsResponse{Requests: make([]nexussdk.BotRequest, 0, len(reqs))}
	for _, br := range reqs {
		resp.Requests = append(resp.Requests, toBotRequest(br))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleDecide godoc
//
//	@Summary		Decide Bot Access Request
//	@Description	Approve or reject a pending bot access request. A request can only be decided once. Admin only.
//	@Tags			Bot Approvals
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Request ID"
//	@Param			request	body		nexussdk.DecisionRequest	true	"Decision"
//	@Success		200		{object}	nexussdk.DecisionResponse	"message, request"
//	@Failure		400		{object}	nexussdk.ErrorResponse		"already decided"
//	@Failure		404		{object}	nexussdk.ErrorResponse		"error, message"
//	@Security		BearerAuth
//	@Router			/api/bot-approvals/{id}/approve [post].
func (h *BotApprovalsHandler) HandleDecide(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var req nexussdk.DecisionRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	br, err := h.BotApprovalService.Decide(r.Context(), claims, r.PathValue("id"), *req.Approved, req.Reason)
	if err != nil {
		writeServiceError(w, r, err, "decide bot request")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, nexussdk.DecisionResponse{
		Message: "Bot request " + string(br.Status) + " successfully",
		Request: nexussdk.DecisionSummary{ID: br.ID, Status: string(br.Status)},
	})
}
