package http

import (
	"net/http"

	"github.com/aussiebroadwan/nexus/internal/nexus/service"
	"github.com/aussiebroadwan/nexus/pkg/httpx"
	"github.com/aussiebroadwan/nexus/pkg/nexussdk"
)

type ChatHandler struct {
	ChatService *service.ChatService
}

// HandleMessage godoc
//
//	@Summary		Send Chat Message
//	@Description	Post a message and receive the assistant's reply. An empty conversation_id or "current_conversation" starts a new conversation.
//	@Tags			Chat
//	@Accept			json
//	@Produce		json
//	@Param			request	body		nexussdk.ChatRequest	true	"Message"
//	@Success		200		{object}	nexussdk.ChatResponse	"response, sources, conversation_id"
//	@Failure		400		{object}	nexussdk.ErrorResponse	"error, message"
//	@Failure		404		{object}	nexussdk.ErrorResponse	"unknown conversation"
//	@Security		BearerAuth
//	@Router			/api/chat/message [post].
func (h *ChatHandler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var req nexussdk.ChatRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	reply, err := h.ChatService.SendMessage(r.Context(), claims, req.Message, req.ConversationID)
	if err != nil {
		writeServiceError(w, r, err, "process chat message")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, nexussdk.ChatResponse{
		Response:       reply.Response,
		Sources:        toSources(reply.Sources),
		ConversationID: reply.ConversationID,
	})
}

// HandleConversation godoc
//
//	@Summary		Get Conversation
//	@Description	Return one of the caller's conversations with its messages in order.
//	@Tags			Chat
//	@Produce		json
//	@Param			id	path		string							true	"Conversation ID"
//	@Success		200	{object}	nexussdk.ConversationResponse	"conversation, messages"
//	@Failure		404	{object}	nexussdk.ErrorResponse			"error, message"
//	@Security		BearerAuth
//	@Router			/api/chat/conversations/{id} [get].
func (h *ChatHandler) HandleConversation(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	view, err := h.ChatService.GetConversation(r.Context(), claims, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err, "load conversation")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toConversation(view))
}

// HandleReference godoc
//
//	@Summary		Get Reference Detail
//	@Description	Return the full detail of a source cited in an assistant reply.
//	@Tags			Chat
//	@Produce		json
//	@Param			id	path		string						true	"Reference ID"
//	@Success		200	{object}	nexussdk.ReferenceResponse	"reference"
//	@Failure		404	{object}	nexussdk.ErrorResponse		"error, message"
//	@Security		BearerAuth
//	@Router			/api/chat/reference/{id} [get].
func (h *ChatHandler) HandleReference(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	ref, err := h.ChatService.GetReferenceDetail(r.Context(), claims, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err, "load reference")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, nexussdk.ReferenceResponse{Reference: toReference(ref)})
}
