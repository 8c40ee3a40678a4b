package http

import (
	"net/http"

	"github.com/aussiebroadwan/nexus/internal/nexus/service"
	"github.com/aussiebroadwan/nexus/pkg/httpx"
	"github.com/aussiebroadwan/nexus/pkg/jwtx"
	"github.com/aussiebroadwan/nexus/pkg/nexussdk"
)

type AuthHandler struct {
	AuthService   *service.AuthService
	InviteService *service.InviteService
}

// requireClaims returns the caller's verified claims, writing a 401 when the
// request carries none.
func requireClaims(w http.ResponseWriter, r *http.Request) (jwtx.Claims, bool) {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, nexussdk.ErrorCodeUnauthenticated, "Authentication required")
		return jwtx.Claims{}, false
	}
	return claims, true
}

// HandleLogin godoc
//
//	@Summary		Password Login
//	@Description	Sign in with email and password. Inactive accounts and accounts without a password are refused.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		nexussdk.LoginRequest		true	"Credentials"
//	@Success		200		{object}	nexussdk.SessionResponse	"user, token"
//	@Failure		400		{object}	nexussdk.ErrorResponse		"error, message"
//	@Failure		401		{object}	nexussdk.ErrorResponse		"error, message"
//	@Failure		429		{object}	nexussdk.ErrorResponse		"error, message"
//	@Router			/api/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req nexussdk.LoginRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	session, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err, "sign in")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toSession(session))
}

// HandleInviteLogin godoc
//
//	@Summary		Redeem Invitation
//	@Description	Redeem an invitation token for the invited email. Creates a pending user on first use and returns a session.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		nexussdk.InviteLoginRequest		true	"Invitation token and email"
//	@Success		200		{object}	nexussdk.InviteLoginResponse	"user, requires_setup, token"
//	@Failure		400		{object}	nexussdk.ErrorResponse			"invalid_invitation, expired"
//	@Failure		403		{object}	nexussdk.ErrorResponse			"account removed"
//	@Failure		429		{object}	nexussdk.ErrorResponse			"error, message"
//	@Router			/api/auth/invite-login [post].
func (h *AuthHandler) HandleInviteLogin(w http.ResponseWriter, r *http.Request) {
	var req nexussdk.InviteLoginRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	res, err := h.InviteService.Redeem(r.Context(), req.InviteToken, req.Email)
	if err != nil {
		writeServiceError(w, r, err, "redeem invitation")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, nexussdk.InviteLoginResponse{
		User:          toUser(res.User),
		RequiresSetup: res.RequiresSetup,
		Token:         res.Token,
	})
}

// HandleMicrosoft godoc
//
//	@Summary		Begin Microsoft Sign-in
//	@Description	Build the Microsoft authorization URL for the given redirect URI. The returned state must be checked by the client on callback.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		nexussdk.MicrosoftAuthRequest	true	"Redirect URI"
//	@Success		200		{object}	nexussdk.MicrosoftAuthResponse	"auth_url, state"
//	@Failure		400		{object}	nexussdk.ErrorResponse			"error, message"
//	@Router			/api/auth/microsoft [post].
func (h *AuthHandler) HandleMicrosoft(w http.ResponseWriter, r *http.Request) {
	var req nexussdk.MicrosoftAuthRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	start, err := h.AuthService.BeginOAuth(r.Context(), req.RedirectURI)
	if err != nil {
		writeServiceError(w, r, err, "start Microsoft sign-in")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, nexussdk.MicrosoftAuthResponse{AuthURL: start.AuthURL, State: start.State})
}

// HandleCallback godoc
//
//	@Summary		Complete Microsoft Sign-in
//	@Description	Exchange the authorization code and sign in the matching directory user.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		nexussdk.CallbackRequest	true	"Authorization code"
//	@Success		200		{object}	nexussdk.SessionResponse	"user, token"
//	@Failure		400		{object}	nexussdk.ErrorResponse		"error, message"
//	@Failure		401		{object}	nexussdk.ErrorResponse		"error, message"
//	@Failure		404		{object}	nexussdk.ErrorResponse		"no matching user"
//	@Router			/api/auth/callback [post].
func (h *AuthHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	var req nexussdk.CallbackRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	session, err := h.AuthService.CompleteOAuth(r.Context(), req.Code, req.State, req.RedirectURI)
	if err != nil {
		writeServiceError(w, r, err, "complete Microsoft sign-in")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toSession(session))
}

// HandleVerify godoc
//
//	@Summary		Verify Session
//	@Description	Return the signed-in user behind the bearer token.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	nexussdk.VerifyResponse	"user"
//	@Failure		401	{object}	nexussdk.ErrorResponse	"error, message"
//	@Failure		404	{object}	nexussdk.ErrorResponse	"error, message"
//	@Security		BearerAuth
//	@Router			/api/auth/verify [get].
func (h *AuthHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	user, err := h.AuthService.CurrentUser(r.Context(), claims)
	if err != nil {
		writeServiceError(w, r, err, "verify session")
		return
	}

	view := toUser(user)
	view.Status = string(user.Status)
	view.OrganizationID = user.OrganizationID
	httpx.WriteJSON(w, http.StatusOK, nexussdk.VerifyResponse{User: view})
}
