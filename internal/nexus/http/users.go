package http

import (
	"net/http"

	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
	"github.com/aussiebroadwan/nexus/internal/nexus/service"
	"github.com/aussiebroadwan/nexus/pkg/httpx"
	"github.com/aussiebroadwan/nexus/pkg/nexussdk"
)

type UsersHandler struct {
	UserService *service.UserService
}

// HandleList godoc
//
//	@Summary		List Users
//	@Description	List every user in the caller's organization. Admin only.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	nexussdk.UsersResponse	"users"
//	@Failure		401	{object}	nexussdk.ErrorResponse	"error, message"
//	@Failure		403	{object}	nexussdk.ErrorResponse	"error, message"
//	@Security		BearerAuth
//	@Router			/api/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	users, err := h.UserService.ListUsers(r.Context(), claims)
	if err != nil {
		writeServiceError(w, r, err, "list users")
		return
	}

	resp := nexussdk.UsersResponse{Users: make([]nexussdk.UserSummary, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, toUserSummary(u))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleProfile godoc
//
//	@Summary		Complete Profile
//	@Description	Update the caller's profile and set a password. The account becomes active.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		nexussdk.ProfileRequest	true	"Profile fields"
//	@Success		200		{object}	nexussdk.UserResponse	"message, user"
//	@Failure		400		{object}	nexussdk.ErrorResponse	"error, message"
//	@Failure		401		{object}	nexussdk.ErrorResponse	"error, message"
//	@Failure		404		{object}	nexussdk.ErrorResponse	"error, message"
//	@Security		BearerAuth
//	@Router			/api/users/profile [put].
func (h *UsersHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var req nexussdk.ProfileRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	fields := domain.ProfileFields{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Department:  req.Department,
		JobTitle:    req.JobTitle,
		PhoneNumber: req.PhoneNumber,
		Timezone:    req.Timezone,
	}
	user, err := h.UserService.CompleteProfile(r.Context(), claims, fields, req.Password)
	if err != nil {
		writeServiceError(w, r, err, "update profile")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, nexussdk.UserResponse{
		Message: "Profile updated successfully",
		User:    toUser(user),
	})
}

// HandleChangeRole godoc
//
//	@Summary		Change User Role
//	@Description	Assign a new role to a member of the caller's organization. Admin only.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"User ID"
//	@Param			request	body		nexussdk.RoleRequest	true	"New role"
//	@Success		200		{object}	nexussdk.UserResponse	"message, user"
//	@Failure		400		{object}	nexussdk.ErrorResponse	"error, message"
//	@Failure		403		{object}	nexussdk.ErrorResponse	"error, message"
//	@Failure		404		{object}	nexussdk.ErrorResponse	"error, message"
//	@Security		BearerAuth
//	@Router			/api/users/{id}/role [put].
func (h *UsersHandler) HandleChangeRole(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var req nexussdk.RoleRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	user, err := h.UserService.ChangeRole(r.Context(), claims, r.PathValue("id"), req.Role)
	if err != nil {
		writeServiceError(w, r, err, "change role")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, nexussdk.UserResponse{
		Message: "Role updated successfully",
		User:    toUser(user),
	})
}

// HandleRemove godoc
//
//	@Summary		Remove User
//	@Description	Deactivate a member of the caller's organization. Admin only.
//	@Tags			Users
//	@Produce		json
//	@Param			id	path		string						true	"User ID"
//	@Success		200	{object}	nexussdk.MessageResponse	"message"
//	@Failure		400	{object}	nexussdk.ErrorResponse		"error, message"
//	@Failure		403	{object}	nexussdk.ErrorResponse		"error, message"
//	@Failure		404	{object}	nexussdk.ErrorResponse		"error, message"
//	@Security		BearerAuth
//	@Router			/api/users/{id} [delete].
func (h *UsersHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	if err := h.UserService.RemoveUser(r.Context(), claims, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err, "remove user")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, nexussdk.MessageResponse{Message: "User removed successfully"})
}
