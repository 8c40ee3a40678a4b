// Package nexus holds the OpenAPI document served under /swagger/.
//
// Regenerate from the handler annotations with:
//
//	swag init -g internal/nexus/http/router.go -o api/nexus --parseDependency
package nexus

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "AussieBroadWAN Team",
            "url": "https://github.com/aussiebroadwan/nexus"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/health": {"get": {"tags": ["Health"], "summary": "Health Check Endpoint", "produces": ["application/json"], "responses": {"200": {"description": "status, timestamp", "schema": {"$ref": "#/definitions/nexussdk.HealthResponse"}}}}},
        "/readyz": {"get": {"tags": ["Health"], "summary": "Readiness Check Endpoint", "produces": ["application/json"], "responses": {"200": {"description": "status, uptime, version, checks", "schema": {"$ref": "#/definitions/nexussdk.HealthResponse"}}, "503": {"description": "service not ready", "schema": {"$ref": "#/definitions/nexussdk.HealthResponse"}}}}},
        "/api/auth/login": {"post": {"tags": ["Auth"], "summary": "Password Login", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/nexussdk.LoginRequest"}}], "responses": {"200": {"description": "user, token", "schema": {"$ref": "#/definitions/nexussdk.SessionResponse"}}, "401": {"description": "error, message", "schema": {"$ref": "#/definitions/nexussdk.ErrorResponse"}}}}},
        "/api/auth/invite-login": {"post": {"tags": ["Auth"], "summary": "Redeem Invitation", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/nexussdk.InviteLoginRequest"}}], "responses": {"200": {"description": "user, requires_setup, token", "schema": {"$ref": "#/definitions/nexussdk.InviteLoginResponse"}}, "400": {"description": "invalid_invitation, expired", "schema": {"$ref": "#/definitions/nexussdk.ErrorResponse"}}, "403": {"description": "account removed", "schema": {"$ref": "#/definitions/nexussdk.ErrorResponse"}}}}},
        "/api/auth/microsoft": {"post": {"tags": ["Auth"], "summary": "Begin Microsoft Sign-in", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/nexussdk.MicrosoftAuthRequest"}}], "responses": {"200": {"description": "auth_url, state", "schema": {"$ref": "#/definitions/nexussdk.MicrosoftAuthResponse"}}}}},
        "/api/auth/callback": {"post": {"tags": ["Auth"], "summary": "Complete Microsoft Sign-in", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/nexussdk.CallbackRequest"}}], "responses": {"200": {"description": "user, token", "schema": {"$ref": "#/definitions/nexussdk.SessionResponse"}}, "404": {"description": "no matching user", "schema": {"$ref": "#/definitions/nexussdk.ErrorResponse"}}}}},
        "/api/auth/verify": {"get": {"security": [{"BearerAuth": []}], "tags": ["Auth"], "summary": "Verify Session", "produces": ["application/json"], "responses": {"200": {"description": "user", "schema": {"$ref": "#/definitions/nexussdk.VerifyResponse"}}, "401": {"description": "error, message", "schema": {"$ref": "#/definitions/nexussdk.ErrorResponse"}}}}},
        "/api/users": {"get": {"security": [{"BearerAuth": []}], "tags": ["Users"], "summary": "List Users", "produces": ["application/json"], "responses": {"200": {"description": "users", "schema": {"$ref": "#/definitions/nexussdk.UsersResponse"}}, "403": {"description": "error, message", "schema": {"$ref": "#/definitions/nexussdk.ErrorResponse"}}}}},
        "/api/users/profile": {"put": {"security": [{"BearerAuth": []}], "tags": ["Users"], "summary": "Complete Profile", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/nexussdk.ProfileRequest"}}], "responses": {"200": {"description": "message, user", "schema": {"$ref": "#/definitions/nexussdk.UserResponse"}}}}},
        "/api/users/{id}/role": {"put": {"security": [{"BearerAuth": []}], "tags": ["Users"], "summary": "Change User Role", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}, {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/nexussdk.RoleRequest"}}], "responses": {"200": {"description": "message, user", "schema": {"$ref": "#/definitions/nexussdk.UserResponse"}}}}},
        "/api/users/{id}": {"delete": {"security": [{"BearerAuth": []}], "tags": ["Users"], "summary": "Remove User", "produces": ["application/json"], "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "message", "schema": {"$ref": "#/definitions/nexussdk.MessageResponse"}}}}},
        "/api/users/invite": {"post": {"security": [{"BearerAuth": []}], "tags": ["Invitations"], "summary": "Invite User", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/nexussdk.InviteRequest"}}], "responses": {"200": {"description": "message, invitation", "schema": {"$ref": "#/definitions/nexussdk.InvitationResponse"}}, "500": {"description": "delivery_failed", "schema": {"$ref": "#/definitions/nexussdk.ErrorResponse"}}}}},
        "/api/users/invitations": {"get": {"security": [{"BearerAuth": []}], "tags": ["Invitations"], "summary": "List Pending Invitations", "produces": ["application/json"], "responses": {"200": {"description": "invitations", "schema": {"$ref": "#/definitions/nexussdk.InvitationsResponse"}}}}},
        "/api/users/invitations/{id}/resend": {"post": {"security": [{"BearerAuth": []}], "tags": ["Invitations"], "summary": "Resend Invitation", "produces": ["application/json"], "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "message, invitation", "schema": {"$ref": "#/definitions/nexussdk.InvitationResponse"}}}}},
        "/api/users/invitations/{id}": {"delete": {"security": [{"BearerAuth": []}], "tags": ["Invitations"], "summary": "Revoke Invitation", "produces": ["application/json"], "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "message", "schema": {"$ref": "#/definitions/nexussdk.MessageResponse"}}}}},
        "/api/bot-approvals": {"get": {"security": [{"BearerAuth": []}], "tags": ["Bot Approvals"], "summary": "List Bot Access Requests", "produces": ["application/json"], "parameters": [{"type": "string", "in": "query", "name": "status"}], "responses": {"200": {"description": "requests", "schema": {"$ref": "#/definitions/nexussdk.BotRequestsResponse"}}}}},
        "/api/bot-approvals/{id}/approve": {"post": {"security": [{"BearerAuth": []}], "tags": ["Bot Approvals"], "summary": "Decide Bot Access Request", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}, {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/nexussdk.DecisionRequest"}}], "responses": {"200": {"description": "message, request", "schema": {"$ref": "#/definitions/nexussdk.DecisionResponse"}}, "400": {"description": "already decided", "schema": {"$ref": "#/definitions/nexussdk.ErrorResponse"}}}}},
        "/api/chat/message": {"post": {"security": [{"BearerAuth": []}], "tags": ["Chat"], "summary": "Send Chat Message", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/nexussdk.ChatRequest"}}], "responses": {"200": {"description": "response, sources, conversation_id", "schema": {"$ref": "#/definitions/nexussdk.ChatResponse"}}}}},
        "/api/chat/conversations/{id}": {"get": {"security": [{"BearerAuth": []}], "tags": ["Chat"], "summary": "Get Conversation", "produces": ["application/json"], "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "conversation, messages", "schema": {"$ref": "#/definitions/nexussdk.ConversationResponse"}}}}},
        "/api/chat/reference/{id}": {"get": {"security": [{"BearerAuth": []}], "tags": ["Chat"], "summary": "Get Reference Detail", "produces": ["application/json"], "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "reference", "schema": {"$ref": "#/definitions/nexussdk.ReferenceResponse"}}}}}
    },
    "definitions": {
        "nexussdk.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}, "message": {"type": "string"}}},
        "nexussdk.HealthResponse": {"type": "object", "properties": {"status": {"type": "string"}, "timestamp": {"type": "string"}, "uptime": {"type": "string"}, "version": {"type": "string"}, "checks": {"type": "object", "properties": {"database": {"type": "string"}}}}},
        "nexussdk.User": {"type": "object", "properties": {"id": {"type": "string"}, "email": {"type": "string"}, "name": {"type": "string"}, "role": {"type": "string"}, "status": {"type": "string"}, "organizationId": {"type": "string"}}},
        "nexussdk.LoginRequest": {"type": "object", "required": ["email", "password"], "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "nexussdk.SessionResponse": {"type": "object", "properties": {"user": {"$ref": "#/definitions/nexussdk.User"}, "token": {"type": "string"}}},
        "nexussdk.InviteLoginRequest": {"type": "object", "required": ["invite_token", "email"], "properties": {"invite_token": {"type": "string"}, "email": {"type": "string"}}},
        "nexussdk.InviteLoginResponse": {"type": "object", "properties": {"user": {"$ref": "#/definitions/nexussdk.User"}, "requires_setup": {"type": "boolean"}, "token": {"type": "string"}}},
        "nexussdk.MicrosoftAuthRequest": {"type": "object", "required": ["redirect_uri"], "properties": {"redirect_uri": {"type": "string"}}},
        "nexussdk.MicrosoftAuthResponse": {"type": "object", "properties": {"auth_url": {"type": "string"}, "state": {"type": "string"}}},
        "nexussdk.CallbackRequest": {"type": "object", "required": ["code"], "properties": {"code": {"type": "string"}, "state": {"type": "string"}, "redirect_uri": {"type": "string"}}},
        "nexussdk.VerifyResponse": {"type": "object", "properties": {"user": {"$ref": "#/definitions/nexussdk.User"}}},
        "nexussdk.UserSummary": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "email": {"type": "string"}, "role": {"type": "string"}, "status": {"type": "string"}, "department": {"type": "string"}, "jobTitle": {"type": "string"}, "lastActive": {"type": "string"}}},
        "nexussdk.UsersResponse": {"type": "object", "properties": {"users": {"type": "array", "items": {"$ref": "#/definitions/nexussdk.UserSummary"}}}},
        "nexussdk.InviteRequest": {"type": "object", "required": ["email", "role"], "properties": {"email": {"type": "string"}, "role": {"type": "string", "enum": ["super_admin", "org_admin", "team_lead", "end_user"]}}},
        "nexussdk.Invitation": {"type": "object", "properties": {"id": {"type": "string"}, "email": {"type": "string"}, "role": {"type": "string"}, "expiresAt": {"type": "string"}}},
        "nexussdk.InvitationResponse": {"type": "object", "properties": {"message": {"type": "string"}, "invitation": {"$ref": "#/definitions/nexussdk.Invitation"}}},
        "nexussdk.InvitationsResponse": {"type": "object", "properties": {"invitations": {"type": "array", "items": {"$ref": "#/definitions/nexussdk.Invitation"}}}},
        "nexussdk.MessageResponse": {"type": "object", "properties": {"message": {"type": "string"}}},
        "nexussdk.ProfileRequest": {"type": "object", "properties": {"firstName": {"type": "string"}, "lastName": {"type": "string"}, "department": {"type": "string"}, "jobTitle": {"type": "string"}, "phoneNumber": {"type": "string"}, "timezone": {"type": "string"}, "password": {"type": "string"}}},
        "nexussdk.UserResponse": {"type": "object", "properties": {"message": {"type": "string"}, "user": {"$ref": "#/definitions/nexussdk.User"}}},
        "nexussdk.RoleRequest": {"type": "object", "required": ["role"], "properties": {"role": {"type": "string", "enum": ["super_admin", "org_admin", "team_lead", "end_user"]}}},
        "nexussdk.BotRequest": {"type": "object", "properties": {"id": {"type": "string"}, "channel_name": {"type": "string"}, "channel_type": {"type": "string"}, "requested_by": {"type": "string"}, "member_count": {"type": "integer"}, "created_at": {"type": "string"}, "status": {"type": "string"}}},
        "nexussdk.BotRequestsResponse": {"type": "object", "properties": {"requests": {"type": "array", "items": {"$ref": "#/definitions/nexussdk.BotRequest"}}}},
        "nexussdk.DecisionRequest": {"type": "object", "required": ["approved"], "properties": {"approved": {"type": "boolean"}, "reason": {"type": "string"}}},
        "nexussdk.DecisionResponse": {"type": "object", "properties": {"message": {"type": "string"}, "request": {"type": "object", "properties": {"id": {"type": "string"}, "status": {"type": "string"}}}}},
        "nexussdk.Source": {"type": "object", "properties": {"title": {"type": "string"}, "id": {"type": "string"}}},
        "nexussdk.ChatRequest": {"type": "object", "required": ["message"], "properties": {"message": {"type": "string"}, "conversation_id": {"type": "string"}}},
        "nexussdk.ChatResponse": {"type": "object", "properties": {"response": {"type": "string"}, "sources": {"type": "array", "items": {"$ref": "#/definitions/nexussdk.Source"}}, "conversation_id": {"type": "string"}}},
        "nexussdk.ChatMessage": {"type": "object", "properties": {"id": {"type": "string"}, "role": {"type": "string"}, "content": {"type": "string"}, "sources": {"type": "array", "items": {"$ref": "#/definitions/nexussdk.Source"}}, "created_at": {"type": "string"}}},
        "nexussdk.ConversationResponse": {"type": "object", "properties": {"conversation": {"type": "object", "properties": {"id": {"type": "string"}, "title": {"type": "string"}, "created_at": {"type": "string"}, "updated_at": {"type": "string"}}}, "messages": {"type": "array", "items": {"$ref": "#/definitions/nexussdk.ChatMessage"}}}},
        "nexussdk.ReferenceResponse": {"type": "object", "properties": {"reference": {"type": "object", "properties": {"id": {"type": "string"}, "title": {"type": "string"}, "type": {"type": "string"}, "source": {"type": "string"}, "timestamp": {"type": "string"}, "author": {"type": "string"}, "fullContent": {"type": "string"}, "metadata": {"type": "object"}, "context": {"type": "object"}}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Session token. Format: \"Bearer {token}\".",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:3001",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Nexus API",
	Description:      "Knowledge-assistant backend: invitations, user administration, bot access approvals and chat.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
