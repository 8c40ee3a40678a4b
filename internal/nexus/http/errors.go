package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/aussiebroadwan/nexus/internal/nexus/service"
	"github.com/aussiebroadwan/nexus/pkg/httpx"
	"github.com/aussiebroadwan/nexus/pkg/nexussdk"
	"github.com/aussiebroadwan/nexus/pkg/slogx"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// decodeRequest parses and validates a JSON body, writing a 400 on failure.
func decodeRequest(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := httpx.DecodeJSON(r, v); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, nexussdk.ErrorCodeInvalidRequest, "Invalid JSON body")
		return false
	}
	if err := validate.Struct(v); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, nexussdk.ErrorCodeInvalidRequest, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request"
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// detail returns the text a service attached after a sentinel, e.g.
// "conflict: user already exists" gives "user already exists".
func detail(err, sentinel error, fallback string) string {
	if rest, ok := strings.CutPrefix(err.Error(), sentinel.Error()+": "); ok && rest != "" {
		return rest
	}
	return fallback
}

// writeServiceError maps workflow errors to responses. Anything unrecognised
// is logged and reported as a server error described by action.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, action string) {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		httpx.WriteError(w, http.StatusUnauthorized, nexussdk.ErrorCodeUnauthenticated, "Authentication required")
	case errors.Is(err, service.ErrInvalidToken):
		httpx.WriteError(w, http.StatusUnauthorized, nexussdk.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, nexussdk.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, service.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, nexussdk.ErrorCodeForbidden, "Insufficient permissions")
	case errors.Is(err, service.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, nexussdk.ErrorCodeNotFound, detail(err, service.ErrNotFound, "Not found"))
	case errors.Is(err, service.ErrConflict):
		httpx.WriteError(w, http.StatusBadRequest, nexussdk.ErrorCodeConflict, detail(err, service.ErrConflict, "Conflict"))
	case errors.Is(err, service.ErrExpired):
		httpx.WriteError(w, http.StatusBadRequest, nexussdk.ErrorCodeExpired, "Invitation expired")
	case errors.Is(err, service.ErrInvalidInvitation):
		httpx.WriteError(w, http.StatusBadRequest, nexussdk.ErrorCodeInvalidInvitation, "Invalid invitation")
	case errors.Is(err, service.ErrInvalidRequest):
		httpx.WriteError(w, http.StatusBadRequest, nexussdk.ErrorCodeInvalidRequest, detail(err, service.ErrInvalidRequest, "Invalid request"))
	case errors.Is(err, service.ErrDeliveryFailed):
		httpx.WriteError(w, http.StatusInternalServerError, nexussdk.ErrorCodeDeliveryFailed, "Failed to send invitation email")
	default:
		slogx.FromContext(r.Context()).Error("request failed", slog.String("action", action), slog.Any("error", err))
		httpx.WriteError(w, http.StatusInternalServerError, nexussdk.ErrorCodeServerError, "Failed to "+action)
	}
}
