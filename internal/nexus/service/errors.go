package service

import "errors"

// Sentinel errors returned by every workflow. The HTTP layer maps each one to
// a status code; anything else is a server error.
var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidToken       = errors.New("invalid_token")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not_found")
	ErrConflict           = errors.New("conflict")
	ErrExpired            = errors.New("expired")
	ErrInvalidInvitation  = errors.New("invalid_invitation")
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrDeliveryFailed     = errors.New("delivery_failed")
)
