package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type UserStatus string

const (
	UserStatusPending  UserStatus = "pending"
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

var ErrUnknownUserStatus = errors.New("domain: unknown user status")

func ParseUserStatus(s string) (UserStatus, error) {
	switch UserStatus(s) {
	case UserStatusPending, UserStatusActive, UserStatusInactive:
		return UserStatus(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownUserStatus, s)
	}
}

type User struct {
	ID                 string
	OrganizationID     string
	Email              string // normalised, see NormalizeEmail
	FirstName          string
	LastName           string
	Role               Role
	Status             UserStatus
	Department         string
	JobTitle           string
	PhoneNumber        string
	Timezone           string
	PasswordHash       string // argon2id PHC string, empty when the user has no password
	MicrosoftConnected bool
	LastActiveAt       *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// DisplayName is "First Last", or the email when both are empty.
func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// RequiresSetup is true until both name parts are filled in.
func (u User) RequiresSetup() bool {
	return u.FirstName == "" || u.LastName == ""
}

// NormalizeEmail trims and lower-cases an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ProfileFields is a partial profile update. Empty values leave the current
// value untouched.
type ProfileFields struct {
	FirstName   string
	LastName    string
	Department  string
	JobTitle    string
	PhoneNumber string
	Timezone    string
}

// Apply merges the non-empty fields of p into u.
func (p ProfileFields) Apply(u *User) {
	set := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	set(&u.FirstName, p.FirstName)
	set(&u.LastName, p.LastName)
	set(&u.Department, p.Department)
	set(&u.JobTitle, p.JobTitle)
	set(&u.PhoneNumber, p.PhoneNumber)
	set(&u.Timezone, p.Timezone)
}
