package domain

import "time"

type Organization struct {
	ID        string
	Name      string
	Domain    string // email domain, e.g. "acmecorp.com"
	TenantID  string // external Microsoft tenant
	CreatedAt time.Time
}
