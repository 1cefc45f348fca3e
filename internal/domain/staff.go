package domain

import "time"

// Staff models an internal operator. Admins manage accounts.
type Staff struct {
	ID           int64
	PublicID     string
	Name         string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}
