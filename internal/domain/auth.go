package domain

import "time"

// PrincipalKind differentiates staff vs vendor tokens.
type PrincipalKind string

const (
	PrincipalStaff  PrincipalKind = "staff"
	PrincipalVendor PrincipalKind = "vendor"
)

// Token describes an issued bearer token.
type Token struct {
	Value     string
	PublicID  string
	Kind      PrincipalKind
	ExpiresAt time.Time
}
