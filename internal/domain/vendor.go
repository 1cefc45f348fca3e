package domain

import "time"

// Vendor hands parcels over for delivery.
type Vendor struct {
	ID           int64
	PublicID     string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}
