package domain

import "time"

// ParcelStatus enumerates delivery states for a parcel.
type ParcelStatus string

const (
	ParcelStatusWaiting   ParcelStatus = "WAITING"
	ParcelStatusInTransit ParcelStatus = "IN_TRANSIT"
	ParcelStatusDelivered ParcelStatus = "DELIVERED"
)

// Parcel is a package registered by a vendor at intake. PickupTime and DropTime stay nil
// while the parcel is WAITING; intake never sets them.
type Parcel struct {
	ID                int64
	QRID              string
	Name              string
	Volume            int
	VendorPublicID    string
	VendorName        string
	OriginDescription string
	IsIntraCity       bool
	DeliveryLocation  string
	PickupTime        *time.Time
	Status            ParcelStatus
	DropTime          *time.Time
	CurrentLocation   string
	CreatedAt         time.Time
}
