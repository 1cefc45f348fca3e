package events

import (
	"time"

	"github.com/spec-kit/parcel-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventStaffCreated     EventType = "staff_created"
	EventStaffPromoted    EventType = "staff_promoted"
	EventStaffDeleted     EventType = "staff_deleted"
	EventVendorCreated    EventType = "vendor_created"
	EventParcelRegistered EventType = "parcel_registered"
	EventParcelRemoved    EventType = "parcel_removed"
)

// Actor identifies the principal that triggered an event.
type Actor struct {
	Kind     domain.PrincipalKind `json:"kind"`
	PublicID string               `json:"public_id"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// AccountPayload describes a staff or vendor account change.
type AccountPayload struct {
	Name string `json:"name"`
}

// ParcelPayload describes a parcel registration.
type ParcelPayload struct {
	Name            string `json:"name"`
	Volume          int    `json:"volume"`
	VendorName      string `json:"vendor_name"`
	CurrentLocation string `json:"current_location"`
}
