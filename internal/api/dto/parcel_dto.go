package dto

import (
	"time"

	"github.com/spec-kit/parcel-service/internal/domain"
)

// ParcelIntakeRequest payload for POST /fetchdata.
type ParcelIntakeRequest struct {
	Name              string `json:"name" validate:"required,max=50"`
	Volume            int    `json:"volume" validate:"gte=0"`
	Inception         string `json:"inception" validate:"required,max=50"`
	IntraCityDelivery bool   `json:"intraCityDelivery"`
	DeliveryLocation  string `json:"deliveryLocation" validate:"required,max=100"`
}

// ParcelResponse is the public view of a parcel.
type ParcelResponse struct {
	QRID              string              `json:"qrId"`
	Name              string              `json:"name"`
	Volume            int                 `json:"volume"`
	VendorName        string              `json:"vendorName"`
	OriginDescription string              `json:"inception"`
	IsIntraCity       bool                `json:"intraCityDelivery"`
	DeliveryLocation  string              `json:"deliveryLocation"`
	PickupTime        *time.Time          `json:"pickupTime"`
	Status            domain.ParcelStatus `json:"status"`
	DropTime          *time.Time          `json:"dropTime"`
	CurrentLocation   string              `json:"currentLocation"`
}

// NewParcelResponse maps a parcel to its public view.
func NewParcelResponse(parcel *domain.Parcel) ParcelResponse {
	return ParcelResponse{
		QRID:              parcel.QRID,
		Name:              parcel.Name,
		Volume:            parcel.Volume,
		VendorName:        parcel.VendorName,
		OriginDescription: parcel.OriginDescription,
		IsIntraCity:       parcel.IsIntraCity,
		DeliveryLocation:  parcel.DeliveryLocation,
		PickupTime:        parcel.PickupTime,
		Status:            parcel.Status,
		DropTime:          parcel.DropTime,
		CurrentLocation:   parcel.CurrentLocation,
	}
}
