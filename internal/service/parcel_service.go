package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/parcel-service/internal/domain"
	"github.com/spec-kit/parcel-service/internal/events"
	"github.com/spec-kit/parcel-service/internal/geo"
	"github.com/spec-kit/parcel-service/internal/label"
	"github.com/spec-kit/parcel-service/internal/repository"
	apperrors "github.com/spec-kit/parcel-service/pkg/util/errorutil"
)

// ParcelService coordinates parcel intake and removal for vendors.
type ParcelService struct {
	parcels repository.ParcelRepository
	locator geo.Locator
	labels  *label.Renderer
	logger  *zap.Logger
	events  publisher
}

// ParcelDependencies bundles collaborators for the parcel service.
type ParcelDependencies struct {
	ParcelRepo repository.ParcelRepository
	Locator    geo.Locator
	Labels     *label.Renderer
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// ParcelIntakeInput describes a parcel handed over by a vendor.
type ParcelIntakeInput struct {
	Name              string
	Volume            int
	OriginDescription string
	IsIntraCity       bool
	DeliveryLocation  string
	ClientIP          string
}

// NewParcelService constructs the service.
func NewParcelService(deps ParcelDependencies) *ParcelService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ParcelService{
		parcels: deps.ParcelRepo,
		locator: deps.Locator,
		labels:  deps.Labels,
		logger:  logger,
		events:  publisher{dispatcher: deps.Dispatcher, logger: logger},
	}
}

func vendorActor(vendor *domain.Vendor) events.Actor {
	return events.Actor{Kind: domain.PrincipalVendor, PublicID: vendor.PublicID}
}

// Intake registers a parcel in WAITING state located at the caller's current city.
// A failed geolocation lookup fails the intake; no location is ever defaulted.
func (s *ParcelService) Intake(ctx context.Context, vendor *domain.Vendor, input ParcelIntakeInput) (*domain.Parcel, error) {
	if vendor == nil {
		return nil, apperrors.NewTokenMissing()
	}

	city, err := s.locator.City(ctx, input.ClientIP)
	if err != nil {
		s.logger.Error("geolocation lookup failed", zap.String("vendor", vendor.PublicID), zap.Error(err))
		return nil, apperrors.NewExternalDependencyFailure("geolocation", err)
	}

	parcel := &domain.Parcel{
		QRID:              uuid.NewString(),
		Name:              input.Name,
		Volume:            input.Volume,
		VendorPublicID:    vendor.PublicID,
		VendorName:        vendor.Name,
		OriginDescription: input.OriginDescription,
		IsIntraCity:       input.IsIntraCity,
		DeliveryLocation:  input.DeliveryLocation,
		Status:            domain.ParcelStatusWaiting,
		CurrentLocation:   city,
	}
	if err := s.parcels.Create(ctx, parcel); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.events.publish(ctx, events.EventParcelRegistered, parcel.QRID, vendorActor(vendor), events.ParcelPayload{
		Name:            parcel.Name,
		Volume:          parcel.Volume,
		VendorName:      parcel.VendorName,
		CurrentLocation: parcel.CurrentLocation,
	})
	return parcel, nil
}

// List returns the caller's parcels.
func (s *ParcelService) List(ctx context.Context, vendor *domain.Vendor) ([]domain.Parcel, error) {
	parcels, err := s.parcels.ListByVendor(ctx, vendor.PublicID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return parcels, nil
}

// Get returns one of the caller's parcels.
func (s *ParcelService) Get(ctx context.Context, vendor *domain.Vendor, qrID string) (*domain.Parcel, error) {
	parcel, err := s.parcels.GetByQRID(ctx, vendor.PublicID, qrID)
	if err != nil {
		return nil, notFound(err, "parcel", qrID)
	}
	return parcel, nil
}

// Label renders the PNG QR label of one of the caller's parcels.
func (s *ParcelService) Label(ctx context.Context, vendor *domain.Vendor, qrID string) ([]byte, error) {
	parcel, err := s.Get(ctx, vendor, qrID)
	if err != nil {
		return nil, err
	}
	png, err := s.labels.PNG(parcel)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return png, nil
}

// Remove hard-deletes one of the caller's parcels.
func (s *ParcelService) Remove(ctx context.Context, vendor *domain.Vendor, qrID string) error {
	if err := s.parcels.Delete(ctx, vendor.PublicID, qrID); err != nil {
		return notFound(err, "parcel", qrID)
	}
	s.events.publish(ctx, events.EventParcelRemoved, qrID, vendorActor(vendor), nil)
	return nil
}
