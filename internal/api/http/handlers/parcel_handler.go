package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/parcel-service/internal/api/dto"
	"github.com/spec-kit/parcel-service/internal/auth"
	"github.com/spec-kit/parcel-service/internal/domain"
	"github.com/spec-kit/parcel-service/internal/service"
	apperrors "github.com/spec-kit/parcel-service/pkg/util/errorutil"
)

// ParcelHandler exposes vendor parcel endpoints.
type ParcelHandler struct {
	parcels *service.ParcelService
}

// NewParcelHandler constructs handler.
func NewParcelHandler(parcels *service.ParcelService) *ParcelHandler {
	return &ParcelHandler{parcels: parcels}
}

// Intake handles POST /fetchdata.
func (h *ParcelHandler) Intake(c *fiber.Ctx) error {
	vendor, err := currentVendor(c)
	if err != nil {
		return err
	}
	var req dto.ParcelIntakeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	parcel, err := h.parcels.Intake(c.UserContext(), vendor, service.ParcelIntakeInput{
		Name:              req.Name,
		Volume:            req.Volume,
		OriginDescription: req.Inception,
		IsIntraCity:       req.IntraCityDelivery,
		DeliveryLocation:  req.DeliveryLocation,
		ClientIP:          c.IP(),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"Parcel": dto.NewParcelResponse(parcel)})
}

// List handles GET /fetchdata.
func (h *ParcelHandler) List(c *fiber.Ctx) error {
	vendor, err := currentVendor(c)
	if err != nil {
		return err
	}
	parcels, err := h.parcels.List(c.UserContext(), vendor)
	if err != nil {
		return err
	}
	resp := make([]dto.ParcelResponse, 0, len(parcels))
	for i := range parcels {
		resp = append(resp, dto.NewParcelResponse(&parcels[i]))
	}
	return c.JSON(fiber.Map{"Parcels": resp})
}

// Get handles GET /fetchdata/:qrId.
func (h *ParcelHandler) Get(c *fiber.Ctx) error {
	vendor, err := currentVendor(c)
	if err != nil {
		return err
	}
	parcel, err := h.parcels.Get(c.UserContext(), vendor, c.Params("qrId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"Parcel": dto.NewParcelResponse(parcel)})
}

// Label handles GET /fetchdata/:qrId/label.
func (h *ParcelHandler) Label(c *fiber.Ctx) error {
	vendor, err := currentVendor(c)
	if err != nil {
		return err
	}
	png, err := h.parcels.Label(c.UserContext(), vendor, c.Params("qrId"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

// Remove handles DELETE /fetchdata/:qrId.
func (h *ParcelHandler) Remove(c *fiber.Ctx) error {
	vendor, err := currentVendor(c)
	if err != nil {
		return err
	}
	if err := h.parcels.Remove(c.UserContext(), vendor, c.Params("qrId")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Parcel has been Removed!"})
}

func currentVendor(c *fiber.Ctx) (*domain.Vendor, error) {
	vendor, ok := auth.CurrentVendor(c)
	if !ok {
		return nil, apperrors.NewTokenMissing()
	}
	return vendor, nil
}
