package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/parcel-service/internal/api/dto"
	"github.com/spec-kit/parcel-service/internal/service"
	apperrors "github.com/spec-kit/parcel-service/pkg/util/errorutil"
)

// VendorHandler exposes vendor account and vendor login endpoints.
type VendorHandler struct {
	authService   *service.AuthService
	vendorService *service.VendorService
}

// NewVendorHandler constructs handler.
func NewVendorHandler(authService *service.AuthService, vendorService *service.VendorService) *VendorHandler {
	return &VendorHandler{authService: authService, vendorService: vendorService}
}

// Login handles GET /vendorlogin.
func (h *VendorHandler) Login(c *fiber.Ctx) error {
	name, password, ok := basicCredentials(c)
	if !ok {
		return missingCredentials(c)
	}
	_, token, err := h.authService.LoginVendor(c.UserContext(), name, password)
	if err != nil {
		return challenge(c, err)
	}
	return c.JSON(dto.NewAuthResponse(token))
}

// Create handles POST /vendor.
func (h *VendorHandler) Create(c *fiber.Ctx) error {
	actor, err := currentStaff(c)
	if err != nil {
		return err
	}
	var req dto.AccountCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	vendor, err := h.vendorService.Create(c.UserContext(), actor, req.Name, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.AccountCreatedResponse{
		Message:  "New Vendor has been created!",
		PublicID: vendor.PublicID,
	})
}
