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

// EmployeeHandler exposes staff account and staff login endpoints.
type EmployeeHandler struct {
	authService  *service.AuthService
	staffService *service.StaffService
}

// NewEmployeeHandler constructs handler.
func NewEmployeeHandler(authService *service.AuthService, staffService *service.StaffService) *EmployeeHandler {
	return &EmployeeHandler{authService: authService, staffService: staffService}
}

// Login handles GET /employeelogin.
func (h *EmployeeHandler) Login(c *fiber.Ctx) error {
	name, password, ok := basicCredentials(c)
	if !ok {
		return missingCredentials(c)
	}
	_, token, err := h.authService.LoginStaff(c.UserContext(), name, password)
	if err != nil {
		return challenge(c, err)
	}
	return c.JSON(dto.NewAuthResponse(token))
}

// List handles GET /employee.
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	actor, err := currentStaff(c)
	if err != nil {
		return err
	}
	staff, err := h.staffService.List(c.UserContext(), actor)
	if err != nil {
		return err
	}
	resp := make([]dto.EmployeeResponse, 0, len(staff))
	for i := range staff {
		resp = append(resp, dto.NewEmployeeResponse(&staff[i]))
	}
	return c.JSON(fiber.Map{"Employees": resp})
}

// Get handles GET /employee/:publicId.
func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	actor, err := currentStaff(c)
	if err != nil {
		return err
	}
	staff, err := h.staffService.Get(c.UserContext(), actor, c.Params("publicId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"Employee": dto.NewEmployeeResponse(staff)})
}

// Create handles POST /employee.
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
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
	staff, err := h.staffService.Create(c.UserContext(), actor, req.Name, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.AccountCreatedResponse{
		Message:  "New Employee has been created!",
		PublicID: staff.PublicID,
	})
}

// Promote handles PUT /employee/:publicId.
func (h *EmployeeHandler) Promote(c *fiber.Ctx) error {
	actor, err := currentStaff(c)
	if err != nil {
		return err
	}
	if err := h.staffService.Promote(c.UserContext(), actor, c.Params("publicId")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "The Employee has been Promoted to Admin!"})
}

// Delete handles DELETE /employee/:publicId.
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	actor, err := currentStaff(c)
	if err != nil {
		return err
	}
	staff, err := h.staffService.Delete(c.UserContext(), actor, c.Params("publicId"))
	if err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Employee " + staff.Name + " has been Removed!"})
}

func currentStaff(c *fiber.Ctx) (*domain.Staff, error) {
	staff, ok := auth.CurrentStaff(c)
	if !ok {
		return nil, apperrors.NewTokenMissing()
	}
	return staff, nil
}
