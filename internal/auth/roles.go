package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/parcel-service/internal/domain"
	apperrors "github.com/spec-kit/parcel-service/pkg/util/errorutil"
)

// StaffGuard resolves staff tokens.
type StaffGuard = Guard[*domain.Staff]

// VendorGuard resolves vendor tokens.
type VendorGuard = Guard[*domain.Vendor]

// RequireAdmin rejects staff principals without the admin flag.
func RequireAdmin(staff *domain.Staff) error {
	if staff == nil || !staff.IsAdmin {
		return apperrors.NewForbidden("cannot perform action, you are not an admin")
	}
	return nil
}

// CurrentStaff returns the staff principal stored by a StaffGuard.
func CurrentStaff(c *fiber.Ctx) (*domain.Staff, bool) {
	return PrincipalFromContext[*domain.Staff](c, domain.PrincipalStaff)
}

// CurrentVendor returns the vendor principal stored by a VendorGuard.
func CurrentVendor(c *fiber.Ctx) (*domain.Vendor, bool) {
	return PrincipalFromContext[*domain.Vendor](c, domain.PrincipalVendor)
}
