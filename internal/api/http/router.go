package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/parcel-service/internal/api/http/handlers"
	"github.com/spec-kit/parcel-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Employees   *handlers.EmployeeHandler
	Vendors     *handlers.VendorHandler
	Parcels     *handlers.ParcelHandler
	StaffGuard  *auth.StaffGuard
	VendorGuard *auth.VendorGuard
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/employeelogin", cfg.Employees.Login)
	app.Get("/vendorlogin", cfg.Vendors.Login)

	staff := cfg.StaffGuard.Handle
	admin := cfg.StaffGuard.Require(auth.RequireAdmin)

	app.Get("/employee", staff, admin, cfg.Employees.List)
	app.Post("/employee", staff, cfg.Employees.Create)
	app.Get("/employee/:publicId", staff, admin, cfg.Employees.Get)
	app.Put("/employee/:publicId", staff, admin, cfg.Employees.Promote)
	app.Delete("/employee/:publicId", staff, admin, cfg.Employees.Delete)

	app.Post("/vendor", staff, admin, cfg.Vendors.Create)

	parcels := app.Group("/fetchdata", cfg.VendorGuard.Handle)
	parcels.Post("", cfg.Parcels.Intake)
	parcels.Get("", cfg.Parcels.List)
	parcels.Get("/:qrId", cfg.Parcels.Get)
	parcels.Get("/:qrId/label", cfg.Parcels.Label)
	parcels.Delete("/:qrId", cfg.Parcels.Remove)
}
