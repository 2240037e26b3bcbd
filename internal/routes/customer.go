package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/grocerybag/grocerybag/internal/customer"
)

// RegisterCustomerRoutes wires customer endpoints. Writes are admin-only.
func RegisterCustomerRoutes(r fiber.Router, h *customer.Handler, adminOnly fiber.Handler) {
	r.Get("/customers", h.List)
	r.Get("/customers/:ref", h.Get)
	r.Post("/customers", adminOnly, h.Create)
	r.Put("/customers/:ref", adminOnly, h.Update)
}
