package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/grocerybag/grocerybag/internal/supplier"
)

// RegisterSupplierRoutes wires supplier endpoints. Writes are admin-only.
func RegisterSupplierRoutes(r fiber.Router, h *supplier.Handler, adminOnly fiber.Handler) {
	r.Get("/suppliers", h.List)
	r.Get("/suppliers/:ref", h.Get)
	r.Post("/suppliers", adminOnly, h.Create)
	r.Put("/suppliers/:ref", adminOnly, h.Update)
}
