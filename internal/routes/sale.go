package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/grocerybag/grocerybag/internal/sale"
)

// RegisterSaleRoutes wires sale endpoints. Entry and edits are admin-only.
func RegisterSaleRoutes(r fiber.Router, h *sale.Handler, adminOnly fiber.Handler) {
	r.Get("/sales", h.List)
	r.Get("/sales/:ref", h.Get)
	r.Post("/sales", adminOnly, h.Create)
	r.Put("/sales/:ref", adminOnly, h.Update)
}
