package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/grocerybag/grocerybag/internal/purchase"
)

// RegisterPurchaseRoutes wires purchase endpoints. Entry is admin-only.
func RegisterPurchaseRoutes(r fiber.Router, h *purchase.Handler, adminOnly fiber.Handler) {
	r.Get("/purchases", h.List)
	r.Get("/purchases/:ref", h.Get)
	r.Post("/purchases", adminOnly, h.Create)
}
