package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/grocerybag/grocerybag/internal/transaction"
)

// RegisterTransactionRoutes wires the transaction log. Admin-only.
func RegisterTransactionRoutes(r fiber.Router, h *transaction.Handler, adminOnly fiber.Handler) {
	r.Get("/transactions", adminOnly, h.List)
}
