package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/grocerybag/grocerybag/internal/auth"
)

// RegisterAuthRoutes wires authentication endpoints.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, rateLimiter fiber.Handler) {
	group := r.Group("/auth")
	if rateLimiter != nil {
		group.Post("/login", rateLimiter, h.Login)
	} else {
		group.Post("/login", h.Login)
	}
	group.Post("/request-otp", h.RequestOTP)
	group.Post("/verify-otp", h.VerifyOTP)
	group.Post("/register", h.Register)
}
