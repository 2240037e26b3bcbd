package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/grocerybag/grocerybag/internal/auth"
	"github.com/grocerybag/grocerybag/internal/config"
)

// JWTAuth returns a middleware that validates access tokens and stashes the
// caller's uid and role in request locals.
func JWTAuth(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}
		tokenStr := strings.TrimSpace(authz[len("Bearer "):])
		claims, err := auth.ParseAndVerifyHS256(tokenStr, []byte(cfg.JWTSecret))
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid token")
		}
		exp, ok := claims["exp"].(float64)
		if !ok || time.Now().Unix() >= int64(exp) {
			return fiber.NewError(http.StatusUnauthorized, "token expired")
		}
		sub, _ := claims["sub"].(string)
		uid, _ := claims["uid"].(string)
		role, _ := claims["role"].(string)
		if sub == "" || role == "" {
			return fiber.NewError(http.StatusUnauthorized, "invalid token claims")
		}

		c.Locals("user_id", sub)
		c.Locals("user_uid", uid)
		c.Locals("user_role", role)
		return c.Next()
	}
}

// RequireRole guards a route group so only callers holding one of the given
// roles may pass. It must run after JWTAuth.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("user_role").(string)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return fiber.NewError(http.StatusForbidden, "insufficient role")
	}
}
