package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/grocerybag/grocerybag/internal/auth"
	"github.com/grocerybag/grocerybag/internal/config"
)

func newJWTApp(t *testing.T, cfg config.Config) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/protected", JWTAuth(cfg), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"role": c.Locals("user_role")})
	})
	return app
}

func signToken(t *testing.T, secret string, expiresIn time.Duration) string {
	t.Helper()
	now := time.Now()
	token, err := auth.SignHS256(map[string]any{
		"sub":  "u-1",
		"uid":  "AD-0001",
		"role": "admin",
		"iat":  now.Unix(),
		"exp":  now.Add(expiresIn).Unix(),
	}, []byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func requestWithToken(t *testing.T, app *fiber.App, token string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp.StatusCode
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}
	app := newJWTApp(t, cfg)

	token := signToken(t, cfg.JWTSecret, time.Hour)
	if status := requestWithToken(t, app, token); status != fiber.StatusOK {
		t.Fatalf("expected 200 for valid token, got %d", status)
	}
}

func TestJWTAuthRejectsExpiredToken(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}
	app := newJWTApp(t, cfg)

	token := signToken(t, cfg.JWTSecret, -time.Hour)
	if status := requestWithToken(t, app, token); status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", status)
	}
}

func TestJWTAuthRejectsMissingExpiry(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}
	app := newJWTApp(t, cfg)

	token, err := auth.SignHS256(map[string]any{
		"sub": "u-1", "uid": "AD-0001", "role": "admin",
	}, []byte(cfg.JWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if status := requestWithToken(t, app, token); status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for token without exp, got %d", status)
	}
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}
	app := newJWTApp(t, cfg)

	token := signToken(t, "other-secret", time.Hour)
	if status := requestWithToken(t, app, token); status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong secret, got %d", status)
	}
}

func TestJWTAuthRejectsMissingToken(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}
	app := newJWTApp(t, cfg)

	if status := requestWithToken(t, app, ""); status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", status)
	}
}
