package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/grocerybag/grocerybag/internal/config"
	"github.com/grocerybag/grocerybag/internal/identity"
)

func newTestService(t *testing.T) (*Service, *identity.Service) {
	t.Helper()
	cfg := config.Config{JWTSecret: "test-secret", AccessTokenTTL: time.Hour, OTPTTL: 5 * time.Minute}
	ids := identity.NewService(identity.NewMemoryRepository())
	svc := NewService(cfg, ids, NewMemoryOTPStore(), nil)
	return svc, ids
}

func TestLoginIssuesToken(t *testing.T) {
	svc, ids := newTestService(t)
	ctx := context.Background()

	if _, err := ids.Register(ctx, identity.RegisterInput{Phone: "9000000000", Password: "Str0ng!pass", Role: identity.RoleAdmin}); err != nil {
		t.Fatalf("register: %v", err)
	}

	res, err := svc.Login(ctx, "9000000000", "Str0ng!pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := ParseAndVerifyHS256(res.Token, []byte("test-secret"))
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if claims["role"] != identity.RoleAdmin {
		t.Fatalf("expected admin role claim, got %v", claims["role"])
	}
}

func TestOTPFlowSingleUse(t *testing.T) {
	svc, ids := newTestService(t)
	ctx := context.Background()

	if _, err := ids.Register(ctx, identity.RegisterInput{Phone: "9111111111", Password: "Str0ng!pass", Role: identity.RoleCustomer}); err != nil {
		t.Fatalf("register: %v", err)
	}

	store := NewMemoryOTPStore()
	svc.otps = store
	if err := store.Issue(ctx, "9111111111", "123456", time.Minute); err != nil {
		t.Fatalf("issue: %v", err)
	}

	res, err := svc.VerifyOTP(ctx, "9111111111", "123456")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if res.User.Role != identity.RoleCustomer {
		t.Fatalf("expected customer role, got %s", res.User.Role)
	}

	// Second use of the same code must fail.
	if _, err := svc.VerifyOTP(ctx, "9111111111", "123456"); !errors.Is(err, ErrOTPInvalid) {
		t.Fatalf("expected ErrOTPInvalid on reuse, got %v", err)
	}
}

func TestVerifyOTPWrongCode(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.RequestOTP(ctx, "9222222222"); err != nil {
		t.Fatalf("request otp: %v", err)
	}
	if _, err := svc.VerifyOTP(ctx, "9222222222", "000000"); !errors.Is(err, ErrOTPInvalid) {
		t.Fatalf("expected ErrOTPInvalid, got %v", err)
	}
}

func TestGenerateCodeShape(t *testing.T) {
	code, err := GenerateCode()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("expected 6 digit code, got %q", code)
	}
}
