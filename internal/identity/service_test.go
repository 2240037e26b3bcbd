package identity

import (
	"context"
	"errors"
	"testing"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)

	ctx := context.Background()
	user, err := svc.Register(ctx, RegisterInput{Phone: "9000000000", Password: "Str0ng!pass", Role: RoleAdmin})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if user.UID != "AD-0001" {
		t.Fatalf("expected uid AD-0001, got %s", user.UID)
	}

	authed, err := svc.Authenticate(ctx, Credentials{Phone: user.Phone, Password: "Str0ng!pass"})
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if authed.Role != RoleAdmin {
		t.Fatalf("expected admin role, got %s", authed.Role)
	}
}

func TestRegisterDuplicatePhone(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Phone: "123", Password: "Str0ng!pass", Role: RoleUser}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Register(ctx, RegisterInput{Phone: "123", Password: "Str0ng!pass", Role: RoleUser})
	if !errors.Is(err, ErrPhoneExists) {
		t.Fatalf("expected ErrPhoneExists, got %v", err)
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Phone: "456", Password: "Str0ng!pass", Role: RoleCustomer}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Authenticate(ctx, Credentials{Phone: "456", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		password string
		ok       bool
	}{
		{"Str0ng!pass", true},
		{"short1!A", true},
		{"noupper1!", false},
		{"NOLOWER1!", false},
		{"NoDigits!!", false},
		{"NoSpecial11", false},
		{"Sh0r!t", false},
	}
	for _, tc := range cases {
		err := ValidatePassword(tc.password)
		if tc.ok && err != nil {
			t.Errorf("ValidatePassword(%q) = %v, want nil", tc.password, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("ValidatePassword(%q) = nil, want error", tc.password)
		}
	}
}
