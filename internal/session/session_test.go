package session

import "testing"

func TestInitialState(t *testing.T) {
	s := NewState()
	if s.Step != StepLogin || s.LoginType != RoleAdmin || s.Role != RoleAdmin {
		t.Fatalf("unexpected initial state %+v", s)
	}
}

func TestLoginThroughOTP(t *testing.T) {
	s := NewState()
	s = Reduce(s, SwitchLoginType{To: RoleUser})
	s = Reduce(s, SubmitLogin{})
	if s.Step != StepOTP {
		t.Fatalf("expected otp step, got %s", s.Step)
	}
	s = Reduce(s, OTPVerified{})
	if s.Step != StepAuthenticated || s.Role != RoleUser {
		t.Fatalf("expected authenticated user, got %+v", s)
	}
}

func TestRoleFollowsLoginTypeAtVerification(t *testing.T) {
	s := NewState()
	s = Reduce(s, SwitchLoginType{To: RoleCustomer})
	s = Reduce(s, SubmitLogin{})
	s = Reduce(s, OTPVerified{})
	if s.Role != RoleCustomer {
		t.Fatalf("expected customer role, got %s", s.Role)
	}
}

func TestSwitchLoginTypeOnlyOnLogin(t *testing.T) {
	s := Reduce(NewState(), SubmitLogin{})
	next := Reduce(s, SwitchLoginType{To: RoleCustomer})
	if next != s {
		t.Fatalf("switch must be ignored off the login screen: %+v", next)
	}
}

func TestSwitchLoginTypeRejectsUnknownRole(t *testing.T) {
	s := NewState()
	next := Reduce(s, SwitchLoginType{To: Role("superuser")})
	if next != s {
		t.Fatalf("unknown role must be ignored: %+v", next)
	}
}

func TestCreateAdminOnlyFromAdminLogin(t *testing.T) {
	s := NewState()
	s = Reduce(s, SwitchLoginType{To: RoleUser})
	next := Reduce(s, CreateAdminRequested{})
	if next != s {
		t.Fatalf("create admin must require admin login mode: %+v", next)
	}

	s = Reduce(s, SwitchLoginType{To: RoleAdmin})
	s = Reduce(s, CreateAdminRequested{})
	if s.Step != StepCreateAdmin {
		t.Fatalf("expected create_admin step, got %s", s.Step)
	}
}

func TestAdminCreatedFlow(t *testing.T) {
	s := NewState()
	s = Reduce(s, CreateAdminRequested{})
	s = Reduce(s, AdminCreated{UID: "AD-0002", Password: "Temp@1234"})
	if s.Step != StepAdminCreated {
		t.Fatalf("expected admin_created step, got %s", s.Step)
	}
	if s.Created == nil || s.Created.UID != "AD-0002" {
		t.Fatalf("expected issued credentials, got %+v", s.Created)
	}

	s = Reduce(s, GoToLogin{})
	if s.Step != StepLogin || s.LoginType != RoleAdmin {
		t.Fatalf("expected admin login after go-to-login, got %+v", s)
	}
	if s.Created != nil {
		t.Fatal("credentials must be cleared when leaving admin_created")
	}
}

func TestForgotPasswordOnlyFromAdminLogin(t *testing.T) {
	s := NewState()
	s = Reduce(s, ForgotPasswordRequested{})
	if s.Step != StepForgotPassword {
		t.Fatalf("expected forgot_password step, got %s", s.Step)
	}
	s = Reduce(s, Back{})
	if s.Step != StepLogin {
		t.Fatalf("expected back to login, got %s", s.Step)
	}

	s = Reduce(s, SwitchLoginType{To: RoleCustomer})
	next := Reduce(s, ForgotPasswordRequested{})
	if next != s {
		t.Fatalf("forgot password must require admin login mode: %+v", next)
	}
}

func TestBackFromOTPKeepsLoginType(t *testing.T) {
	s := NewState()
	s = Reduce(s, SwitchLoginType{To: RoleUser})
	s = Reduce(s, SubmitLogin{})
	s = Reduce(s, Back{})
	if s.Step != StepLogin || s.LoginType != RoleUser {
		t.Fatalf("back must preserve login type, got %+v", s)
	}
}

func TestLogoutResets(t *testing.T) {
	s := NewState()
	s = Reduce(s, SwitchLoginType{To: RoleCustomer})
	s = Reduce(s, SubmitLogin{})
	s = Reduce(s, OTPVerified{})
	s = Reduce(s, Logout{})
	if s != NewState() {
		t.Fatalf("logout must reset to initial state, got %+v", s)
	}
}

func TestIllegalEventsAreNoOps(t *testing.T) {
	s := NewState()
	for _, e := range []Event{OTPVerified{}, AdminCreated{UID: "AD-0009"}, GoToLogin{}, Logout{}, Back{}} {
		if next := Reduce(s, e); next != s {
			t.Fatalf("event %T must be a no-op on login screen, got %+v", e, next)
		}
	}
}

func TestCustomerRoutesReduced(t *testing.T) {
	routes := RoutesFor(RoleCustomer)
	if len(routes) != 2 {
		t.Fatalf("expected 2 customer routes, got %v", routes)
	}
	if got := Resolve(RoleCustomer, "/customer-profile"); got != "/customer-profile" {
		t.Fatalf("expected /customer-profile, got %s", got)
	}
}

func TestResolveRedirectsUnauthorized(t *testing.T) {
	if got := Resolve(RoleCustomer, "/transactions"); got != "/" {
		t.Fatalf("customer must be redirected home from /transactions, got %s", got)
	}
	if got := Resolve(RoleUser, "/add-sale"); got != "/" {
		t.Fatalf("non-admin must be redirected home from /add-sale, got %s", got)
	}
	if got := Resolve(RoleAdmin, "/add-sale"); got != "/add-sale" {
		t.Fatalf("admin must reach /add-sale, got %s", got)
	}
}

func TestResolveUnknownPath(t *testing.T) {
	if got := Resolve(RoleAdmin, "/no-such-page"); got != "/" {
		t.Fatalf("unknown path must resolve home, got %s", got)
	}
}
