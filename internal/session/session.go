package session

// Step names the screen the client session is on.
type Step string

const (
	StepLogin          Step = "login"
	StepOTP            Step = "otp"
	StepAuthenticated  Step = "authenticated"
	StepCreateAdmin    Step = "create_admin"
	StepAdminCreated   Step = "admin_created"
	StepForgotPassword Step = "forgot_password"
)

// Role names the account category a session acts as.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleUser     Role = "user"
	RoleCustomer Role = "customer"
)

// IssuedCredentials holds the uid and one-time password shown after an admin
// account is created.
type IssuedCredentials struct {
	UID      string
	Password string
}

// State is the full client session state. It only changes through Reduce.
type State struct {
	Step      Step
	LoginType Role
	Role      Role
	Created   *IssuedCredentials
}

// NewState returns the initial session: the login screen in admin mode.
func NewState() State {
	return State{Step: StepLogin, LoginType: RoleAdmin, Role: RoleAdmin}
}

// Event is a session input. Events that are not legal in the current step
// leave the state unchanged.
type Event interface{ isEvent() }

// SwitchLoginType changes which account category the login form targets.
type SwitchLoginType struct{ To Role }

// SubmitLogin records that credentials were accepted and an OTP was sent.
type SubmitLogin struct{}

// OTPVerified records a verified code; the session role becomes whatever
// login type was selected when the code was requested.
type OTPVerified struct{}

// CreateAdminRequested opens the admin signup screen. Only reachable from the
// login screen in admin mode.
type CreateAdminRequested struct{}

// AdminCreated records a newly provisioned admin account and its credentials.
type AdminCreated struct {
	UID      string
	Password string
}

// ForgotPasswordRequested opens the password recovery screen. Only reachable
// from the login screen in admin mode.
type ForgotPasswordRequested struct{}

// Back returns to the login screen without clearing the selected login type.
type Back struct{}

// GoToLogin leaves the admin-created screen for a fresh admin login, dropping
// the displayed credentials.
type GoToLogin struct{}

// Logout ends an authenticated session and resets to the admin login screen.
type Logout struct{}

func (SwitchLoginType) isEvent()         {}
func (SubmitLogin) isEvent()             {}
func (OTPVerified) isEvent()             {}
func (CreateAdminRequested) isEvent()    {}
func (AdminCreated) isEvent()            {}
func (ForgotPasswordRequested) isEvent() {}
func (Back) isEvent()                    {}
func (GoToLogin) isEvent()               {}
func (Logout) isEvent()                  {}

// Reduce applies one event to the session state. It is pure: the same state
// and event always produce the same next state, and illegal events are
// ignored rather than guessed at.
func Reduce(s State, e Event) State {
	switch ev := e.(type) {
	case SwitchLoginType:
		if s.Step != StepLogin {
			return s
		}
		if ev.To != RoleAdmin && ev.To != RoleUser && ev.To != RoleCustomer {
			return s
		}
		s.LoginType = ev.To
		return s

	case SubmitLogin:
		if s.Step != StepLogin {
			return s
		}
		s.Step = StepOTP
		return s

	case OTPVerified:
		if s.Step != StepOTP {
			return s
		}
		s.Step = StepAuthenticated
		s.Role = s.LoginType
		return s

	case CreateAdminRequested:
		if s.Step != StepLogin || s.LoginType != RoleAdmin {
			return s
		}
		s.Step = StepCreateAdmin
		return s

	case AdminCreated:
		if s.Step != StepCreateAdmin {
			return s
		}
		s.Step = StepAdminCreated
		s.Created = &IssuedCredentials{UID: ev.UID, Password: ev.Password}
		return s

	case ForgotPasswordRequested:
		if s.Step != StepLogin || s.LoginType != RoleAdmin {
			return s
		}
		s.Step = StepForgotPassword
		return s

	case Back:
		switch s.Step {
		case StepOTP, StepCreateAdmin, StepForgotPassword:
			s.Step = StepLogin
			return s
		}
		return s

	case GoToLogin:
		if s.Step != StepAdminCreated {
			return s
		}
		s.Step = StepLogin
		s.LoginType = RoleAdmin
		s.Created = nil
		return s

	case Logout:
		if s.Step != StepAuthenticated {
			return s
		}
		return NewState()
	}
	return s
}
