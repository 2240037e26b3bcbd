package identity

import "time"

// Roles recognised by the system. The role fixes which dashboard shell and
// route table a session sees after authentication.
const (
	RoleAdmin    = "admin"
	RoleUser     = "user"
	RoleCustomer = "customer"
)

// User represents a registered account holder.
type User struct {
	ID           string
	UID          string
	Phone        string
	Role         string
	PasswordHash []byte
	CreatedAt    time.Time
}

// Credentials request structure.
type Credentials struct {
	Phone    string
	Password string
}

// ValidRole reports whether role is one of the recognised roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleUser, RoleCustomer:
		return true
	default:
		return false
	}
}

// UIDPrefix returns the short account prefix used in issued identifiers,
// e.g. AD-0001 for the first admin.
func UIDPrefix(role string) string {
	switch role {
	case RoleAdmin:
		return "AD"
	case RoleUser:
		return "US"
	default:
		return "CU"
	}
}
