package session

// Route tables for authenticated sessions. Customers see a reduced surface;
// some routes additionally require the admin role.

var fullRoutes = []string{
	"/",
	"/add-purchase",
	"/add-sale",
	"/view-all-purchases",
	"/transactions",
	"/create-accounts",
	"/customer-ledger",
	"/reports",
	"/profile",
}

var customerRoutes = []string{
	"/",
	"/customer-profile",
}

var adminOnly = map[string]bool{
	"/add-purchase":       true,
	"/add-sale":           true,
	"/view-all-purchases": true,
	"/transactions":       true,
	"/create-accounts":    true,
}

// RoutesFor lists the paths a role may navigate to.
func RoutesFor(role Role) []string {
	if role == RoleCustomer {
		return append([]string(nil), customerRoutes...)
	}
	return append([]string(nil), fullRoutes...)
}

// Resolve maps a requested path to the path the session actually lands on.
// Unknown paths and paths the role cannot access resolve to the home screen.
func Resolve(role Role, path string) string {
	for _, route := range RoutesFor(role) {
		if route == path {
			if adminOnly[path] && role != RoleAdmin {
				return "/"
			}
			return path
		}
	}
	return "/"
}
