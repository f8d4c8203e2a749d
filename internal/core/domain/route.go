package domain

// Route is a named view of the navigation surface.
type Route string

const (
	RouteRoot              Route = "/"
	RouteLogin             Route = "/login"
	RouteRegister          Route = "/register"
	RouteForgotPassword    Route = "/forgot-password"
	RouteDashboard         Route = "/dashboard"
	RouteAdminDashboard    Route = "/admin-dashboard"
	RouteEmployeeDashboard Route = "/employee-dashboard"
	RouteCustomerDashboard Route = "/customer-dashboard"
)

// DashboardRoutes lists every route that requires a session.
var DashboardRoutes = []Route{
	RouteDashboard,
	RouteAdminDashboard,
	RouteEmployeeDashboard,
	RouteCustomerDashboard,
}

// DestinationFor maps a role claim to its landing dashboard. Unknown and empty
// roles land on the customer dashboard.
func DestinationFor(t UserType) Route {
	switch t {
	case UserTypeAdmin:
		return RouteAdminDashboard
	case UserTypeEmployee:
		return RouteEmployeeDashboard
	default:
		return RouteCustomerDashboard
	}
}

// IsDashboard reports whether r is gated on a session.
func (r Route) IsDashboard() bool {
	for _, d := range DashboardRoutes {
		if r == d {
			return true
		}
	}
	return false
}

// IsEntry reports whether r is one of the unauthenticated entry points.
func (r Route) IsEntry() bool {
	return r == RouteLogin || r == RouteRegister
}

// GuardRedirect decides whether a visit to r must be redirected, given only
// whether a token is present. The role claim plays no part here.
func GuardRedirect(r Route, authenticated bool) (Route, bool) {
	switch {
	case r == RouteRoot && authenticated:
		return RouteDashboard, true
	case r == RouteRoot:
		return RouteLogin, true
	case r.IsDashboard() && !authenticated:
		return RouteLogin, true
	case r.IsEntry() && authenticated:
		return RouteDashboard, true
	}
	return r, false
}
