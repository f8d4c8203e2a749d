package domain

import "testing"

func TestDestinationFor(t *testing.T) {
	cases := map[UserType]Route{
		UserTypeAdmin:    RouteAdminDashboard,
		UserTypeEmployee: RouteEmployeeDashboard,
		UserTypeCustomer: RouteCustomerDashboard,
		UserTypeOther:    RouteCustomerDashboard,
		"":               RouteCustomerDashboard,
		"superuser":      RouteCustomerDashboard,
		"ADMIN":          RouteCustomerDashboard,
		" admin":         RouteCustomerDashboard,
	}

	for in, want := range cases {
		if got := DestinationFor(in); got != want {
			t.Fatalf("DestinationFor(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestDestinationFor_AlwaysADashboard(t *testing.T) {
	inputs := []UserType{"admin", "employee", "customer", "other", "", "x", "null", "undefined"}
	for _, in := range inputs {
		dest := DestinationFor(in)
		if !dest.IsDashboard() || dest == RouteDashboard {
			t.Fatalf("DestinationFor(%q) = %s is not a role dashboard", in, dest)
		}
	}
}

func TestGuardRedirect(t *testing.T) {
	tests := []struct {
		route        Route
		auth         bool
		wantRoute    Route
		wantRedirect bool
	}{
		{RouteRoot, false, RouteLogin, true},
		{RouteRoot, true, RouteDashboard, true},
		{RouteLogin, false, RouteLogin, false},
		{RouteLogin, true, RouteDashboard, true},
		{RouteRegister, false, RouteRegister, false},
		{RouteRegister, true, RouteDashboard, true},
		{RouteDashboard, false, RouteLogin, true},
		{RouteAdminDashboard, false, RouteLogin, true},
		{RouteEmployeeDashboard, false, RouteLogin, true},
		{RouteCustomerDashboard, false, RouteLogin, true},
		{RouteAdminDashboard, true, RouteAdminDashboard, false},
		{RouteForgotPassword, false, RouteForgotPassword, false},
		{RouteForgotPassword, true, RouteForgotPassword, false},
	}

	for _, tt := range tests {
		got, redirect := GuardRedirect(tt.route, tt.auth)
		if redirect != tt.wantRedirect || got != tt.wantRoute {
			t.Fatalf("GuardRedirect(%s, %v) = (%s, %v), want (%s, %v)",
				tt.route, tt.auth, got, redirect, tt.wantRoute, tt.wantRedirect)
		}
	}
}
