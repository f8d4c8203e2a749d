package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Sairam-Chetpelly/visafrontend/internal/core/domain"
	"github.com/Sairam-Chetpelly/visafrontend/internal/core/ports"
)

type stubSessions struct {
	state         ports.SessionState
	authenticated bool

	loginFn    func(ctx context.Context, email, password string) (*domain.User, error)
	registerFn func(ctx context.Context, req domain.RegistrationRequest) (*domain.Confirmation, error)
	logoutFn   func(ctx context.Context) error

	landing   domain.Route
	scheduled []domain.Route
}

func (s *stubSessions) Init(ctx context.Context) ports.SessionState { return s.state }
func (s *stubSessions) State() ports.SessionState                   { return s.state }

func (s *stubSessions) Login(ctx context.Context, email, password string) (*domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubSessions) Register(ctx context.Context, req domain.RegistrationRequest) (*domain.Confirmation, error) {
	return s.registerFn(ctx, req)
}

func (s *stubSessions) Logout(ctx context.Context) error {
	if s.logoutFn == nil {
		return nil
	}
	return s.logoutFn(ctx)
}

func (s *stubSessions) Authenticated(ctx context.Context) bool { return s.authenticated }

func (s *stubSessions) LandingRoute(ctx context.Context, fallback domain.User) domain.Route {
	if s.landing != "" {
		return s.landing
	}
	return domain.DestinationFor(fallback.UserType)
}

func (s *stubSessions) ScheduleLanding(ctx context.Context, user domain.User) domain.Route {
	r := s.LandingRoute(ctx, user)
	s.scheduled = append(s.scheduled, r)
	return r
}

func (s *stubSessions) ScheduleSignIn() domain.Route {
	s.scheduled = append(s.scheduled, domain.RouteLogin)
	return domain.RouteLogin
}

func newJSONContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubSessions{
		loginFn: func(ctx context.Context, email, password string) (*domain.User, error) {
			if email != "admin@x.com" || password != "pw" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &domain.User{ID: "1", Email: email, UserType: domain.UserTypeAdmin}, nil
		},
	}
	h := NewAuthHandler(stub, time.Second, 2*time.Second)

	c, rec := newJSONContext(http.MethodPost, "/api/auth/login", `{"email":"admin@x.com","password":"pw"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Destination != domain.RouteAdminDashboard || resp.Redirect != domain.RouteAdminDashboard {
		t.Fatalf("unexpected routes: %+v", resp)
	}
	if resp.RedirectAfterMs != 1000 {
		t.Fatalf("expected 1000ms delay, got %d", resp.RedirectAfterMs)
	}
	if resp.Message != MsgLoginSuccess {
		t.Fatalf("unexpected message %q", resp.Message)
	}
	if len(stub.scheduled) != 1 {
		t.Fatalf("expected one scheduled navigation, got %v", stub.scheduled)
	}
}

func TestAuthHandler_Login_TokenRoleWinsForRedirect(t *testing.T) {
	stub := &stubSessions{
		landing: domain.RouteEmployeeDashboard,
		loginFn: func(ctx context.Context, email, password string) (*domain.User, error) {
			return &domain.User{Email: email, UserType: domain.UserTypeAdmin}, nil
		},
	}
	h := NewAuthHandler(stub, time.Second, time.Second)

	c, rec := newJSONContext(http.MethodPost, "/api/auth/login", `{"email":"a@x.com","password":"pw"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp loginResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Destination != domain.RouteAdminDashboard {
		t.Fatalf("destination must follow the user record, got %s", resp.Destination)
	}
	if resp.Redirect != domain.RouteEmployeeDashboard {
		t.Fatalf("redirect must follow the token, got %s", resp.Redirect)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	stub := &stubSessions{
		loginFn: func(ctx context.Context, email, password string) (*domain.User, error) {
			t.Fatalf("Login must not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, time.Second, time.Second)

	c, _ := newJSONContext(http.MethodPost, "/api/auth/login", `{"email":""}`)
	err := h.Login(c)

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestAuthHandler_Login_Rejected(t *testing.T) {
	stub := &stubSessions{
		loginFn: func(ctx context.Context, email, password string) (*domain.User, error) {
			return nil, &domain.AuthError{Message: "Invalid credentials", StatusCode: http.StatusUnauthorized}
		},
	}
	h := NewAuthHandler(stub, time.Second, time.Second)

	c, _ := newJSONContext(http.MethodPost, "/api/auth/login", `{"email":"a@x.com","password":"bad"}`)
	err := h.Login(c)

	code, msg, ok := StatusFor(err)
	if !ok || code != http.StatusUnauthorized || msg != "Invalid credentials" {
		t.Fatalf("unexpected mapping: %d %q %v", code, msg, ok)
	}
	if len(stub.scheduled) != 0 {
		t.Fatalf("no navigation expected on failure, got %v", stub.scheduled)
	}
}

func TestAuthHandler_Login_InvalidJSON(t *testing.T) {
	h := NewAuthHandler(&stubSessions{}, time.Second, time.Second)

	c, _ := newJSONContext(http.MethodPost, "/api/auth/login", `{not json`)
	err := h.Login(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubSessions{
		registerFn: func(ctx context.Context, req domain.RegistrationRequest) (*domain.Confirmation, error) {
			if req.FirstName != "Ada" || req.LastName != "King Lovelace" || req.Country != domain.DefaultCountry {
				t.Fatalf("unexpected request: %+v", req)
			}
			return &domain.Confirmation{Raw: json.RawMessage(`{"message":"ok"}`)}, nil
		},
	}
	h := NewAuthHandler(stub, time.Second, 2*time.Second)

	body := `{"fullName":"Ada King Lovelace","email":"ada@x.com","mobile":"91123","password":"pw","confirmPassword":"pw"}`
	c, rec := newJSONContext(http.MethodPost, "/api/auth/register", body)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["redirect"] != string(domain.RouteLogin) || resp["redirectAfterMs"] != float64(2000) {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if conf, ok := resp["confirmation"].(map[string]any); !ok || conf["message"] != "ok" {
		t.Fatalf("expected confirmation passthrough, got %+v", resp["confirmation"])
	}
}

func TestAuthHandler_Register_PasswordMismatch(t *testing.T) {
	stub := &stubSessions{
		registerFn: func(ctx context.Context, req domain.RegistrationRequest) (*domain.Confirmation, error) {
			t.Fatalf("Register must not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, time.Second, time.Second)

	body := `{"fullName":"Ada","email":"ada@x.com","mobile":"91","password":"a","confirmPassword":"b"}`
	c, _ := newJSONContext(http.MethodPost, "/api/auth/register", body)
	err := h.Register(c)

	code, _, ok := StatusFor(err)
	if !ok || code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d (%v)", code, err)
	}
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	stub := &stubSessions{
		registerFn: func(ctx context.Context, req domain.RegistrationRequest) (*domain.Confirmation, error) {
			return nil, &domain.AuthError{Message: "Email already exists", StatusCode: http.StatusConflict}
		},
	}
	h := NewAuthHandler(stub, time.Second, time.Second)

	body := `{"fullName":"Ada","email":"ada@x.com","mobile":"91","password":"a","confirmPassword":"a"}`
	c, _ := newJSONContext(http.MethodPost, "/api/auth/register", body)
	err := h.Register(c)

	code, msg, _ := StatusFor(err)
	if code != http.StatusConflict || msg != "Email already exists" {
		t.Fatalf("unexpected mapping: %d %q", code, msg)
	}
}

func TestAuthHandler_Session(t *testing.T) {
	stub := &stubSessions{
		authenticated: true,
		state: ports.SessionState{
			User:        &domain.User{Email: "e@x.com", UserType: domain.UserTypeEmployee},
			Initialized: true,
		},
	}
	h := NewAuthHandler(stub, time.Second, time.Second)

	c, rec := newJSONContext(http.MethodGet, "/api/session", "")
	if err := h.Session(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["authenticated"] != true || resp["destination"] != string(domain.RouteEmployeeDashboard) {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	called := false
	stub := &stubSessions{logoutFn: func(ctx context.Context) error {
		called = true
		return nil
	}}
	h := NewAuthHandler(stub, time.Second, time.Second)

	c, rec := newJSONContext(http.MethodPost, "/api/auth/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("expected Logout to be called")
	}
	if !strings.Contains(rec.Body.String(), `"redirect":"/login"`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}
