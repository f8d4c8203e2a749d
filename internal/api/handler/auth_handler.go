package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Sairam-Chetpelly/visafrontend/internal/core/domain"
	"github.com/Sairam-Chetpelly/visafrontend/internal/core/ports"
	"github.com/Sairam-Chetpelly/visafrontend/internal/core/service"
)

// Messages shown after a successful submission.
const (
	MsgLoginSuccess    = "Welcome back! Redirecting to your dashboard..."
	MsgRegisterSuccess = "Your account has been created. Please login to continue."
)

// AuthHandler serves the JSON session API used by script-driven clients.
type AuthHandler struct {
	sessions      ports.SessionManager
	loginDelay    time.Duration
	registerDelay time.Duration
}

func NewAuthHandler(sessions ports.SessionManager, loginDelay, registerDelay time.Duration) *AuthHandler {
	return &AuthHandler{sessions: sessions, loginDelay: loginDelay, registerDelay: registerDelay}
}

// Session reports the current session state.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /api/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	st := h.sessions.State()
	resp := sessionResponse{
		State:         st,
		Authenticated: h.sessions.Authenticated(c.Request().Context()),
	}
	if st.User != nil {
		resp.Destination = domain.DestinationFor(st.User.UserType)
	}
	return c.JSON(http.StatusOK, resp)
}

// Login exchanges credentials for a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	user, err := h.sessions.Login(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toLoginResponse(user, h.sessions.ScheduleLanding(ctx, *user), h.loginDelay))
}

// Register creates an account. No session is created.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      domain.RegistrationForm  true  "Sign-up form"
// @Success      201   {object}  registerResponse
// @Failure      422   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var form domain.RegistrationForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	req, err := service.ValidateRegistration(form)
	if err != nil {
		return err
	}

	conf, err := h.sessions.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toRegisterResponse(conf, h.sessions.ScheduleSignIn(), h.registerDelay))
}

// Logout clears the session.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  logoutResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, logoutResponse{Redirect: domain.RouteLogin})
}

func toLoginResponse(user *domain.User, redirect domain.Route, delay time.Duration) loginResponse {
	return loginResponse{
		User:            user,
		Destination:     domain.DestinationFor(user.UserType),
		Redirect:        redirect,
		RedirectAfterMs: delay.Milliseconds(),
		Message:         MsgLoginSuccess,
	}
}

func toRegisterResponse(conf *domain.Confirmation, redirect domain.Route, delay time.Duration) registerResponse {
	resp := registerResponse{
		Message:         MsgRegisterSuccess,
		Redirect:        redirect,
		RedirectAfterMs: delay.Milliseconds(),
	}
	if conf != nil && len(conf.Raw) > 0 {
		resp.Confirmation = conf.Raw
	}
	return resp
}
