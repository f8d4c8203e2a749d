package handler

import (
	"math"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Sairam-Chetpelly/visafrontend/internal/core/domain"
	"github.com/Sairam-Chetpelly/visafrontend/internal/core/ports"
	"github.com/Sairam-Chetpelly/visafrontend/internal/core/service"
)

// Template names understood by the renderer.
const (
	PageLogin     = "login"
	PageRegister  = "register"
	PageForgot    = "forgot"
	PageDashboard = "dashboard"
	PageRedirect  = "redirect"
)

// pageData is the single view model every template receives.
type pageData struct {
	Title     string
	Route     domain.Route
	RequestID string

	Error  string
	Notice string

	User  *domain.User
	Email string
	Form  domain.RegistrationForm

	// Destination is the dashboard chosen from the user record; RedirectTo is
	// where the page navigates after RedirectAfter seconds.
	Destination   domain.Route
	RedirectTo    domain.Route
	RedirectAfter int
}

// PageHandler renders the HTML navigation surface.
type PageHandler struct {
	sessions      ports.SessionManager
	loginDelay    time.Duration
	registerDelay time.Duration
	log           zerolog.Logger
}

func NewPageHandler(sessions ports.SessionManager, loginDelay, registerDelay time.Duration, log zerolog.Logger) *PageHandler {
	return &PageHandler{
		sessions:      sessions,
		loginDelay:    loginDelay,
		registerDelay: registerDelay,
		log:           log,
	}
}

func (h *PageHandler) page(c echo.Context, title string) pageData {
	return pageData{Title: title, Route: currentRoute(c), RequestID: requestID(c)}
}

// Root is only reached if the guard is not installed.
func (h *PageHandler) Root(c echo.Context) error {
	authenticated, ok := ctxAuthenticated(c)
	if !ok {
		authenticated = h.sessions.Authenticated(c.Request().Context())
	}
	target, _ := domain.GuardRedirect(domain.RouteRoot, authenticated)
	return c.Redirect(http.StatusFound, string(target))
}

func (h *PageHandler) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, PageLogin, h.page(c, "Sign in"))
}

func (h *PageHandler) LoginSubmit(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	ctx := c.Request().Context()
	user, err := h.sessions.Login(ctx, req.Email, req.Password)
	if err != nil {
		data := h.page(c, "Sign in")
		data.Email = req.Email
		return h.renderFailure(c, PageLogin, data, err)
	}

	data := h.page(c, "Login Successful")
	data.User = user
	data.Notice = MsgLoginSuccess
	data.Destination = domain.DestinationFor(user.UserType)
	data.RedirectTo = h.sessions.ScheduleLanding(ctx, *user)
	data.RedirectAfter = seconds(h.loginDelay)
	return c.Render(http.StatusOK, PageRedirect, data)
}

func (h *PageHandler) RegisterForm(c echo.Context) error {
	return c.Render(http.StatusOK, PageRegister, h.page(c, "Create account"))
}

func (h *PageHandler) RegisterSubmit(c echo.Context) error {
	var form domain.RegistrationForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	failed := func(err error) error {
		data := h.page(c, "Create account")
		data.Form = form
		data.Form.Password, data.Form.ConfirmPassword = "", ""
		return h.renderFailure(c, PageRegister, data, err)
	}

	req, err := service.ValidateRegistration(form)
	if err != nil {
		return failed(err)
	}
	if _, err := h.sessions.Register(c.Request().Context(), req); err != nil {
		return failed(err)
	}

	data := h.page(c, "Registration Successful!")
	data.Notice = MsgRegisterSuccess
	data.RedirectTo = h.sessions.ScheduleSignIn()
	data.RedirectAfter = seconds(h.registerDelay)
	return c.Render(http.StatusOK, PageRedirect, data)
}

func (h *PageHandler) ForgotPassword(c echo.Context) error {
	return c.Render(http.StatusOK, PageForgot, h.page(c, "Forgot Password"))
}

// Dashboard serves every dashboard route; the guard has already checked the token.
func (h *PageHandler) Dashboard(c echo.Context) error {
	data := h.page(c, "Dashboard")
	data.User = h.sessions.State().User
	return c.Render(http.StatusOK, PageDashboard, data)
}

func (h *PageHandler) Logout(c echo.Context) error {
	if err := h.sessions.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, string(domain.RouteLogin))
}

// renderFailure re-renders a form with the same message the session state carries.
func (h *PageHandler) renderFailure(c echo.Context, page string, data pageData, err error) error {
	code, msg, ok := StatusFor(err)
	if !ok {
		h.log.Error().Err(err).Str("path", c.Path()).Msg("form submission failed")
	}
	data.Error = msg
	return c.Render(code, page, data)
}

func seconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Seconds()))
}
