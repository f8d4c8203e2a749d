package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/Sairam-Chetpelly/visafrontend/internal/api/docs"
	"github.com/Sairam-Chetpelly/visafrontend/internal/api/handler"
	"github.com/Sairam-Chetpelly/visafrontend/internal/api/middleware"
	"github.com/Sairam-Chetpelly/visafrontend/internal/core/domain"
	"github.com/Sairam-Chetpelly/visafrontend/internal/core/ports"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Sessions      ports.SessionManager
	Renderer      echo.Renderer
	Checks        map[string]handler.Check
	Log           zerolog.Logger
	SubmitRate    float64
	LoginDelay    time.Duration
	RegisterDelay time.Duration

	// Registry receives the HTTP metrics. Nil selects the process default.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = d.Renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(d.Log))
	promConfig := echoprometheus.MiddlewareConfig{
		Subsystem: "http",
		Namespace: "visafrontend",
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}
	metricsHandler := echoprometheus.NewHandler()
	if d.Registry != nil {
		promConfig.Registerer = d.Registry
		metricsHandler = echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Registry})
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(promConfig))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.SubmitLimiter(d.SubmitRate))

	// --- Pages (guarded by token presence) ---
	pages := handler.NewPageHandler(d.Sessions, d.LoginDelay, d.RegisterDelay, d.Log)
	guard := middleware.Guard(d.Sessions)

	e.GET(string(domain.RouteRoot), pages.Root, guard)
	e.GET(string(domain.RouteLogin), pages.LoginForm, guard)
	e.POST(string(domain.RouteLogin), pages.LoginSubmit, guard)
	e.GET(string(domain.RouteRegister), pages.RegisterForm, guard)
	e.POST(string(domain.RouteRegister), pages.RegisterSubmit, guard)
	e.GET(string(domain.RouteForgotPassword), pages.ForgotPassword, guard)
	for _, r := range domain.DashboardRoutes {
		e.GET(string(r), pages.Dashboard, guard)
	}
	e.POST("/logout", pages.Logout)

	// --- JSON session API ---
	auth := handler.NewAuthHandler(d.Sessions, d.LoginDelay, d.RegisterDelay)
	apiGroup := e.Group("/api")
	apiGroup.GET("/session", auth.Session)
	apiGroup.POST("/auth/login", auth.Login)
	apiGroup.POST("/auth/register", auth.Register)
	apiGroup.POST("/auth/logout", auth.Logout)

	// --- Health probes, metrics and docs ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Checks)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", metricsHandler)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
