// Package app wires configuration, storage, the remote API client and the
// session manager into one runnable unit shared by the server and the CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/Sairam-Chetpelly/visafrontend/internal/api"
	"github.com/Sairam-Chetpelly/visafrontend/internal/api/handler"
	"github.com/Sairam-Chetpelly/visafrontend/internal/api/web"
	"github.com/Sairam-Chetpelly/visafrontend/internal/core/domain"
	"github.com/Sairam-Chetpelly/visafrontend/internal/core/service"
	"github.com/Sairam-Chetpelly/visafrontend/internal/infrastructure/apiclient"
	"github.com/Sairam-Chetpelly/visafrontend/internal/infrastructure/config"
	mongostore "github.com/Sairam-Chetpelly/visafrontend/internal/infrastructure/db/mongo"
	redisstore "github.com/Sairam-Chetpelly/visafrontend/internal/infrastructure/db/redis"
	"github.com/Sairam-Chetpelly/visafrontend/internal/infrastructure/navigation"
	"github.com/Sairam-Chetpelly/visafrontend/internal/infrastructure/store"
	"github.com/Sairam-Chetpelly/visafrontend/internal/infrastructure/token"
	"github.com/Sairam-Chetpelly/visafrontend/pkg/logger"
)

const (
	shutdownTimeout = 10 * time.Second
	probeTimeout    = 3 * time.Second
)

// Options adjusts how an App is assembled. Zero values keep the configuration.
type Options struct {
	// Ephemeral keeps the session in memory only.
	Ephemeral bool
	// Navigate presents each navigation signal. Nil logs it.
	Navigate navigation.Handler
}

// App owns every long-lived component. Close releases them.
type App struct {
	Config   *config.Config
	Log      zerolog.Logger
	Store    *store.SessionStore
	Client   *apiclient.Client
	Sessions *service.SessionManager
	Nav      *navigation.Dispatcher

	// registry overrides the default Prometheus registry for HTTP metrics.
	registry *prometheus.Registry

	checks  map[string]handler.Check
	closers []func(context.Context) error
	cancel  context.CancelFunc
}

// New assembles an App and restores any stored session. ctx bounds the
// connection attempts; the navigation worker lives until Close.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger, opts Options) (*App, error) {
	a := &App{
		Config: cfg,
		Log:    log,
		checks: make(map[string]handler.Check),
	}

	backend, err := a.openBackend(ctx, opts.Ephemeral)
	if err != nil {
		_ = a.Close(context.Background())
		return nil, err
	}
	if p, ok := backend.(store.Pinger); ok {
		a.checks["session_store"] = p.Ping
	}

	a.Store = store.New(backend, logger.Component(log, "store"))

	decoder := token.NewDecoder(cfg.Session.TokenSecret)
	a.Client = apiclient.New(cfg.API.BaseURL, cfg.API.Timeout, decoder, logger.Component(log, "apiclient"))
	a.checks["credential_api"] = probeAPI(cfg.API.BaseURL)

	navigate := opts.Navigate
	if navigate == nil {
		navLog := logger.Component(log, "navigation")
		navigate = func(_ context.Context, route domain.Route) {
			navLog.Debug().Str("route", string(route)).Msg("navigate")
		}
	}
	navCtx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.Nav = navigation.NewDispatcher(navigate, logger.Component(log, "navigation"))
	a.Nav.Start(navCtx)

	a.Sessions = service.NewSessionManager(a.Store, a.Client, decoder, a.Nav,
		logger.Component(log, "session"),
		service.Options{
			LoginDelay:    cfg.Session.LoginRedirectDelay,
			RegisterDelay: cfg.Session.RegisterRedirectDelay,
		})
	a.Sessions.Init(ctx)

	return a, nil
}

func (a *App) openBackend(ctx context.Context, ephemeral bool) (store.Backend, error) {
	cfg := a.Config
	if ephemeral {
		return store.NewMemoryBackend(), nil
	}

	switch cfg.Session.Backend {
	case config.BackendMemory:
		return store.NewMemoryBackend(), nil

	case config.BackendRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Timeout:  cfg.Redis.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("session store: %w", err)
		}
		a.closers = append(a.closers, func(context.Context) error { return client.Close() })
		return redisstore.NewSessionBackend(client, cfg.Redis.KeyPrefix, cfg.Session.Profile), nil

	case config.BackendMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			Timeout:  cfg.Mongo.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("session store: %w", err)
		}
		a.closers = append(a.closers, client.Disconnect)
		return mongostore.NewSessionBackend(db, cfg.Session.Profile), nil

	default:
		dir := cfg.Session.Dir
		if dir == "" {
			d, err := store.DefaultDir()
			if err != nil {
				return nil, fmt.Errorf("session store: %w", err)
			}
			dir = d
		}
		return store.NewFileBackend(dir, cfg.Session.Profile), nil
	}
}

// Router builds the HTTP surface over this App's session manager.
func (a *App) Router() (*echo.Echo, error) {
	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}
	return api.NewRouter(api.Deps{
		Sessions:      a.Sessions,
		Renderer:      renderer,
		Checks:        a.checks,
		Log:           a.Log,
		SubmitRate:    a.Config.SubmitRatePer,
		LoginDelay:    a.Sessions.LoginDelay(),
		RegisterDelay: a.Sessions.RegisterDelay(),
		Registry:      a.registry,
	}), nil
}

// Serve runs the HTTP server on addr until ctx is cancelled, then shuts it
// down gracefully.
func (a *App) Serve(ctx context.Context, addr string) error {
	e, err := a.Router()
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info().Str("addr", addr).Str("api", a.Client.BaseURL()).Msg("server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.Log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

// Close stops the session manager and releases storage connections.
func (a *App) Close(ctx context.Context) error {
	if a.Sessions != nil {
		a.Sessions.Close()
	}
	if a.Nav != nil {
		a.Nav.Stop()
	}
	if a.cancel != nil {
		a.cancel()
	}

	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// probeAPI reports the credential API as up when it answers at all. Any HTTP
// status counts; only transport failures do not.
func probeAPI(baseURL string) handler.Check {
	client := &http.Client{Timeout: probeTimeout}
	return func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, baseURL, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		return resp.Body.Close()
	}
}
