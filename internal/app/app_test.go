package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sairam-Chetpelly/visafrontend/internal/core/domain"
	"github.com/Sairam-Chetpelly/visafrontend/internal/infrastructure/config"
	"github.com/Sairam-Chetpelly/visafrontend/internal/infrastructure/store"
)

func testConfig(apiURL string) *config.Config {
	return &config.Config{
		HTTPAddr: "127.0.0.1:0",
		API:      config.APIConfig{BaseURL: apiURL, Timeout: time.Second},
		Session: config.SessionConfig{
			Backend:               config.BackendMemory,
			Profile:               "default",
			LoginRedirectDelay:    time.Second,
			RegisterRedirectDelay: 2 * time.Second,
		},
	}
}

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	a, err := New(context.Background(), cfg, zerolog.Nop(), Options{})
	require.NoError(t, err)
	a.registry = prometheus.NewRegistry()
	t.Cleanup(func() { _ = a.Close(context.Background()) })
	return a
}

func TestNew_MemoryBackendStartsSignedOut(t *testing.T) {
	a := newTestApp(t, testConfig("http://127.0.0.1:1"))

	st := a.Sessions.State()
	assert.True(t, st.Initialized)
	assert.Nil(t, st.User)
	assert.Equal(t, "memory", a.Store.Backend().Name())
}

func TestNew_FileBackendUsesConfiguredDir(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.Session.Backend = config.BackendFile
	cfg.Session.Dir = t.TempDir()

	a := newTestApp(t, cfg)

	fb, ok := a.Store.Backend().(*store.FileBackend)
	require.True(t, ok)
	assert.Contains(t, fb.Path(), cfg.Session.Dir)
}

func TestNew_EphemeralOverridesBackend(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.Session.Backend = config.BackendFile
	cfg.Session.Dir = t.TempDir()

	a, err := New(context.Background(), cfg, zerolog.Nop(), Options{Ephemeral: true})
	require.NoError(t, err)
	defer a.Close(context.Background())

	assert.Equal(t, "memory", a.Store.Backend().Name())
}

func TestRouter_GuardsRoutes(t *testing.T) {
	a := newTestApp(t, testConfig("http://127.0.0.1:1"))
	e, err := a.Router()
	require.NoError(t, err)

	tests := []struct {
		path     string
		wantCode int
		wantLoc  string
	}{
		{"/", http.StatusFound, "/login"},
		{"/dashboard", http.StatusFound, "/login"},
		{"/admin-dashboard", http.StatusFound, "/login"},
		{"/login", http.StatusOK, ""},
		{"/register", http.StatusOK, ""},
		{"/forgot-password", http.StatusOK, ""},
		{"/health", http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantLoc != "" {
				assert.Equal(t, tt.wantLoc, rec.Header().Get("Location"))
			}
		})
	}
}

func TestRouter_AuthenticatedEntryRedirects(t *testing.T) {
	a := newTestApp(t, testConfig("http://127.0.0.1:1"))
	require.NoError(t, a.Store.Write(context.Background(), domain.Session{
		Token: "aaa.bbb.ccc",
		User:  domain.User{Email: "a@x.com"},
	}))

	e, err := a.Router()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, string(domain.RouteDashboard), rec.Header().Get("Location"))
}

func TestReadiness_ReportsAPIReachability(t *testing.T) {
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer up.Close()

	a := newTestApp(t, testConfig(up.URL))
	e, err := a.Router()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	down := newTestApp(t, testConfig("http://127.0.0.1:1"))
	e, err = down.Router()
	require.NoError(t, err)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServe_StopsOnCancel(t *testing.T) {
	a := newTestApp(t, testConfig("http://127.0.0.1:1"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
