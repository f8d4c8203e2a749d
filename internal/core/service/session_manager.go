package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sairam-Chetpelly/visafrontend/internal/api/metrics"
	"github.com/Sairam-Chetpelly/visafrontend/internal/core/domain"
	"github.com/Sairam-Chetpelly/visafrontend/internal/core/ports"
)

const (
	defaultLoginDelay    = time.Second
	defaultRegisterDelay = 2 * time.Second
)

// Options tunes a SessionManager. Zero values select the defaults.
type Options struct {
	LoginDelay    time.Duration
	RegisterDelay time.Duration
	Now           func() time.Time
}

// SessionManager implements ports.SessionManager.
type SessionManager struct {
	store   ports.SessionStore
	client  ports.CredentialClient
	decoder ports.TokenDecoder
	nav     ports.Navigator
	log     zerolog.Logger

	loginDelay    time.Duration
	registerDelay time.Duration
	now           func() time.Time

	initOnce sync.Once

	mu         sync.Mutex
	state      ports.SessionState
	inflight   int
	generation uint64
	closed     bool
	subs       map[int]chan ports.SessionState
	nextSub    int
}

func NewSessionManager(
	store ports.SessionStore,
	client ports.CredentialClient,
	decoder ports.TokenDecoder,
	nav ports.Navigator,
	log zerolog.Logger,
	opts Options,
) *SessionManager {
	if opts.LoginDelay <= 0 {
		opts.LoginDelay = defaultLoginDelay
	}
	if opts.RegisterDelay <= 0 {
		opts.RegisterDelay = defaultRegisterDelay
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &SessionManager{
		store:         store,
		client:        client,
		decoder:       decoder,
		nav:           nav,
		log:           log,
		loginDelay:    opts.LoginDelay,
		registerDelay: opts.RegisterDelay,
		now:           opts.Now,
		subs:          make(map[int]chan ports.SessionState),
	}
}

// Init restores a stored session. Only the first call reads the store; later
// calls return the current state.
func (m *SessionManager) Init(ctx context.Context) ports.SessionState {
	m.initOnce.Do(func() {
		user := m.restore(ctx)

		m.mu.Lock()
		if m.state.User == nil && user != nil {
			m.state.User = user
		}
		m.state.Initialized = true
		m.publishLocked()
		m.mu.Unlock()
	})
	return m.State()
}

// restore returns the stored user when its token still decodes and has not
// expired. Any other stored session is cleared.
func (m *SessionManager) restore(ctx context.Context) *domain.User {
	sess, err := m.storedSession(ctx)
	switch {
	case err == nil:
		metrics.SessionTransitionsTotal.WithLabelValues("restore", metrics.OutcomeSuccess).Inc()
		user := sess.User
		return &user
	case errors.Is(err, domain.ErrNoSession):
		metrics.SessionTransitionsTotal.WithLabelValues("restore", "absent").Inc()
		return nil
	}

	outcome := "corrupt"
	if errors.Is(err, domain.ErrTokenExpired) {
		outcome = "expired"
	}
	m.log.Warn().Err(err).Str("outcome", outcome).Msg("stored session rejected, clearing")
	metrics.SessionTransitionsTotal.WithLabelValues("restore", outcome).Inc()
	if err := m.store.Clear(ctx); err != nil {
		m.log.Warn().Err(err).Msg("failed to clear rejected session")
	}
	return nil
}

// storedSession reads the store and checks the token the same way a login does.
func (m *SessionManager) storedSession(ctx context.Context) (*domain.Session, error) {
	sess, ok := m.store.Read(ctx)
	if !ok {
		return nil, domain.ErrNoSession
	}
	claims, err := m.decoder.Decode(sess.Token)
	if err != nil {
		return nil, fmt.Errorf("stored token: %w", err)
	}
	if claims.Expired(m.now()) {
		return nil, fmt.Errorf("stored token expired at %s: %w", claims.ExpiresAt.Format(time.RFC3339), domain.ErrTokenExpired)
	}
	return sess, nil
}

// State returns a snapshot of the current state.
func (m *SessionManager) State() ports.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Subscribe delivers the latest state whenever it changes. Slow readers only
// miss intermediate states. The channel is closed by cancel or Close.
func (m *SessionManager) Subscribe() (<-chan ports.SessionState, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan ports.SessionState, 1)
	if m.closed {
		close(ch)
		return ch, func() {}
	}

	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch
	ch <- m.snapshotLocked()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			if c, ok := m.subs[id]; ok {
				delete(m.subs, id)
				close(c)
			}
		})
	}
}

// Login authenticates and persists the session. The returned error and the
// state's Error carry the same message.
func (m *SessionManager) Login(ctx context.Context, email, password string) (*domain.User, error) {
	gen, err := m.begin()
	if err != nil {
		return nil, err
	}
	defer m.end()

	if err := ValidateLogin(email, password); err != nil {
		m.fail(gen, "login", "invalid", err)
		return nil, err
	}

	sess, err := m.client.Authenticate(ctx, email, password)
	if err != nil {
		m.fail(gen, "login", metrics.OutcomeRejected, err)
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed || gen != m.generation {
		metrics.SessionTransitionsTotal.WithLabelValues("login", "superseded").Inc()
		m.log.Info().Msg("discarding login result that arrived after logout")
		return nil, domain.ErrSessionSuperseded
	}

	if err := m.store.Write(ctx, *sess); err != nil {
		m.state.Error = domain.MsgLoginFailed
		m.publishLocked()
		metrics.SessionTransitionsTotal.WithLabelValues("login", metrics.OutcomeError).Inc()
		m.log.Error().Err(err).Msg("failed to persist session")
		return nil, &domain.AuthError{Message: domain.MsgLoginFailed, Err: err}
	}

	user := sess.User
	m.state.User = &user
	m.state.Error = ""
	m.publishLocked()

	metrics.SessionTransitionsTotal.WithLabelValues("login", metrics.OutcomeSuccess).Inc()
	m.log.Info().Str("user_type", string(user.UserType)).Msg("signed in")

	out := user
	return &out, nil
}

// Register submits a registration. It never changes the session.
func (m *SessionManager) Register(ctx context.Context, req domain.RegistrationRequest) (*domain.Confirmation, error) {
	gen, err := m.begin()
	if err != nil {
		return nil, err
	}
	defer m.end()

	conf, err := m.client.CreateAccount(ctx, req)
	if err != nil {
		m.fail(gen, "register", metrics.OutcomeRejected, err)
		return nil, err
	}

	m.mu.Lock()
	if gen == m.generation {
		m.state.Error = ""
		m.publishLocked()
	}
	m.mu.Unlock()

	metrics.SessionTransitionsTotal.WithLabelValues("register", metrics.OutcomeSuccess).Inc()
	m.log.Info().Msg("account registered")
	return conf, nil
}

// Logout clears the stored session and navigates to the login view. Memory
// state is reset even when the backend could not be cleared.
func (m *SessionManager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.generation++
	clearErr := m.store.Clear(ctx)
	m.state.User = nil
	m.state.Error = ""
	m.publishLocked()
	m.mu.Unlock()

	m.nav.CancelPending()
	m.nav.Navigate(domain.RouteLogin)

	if clearErr != nil {
		metrics.SessionTransitionsTotal.WithLabelValues("logout", metrics.OutcomeError).Inc()
		m.log.Error().Err(clearErr).Msg("failed to clear stored session")
		return fmt.Errorf("logout: %w", clearErr)
	}
	metrics.SessionTransitionsTotal.WithLabelValues("logout", metrics.OutcomeSuccess).Inc()
	m.log.Info().Msg("signed out")
	return nil
}

// Authenticated reports whether a token is stored. The role claim is not consulted.
func (m *SessionManager) Authenticated(ctx context.Context) bool {
	return m.store.HasToken(ctx)
}

// LandingRoute picks the dashboard from the role claim of the stored token,
// falling back to the role on the given user when no token can be decoded.
func (m *SessionManager) LandingRoute(ctx context.Context, fallback domain.User) domain.Route {
	byUser := domain.DestinationFor(fallback.UserType)

	sess, ok := m.store.Read(ctx)
	if !ok {
		return byUser
	}
	claims, err := m.decoder.Decode(sess.Token)
	if err != nil {
		m.log.Warn().Err(err).Msg("stored token could not be decoded, using user role")
		return byUser
	}

	byToken := domain.DestinationFor(claims.UserType)
	if byToken != byUser {
		metrics.LandingDisagreementsTotal.Inc()
		m.log.Warn().
			Str("user_route", string(byUser)).
			Str("token_route", string(byToken)).
			Msg("user record and token disagree on landing dashboard")
	}
	return byToken
}

// ScheduleLanding navigates to LandingRoute once the login delay has passed.
func (m *SessionManager) ScheduleLanding(ctx context.Context, user domain.User) domain.Route {
	route := m.LandingRoute(ctx, user)
	m.nav.NavigateAfter(m.loginDelay, route)
	return route
}

// ScheduleSignIn navigates to the login view once the registration delay has passed.
func (m *SessionManager) ScheduleSignIn() domain.Route {
	m.nav.NavigateAfter(m.registerDelay, domain.RouteLogin)
	return domain.RouteLogin
}

// LoginDelay is the pause between a successful login and the landing navigation.
func (m *SessionManager) LoginDelay() time.Duration { return m.loginDelay }

// RegisterDelay is the pause between a successful registration and the login view.
func (m *SessionManager) RegisterDelay() time.Duration { return m.registerDelay }

// Close stops publishing state and discards any result still in flight.
func (m *SessionManager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.generation++
	for id, ch := range m.subs {
		delete(m.subs, id)
		close(ch)
	}
	m.mu.Unlock()

	m.nav.CancelPending()
}

func (m *SessionManager) begin() (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, domain.ErrSessionSuperseded
	}
	m.inflight++
	m.state.Loading = true
	m.state.Error = ""
	m.publishLocked()
	return m.generation, nil
}

func (m *SessionManager) end() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inflight--
	m.state.Loading = m.inflight > 0
	m.publishLocked()
}

// fail records err on the state unless a logout happened since gen.
func (m *SessionManager) fail(gen uint64, op, outcome string, err error) {
	metrics.SessionTransitionsTotal.WithLabelValues(op, outcome).Inc()
	m.log.Debug().Str("op", op).Err(err).Msg("session operation failed")

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.generation {
		return
	}
	m.state.Error = err.Error()
	m.publishLocked()
}

func (m *SessionManager) snapshotLocked() ports.SessionState {
	s := m.state
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// publishLocked replaces whatever each subscriber has not read yet.
func (m *SessionManager) publishLocked() {
	if m.closed {
		return
	}
	snap := m.snapshotLocked()
	for _, ch := range m.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}
