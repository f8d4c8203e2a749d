// Package store persists the client session through a pluggable Backend.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Sairam-Chetpelly/visafrontend/internal/api/metrics"
	"github.com/Sairam-Chetpelly/visafrontend/internal/core/domain"
)

// Entry names shared by every backend.
const (
	KeyToken = "auth_token"
	KeyUser  = "user"
)

// Backend holds the two session entries. Load returns an empty map when
// nothing is stored. Save replaces both entries in one step.
type Backend interface {
	Name() string
	Load(ctx context.Context) (map[string]string, error)
	Save(ctx context.Context, entries map[string]string) error
	Remove(ctx context.Context) error
}

// Pinger is implemented by backends that depend on a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SessionStore implements ports.SessionStore. Unreadable data is treated as
// no session and is never surfaced as an error.
type SessionStore struct {
	mu      sync.Mutex
	backend Backend
	log     zerolog.Logger
}

// New wraps backend.
func New(backend Backend, log zerolog.Logger) *SessionStore {
	return &SessionStore{
		backend: backend,
		log:     log.With().Str("backend", backend.Name()).Logger(),
	}
}

// Backend returns the underlying backend.
func (s *SessionStore) Backend() Backend {
	return s.backend
}

// Has reports whether a complete, readable session is stored.
func (s *SessionStore) Has(ctx context.Context) bool {
	_, ok := s.Read(ctx)
	return ok
}

// HasToken reports whether a token entry is present, regardless of the user entry.
func (s *SessionStore) HasToken(ctx context.Context) bool {
	s.mu.Lock()
	entries, ok := s.load(ctx)
	s.mu.Unlock()
	if !ok {
		return false
	}
	return validToken(entries[KeyToken])
}

// Read returns the stored session, or false when it is missing or corrupt.
func (s *SessionStore) Read(ctx context.Context) (*domain.Session, bool) {
	s.mu.Lock()
	entries, ok := s.load(ctx)
	s.mu.Unlock()
	if !ok {
		return nil, false
	}

	rawToken, hasToken := entries[KeyToken]
	rawUser, hasUser := entries[KeyUser]
	if !hasToken && !hasUser {
		return nil, false
	}
	if !hasToken || !hasUser {
		s.corrupt(fmt.Errorf("%w: only one of %s and %s is stored", domain.ErrStorageCorrupt, KeyToken, KeyUser))
		return nil, false
	}
	if !validToken(rawToken) {
		s.corrupt(fmt.Errorf("%w: unusable token entry", domain.ErrStorageCorrupt))
		return nil, false
	}

	user, err := decodeUser(rawUser)
	if err != nil {
		s.corrupt(err)
		return nil, false
	}
	return &domain.Session{Token: rawToken, User: user}, true
}

// Write persists the session. Both entries land together or not at all.
func (s *SessionStore) Write(ctx context.Context, session domain.Session) error {
	if !validToken(session.Token) {
		return errors.New("write session: empty token")
	}
	rawUser, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("write session: encode user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := map[string]string{KeyToken: session.Token, KeyUser: string(rawUser)}
	if err := s.backend.Save(ctx, entries); err != nil {
		metrics.StoreErrorsTotal.WithLabelValues(s.backend.Name(), "save").Inc()
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear removes both entries.
func (s *SessionStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Remove(ctx); err != nil {
		metrics.StoreErrorsTotal.WithLabelValues(s.backend.Name(), "remove").Inc()
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// load must be called with mu held.
func (s *SessionStore) load(ctx context.Context) (map[string]string, bool) {
	entries, err := s.backend.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrStorageCorrupt) {
			s.corrupt(err)
			return nil, false
		}
		metrics.StoreErrorsTotal.WithLabelValues(s.backend.Name(), "load").Inc()
		s.log.Warn().Err(err).Msg("session backend unavailable, treating as signed out")
		return nil, false
	}
	return entries, true
}

func (s *SessionStore) corrupt(err error) {
	metrics.StoreCorruptTotal.WithLabelValues(s.backend.Name()).Inc()
	s.log.Warn().Err(err).Msg("discarding unreadable stored session")
}

func validToken(raw string) bool {
	t := strings.TrimSpace(raw)
	return t != "" && t != "undefined" && t != "null"
}

func decodeUser(raw string) (domain.User, error) {
	b := bytes.TrimSpace([]byte(raw))
	if len(b) == 0 || b[0] != '{' {
		return domain.User{}, fmt.Errorf("%w: user entry is not an object", domain.ErrStorageCorrupt)
	}
	var u domain.User
	if err := json.Unmarshal(b, &u); err != nil {
		return domain.User{}, fmt.Errorf("%w: %v", domain.ErrStorageCorrupt, err)
	}
	return u, nil
}
