// Package session owns the authentication state derived from the client-held
// credential: whether a currently usable token exists and what role it grants.
//
// Three triggers drive re-evaluation - the initial check, a fixed-interval
// ticker, and a change notification from the token store - and all of them
// funnel through the same recheck path, so the state transition logic lives in
// exactly one place. Rechecks are idempotent: concurrent invocations converge
// to the same state and a consumer can never observe a half-updated snapshot
// such as authenticated-with-no-role.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"propertyhub/internal/token"
	"propertyhub/pkg/domain"
)

// AuthState is the process-wide derived summary of authentication status.
// Role and IsAuthenticated always change together.
type AuthState struct {
	IsAuthenticated bool
	Role            domain.RoleID
	IsLoading       bool
}

// Decoder extracts claims from a stored token. Decode failures mean the token
// cannot be trusted and is treated as absent.
type Decoder interface {
	Decode(tokenString string) (*token.Claims, error)
}

// Manager is the single source of truth for auth state.
type Manager struct {
	store    TokenStore
	decoder  Decoder
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time
	onLogout func()

	mu    sync.Mutex
	state AuthState
	subs  map[chan AuthState]struct{}
}

// Option configures a Manager.
type Option func(*Manager)

// WithRecheckInterval overrides the periodic re-validation interval when greater than zero.
func WithRecheckInterval(interval time.Duration) Option {
	return func(m *Manager) {
		if interval > 0 {
			m.interval = interval
		}
	}
}

// WithLogger overrides the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithClock injects the time source (no hidden time.Now() calls in tests).
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLogoutCallback registers the navigation collaborator invoked after an
// explicit logout. The manager never decides routes itself.
func WithLogoutCallback(fn func()) Option {
	return func(m *Manager) {
		m.onLogout = fn
	}
}

// NewManager constructs a Manager in the Unknown (loading) state.
func NewManager(store TokenStore, decoder Decoder, opts ...Option) (*Manager, error) {
	if store == nil || decoder == nil {
		return nil, errors.New("store and decoder are required")
	}
	m := &Manager{
		store:    store,
		decoder:  decoder,
		interval: 60 * time.Second,
		logger:   slog.Default(),
		now:      time.Now,
		state:    AuthState{IsAuthenticated: false, Role: domain.RoleUnknown, IsLoading: true},
		subs:     make(map[chan AuthState]struct{}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m, nil
}

// State returns a read-only snapshot of the current auth state.
func (m *Manager) State() AuthState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe returns a channel receiving a snapshot after every state
// transition, plus a cancel func that deregisters the subscriber. Snapshots
// coalesce for slow consumers; the latest one always arrives.
func (m *Manager) Subscribe() (<-chan AuthState, func()) {
	ch := make(chan AuthState, 1)
	m.mu.Lock()
	m.subs[ch] = struct{}{}
	m.mu.Unlock()

	cancel := func() {
		m.mu.Lock()
		if _, ok := m.subs[ch]; ok {
			delete(m.subs, ch)
			close(ch)
		}
		m.mu.Unlock()
	}
	return ch, cancel
}

// CheckAuthentication re-derives auth state from the stored token.
// Absent, undecodable, and expired tokens all resolve to unauthenticated;
// the two latter cases also purge the stored token (self-healing - a token
// that cannot be decoded is indistinguishable from a forged one and must not
// be trusted). Failures are never surfaced to the caller.
func (m *Manager) CheckAuthentication(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recheckLocked(ctx)
}

// CheckAuth reports whether a currently valid token exists. As a side effect
// it lazily repairs stale state and purges expired tokens. The target state is
// computed in full before it is published, so a currently authenticated
// caller never observes a flicker to unauthenticated and back.
func (m *Manager) CheckAuth(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recheckLocked(ctx)
}

// UpdateAuthState applies a freshly issued token immediately after a
// successful login or registration, ahead of slower storage backends
// reflecting it. With an empty token it falls back to re-reading the store,
// which supports refresh-after-external-change.
func (m *Manager) UpdateAuthState(ctx context.Context, tokenString string, role domain.RoleID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if tokenString == "" {
		m.recheckLocked(ctx)
		return
	}

	effective := role
	if !effective.IsValid() {
		if claims, err := m.decoder.Decode(tokenString); err == nil {
			effective = claims.Role
		} else {
			// Keep the previously known role; authenticated state still holds
			// because the issuer just handed this token out.
			effective = m.state.Role
		}
	}
	m.setStateLocked(AuthState{IsAuthenticated: true, Role: effective, IsLoading: false})
}

// Logout removes the stored token, resets auth state, and hands control to
// the navigation collaborator.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	if err := m.store.Remove(ctx); err != nil {
		m.logger.WarnContext(ctx, "logout could not remove stored token", "error", err)
	}
	m.setStateLocked(AuthState{IsAuthenticated: false, Role: domain.RoleUnknown, IsLoading: false})
	onLogout := m.onLogout
	m.mu.Unlock()

	if onLogout != nil {
		onLogout()
	}
}

// Run drives the manager's lifetime: one initial check, one periodic ticker,
// and one store watcher, all feeding the same recheck. The ticker and watcher
// are registered once and torn down when ctx ends.
func (m *Manager) Run(ctx context.Context) error {
	watch, err := m.store.Watch(ctx)
	if err != nil {
		return err
	}

	m.CheckAuthentication(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.CheckAuthentication(ctx)
		case _, ok := <-watch:
			if !ok {
				return ctx.Err()
			}
			m.CheckAuthentication(ctx)
		}
	}
}

// recheckLocked is the single state-transition path. It reads the store,
// decides the full target state, applies it atomically, and reports whether a
// valid token exists. Callers hold m.mu.
func (m *Manager) recheckLocked(ctx context.Context) bool {
	stored, err := m.store.Retrieve(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoToken) {
			m.logger.WarnContext(ctx, "token retrieve failed, treating as absent", "error", err)
		}
		m.setStateLocked(AuthState{IsAuthenticated: false, Role: domain.RoleUnknown, IsLoading: false})
		return false
	}

	claims, err := m.decoder.Decode(stored)
	if err != nil {
		// Corrupt tokens and the benign race where another context cleared
		// the key mid-read take the same path: purge and resolve to
		// unauthenticated.
		m.logger.WarnContext(ctx, "stored token undecodable, purging", "error", err)
		m.purgeLocked(ctx)
		return false
	}

	if !claims.Valid(m.now()) {
		m.purgeLocked(ctx)
		return false
	}

	role := claims.Role
	if !role.IsValid() {
		role = m.state.Role
	}
	m.setStateLocked(AuthState{IsAuthenticated: true, Role: role, IsLoading: false})
	return true
}

func (m *Manager) purgeLocked(ctx context.Context) {
	if err := m.store.Remove(ctx); err != nil {
		m.logger.WarnContext(ctx, "could not purge stored token", "error", err)
	}
	m.setStateLocked(AuthState{IsAuthenticated: false, Role: domain.RoleUnknown, IsLoading: false})
}

// setStateLocked applies a fully formed target state and fans out snapshots.
// Publishing only on change keeps repeated rechecks quiet.
func (m *Manager) setStateLocked(next AuthState) {
	if m.state == next {
		return
	}
	m.state = next
	observeState(next)
	for ch := range m.subs {
		// Coalesce: drop the stale pending snapshot, keep the newest.
		select {
		case <-ch:
		default:
		}
		ch <- next
	}
}
