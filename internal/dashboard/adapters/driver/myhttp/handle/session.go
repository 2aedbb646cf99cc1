package handle

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"shuttle-admin/internal/dashboard/core/feature"
	"shuttle-admin/internal/dashboard/core/ports/driven"
	"shuttle-admin/internal/dashboard/core/service"
	"shuttle-admin/internal/mylogger"
)

const SessionCookie = "shuttle_sid"

// ClientFactory returns an API client that authenticates with tokens from ts.
type ClientFactory func(ts driven.ITokenSource) driven.IAPIClient

// SessionState is one browser session: its persisted settings and the
// screens it has open.
type SessionState struct {
	ID      string
	Session *service.Session
	Theme   *service.ThemeService
	Auth    *service.AuthService

	api driven.IAPIClient
	env feature.Env

	mu        sync.Mutex
	workspace *feature.Workspace

	// guarded by Sessions.mu
	lastSeen time.Time
}

// Workspace returns the open screens, starting a fresh set after logout.
func (s *SessionState) Workspace() *feature.Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.workspace == nil {
		s.workspace = feature.NewWorkspace(s.api, s.Session, s.env)
	}
	return s.workspace
}

// Logout clears token and user and tears down every open screen.
func (s *SessionState) Logout(ctx context.Context) error {
	s.close()
	return s.Session.Clear(ctx)
}

func (s *SessionState) close() {
	s.mu.Lock()
	ws := s.workspace
	s.workspace = nil
	s.mu.Unlock()
	if ws != nil {
		ws.Dispose()
	}
}

// Sessions keeps the live sessions keyed by cookie value. Settings outlive
// the process in the store; open screens do not. Sessions idle for longer
// than idle are removed by Sweep.
type Sessions struct {
	store     driven.ISettingsStore
	newClient ClientFactory
	env       feature.Env
	mylog     mylogger.Logger
	idle      time.Duration
	now       func() time.Time

	mu    sync.Mutex
	items map[string]*SessionState
}

func NewSessions(store driven.ISettingsStore, newClient ClientFactory, env feature.Env, mylog mylogger.Logger, idle time.Duration) *Sessions {
	return &Sessions{
		store:     store,
		newClient: newClient,
		env:       env,
		mylog:     mylog,
		idle:      idle,
		now:       time.Now,
		items:     make(map[string]*SessionState),
	}
}

// Get returns the session for id, creating its state on first sight, and
// marks it as seen.
func (s *Sessions) Get(id string) *SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if st, ok := s.items[id]; ok {
		st.lastSeen = now
		return st
	}
	sess := service.NewSession(s.store, id)
	api := s.newClient(sess)
	st := &SessionState{
		ID:       id,
		Session:  sess,
		Theme:    service.NewThemeService(sess),
		Auth:     service.NewAuthService(api),
		api:      api,
		env:      s.env,
		lastSeen: now,
	}
	s.items[id] = st
	return st
}

// Remove forgets the session and disposes its screens. Its persisted
// settings stay in the store.
func (s *Sessions) Remove(id string) {
	s.mu.Lock()
	st, ok := s.items[id]
	delete(s.items, id)
	s.mu.Unlock()
	if ok {
		st.close()
	}
}

// Sweep removes sessions idle for longer than the idle timeout and returns
// how many it removed.
func (s *Sessions) Sweep() int {
	if s.idle <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.idle)

	s.mu.Lock()
	var stale []*SessionState
	for id, st := range s.items {
		if st.lastSeen.Before(cutoff) {
			stale = append(stale, st)
			delete(s.items, id)
		}
	}
	s.mu.Unlock()

	for _, st := range stale {
		st.close()
	}
	if len(stale) > 0 {
		s.mylog.Action("sessions_swept").Debug("idle sessions removed", "count", len(stale))
	}
	return len(stale)
}

// RunSweeper calls Sweep every interval until ctx ends.
func (s *Sessions) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Close disposes every open screen of every session.
func (s *Sessions) Close() {
	s.mu.Lock()
	items := s.items
	s.items = make(map[string]*SessionState)
	s.mu.Unlock()
	for _, st := range items {
		st.close()
	}
}

type sessionKey struct{}

// Attach resolves the session cookie, issuing a new one when it is missing
// or malformed, and puts the session into the request context.
func (s *Sessions) Attach(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(SessionCookie); err == nil {
			if _, err := uuid.Parse(c.Value); err == nil {
				id = c.Value
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			s.mylog.Action("session_created").Debug("new session", "session", id)
		}
		ctx := context.WithValue(r.Context(), sessionKey{}, s.Get(id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionFrom returns the session attached by Sessions.Attach.
func SessionFrom(ctx context.Context) *SessionState {
	st, _ := ctx.Value(sessionKey{}).(*SessionState)
	return st
}
