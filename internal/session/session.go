// Package session gates the console behind a single shared admin secret and
// owns the per-login working state.
//
// The gate is a static password compared in memory. There is no hashing, no
// lockout and no persisted token; it is a convenience lock, not a security
// boundary.
package session

import (
	"context"
	"crypto/subtle"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/ndewijer/Investment-Admin-Console/internal/errors"
	"github.com/ndewijer/Investment-Admin-Console/internal/ledger"
	"github.com/ndewijer/Investment-Admin-Console/internal/model"
	"github.com/ndewijer/Investment-Admin-Console/internal/repository"
)

// Feed is a background job that runs only while a session is open.
// *pricefeed.Poller satisfies it.
type Feed interface {
	Start() error
	Stop()
}

// Session is the state unlocked by a successful login: the investment
// ledger, the loaded users and the outcome of the last bulk load.
type Session struct {
	ID        string
	StartedAt time.Time
	Ledger    *ledger.Ledger

	repo *repository.RecordRepository

	mu       sync.RWMutex
	users    []model.User
	userByID map[string]model.User
	lastLoad model.LoadSummary
}

// Users returns the loaded users in load order.
func (s *Session) Users() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.User, len(s.users))
	copy(out, s.users)
	return out
}

// User returns the loaded user with id.
func (s *Session) User(id string) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.userByID[id]
	return u, ok
}

// LastLoad returns the summary of the most recent bulk load.
func (s *Session) LastLoad() model.LoadSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastLoad
}

// Reload bulk-loads users and investments from the store. When the store is
// unavailable the current working set is kept and the summary says so.
func (s *Session) Reload(ctx context.Context) model.LoadSummary {
	users := s.repo.LoadUsers(ctx)
	investments := s.repo.LoadInvestments(ctx)

	summary := model.LoadSummary{
		LoadedAt:           time.Now().UTC(),
		SkippedUsers:       users.SkippedRecords(),
		SkippedInvestments: investments.SkippedRecords(),
		StoreUnavailable:   users.Unavailable || investments.Unavailable,
	}

	s.mu.Lock()
	if !users.Unavailable {
		s.setUsers(users.Records())
	}
	summary.Users = len(s.users)
	s.mu.Unlock()

	if !investments.Unavailable {
		s.Ledger.Replace(investments.Records())
	}
	summary.Investments = s.Ledger.Len()

	s.mu.Lock()
	s.lastLoad = summary
	s.mu.Unlock()

	log.Printf("Session %s loaded %d users (%d skipped) and %d investments (%d skipped)",
		s.ID, summary.Users, len(summary.SkippedUsers), summary.Investments, len(summary.SkippedInvestments))

	return summary
}

// setUsers must be called with s.mu held.
func (s *Session) setUsers(users []model.User) {
	s.users = users
	s.userByID = make(map[string]model.User, len(users))
	for _, u := range users {
		s.userByID[u.ID] = u
	}
}

// Manager authenticates the admin and holds the single open session.
type Manager struct {
	secret string
	repo   *repository.RecordRepository
	feed   Feed
	opts   []ledger.Option

	mu      sync.Mutex
	current *Session
}

// NewManager creates a Manager. feed may be nil.
func NewManager(secret string, repo *repository.RecordRepository, feed Feed, opts ...ledger.Option) *Manager {
	return &Manager{
		secret: secret,
		repo:   repo,
		feed:   feed,
		opts:   opts,
	}
}

// Login checks secret and opens a session: it loads the records and starts
// the feed. Logging in while a session is open returns that session.
//
// Returns apperrors.ErrAuth on a mismatch, with no state change.
func (m *Manager) Login(ctx context.Context, secret string) (*Session, error) {
	if subtle.ConstantTimeCompare([]byte(secret), []byte(m.secret)) != 1 {
		log.Println("Admin login rejected")
		return nil, apperrors.ErrAuth
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil {
		return m.current, nil
	}

	s := &Session{
		ID:        uuid.New().String(),
		StartedAt: time.Now().UTC(),
		Ledger:    ledger.New(m.repo, nil, m.opts...),
		repo:      m.repo,
		userByID:  map[string]model.User{},
	}
	s.Reload(ctx)

	if m.feed != nil {
		if err := m.feed.Start(); err != nil {
			log.Printf("Failed to start price feed: %v", err)
		}
	}

	m.current = s
	log.Printf("Admin session %s opened", s.ID)
	return s, nil
}

// Logout closes the open session and stops the feed. It is a no-op
// when no session is open.
func (m *Manager) Logout() {
	m.mu.Lock()
	s := m.current
	m.current = nil
	m.mu.Unlock()

	if s == nil {
		return
	}
	if m.feed != nil {
		m.feed.Stop()
	}
	log.Printf("Admin session %s closed", s.ID)
}

// Current returns the open session, or apperrors.ErrNotAuthenticated.
func (m *Manager) Current() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	return m.current, nil
}

// Authenticated reports whether a session is open.
func (m *Manager) Authenticated() bool {
	_, err := m.Current()
	return err == nil
}
