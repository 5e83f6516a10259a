package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/ndewijer/Investment-Admin-Console/internal/kvstore"
)

// ErrInjected is the error returned by FaultyStore for injected failures.
var ErrInjected = errors.New("injected store failure")

// FaultyStore wraps a Store and fails selected operations on demand.
// The zero-configured FaultyStore behaves exactly like the wrapped store.
//
// Example usage:
//
//	store := testutil.NewFaultyStore(kvstore.NewMemoryStore())
//	store.FailSet = true
//	_, err := ledger.Approve(ctx, id) // err wraps apperrors.ErrPersist
type FaultyStore struct {
	next kvstore.Store

	mu         sync.Mutex
	FailList   bool
	FailSet    bool
	FailDelete bool
	// FailGet lists keys whose Get returns ErrInjected.
	FailGet map[string]bool
	// SetCalls counts Set calls, including failed ones.
	SetCalls int
}

var _ kvstore.Store = (*FaultyStore)(nil)

// NewFaultyStore wraps next.
func NewFaultyStore(next kvstore.Store) *FaultyStore {
	return &FaultyStore{
		next:    next,
		FailGet: map[string]bool{},
	}
}

// FailGetFor makes Get fail for key.
func (s *FaultyStore) FailGetFor(key string) *FaultyStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.FailGet[key] = true
	return s
}

// SetFailures configures the Set and Delete failure switches.
func (s *FaultyStore) SetFailures(set, del bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.FailSet = set
	s.FailDelete = del
}

func (s *FaultyStore) List(ctx context.Context, prefix string) ([]string, error) {
	s.mu.Lock()
	fail := s.FailList
	s.mu.Unlock()
	if fail {
		return nil, ErrInjected
	}
	return s.next.List(ctx, prefix)
}

func (s *FaultyStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	fail := s.FailGet[key]
	s.mu.Unlock()
	if fail {
		return "", false, ErrInjected
	}
	return s.next.Get(ctx, key)
}

func (s *FaultyStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	s.SetCalls++
	fail := s.FailSet
	s.mu.Unlock()
	if fail {
		return ErrInjected
	}
	return s.next.Set(ctx, key, value)
}

func (s *FaultyStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	fail := s.FailDelete
	s.mu.Unlock()
	if fail {
		return ErrInjected
	}
	return s.next.Delete(ctx, key)
}
