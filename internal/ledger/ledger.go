// Package ledger holds the in-memory working set of investments for an admin
// session and applies lifecycle transitions to it.
//
// Every mutation follows the same protocol: locate the current record,
// compute the new record, persist it, and only then apply it in memory. A
// failed write leaves the in-memory set exactly as it was, so the ledger never
// shows a state the store did not record.
package ledger

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	apperrors "github.com/ndewijer/Investment-Admin-Console/internal/errors"
	"github.com/ndewijer/Investment-Admin-Console/internal/model"
)

// Persister writes investments to durable storage.
// *repository.RecordRepository satisfies it.
type Persister interface {
	SaveInvestment(ctx context.Context, inv model.Investment) error
	DeleteInvestment(ctx context.Context, id string) error
}

// Ledger is the authoritative in-memory view of all investments during a
// session. The mutex guards only the in-memory set; it is never held across
// a store call.
type Ledger struct {
	persist Persister
	now     func() time.Time

	mu    sync.RWMutex
	order []string
	byID  map[string]model.Investment
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the time source used for startDate and completedAt.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// New creates a Ledger seeded with investments, keeping their order.
// A later duplicate id replaces the earlier record in place.
func New(persist Persister, investments []model.Investment, opts ...Option) *Ledger {
	l := &Ledger{
		persist: persist,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(l)
	}
	l.Replace(investments)
	return l
}

// Replace swaps the whole working set, as done after a bulk load.
func (l *Ledger) Replace(investments []model.Investment) {
	order := make([]string, 0, len(investments))
	byID := make(map[string]model.Investment, len(investments))
	for _, inv := range investments {
		if _, seen := byID[inv.ID]; !seen {
			order = append(order, inv.ID)
		}
		byID[inv.ID] = inv.Clone()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.order = order
	l.byID = byID
}

// List returns a copy of every investment in load order.
func (l *Ledger) List() []model.Investment {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]model.Investment, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.byID[id].Clone())
	}
	return out
}

// Get returns a copy of the investment with id.
func (l *Ledger) Get(id string) (model.Investment, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	inv, ok := l.byID[id]
	if !ok {
		return model.Investment{}, fmt.Errorf("%w: %s", apperrors.ErrNotFound, id)
	}
	return inv.Clone(), nil
}

// Len returns the number of investments in the working set.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.order)
}

// Approve moves a pending investment to active and stamps startDate.
//
// Returns apperrors.ErrNotFound if the id is unknown, ErrInvalidTransition if
// the record is not pending, and ErrPersist if the store write fails.
func (l *Ledger) Approve(ctx context.Context, id string) (model.Investment, error) {
	current, err := l.Get(id)
	if err != nil {
		return model.Investment{}, err
	}
	if current.Status != model.StatusPending {
		return model.Investment{}, fmt.Errorf("%w: cannot approve %s investment %s",
			apperrors.ErrInvalidTransition, current.Status, id)
	}

	now := l.now()
	updated := current.Clone()
	updated.Status = model.StatusActive
	updated.StartDate = &now

	return l.commit(ctx, updated)
}

// Settle moves an active investment to a terminal state. A multiplier of
// zero cancels the investment; any other multiplier completes it. The
// settlement records actualReturn = amount * multiplier, the multiplier, the
// trade type and completedAt.
//
// A NaN, infinite or negative multiplier is rejected with ErrValidation
// before anything is written.
func (l *Ledger) Settle(ctx context.Context, id string, multiplier float64, tradeType string) (model.Investment, error) {
	if math.IsNaN(multiplier) || math.IsInf(multiplier, 0) {
		return model.Investment{}, fmt.Errorf("%w: multiplier must be a finite number", apperrors.ErrValidation)
	}
	if multiplier < 0 {
		return model.Investment{}, fmt.Errorf("%w: multiplier cannot be negative", apperrors.ErrValidation)
	}

	current, err := l.Get(id)
	if err != nil {
		return model.Investment{}, err
	}
	if current.Status != model.StatusActive {
		return model.Investment{}, fmt.Errorf("%w: cannot settle %s investment %s",
			apperrors.ErrInvalidTransition, current.Status, id)
	}

	now := l.now()
	actualReturn := current.Amount * multiplier
	m := multiplier

	updated := current.Clone()
	updated.Status = model.StatusCompleted
	if multiplier == 0 {
		updated.Status = model.StatusCancelled
	}
	updated.Multiplier = &m
	updated.ActualReturn = &actualReturn
	updated.TradeType = tradeType
	updated.CompletedAt = &now

	return l.commit(ctx, updated)
}

// Cancel settles an active investment with a zero multiplier.
func (l *Ledger) Cancel(ctx context.Context, id, tradeType string) (model.Investment, error) {
	return l.Settle(ctx, id, 0, tradeType)
}

// Delete removes an investment from the store and then from the working set.
// Any status may be deleted. The ledger does not ask for confirmation; that
// step belongs to the caller.
func (l *Ledger) Delete(ctx context.Context, id string) error {
	if _, err := l.Get(id); err != nil {
		return err
	}

	if err := l.persist.DeleteInvestment(ctx, id); err != nil {
		return fmt.Errorf("%w: delete %s: %w", apperrors.ErrPersist, id, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.byID[id]; !ok {
		return nil
	}
	delete(l.byID, id)
	for i, existing := range l.order {
		if existing == id {
			l.order = append(l.order[:i:i], l.order[i+1:]...)
			break
		}
	}
	return nil
}

// commit persists updated and, once the write has succeeded, replaces the
// record with the same id in memory.
func (l *Ledger) commit(ctx context.Context, updated model.Investment) (model.Investment, error) {
	if err := l.persist.SaveInvestment(ctx, updated); err != nil {
		return model.Investment{}, fmt.Errorf("%w: update %s: %w", apperrors.ErrPersist, updated.ID, err)
	}

	l.mu.Lock()
	if _, ok := l.byID[updated.ID]; ok {
		l.byID[updated.ID] = updated.Clone()
	}
	l.mu.Unlock()

	return updated, nil
}
