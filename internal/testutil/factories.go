package testutil

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ndewijer/Investment-Admin-Console/internal/kvstore"
	"github.com/ndewijer/Investment-Admin-Console/internal/model"
)

// FixedTime is the default creation date of built investments.
var FixedTime = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

// UserBuilder provides a fluent interface for creating test users.
//
// Example usage:
//
//	// Simple creation with defaults
//	user := testutil.NewUser().Build(t, store)
//
//	// Customized user
//	user := testutil.NewUser().
//	    WithName("alice").
//	    WithEmail("alice@example.com").
//	    Build(t, store)
type UserBuilder struct {
	ID    string
	Name  string
	Email string
}

// NewUser creates a UserBuilder with sensible defaults.
func NewUser() *UserBuilder {
	id := MakeID()
	return &UserBuilder{
		ID:    id,
		Name:  "Test User",
		Email: "user-" + id[:8] + "@example.com",
	}
}

// WithID sets a custom ID.
func (b *UserBuilder) WithID(id string) *UserBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.Name = name
	return b
}

// WithEmail sets a custom email.
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.Email = email
	return b
}

// Model returns the user without storing it.
func (b *UserBuilder) Model() model.User {
	return model.User{ID: b.ID, Name: b.Name, Email: b.Email}
}

// Build stores the user under its key and returns it.
func (b *UserBuilder) Build(t *testing.T, store kvstore.Store) model.User {
	t.Helper()

	u := b.Model()
	PutJSON(t, store, model.UserKey(u.ID), u)
	return u
}

// InvestmentBuilder provides a fluent interface for creating test investments.
//
// Example usage:
//
//	inv := testutil.NewInvestment(user.ID).
//	    WithAmount(250).
//	    Active().
//	    Build(t, store)
type InvestmentBuilder struct {
	inv model.Investment
}

// NewInvestment creates a pending InvestmentBuilder for userID with an amount of 100.
func NewInvestment(userID string) *InvestmentBuilder {
	return &InvestmentBuilder{
		inv: model.Investment{
			ID:     MakeID(),
			UserID: userID,
			Amount: 100,
			Status: model.StatusPending,
			Date:   FixedTime.Format(time.RFC3339),
		},
	}
}

// WithID sets a custom ID.
func (b *InvestmentBuilder) WithID(id string) *InvestmentBuilder {
	b.inv.ID = id
	return b
}

// WithAmount sets a custom amount.
func (b *InvestmentBuilder) WithAmount(amount float64) *InvestmentBuilder {
	b.inv.Amount = amount
	return b
}

// WithDate sets the stored creation date text. An empty date is omitted.
func (b *InvestmentBuilder) WithDate(date string) *InvestmentBuilder {
	b.inv.Date = date
	return b
}

// WithStatus sets the status without touching the lifecycle fields.
func (b *InvestmentBuilder) WithStatus(status model.Status) *InvestmentBuilder {
	b.inv.Status = status
	return b
}

// WithExtra adds a field the console does not model.
func (b *InvestmentBuilder) WithExtra(name string, value any) *InvestmentBuilder {
	raw, err := json.Marshal(value)
	if err != nil {
		panic(err)
	}
	if b.inv.Extra == nil {
		b.inv.Extra = model.Extra{}
	}
	b.inv.Extra[name] = raw
	return b
}

// Active marks the investment as approved one day after creation.
func (b *InvestmentBuilder) Active() *InvestmentBuilder {
	start := FixedTime.Add(24 * time.Hour)
	b.inv.Status = model.StatusActive
	b.inv.StartDate = &start
	return b
}

// Completed marks the investment as settled with multiplier.
func (b *InvestmentBuilder) Completed(multiplier float64) *InvestmentBuilder {
	b.Active()
	done := FixedTime.Add(48 * time.Hour)
	ret := b.inv.Amount * multiplier
	b.inv.Status = model.StatusCompleted
	b.inv.Multiplier = &multiplier
	b.inv.ActualReturn = &ret
	b.inv.CompletedAt = &done
	b.inv.TradeType = "single"
	return b
}

// Cancelled marks the investment as settled with a zero multiplier.
func (b *InvestmentBuilder) Cancelled() *InvestmentBuilder {
	b.Completed(0)
	b.inv.Status = model.StatusCancelled
	return b
}

// Model returns the investment without storing it.
func (b *InvestmentBuilder) Model() model.Investment {
	return b.inv.Clone()
}

// Build stores the investment under its key and returns it.
func (b *InvestmentBuilder) Build(t *testing.T, store kvstore.Store) model.Investment {
	t.Helper()

	inv := b.Model()
	PutJSON(t, store, model.InvestmentKey(inv.ID), inv)
	return inv
}

// Convenience functions

// PutJSON encodes v and stores it under key.
func PutJSON(t *testing.T, store kvstore.Store, key string, v any) {
	t.Helper()

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to encode %s: %v", key, err)
	}
	PutRaw(t, store, key, string(data))
}

// PutRaw stores value under key as-is. Use it to plant corrupt records.
func PutRaw(t *testing.T, store kvstore.Store, key, value string) {
	t.Helper()

	if err := store.Set(context.Background(), key, value); err != nil {
		t.Fatalf("Failed to store %s: %v", key, err)
	}
}

// GetInvestment reads and decodes the stored investment with id.
func GetInvestment(t *testing.T, store kvstore.Store, id string) (model.Investment, bool) {
	t.Helper()

	raw, ok, err := store.Get(context.Background(), model.InvestmentKey(id))
	if err != nil {
		t.Fatalf("Failed to read investment %s: %v", id, err)
	}
	if !ok {
		return model.Investment{}, false
	}

	var inv model.Investment
	if err := json.Unmarshal([]byte(raw), &inv); err != nil {
		t.Fatalf("Failed to decode investment %s: %v", id, err)
	}
	return inv, true
}

// CreateInvestments stores count pending investments for userID.
func CreateInvestments(t *testing.T, store kvstore.Store, userID string, count int) []model.Investment {
	t.Helper()

	out := make([]model.Investment, count)
	for i := range out {
		out[i] = NewInvestment(userID).Build(t, store)
	}
	return out
}
