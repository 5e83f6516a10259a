package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/ndewijer/Investment-Admin-Console/internal/errors"
	"github.com/ndewijer/Investment-Admin-Console/internal/kvstore"
	"github.com/ndewijer/Investment-Admin-Console/internal/model"
)

// DefaultFetchConcurrency bounds the number of concurrent Get calls issued
// during a bulk load.
const DefaultFetchConcurrency = 8

// Item is the outcome of loading one listed key: either the decoded record,
// or the reason it was skipped.
type Item[T any] struct {
	Key    string
	Record T
	Reason error
}

// Ok reports whether the record was loaded.
func (i Item[T]) Ok() bool {
	return i.Reason == nil
}

// Report holds the per-key outcomes of a bulk load, in the order the store
// listed the keys.
type Report[T any] struct {
	Items []Item[T]
	// Unavailable is set when the store could not be listed at all.
	Unavailable bool
}

// Records returns the successfully loaded records in list order.
func (r Report[T]) Records() []T {
	out := make([]T, 0, len(r.Items))
	for _, it := range r.Items {
		if it.Ok() {
			out = append(out, it.Record)
		}
	}
	return out
}

// Skipped returns the items that were left out, in list order.
func (r Report[T]) Skipped() []Item[T] {
	var out []Item[T]
	for _, it := range r.Items {
		if !it.Ok() {
			out = append(out, it)
		}
	}
	return out
}

// SkippedRecords converts the skipped items for API responses.
func (r Report[T]) SkippedRecords() []model.SkippedRecord {
	skipped := r.Skipped()
	out := make([]model.SkippedRecord, len(skipped))
	for i, it := range skipped {
		out[i] = model.SkippedRecord{Key: it.Key, Reason: it.Reason.Error()}
	}
	return out
}

// RecordRepository provides data access for users and investments stored in
// a kvstore.Store under the "user:" and "investment:" namespaces.
//
// Bulk loads are best effort: a record that is absent, fails to fetch or fails
// to decode is skipped and reported, never propagated as an error.
type RecordRepository struct {
	store       kvstore.Store
	concurrency int
}

// NewRecordRepository creates a RecordRepository over the provided store.
// A nil store behaves as an unavailable store.
func NewRecordRepository(store kvstore.Store) *RecordRepository {
	return &RecordRepository{store: store, concurrency: DefaultFetchConcurrency}
}

// WithFetchConcurrency sets the bound on concurrent Get calls. Values below 1
// are treated as 1.
func (r *RecordRepository) WithFetchConcurrency(n int) *RecordRepository {
	if n < 1 {
		n = 1
	}
	r.concurrency = n
	return r
}

// LoadUsers loads every record under "user:".
func (r *RecordRepository) LoadUsers(ctx context.Context) Report[model.User] {
	return loadAll(ctx, r.store, r.concurrency, model.UserKeyPrefix, decodeUser)
}

// LoadInvestments loads every record under "investment:". Records with an
// unknown status or an invalid amount are reported as corrupt.
func (r *RecordRepository) LoadInvestments(ctx context.Context) Report[model.Investment] {
	return loadAll(ctx, r.store, r.concurrency, model.InvestmentKeyPrefix, decodeInvestment)
}

// SaveInvestment serializes the full record and writes it under its key.
func (r *RecordRepository) SaveInvestment(ctx context.Context, inv model.Investment) error {
	if r.store == nil {
		return apperrors.ErrStoreUnavailable
	}

	data, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("failed to encode investment %s: %w", inv.ID, err)
	}

	return r.store.Set(ctx, model.InvestmentKey(inv.ID), string(data))
}

// DeleteInvestment removes the record for id. There is no tombstone.
func (r *RecordRepository) DeleteInvestment(ctx context.Context, id string) error {
	if r.store == nil {
		return apperrors.ErrStoreUnavailable
	}
	return r.store.Delete(ctx, model.InvestmentKey(id))
}

func loadAll[T any](
	ctx context.Context,
	store kvstore.Store,
	concurrency int,
	prefix string,
	decode func(string) (T, error),
) Report[T] {
	if store == nil {
		log.Printf("store not configured, skipping load of %q", prefix)
		return Report[T]{Unavailable: true}
	}

	keys, err := store.List(ctx, prefix)
	if err != nil {
		log.Printf("failed to list %q: %v", prefix, err)
		return Report[T]{Unavailable: true}
	}

	items := make([]Item[T], len(keys))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			items[i] = loadOne(ctx, store, key, decode)
			return nil
		})
	}
	//nolint:errcheck // per-item failures are recorded on the item, never returned
	g.Wait()

	for _, it := range items {
		if !it.Ok() {
			log.Printf("skipped %s: %v", it.Key, it.Reason)
		}
	}

	return Report[T]{Items: items}
}

func loadOne[T any](ctx context.Context, store kvstore.Store, key string, decode func(string) (T, error)) Item[T] {
	item := Item[T]{Key: key}

	value, ok, err := store.Get(ctx, key)
	switch {
	case err != nil:
		item.Reason = fmt.Errorf("%w: %w", apperrors.ErrRecordFetch, err)
		return item
	case !ok:
		item.Reason = apperrors.ErrRecordAbsent
		return item
	}

	record, err := decode(value)
	if err != nil {
		item.Reason = fmt.Errorf("%w: %w", apperrors.ErrRecordCorrupt, err)
		return item
	}

	item.Record = record
	return item
}

func decodeUser(value string) (model.User, error) {
	var u model.User
	if err := json.Unmarshal([]byte(value), &u); err != nil {
		return model.User{}, err
	}
	return u, nil
}

func decodeInvestment(value string) (model.Investment, error) {
	var inv model.Investment
	if err := json.Unmarshal([]byte(value), &inv); err != nil {
		return model.Investment{}, err
	}
	if err := inv.Validate(); err != nil {
		return model.Investment{}, err
	}
	return inv, nil
}
