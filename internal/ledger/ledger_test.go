package ledger_test

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	apperrors "github.com/ndewijer/Investment-Admin-Console/internal/errors"
	"github.com/ndewijer/Investment-Admin-Console/internal/kvstore"
	"github.com/ndewijer/Investment-Admin-Console/internal/ledger"
	"github.com/ndewijer/Investment-Admin-Console/internal/model"
	"github.com/ndewijer/Investment-Admin-Console/internal/repository"
	"github.com/ndewijer/Investment-Admin-Console/internal/testutil"
)

var clock = time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

// newTestLedger seeds a ledger and a faulty store with the same investments.
func newTestLedger(t *testing.T, investments ...model.Investment) (*ledger.Ledger, *testutil.FaultyStore) {
	t.Helper()

	store := testutil.NewFaultyStore(kvstore.NewMemoryStore())
	for _, inv := range investments {
		testutil.PutJSON(t, store, model.InvestmentKey(inv.ID), inv)
	}

	l := ledger.New(
		repository.NewRecordRepository(store),
		investments,
		ledger.WithClock(func() time.Time { return clock }),
	)
	return l, store
}

func TestLedger_Approve(t *testing.T) {
	ctx := context.Background()

	t.Run("moves pending to active and persists", func(t *testing.T) {
		pending := testutil.NewInvestment("u1").Model()
		l, store := newTestLedger(t, pending)

		got, err := l.Approve(ctx, pending.ID)
		if err != nil {
			t.Fatalf("Approve() returned error: %v", err)
		}

		if got.Status != model.StatusActive {
			t.Errorf("Expected status active, got %s", got.Status)
		}
		if got.StartDate == nil || !got.StartDate.Equal(clock) {
			t.Errorf("Expected startDate %v, got %v", clock, got.StartDate)
		}

		stored, ok := testutil.GetInvestment(t, store, pending.ID)
		if !ok || stored.Status != model.StatusActive {
			t.Errorf("Expected stored status active, got %+v", stored)
		}

		inMemory, _ := l.Get(pending.ID)
		if !reflect.DeepEqual(inMemory, got) {
			t.Errorf("Expected ledger to hold %+v, got %+v", got, inMemory)
		}
	})

	t.Run("rejects non-pending records", func(t *testing.T) {
		active := testutil.NewInvestment("u1").Active().Model()
		done := testutil.NewInvestment("u1").Completed(2).Model()
		l, store := newTestLedger(t, active, done)

		for _, id := range []string{active.ID, done.ID} {
			_, err := l.Approve(ctx, id)
			if !errors.Is(err, apperrors.ErrInvalidTransition) {
				t.Errorf("Expected ErrInvalidTransition for %s, got %v", id, err)
			}
		}
		if store.SetCalls != 2 {
			t.Errorf("Expected no writes beyond seeding, got %d Set calls", store.SetCalls)
		}
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		l, _ := newTestLedger(t)

		_, err := l.Approve(ctx, "missing")
		if !errors.Is(err, apperrors.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("persist failure leaves ledger unchanged", func(t *testing.T) {
		pending := testutil.NewInvestment("u1").Model()
		other := testutil.NewInvestment("u1").Active().Model()
		l, store := newTestLedger(t, pending, other)
		before := l.List()
		store.SetFailures(true, false)

		_, err := l.Approve(ctx, pending.ID)
		if !errors.Is(err, apperrors.ErrPersist) {
			t.Fatalf("Expected ErrPersist, got %v", err)
		}
		if !errors.Is(err, testutil.ErrInjected) {
			t.Errorf("Expected cause to be kept, got %v", err)
		}

		if after := l.List(); !reflect.DeepEqual(before, after) {
			t.Errorf("Expected ledger unchanged, got %+v", after)
		}
	})
}

func TestLedger_Settle(t *testing.T) {
	ctx := context.Background()

	t.Run("completes with multiplier", func(t *testing.T) {
		active := testutil.NewInvestment("u1").Active().Model()
		l, store := newTestLedger(t, active)

		got, err := l.Settle(ctx, active.ID, 1.6, "single")
		if err != nil {
			t.Fatalf("Settle() returned error: %v", err)
		}

		if got.Status != model.StatusCompleted {
			t.Errorf("Expected status completed, got %s", got.Status)
		}
		if got.ActualReturn == nil || math.Abs(*got.ActualReturn-160) > 1e-9 {
			t.Errorf("Expected actualReturn 160, got %v", got.ActualReturn)
		}
		if got.Multiplier == nil || *got.Multiplier != 1.6 {
			t.Errorf("Expected multiplier 1.6, got %v", got.Multiplier)
		}
		if got.TradeType != "single" {
			t.Errorf("Expected tradeType single, got %s", got.TradeType)
		}
		if got.CompletedAt == nil || !got.CompletedAt.Equal(clock) {
			t.Errorf("Expected completedAt %v, got %v", clock, got.CompletedAt)
		}
		if got.StartDate == nil || !got.StartDate.Equal(*active.StartDate) {
			t.Errorf("Expected startDate to be kept, got %v", got.StartDate)
		}

		stored, _ := testutil.GetInvestment(t, store, active.ID)
		if !reflect.DeepEqual(stored, got) {
			t.Errorf("Expected stored %+v, got %+v", got, stored)
		}
	})

	t.Run("zero multiplier cancels", func(t *testing.T) {
		active := testutil.NewInvestment("u1").Active().Model()
		l, _ := newTestLedger(t, active)

		got, err := l.Settle(ctx, active.ID, 0, "single")
		if err != nil {
			t.Fatalf("Settle() returned error: %v", err)
		}

		if got.Status != model.StatusCancelled {
			t.Errorf("Expected status cancelled, got %s", got.Status)
		}
		if got.ActualReturn == nil || *got.ActualReturn != 0 {
			t.Errorf("Expected actualReturn 0, got %v", got.ActualReturn)
		}
	})

	t.Run("cancel is settle with zero", func(t *testing.T) {
		active := testutil.NewInvestment("u1").WithAmount(50).Active().Model()
		l, _ := newTestLedger(t, active)

		got, err := l.Cancel(ctx, active.ID, "batch")
		if err != nil {
			t.Fatalf("Cancel() returned error: %v", err)
		}

		if got.Status != model.StatusCancelled || got.TradeType != "batch" {
			t.Errorf("Expected cancelled batch settlement, got %+v", got)
		}
		if got.Multiplier == nil || *got.Multiplier != 0 {
			t.Errorf("Expected multiplier 0, got %v", got.Multiplier)
		}
	})

	t.Run("invalid multiplier writes nothing", func(t *testing.T) {
		active := testutil.NewInvestment("u1").Active().Model()
		l, store := newTestLedger(t, active)
		before := l.List()

		for _, m := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -0.5} {
			_, err := l.Settle(ctx, active.ID, m, "single")
			if !errors.Is(err, apperrors.ErrValidation) {
				t.Errorf("Expected ErrValidation for %v, got %v", m, err)
			}
		}

		if store.SetCalls != 1 {
			t.Errorf("Expected no writes beyond seeding, got %d Set calls", store.SetCalls)
		}
		if after := l.List(); !reflect.DeepEqual(before, after) {
			t.Errorf("Expected ledger unchanged, got %+v", after)
		}
	})

	t.Run("rejects non-active records", func(t *testing.T) {
		pending := testutil.NewInvestment("u1").Model()
		cancelled := testutil.NewInvestment("u1").Cancelled().Model()
		l, _ := newTestLedger(t, pending, cancelled)

		for _, id := range []string{pending.ID, cancelled.ID} {
			_, err := l.Settle(ctx, id, 1.6, "single")
			if !errors.Is(err, apperrors.ErrInvalidTransition) {
				t.Errorf("Expected ErrInvalidTransition for %s, got %v", id, err)
			}
		}
	})

	t.Run("persist failure leaves ledger unchanged", func(t *testing.T) {
		active := testutil.NewInvestment("u1").Active().Model()
		l, store := newTestLedger(t, active)
		before := l.List()
		store.SetFailures(true, false)

		_, err := l.Settle(ctx, active.ID, 1.6, "single")
		if !errors.Is(err, apperrors.ErrPersist) {
			t.Fatalf("Expected ErrPersist, got %v", err)
		}

		if after := l.List(); !reflect.DeepEqual(before, after) {
			t.Errorf("Expected ledger unchanged, got %+v", after)
		}
		stored, _ := testutil.GetInvestment(t, store, active.ID)
		if stored.Status != model.StatusActive {
			t.Errorf("Expected stored status active, got %s", stored.Status)
		}
	})
}

func TestLedger_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes from store and ledger", func(t *testing.T) {
		first := testutil.NewInvestment("u1").Model()
		second := testutil.NewInvestment("u1").Completed(1.2).Model()
		third := testutil.NewInvestment("u1").Model()
		l, store := newTestLedger(t, first, second, third)

		if err := l.Delete(ctx, second.ID); err != nil {
			t.Fatalf("Delete() returned error: %v", err)
		}

		if _, ok := testutil.GetInvestment(t, store, second.ID); ok {
			t.Error("Expected record to be deleted from store")
		}
		if _, err := l.Get(second.ID); !errors.Is(err, apperrors.ErrNotFound) {
			t.Errorf("Expected ErrNotFound after delete, got %v", err)
		}

		list := l.List()
		if len(list) != 2 || list[0].ID != first.ID || list[1].ID != third.ID {
			t.Errorf("Expected order to be kept, got %+v", list)
		}
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		l, _ := newTestLedger(t)

		if err := l.Delete(ctx, "missing"); !errors.Is(err, apperrors.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("persist failure keeps record", func(t *testing.T) {
		inv := testutil.NewInvestment("u1").Model()
		l, store := newTestLedger(t, inv)
		store.SetFailures(false, true)

		if err := l.Delete(ctx, inv.ID); !errors.Is(err, apperrors.ErrPersist) {
			t.Fatalf("Expected ErrPersist, got %v", err)
		}
		if l.Len() != 1 {
			t.Errorf("Expected record to be kept, got %d records", l.Len())
		}
	})
}

func TestLedger_Stats(t *testing.T) {
	t.Run("aggregates the working set", func(t *testing.T) {
		l, _ := newTestLedger(t,
			testutil.NewInvestment("u1").WithAmount(100).Model(),
			testutil.NewInvestment("u1").WithAmount(200).Active().Model(),
			testutil.NewInvestment("u1").WithAmount(100).Completed(1.5).Model(),
			testutil.NewInvestment("u1").WithAmount(50).Cancelled().Model(),
		)

		want := model.LedgerStats{
			Count:          4,
			TotalInvested:  450,
			TotalReturned:  150,
			PendingCount:   1,
			ActiveCount:    1,
			CompletedCount: 1,
			CancelledCount: 1,
		}
		if got := l.Stats(); !reflect.DeepEqual(got, want) {
			t.Errorf("Expected %+v, got %+v", want, got)
		}
	})

	t.Run("empty ledger has zero stats", func(t *testing.T) {
		l, _ := newTestLedger(t)

		if got := l.Stats(); !reflect.DeepEqual(got, model.LedgerStats{}) {
			t.Errorf("Expected zero stats, got %+v", got)
		}
	})

	t.Run("filter by status keeps order", func(t *testing.T) {
		a := testutil.NewInvestment("u1").Model()
		b := testutil.NewInvestment("u1").Active().Model()
		c := testutil.NewInvestment("u1").Model()
		l, _ := newTestLedger(t, a, b, c)

		pending := l.Filter(model.StatusPending)
		if len(pending) != 2 || pending[0].ID != a.ID || pending[1].ID != c.ID {
			t.Errorf("Expected [%s %s], got %+v", a.ID, c.ID, pending)
		}
		if all := l.Filter(""); len(all) != 3 {
			t.Errorf("Expected 3 records without filter, got %d", len(all))
		}
	})
}

func TestLedger_Replace(t *testing.T) {
	t.Run("later duplicate replaces in place", func(t *testing.T) {
		first := testutil.NewInvestment("u1").WithID("x").Model()
		other := testutil.NewInvestment("u1").WithID("y").Model()
		dup := testutil.NewInvestment("u1").WithID("x").Active().Model()
		l, _ := newTestLedger(t)

		l.Replace([]model.Investment{first, other, dup})

		list := l.List()
		if len(list) != 2 || list[0].ID != "x" || list[1].ID != "y" {
			t.Fatalf("Expected [x y], got %+v", list)
		}
		if list[0].Status != model.StatusActive {
			t.Errorf("Expected duplicate to win, got %s", list[0].Status)
		}
	})

	t.Run("returned records do not alias the ledger", func(t *testing.T) {
		inv := testutil.NewInvestment("u1").Completed(2).Model()
		l, _ := newTestLedger(t, inv)

		got, _ := l.Get(inv.ID)
		*got.ActualReturn = -1

		again, _ := l.Get(inv.ID)
		if *again.ActualReturn != 200 {
			t.Errorf("Expected ledger copy to be untouched, got %v", *again.ActualReturn)
		}
	})
}

func TestLedger_KeepsStoredDate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		id       string
		raw      string
		wantDate string
	}{
		{
			name:     "missing date stays missing",
			id:       "b",
			raw:      `{"id":"b","userId":"u1","amount":50,"status":"pending"}`,
			wantDate: "",
		},
		{
			name:     "date-only value is kept",
			id:       "a",
			raw:      `{"id":"a","userId":"u1","amount":50,"status":"pending","date":"2024-01-15"}`,
			wantDate: `"2024-01-15"`,
		},
		{
			name:     "millisecond fraction is kept",
			id:       "c",
			raw:      `{"id":"c","userId":"u1","amount":50,"status":"pending","date":"2024-01-15T10:00:00.000Z"}`,
			wantDate: `"2024-01-15T10:00:00.000Z"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := kvstore.NewMemoryStore()
			testutil.PutRaw(t, store, model.InvestmentKey(tt.id), tt.raw)

			repo := repository.NewRecordRepository(store)
			report := repo.LoadInvestments(ctx)
			if len(report.Skipped()) != 0 {
				t.Fatalf("Expected no skipped records, got %v", report.Skipped())
			}
			l := ledger.New(repo, report.Records(), ledger.WithClock(func() time.Time { return clock }))

			if _, err := l.Approve(ctx, tt.id); err != nil {
				t.Fatalf("Approve() returned error: %v", err)
			}

			raw, ok, err := store.Get(ctx, model.InvestmentKey(tt.id))
			if err != nil || !ok {
				t.Fatalf("Expected stored record, got ok=%v err=%v", ok, err)
			}
			var fields map[string]json.RawMessage
			if err := json.Unmarshal([]byte(raw), &fields); err != nil {
				t.Fatalf("Failed to decode stored record: %v", err)
			}
			date, present := fields["date"]
			if tt.wantDate == "" {
				if present {
					t.Errorf("Expected no date, got %s", date)
				}
				return
			}
			if string(date) != tt.wantDate {
				t.Errorf("Expected date %s, got %s", tt.wantDate, date)
			}
		})
	}
}
