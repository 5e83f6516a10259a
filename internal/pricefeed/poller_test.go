package pricefeed_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	apperrors "github.com/ndewijer/Investment-Admin-Console/internal/errors"
	"github.com/ndewijer/Investment-Admin-Console/internal/pricefeed"
	"github.com/ndewijer/Investment-Admin-Console/internal/testutil"
)

func TestPoller_Poll(t *testing.T) {
	ctx := context.Background()

	t.Run("pushes a valid sample", func(t *testing.T) {
		buffer := pricefeed.NewBuffer()
		poller := pricefeed.NewPoller(testutil.NewMockPriceSource(100, 101), buffer, time.Minute)

		for i := 0; i < 2; i++ {
			if err := poller.Poll(ctx); err != nil {
				t.Fatalf("Poll() returned error: %v", err)
			}
		}

		if got := buffer.Snapshot(); len(got) != 2 || got[1] != 101 {
			t.Errorf("Expected [100 101], got %v", got)
		}
	})

	t.Run("fetch failure skips the sample", func(t *testing.T) {
		buffer := pricefeed.NewBuffer()
		source := testutil.NewMockPriceSource(100).WithError(errors.New("rate limited"))
		poller := pricefeed.NewPoller(source, buffer, time.Minute)

		if err := poller.Poll(ctx); err == nil {
			t.Error("Expected error")
		}
		if buffer.Len() != 0 {
			t.Errorf("Expected empty buffer, got %v", buffer.Snapshot())
		}
	})

	t.Run("unusable values skip the sample", func(t *testing.T) {
		for _, price := range []float64{0, -1, math.NaN(), math.Inf(1)} {
			buffer := pricefeed.NewBuffer()
			poller := pricefeed.NewPoller(testutil.NewMockPriceSource(price), buffer, time.Minute)

			err := poller.Poll(ctx)
			if !errors.Is(err, apperrors.ErrInvalidPriceSample) {
				t.Errorf("Expected ErrInvalidPriceSample for %v, got %v", price, err)
			}
			if buffer.Len() != 0 {
				t.Errorf("Expected empty buffer for %v", price)
			}
		}
	})
}

func TestPoller_StartStop(t *testing.T) {
	t.Run("start polls immediately", func(t *testing.T) {
		buffer := pricefeed.NewBuffer()
		source := testutil.NewMockPriceSource(50000)
		poller := pricefeed.NewPoller(source, buffer, time.Hour)

		if err := poller.Start(); err != nil {
			t.Fatalf("Start() returned error: %v", err)
		}
		defer poller.Stop()

		deadline := time.Now().Add(2 * time.Second)
		for buffer.Len() == 0 && time.Now().Before(deadline) {
			time.Sleep(10 * time.Millisecond)
		}

		if latest, ok := buffer.Latest(); !ok || latest != 50000 {
			t.Errorf("Expected first sample 50000, got %v (present=%v)", latest, ok)
		}
		if !poller.Running() {
			t.Error("Expected poller to be running")
		}
	})

	t.Run("start twice is a no-op and stop is idempotent", func(t *testing.T) {
		poller := pricefeed.NewPoller(testutil.NewMockPriceSource(1), pricefeed.NewBuffer(), time.Hour)

		if err := poller.Start(); err != nil {
			t.Fatalf("Start() returned error: %v", err)
		}
		if err := poller.Start(); err != nil {
			t.Fatalf("second Start() returned error: %v", err)
		}

		poller.Stop()
		poller.Stop()

		if poller.Running() {
			t.Error("Expected poller to be stopped")
		}
	})
	t.Run("stop waits for the first poll", func(t *testing.T) {
		buffer := pricefeed.NewBuffer()
		source := testutil.NewMockPriceSource(42).WithDelay(100 * time.Millisecond)
		poller := pricefeed.NewPoller(source, buffer, time.Hour)

		if err := poller.Start(); err != nil {
			t.Fatalf("Start() returned error: %v", err)
		}
		poller.Stop()

		if source.Calls() != 1 {
			t.Fatalf("Expected 1 fetch, got %d", source.Calls())
		}
		got := buffer.Len()
		time.Sleep(150 * time.Millisecond)
		if buffer.Len() != got {
			t.Errorf("Expected no sample after Stop, buffer grew from %d to %d", got, buffer.Len())
		}
	})
}
