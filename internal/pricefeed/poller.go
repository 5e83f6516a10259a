package pricefeed

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	apperrors "github.com/ndewijer/Investment-Admin-Console/internal/errors"
)

// DefaultInterval is how often the poller fetches a new sample.
const DefaultInterval = 30 * time.Second

// Poller fetches one sample per interval from a Source and pushes it into a
// Buffer. A failed fetch or an unusable value skips that tick.
type Poller struct {
	source   Source
	buffer   *Buffer
	interval time.Duration
	timeout  time.Duration

	mu      sync.Mutex
	cron    *cron.Cron
	started bool

	// first tracks the immediate poll that runs outside the cron schedule.
	first sync.WaitGroup
}

// NewPoller creates a Poller. It does not start polling until Start is called.
func NewPoller(source Source, buffer *Buffer, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		source:   source,
		buffer:   buffer,
		interval: interval,
		timeout:  interval,
	}
}

// Start schedules the poll job and runs the first poll immediately.
// Calling Start on a running poller is a no-op.
func (p *Poller) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return nil
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", p.interval), p.tick); err != nil {
		return fmt.Errorf("failed to schedule price feed: %w", err)
	}
	c.Start()

	p.cron = c
	p.started = true
	p.first.Add(1)
	go func() {
		defer p.first.Done()
		p.tick()
	}()

	log.Printf("Price feed started, polling every %s", p.interval)
	return nil
}

// Stop halts scheduling and waits for any running poll to finish, including
// the immediate one started by Start.
func (p *Poller) Stop() {
	p.mu.Lock()
	c := p.cron
	p.cron = nil
	p.started = false
	p.mu.Unlock()

	if c == nil {
		return
	}
	<-c.Stop().Done()
	p.first.Wait()
	log.Println("Price feed stopped")
}

// Running reports whether the poller is scheduled.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started
}

// Poll fetches one sample and pushes it. The buffer is left untouched when
// the fetch fails or the value is missing, non-finite or not positive.
func (p *Poller) Poll(ctx context.Context) error {
	price, err := p.source.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch price: %w", err)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidPriceSample, price)
	}

	p.buffer.Push(price)
	return nil
}

func (p *Poller) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if err := p.Poll(ctx); err != nil {
		log.Printf("Price feed tick skipped: %v", err)
	}
}
