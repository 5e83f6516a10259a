// Package pricefeed keeps a rolling window of recent prices from an external
// source for display next to the ledger.
package pricefeed

import "sync"

// Capacity is the number of samples the rolling window retains.
const Capacity = 60

// Buffer is a fixed-capacity FIFO ring of price samples. Pushing past
// capacity evicts the oldest sample. It is safe for concurrent use.
type Buffer struct {
	mu      sync.RWMutex
	samples [Capacity]float64
	start   int
	size    int
}

// NewBuffer creates an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Push appends a sample, evicting the oldest one when the window is full.
// There is no deduplication.
func (b *Buffer) Push(sample float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.size < Capacity {
		b.samples[(b.start+b.size)%Capacity] = sample
		b.size++
		return
	}
	b.samples[b.start] = sample
	b.start = (b.start + 1) % Capacity
}

// Snapshot returns the retained samples, oldest first. Its length equals the
// number of samples pushed, up to Capacity.
func (b *Buffer) Snapshot() []float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]float64, b.size)
	for i := range out {
		out[i] = b.samples[(b.start+i)%Capacity]
	}
	return out
}

// Latest returns the most recent sample.
func (b *Buffer) Latest() (float64, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.size == 0 {
		return 0, false
	}
	return b.samples[(b.start+b.size-1)%Capacity], true
}

// Len returns the number of retained samples.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.size
}
