package testutil

import (
	"context"
	"sync"
	"time"
)

// MockPriceSource is a mock implementation of pricefeed.Source for testing.
// It returns the configured prices in order and repeats the last one.
type MockPriceSource struct {
	mu sync.Mutex
	// Prices are returned one per Fetch call.
	Prices []float64
	// MockError is returned instead of a price when set.
	MockError error
	// FetchCount tracks how many times Fetch was called.
	FetchCount int
	// Delay is slept before each Fetch returns.
	Delay time.Duration
}

// NewMockPriceSource creates a mock that returns prices in order.
func NewMockPriceSource(prices ...float64) *MockPriceSource {
	return &MockPriceSource{Prices: prices}
}

// WithError configures the mock to return the specified error.
func (m *MockPriceSource) WithError(err error) *MockPriceSource {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MockError = err
	return m
}

// WithDelay makes every Fetch take at least d.
func (m *MockPriceSource) WithDelay(d time.Duration) *MockPriceSource {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Delay = d
	return m
}

// Fetch returns the next configured price.
func (m *MockPriceSource) Fetch(_ context.Context) (float64, error) {
	m.mu.Lock()
	delay := m.Delay
	m.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.FetchCount
	m.FetchCount++
	if m.MockError != nil {
		return 0, m.MockError
	}
	if len(m.Prices) == 0 {
		return 0, nil
	}
	if i >= len(m.Prices) {
		i = len(m.Prices) - 1
	}
	return m.Prices[i], nil
}

// Calls returns the number of Fetch calls so far.
func (m *MockPriceSource) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.FetchCount
}

// MockFeed records Start and Stop calls of a session feed.
type MockFeed struct {
	mu       sync.Mutex
	StartErr error
	Starts   int
	Stops    int
}

// Start records a start and returns StartErr.
func (f *MockFeed) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Starts++
	return f.StartErr
}

// Stop records a stop.
func (f *MockFeed) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Stops++
}

// Counts returns the number of starts and stops.
func (f *MockFeed) Counts() (starts, stops int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Starts, f.Stops
}
