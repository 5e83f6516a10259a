package model

import "time"

// LedgerStats holds aggregates derived from the in-memory investment set.
// They are recomputed on every request and never stored.
type LedgerStats struct {
	Count          int     `json:"count"`
	TotalInvested  float64 `json:"totalInvested"`
	TotalReturned  float64 `json:"totalReturned"`
	PendingCount   int     `json:"pendingCount"`
	ActiveCount    int     `json:"activeCount"`
	CompletedCount int     `json:"completedCount"`
	CancelledCount int     `json:"cancelledCount"`
}

// Dashboard is the overview shown after login.
type Dashboard struct {
	SessionID string      `json:"sessionId"`
	UserCount int         `json:"userCount"`
	Stats     LedgerStats `json:"stats"`
	LoadedAt  time.Time   `json:"loadedAt"`
}

// UserResponse represents a user row in the user listing.
type UserResponse struct {
	ID      string `json:"id"`
	ShortID string `json:"shortId"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Initial string `json:"initial"`
}

// SkippedRecord describes a stored record that was left out of a bulk load.
type SkippedRecord struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// LoadSummary reports the outcome of a bulk load.
type LoadSummary struct {
	LoadedAt           time.Time       `json:"loadedAt"`
	Users              int             `json:"users"`
	Investments        int             `json:"investments"`
	SkippedUsers       []SkippedRecord `json:"skippedUsers"`
	SkippedInvestments []SkippedRecord `json:"skippedInvestments"`
	StoreUnavailable   bool            `json:"storeUnavailable"`
}
