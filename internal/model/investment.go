package model

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Status is the lifecycle state of an investment.
type Status string

// Investment lifecycle states. Pending and active are non-terminal;
// completed and cancelled are terminal.
const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ValidStatuses contains the allowed status values.
var ValidStatuses = map[Status]bool{
	StatusPending: true, StatusActive: true, StatusCompleted: true, StatusCancelled: true,
}

// Valid reports whether s is one of the four lifecycle states.
func (s Status) Valid() bool {
	return ValidStatuses[s]
}

// Terminal reports whether no further transition is defined from s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Investment represents a single investment record as stored under
// "investment:<id>".
//
// Amount and Date are set once at creation. Date is kept as the stored
// text and written back unchanged; an absent date stays absent. StartDate is
// set on the transition to active and kept afterwards. Multiplier,
// ActualReturn and CompletedAt are set together on the transition to a
// terminal state.
type Investment struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	Amount       float64    `json:"amount"`
	Status       Status     `json:"status"`
	Date         string     `json:"date,omitempty"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	Multiplier   *float64   `json:"multiplier,omitempty"`
	ActualReturn *float64   `json:"actualReturn,omitempty"`
	TradeType    string     `json:"tradeType,omitempty"`

	// Extra carries any other stored fields through unchanged.
	Extra Extra `json:"-"`
}

var investmentFields = []string{
	"id", "userId", "amount", "status", "date",
	"startDate", "completedAt", "multiplier", "actualReturn", "tradeType",
}

// MarshalJSON encodes the investment together with its passthrough fields.
func (i Investment) MarshalJSON() ([]byte, error) {
	type plain Investment
	return mergeExtra(plain(i), i.Extra)
}

// UnmarshalJSON decodes a stored investment, keeping unknown fields in Extra.
func (i *Investment) UnmarshalJSON(data []byte) error {
	type plain Investment
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := splitExtra(data, investmentFields)
	if err != nil {
		return err
	}
	p.Extra = extra
	*i = Investment(p)
	return nil
}

// Validate checks the invariants a loaded record must satisfy before it is
// admitted to the ledger.
func (i Investment) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("id is required")
	}
	if !i.Status.Valid() {
		return fmt.Errorf("invalid status: %q", i.Status)
	}
	if math.IsNaN(i.Amount) || math.IsInf(i.Amount, 0) || i.Amount < 0 {
		return fmt.Errorf("invalid amount: %v", i.Amount)
	}
	return nil
}

// Clone returns a copy that shares no memory with i.
func (i Investment) Clone() Investment {
	out := i
	out.StartDate = cloneTime(i.StartDate)
	out.CompletedAt = cloneTime(i.CompletedAt)
	out.Multiplier = cloneFloat(i.Multiplier)
	out.ActualReturn = cloneFloat(i.ActualReturn)
	out.Extra = i.Extra.clone()
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

// InvestmentResponse represents an investment enriched for API responses
// with the owning user's display name.
type InvestmentResponse struct {
	ID           string     `json:"id"`
	ShortID      string     `json:"shortId"`
	UserID       string     `json:"userId"`
	UserName     string     `json:"userName"`
	UserKnown    bool       `json:"userKnown"`
	Amount       float64    `json:"amount"`
	Status       Status     `json:"status"`
	Date         string     `json:"date,omitempty"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	Multiplier   *float64   `json:"multiplier,omitempty"`
	ActualReturn *float64   `json:"actualReturn,omitempty"`
	TradeType    string     `json:"tradeType,omitempty"`
}

// ShortID returns the first eight characters of an id, as shown in listings,
// or "N/A" for an empty id.
func ShortID(id string) string {
	if id == "" {
		return "N/A"
	}
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
