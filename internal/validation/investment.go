package validation

import (
	"math"
	"strconv"
	"strings"

	"github.com/ndewijer/Investment-Admin-Console/internal/api/request"
)

// Settlement defaults applied when a request leaves the field empty.
const (
	DefaultMultiplier = "1.6"
	DefaultTradeType  = "single"
)

// ParseMultiplier parses a settlement multiplier. strconv accepts "NaN" and
// "Inf", so the result is additionally required to be finite and not negative.
func ParseMultiplier(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, &Error{Fields: map[string]string{"multiplier": "multiplier is required"}}
	}

	m, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &Error{Fields: map[string]string{"multiplier": "multiplier not a valid number"}}
	}
	if math.IsNaN(m) || math.IsInf(m, 0) {
		return 0, &Error{Fields: map[string]string{"multiplier": "multiplier must be finite"}}
	}
	if m < 0 {
		return 0, &Error{Fields: map[string]string{"multiplier": "multiplier cannot be negative"}}
	}

	return m, nil
}

// ValidateSettleInvestment validates a settlement request and returns the
// parsed multiplier and trade type with defaults applied.
//
// Optional fields:
//   - multiplier: decimal string, defaults to "1.6"
//   - tradeType: free-form label, defaults to "single"
func ValidateSettleInvestment(req request.SettleInvestmentRequest) (float64, string, error) {
	raw := req.Multiplier
	if strings.TrimSpace(raw) == "" {
		raw = DefaultMultiplier
	}

	m, err := ParseMultiplier(raw)
	if err != nil {
		return 0, "", err
	}

	return m, tradeTypeOrDefault(req.TradeType), nil
}

// ValidateCancelInvestment returns the trade type to record on cancellation.
func ValidateCancelInvestment(req request.CancelInvestmentRequest) string {
	return tradeTypeOrDefault(req.TradeType)
}

func tradeTypeOrDefault(tradeType string) string {
	tradeType = strings.TrimSpace(tradeType)
	if tradeType == "" {
		return DefaultTradeType
	}
	return tradeType
}
