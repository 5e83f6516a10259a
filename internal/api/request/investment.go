package request

// SettleInvestmentRequest settles an active investment. Multiplier is a
// decimal string such as "1.6"; "0" cancels.
type SettleInvestmentRequest struct {
	Multiplier string `json:"multiplier,omitempty"`
	TradeType  string `json:"tradeType,omitempty"`
}

// CancelInvestmentRequest cancels an active investment.
type CancelInvestmentRequest struct {
	TradeType string `json:"tradeType,omitempty"`
}
