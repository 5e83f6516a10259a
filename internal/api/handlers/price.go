package handlers

import (
	"net/http"

	"github.com/ndewijer/Investment-Admin-Console/internal/api/response"
	"github.com/ndewijer/Investment-Admin-Console/internal/pricefeed"
)

// PriceHandler serves the rolling price window.
type PriceHandler struct {
	buffer *pricefeed.Buffer
}

// NewPriceHandler creates a new PriceHandler over the provided buffer.
func NewPriceHandler(buffer *pricefeed.Buffer) *PriceHandler {
	return &PriceHandler{
		buffer: buffer,
	}
}

// Price handles GET requests for the latest price and the chart of recent samples.
//
// Endpoint: GET /api/price
// Response: 200 OK with pricefeed.Chart (latest is null before the first sample)
func (h *PriceHandler) Price(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, pricefeed.NewChart(h.buffer.Snapshot()))
}
