package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Investment-Admin-Console/internal/api/request"
	"github.com/ndewijer/Investment-Admin-Console/internal/api/response"
	"github.com/ndewijer/Investment-Admin-Console/internal/service"
	"github.com/ndewijer/Investment-Admin-Console/internal/validation"
)

// InvestmentHandler handles HTTP requests for investment endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the InvestmentService.
type InvestmentHandler struct {
	investmentService *service.InvestmentService
}

// NewInvestmentHandler creates a new InvestmentHandler with the provided service dependency.
func NewInvestmentHandler(investmentService *service.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{
		investmentService: investmentService,
	}
}

// Investments handles GET requests to list the ledger.
//
// Endpoint: GET /api/investment?status={pending|active|completed|cancelled}
// Response: 200 OK with array of InvestmentResponse
// Error: 400 Bad Request if the status filter is invalid
func (h *InvestmentHandler) Investments(w http.ResponseWriter, r *http.Request) {
	status, err := validation.ParseStatusFilter(r.URL.Query().Get("status"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid status filter", err.Error())
		return
	}

	investments, err := h.investmentService.GetInvestments(status)
	if err != nil {
		response.RespondAppError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, investments)
}

// GetInvestment handles GET requests to retrieve a single investment.
//
// Endpoint: GET /api/investment/{id}
// Response: 200 OK with InvestmentResponse
// Error: 404 Not Found if the investment is not in the ledger
func (h *InvestmentHandler) GetInvestment(w http.ResponseWriter, r *http.Request) {
	investmentID := chi.URLParam(r, "id")

	investment, err := h.investmentService.GetInvestment(investmentID)
	if err != nil {
		response.RespondAppError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, investment)
}

// ApproveInvestment handles POST requests that move a pending investment to active.
//
// Endpoint: POST /api/investment/{id}/approve
// Response: 200 OK with MessageResponse wrapping the updated investment
// Error: 404 Not Found if the investment is not in the ledger
// Error: 409 Conflict if the investment is not pending
// Error: 502 Bad Gateway if the store write failed
func (h *InvestmentHandler) ApproveInvestment(w http.ResponseWriter, r *http.Request) {
	investmentID := chi.URLParam(r, "id")

	investment, err := h.investmentService.ApproveInvestment(r.Context(), investmentID)
	if err != nil {
		response.RespondAppError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, response.MessageResponse{
		Message: "investment approved",
		Data:    investment,
	})
}

// SettleInvestment handles POST requests that settle an active investment.
// A multiplier of "0" cancels it; any other multiplier completes it.
//
// Endpoint: POST /api/investment/{id}/settle
// Request Body: SettleInvestmentRequest (multiplier, tradeType; both optional)
// Response: 200 OK with MessageResponse wrapping the updated investment
// Error: 400 Bad Request if the multiplier is not a finite, non-negative number
// Error: 404 Not Found if the investment is not in the ledger
// Error: 409 Conflict if the investment is not active
// Error: 502 Bad Gateway if the store write failed
func (h *InvestmentHandler) SettleInvestment(w http.ResponseWriter, r *http.Request) {
	investmentID := chi.URLParam(r, "id")

	req, err := parseJSON[request.SettleInvestmentRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	investment, err := h.investmentService.SettleInvestment(r.Context(), investmentID, req)
	if err != nil {
		response.RespondAppError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, response.MessageResponse{
		Message: "investment updated",
		Data:    investment,
	})
}

// CancelInvestment handles POST requests that cancel an active investment.
//
// Endpoint: POST /api/investment/{id}/cancel
// Request Body: CancelInvestmentRequest (tradeType; optional)
// Response: 200 OK with MessageResponse wrapping the updated investment
// Error: 404 Not Found, 409 Conflict, 502 Bad Gateway as for settle
func (h *InvestmentHandler) CancelInvestment(w http.ResponseWriter, r *http.Request) {
	investmentID := chi.URLParam(r, "id")

	req, err := parseJSON[request.CancelInvestmentRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	investment, err := h.investmentService.CancelInvestment(r.Context(), investmentID, req)
	if err != nil {
		response.RespondAppError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, response.MessageResponse{
		Message: "investment updated",
		Data:    investment,
	})
}

// DeleteInvestment handles DELETE requests to remove an investment.
// The caller must confirm with ?confirm=true.
//
// Endpoint: DELETE /api/investment/{id}?confirm=true
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if confirmation is missing
// Error: 404 Not Found if the investment is not in the ledger
// Error: 502 Bad Gateway if the store delete failed
func (h *InvestmentHandler) DeleteInvestment(w http.ResponseWriter, r *http.Request) {
	investmentID := chi.URLParam(r, "id")

	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))

	if err := h.investmentService.DeleteInvestment(r.Context(), investmentID, confirmed); err != nil {
		response.RespondAppError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
