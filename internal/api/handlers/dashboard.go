package handlers

import (
	"net/http"

	"github.com/ndewijer/Investment-Admin-Console/internal/api/response"
	"github.com/ndewijer/Investment-Admin-Console/internal/service"
)

// DashboardHandler handles HTTP requests for the overview and user listing.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler with the provided service dependency.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Dashboard handles GET requests for the overview counters.
//
// Endpoint: GET /api/dashboard
// Response: 200 OK with Dashboard
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, _ *http.Request) {
	dashboard, err := h.dashboardService.GetDashboard()
	if err != nil {
		response.RespondAppError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, dashboard)
}

// Reload handles POST requests that re-run the bulk load.
//
// Endpoint: POST /api/dashboard/reload
// Response: 200 OK with LoadSummary
func (h *DashboardHandler) Reload(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboardService.Reload(r.Context())
	if err != nil {
		response.RespondAppError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// Users handles GET requests for the registered users.
//
// Endpoint: GET /api/user
// Response: 200 OK with array of UserResponse
func (h *DashboardHandler) Users(w http.ResponseWriter, _ *http.Request) {
	users, err := h.dashboardService.GetUsers()
	if err != nil {
		response.RespondAppError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, users)
}
