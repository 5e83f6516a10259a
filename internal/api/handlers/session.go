package handlers

import (
	"net/http"
	"time"

	"github.com/ndewijer/Investment-Admin-Console/internal/api/request"
	"github.com/ndewijer/Investment-Admin-Console/internal/api/response"
	"github.com/ndewijer/Investment-Admin-Console/internal/session"
	"github.com/ndewijer/Investment-Admin-Console/internal/validation"
)

// SessionHandler handles HTTP requests for the admin login gate.
type SessionHandler struct {
	sessions *session.Manager
}

// NewSessionHandler creates a new SessionHandler with the provided session manager.
func NewSessionHandler(sessions *session.Manager) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
	}
}

// SessionResponse describes the state of the admin session.
type SessionResponse struct {
	Authenticated bool       `json:"authenticated"`
	SessionID     string     `json:"sessionId,omitempty"`
	StartedAt     *time.Time `json:"startedAt,omitempty"`
}

// Login handles POST requests that unlock the console.
// On success the session stays open for the rest of the process or until logout.
//
// Endpoint: POST /api/session/login
// Request Body: LoginRequest (password)
// Response: 200 OK with SessionResponse
// Error: 400 Bad Request if the body is invalid or the password is missing
// Error: 401 Unauthorized if the password does not match
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.LoginRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateLogin(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	sess, err := h.sessions.Login(r.Context(), req.Password)
	if err != nil {
		response.RespondAppError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, SessionResponse{
		Authenticated: true,
		SessionID:     sess.ID,
		StartedAt:     &sess.StartedAt,
	})
}

// Logout handles POST requests that lock the console again.
//
// Endpoint: POST /api/session/logout
// Response: 204 No Content
func (h *SessionHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	h.sessions.Logout()
	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Status handles GET requests for the current session state.
//
// Endpoint: GET /api/session
// Response: 200 OK with SessionResponse
func (h *SessionHandler) Status(w http.ResponseWriter, _ *http.Request) {
	sess, err := h.sessions.Current()
	if err != nil {
		response.RespondJSON(w, http.StatusOK, SessionResponse{Authenticated: false})
		return
	}

	response.RespondJSON(w, http.StatusOK, SessionResponse{
		Authenticated: true,
		SessionID:     sess.ID,
		StartedAt:     &sess.StartedAt,
	})
}
