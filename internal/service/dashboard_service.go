package service

import (
	"context"

	"github.com/ndewijer/Investment-Admin-Console/internal/model"
	"github.com/ndewijer/Investment-Admin-Console/internal/session"
)

// DashboardService serves the overview and user listing of the open session.
type DashboardService struct {
	sessions *session.Manager
}

// NewDashboardService creates a new DashboardService with the provided session manager.
func NewDashboardService(sessions *session.Manager) *DashboardService {
	return &DashboardService{
		sessions: sessions,
	}
}

// GetDashboard returns the user count and the ledger aggregates.
func (s *DashboardService) GetDashboard() (model.Dashboard, error) {
	sess, err := s.sessions.Current()
	if err != nil {
		return model.Dashboard{}, err
	}

	return model.Dashboard{
		SessionID: sess.ID,
		UserCount: len(sess.Users()),
		Stats:     sess.Ledger.Stats(),
		LoadedAt:  sess.LastLoad().LoadedAt,
	}, nil
}

// GetUsers returns the loaded users in load order.
func (s *DashboardService) GetUsers() ([]model.UserResponse, error) {
	sess, err := s.sessions.Current()
	if err != nil {
		return nil, err
	}

	users := sess.Users()
	out := make([]model.UserResponse, len(users))
	for i, u := range users {
		out[i] = model.UserResponse{
			ID:      u.ID,
			ShortID: model.ShortID(u.ID),
			Name:    u.Name,
			Email:   u.Email,
			Initial: u.Initial(),
		}
	}
	return out, nil
}

// Reload re-runs the bulk load for the open session.
func (s *DashboardService) Reload(ctx context.Context) (model.LoadSummary, error) {
	sess, err := s.sessions.Current()
	if err != nil {
		return model.LoadSummary{}, err
	}
	return sess.Reload(ctx), nil
}
