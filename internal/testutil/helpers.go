package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"

	"github.com/ndewijer/Investment-Admin-Console/internal/kvstore"
	"github.com/ndewijer/Investment-Admin-Console/internal/repository"
	"github.com/ndewijer/Investment-Admin-Console/internal/service"
	"github.com/ndewijer/Investment-Admin-Console/internal/session"
)

// TestAdminPassword is the admin secret used by NewTestSessionManager.
const TestAdminPassword = "test-admin-secret"

// NewTestSessionManager creates a session manager over store with no price feed.
func NewTestSessionManager(t *testing.T, store kvstore.Store) *session.Manager {
	t.Helper()

	return session.NewManager(TestAdminPassword, repository.NewRecordRepository(store), nil)
}

// LoginTestSession opens a session on manager and closes it when the test ends.
func LoginTestSession(t *testing.T, manager *session.Manager) *session.Session {
	t.Helper()

	sess, err := manager.Login(context.Background(), TestAdminPassword)
	if err != nil {
		t.Fatalf("Failed to log in: %v", err)
	}
	t.Cleanup(manager.Logout)

	return sess
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

func NewTestInvestmentService(t *testing.T, manager *session.Manager) *service.InvestmentService {
	t.Helper()

	return service.NewInvestmentService(manager)
}

func NewTestDashboardService(t *testing.T, manager *session.Manager) *service.DashboardService {
	t.Helper()

	return service.NewDashboardService(manager)
}

// MakeID returns a fresh random record id.
func MakeID() string {
	return uuid.New().String()
}
