package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ndewijer/Investment-Admin-Console/internal/api"
	"github.com/ndewijer/Investment-Admin-Console/internal/config"
	"github.com/ndewijer/Investment-Admin-Console/internal/pricefeed"
	"github.com/ndewijer/Investment-Admin-Console/internal/testutil"
)

func setupRouter(t *testing.T) (http.Handler, string) {
	t.Helper()

	store, db := testutil.SetupTestStore(t)
	inv := testutil.NewInvestment("u1").Build(t, store)
	manager := testutil.NewTestSessionManager(t, store)
	t.Cleanup(manager.Logout)

	cfg := &config.Config{CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}}}
	router := api.NewRouter(
		testutil.NewTestSystemService(t, db),
		manager,
		testutil.NewTestDashboardService(t, manager),
		testutil.NewTestInvestmentService(t, manager),
		pricefeed.NewBuffer(),
		cfg,
	)
	return router, inv.ID
}

func serve(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouter(t *testing.T) {
	t.Run("system routes are public", func(t *testing.T) {
		router, _ := setupRouter(t)

		if w := serve(router, http.MethodGet, "/api/system/health", ""); w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
	})

	t.Run("console routes require login", func(t *testing.T) {
		router, id := setupRouter(t)

		for _, path := range []string{"/api/dashboard", "/api/investment", "/api/investment/" + id, "/api/user", "/api/price"} {
			if w := serve(router, http.MethodGet, path, ""); w.Code != http.StatusUnauthorized {
				t.Errorf("Expected 401 for %s, got %d", path, w.Code)
			}
		}
	})

	t.Run("full lifecycle after login", func(t *testing.T) {
		router, id := setupRouter(t)

		if w := serve(router, http.MethodPost, "/api/session/login", `{"password":"`+testutil.TestAdminPassword+`"}`); w.Code != http.StatusOK {
			t.Fatalf("Expected login 200, got %d: %s", w.Code, w.Body.String())
		}

		steps := []struct {
			method, path, body string
			want               int
		}{
			{http.MethodGet, "/api/investment/" + id, "", http.StatusOK},
			{http.MethodPost, "/api/investment/" + id + "/settle", "", http.StatusConflict},
			{http.MethodPost, "/api/investment/" + id + "/approve", "", http.StatusOK},
			{http.MethodPost, "/api/investment/" + id + "/approve", "", http.StatusConflict},
			{http.MethodPost, "/api/investment/" + id + "/settle", `{"multiplier":"1.6"}`, http.StatusOK},
			{http.MethodPost, "/api/investment/" + id + "/cancel", "", http.StatusConflict},
			{http.MethodDelete, "/api/investment/" + id, "", http.StatusBadRequest},
			{http.MethodDelete, "/api/investment/" + id + "?confirm=true", "", http.StatusNoContent},
			{http.MethodGet, "/api/investment/" + id, "", http.StatusNotFound},
			{http.MethodGet, "/api/price", "", http.StatusOK},
			{http.MethodPost, "/api/session/logout", "", http.StatusNoContent},
			{http.MethodGet, "/api/dashboard", "", http.StatusUnauthorized},
		}

		for _, s := range steps {
			if w := serve(router, s.method, s.path, s.body); w.Code != s.want {
				t.Errorf("%s %s: expected %d, got %d: %s", s.method, s.path, s.want, w.Code, w.Body.String())
			}
		}
	})
}
