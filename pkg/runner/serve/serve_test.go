package serve

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/config"
	"tableflip.dev/planner/pkg/server"
	"tableflip.dev/planner/pkg/store"
)

func newServe(t *testing.T, secret string) *Serve {
	t.Helper()
	svc, err := app.Open(context.Background(), store.NewMemory())
	if err != nil {
		t.Fatal(err)
	}
	settings := &config.Settings{}
	settings.Server.JWTSecret = secret
	settings.Calendar.MonthCap = 3
	return &Serve{Service: svc, Settings: settings}
}

func TestPrintedTokenIsAccepted(t *testing.T) {
	s := newServe(t, "secret")
	var out bytes.Buffer
	s.Out = &out
	if err := s.printToken(); err != nil {
		t.Fatal(err)
	}
	tok := strings.TrimSpace(out.String())

	sub, err := server.NewAuth([]byte("secret")).Subject("Bearer " + tok)
	if err != nil {
		t.Fatal(err)
	}
	if sub != "planner-cli" {
		t.Fatalf("sub %q", sub)
	}

	h := s.Handler()
	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.Echo.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d %s", rec.Code, rec.Body.String())
	}
}

func TestPrintTokenNeedsSecret(t *testing.T) {
	s := newServe(t, "")
	if err := s.printToken(); err == nil {
		t.Fatal("expected an error without a secret")
	}
}

func TestGoogleDisabledWithoutClientID(t *testing.T) {
	s := newServe(t, "")
	h := s.Handler()
	req := httptest.NewRequest(http.MethodPost, "/api/google-calendar", strings.NewReader(`{"action":"getAuthUrl"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Echo.ServeHTTP(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("got %d", rec.Code)
	}

	s.Settings.Google.ClientID = "client-123"
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/google-calendar", strings.NewReader(`{"action":"getAuthUrl"}`))
	req.Header.Set("Content-Type", "application/json")
	s.Handler().Echo.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "client-123") {
		t.Fatalf("got %d %s", rec.Code, rec.Body.String())
	}
}
