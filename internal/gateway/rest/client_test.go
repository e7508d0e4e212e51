package rest

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/pkg/httpclient"
)

const testToken = "tok-123"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newFakeGateway starts a gateway double mounted at /api/v1 and returns an
// adapter pointed at it.
func newFakeGateway(t *testing.T, routes func(r chi.Router)) *Client {
	t.Helper()

	r := chi.NewRouter()
	r.Route("/api/v1", routes)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	cfg := httpclient.DefaultConfig(srv.URL + "/api/v1")
	cfg.Timeout = 5 * time.Second
	return New(httpclient.New(cfg, testLogger()), testLogger())
}

func writeBody(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func readBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.NewDecoder(r.Body).Decode(&m))
	return m
}
