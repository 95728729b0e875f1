package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/authgate/internal/config"
	"github.com/hongminglow/authgate/internal/storage/sqlite"
)

func testConfig() config.Config {
	return config.Config{
		Port:        "0",
		StoreDriver: config.DriverSQLite,
		JWTSecret:   "server-test-secret",
		JWTIssuer:   "authgate-test",
		JWTTTL:      time.Hour,
		BcryptCost:  bcrypt.MinCost,
		CORSOrigins: []string{"*"},
	}
}

func newTestHandler(t *testing.T, name string) http.Handler {
	t.Helper()
	store, err := sqlite.NewUserStore(context.Background(), "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	h, err := NewHandler(testConfig(), store, zerolog.Nop())
	require.NoError(t, err)
	return h
}

func TestEndToEnd(t *testing.T) {
	ts := httptest.NewServer(newTestHandler(t, "server_e2e"))
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/register", "application/json",
		strings.NewReader(`{"name":"Ada","email":"ada@example.com","password":"pw"}`))
	require.NoError(t, err)
	var reg struct {
		Success bool   `json:"success"`
		UserID  string `json:"userId"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reg))
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, reg.Success)

	resp, err = http.Post(ts.URL+"/api/login", "application/json",
		strings.NewReader(`{"email":"ada@example.com","password":"pw"}`))
	require.NoError(t, err)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/protected", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var protected struct {
		UserID string `json:"userId"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&protected))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, reg.UserID, protected.UserID)
}

func TestLandingAndChartPages(t *testing.T) {
	h := newTestHandler(t, "server_pages")

	for _, path := range []string{"/", "/login.html", "/chart.html"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		body, _ := io.ReadAll(rec.Body)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html", path)
		assert.Contains(t, string(body), "<!DOCTYPE html>", path)
	}
}

func TestRoutingErrors(t *testing.T) {
	h := newTestHandler(t, "server_routing")

	apitest.New().Handler(h).Get("/api/login").Expect(t).
		Status(http.StatusMethodNotAllowed).
		Assert(jsonpath.Equal("$.error", "Method not allowed")).
		End()
	apitest.New().Handler(h).Get("/api/nope").Expect(t).
		Status(http.StatusNotFound).
		Assert(jsonpath.Equal("$.error", "Not found")).
		End()
	apitest.New().Handler(h).Get("/health").Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.status", "ok")).
		End()
}

func TestNewRejectsBadCost(t *testing.T) {
	cfg := testConfig()
	cfg.BcryptCost = 99
	_, err := New(cfg, nil, zerolog.Nop())
	assert.Error(t, err)
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := testConfig()
	cfg.Port = "0"
	srv, err := New(cfg, nil, zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}
