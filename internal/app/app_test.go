package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/dinor-predictions/internal/config"
	"github.com/riskibarqy/dinor-predictions/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		HTTPAddr:                  ":0",
		ReadTimeout:               5 * time.Second,
		WriteTimeout:              5 * time.Second,
		StorageDriver:             config.StorageMemory,
		CacheEnabled:              true,
		CacheTTL:                  time.Second,
		CORSAllowedOrigins:        []string{"*"},
		AnubisBaseURL:             "http://127.0.0.1:1",
		AnubisIntrospectURL:       "/v1/auth/introspect",
		AnubisTimeout:             time.Second,
		AnubisCircuitFailureCount: 3,
		AnubisCircuitOpenTimeout:  time.Second,
		AdminRole:                 "admin",
		WalletStartingBalance:     1000,
		LeaderboardDefaultLimit:   50,
		LeaderboardMaxLimit:       200,
		ScoringWorkerPoolSize:     2,
	}
}

func TestNewHTTPServer_MemoryStorageServesSeedData(t *testing.T) {
	t.Parallel()

	srv, cleanup, err := NewHTTPServer(context.Background(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	defer func() { _ = cleanup() }()

	req := httptest.NewRequest(http.MethodGet, "/v1/teams", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Persija Jakarta") {
		t.Fatalf("expected seeded team in body, got %s", rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestNewHTTPServer_RejectsEmptyAddr(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.HTTPAddr = ""
	if _, _, err := NewHTTPServer(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}
