package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apphttp "portfolio_backend/internal/http"
	"portfolio_backend/platform/config"
	"portfolio_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubHealth struct{ err error }

func (s stubHealth) Ping(context.Context) error { return s.err }

type echoModule struct{}

func (echoModule) Name() string { return "echo" }

func (echoModule) RegisterRoutes(rc *apphttp.RouterContext) {
	rc.Mount(func(g *gin.RouterGroup) {
		g.GET("/echo", func(c *gin.Context) { c.String(http.StatusOK, "echo") })
	})
}

func newTestEngine(health apphttp.HealthChecker) *gin.Engine {
	return New(&apphttp.App{
		Config:  &config.Config{CORSOrigins: []string{"https://example.dev"}},
		Logger:  logger.Discard(),
		Health:  health,
		Modules: []apphttp.Module{echoModule{}},
	})
}

func TestHealthEndpoint(t *testing.T) {
	engine := newTestEngine(nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadyReportsDatabaseFailure(t *testing.T) {
	engine := newTestEngine(stubHealth{err: errors.New("down")})
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ready", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestModulesMountOnVersionedAndLegacyPaths(t *testing.T) {
	engine := newTestEngine(stubHealth{})

	for _, path := range []string{"/api/v1/echo", "/echo"} {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	engine := newTestEngine(stubHealth{})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/echo", nil)
	req.Header.Set("Origin", "https://example.dev")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://example.dev" {
		t.Fatalf("expected allowed origin header, got %q", got)
	}
}
