package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"hostel-hub/config"
	"hostel-hub/pkg/jwt"
	"hostel-hub/pkg/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testJWT() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret:       "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
	})
}

type stubBlacklist struct {
	revoked map[string]bool
	err     error
}

func (s *stubBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	return s.revoked[jti], s.err
}

type stubLimiter struct {
	calls int
	limit int
	err   error
}

func (s *stubLimiter) CheckRateLimit(_ context.Context, _ string, limit int, _ time.Duration) (bool, error) {
	s.calls++
	return s.calls <= limit, s.err
}

func authEngine(mgr *jwt.Manager, bl TokenBlacklist) *gin.Engine {
	r := gin.New()
	r.GET("/me", JWTAuth(mgr, bl), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString(CtxUserID),
			"role":    c.GetString(CtxRole),
			"hostel":  c.GetString(CtxHostel),
		})
	})
	r.GET("/admin", JWTAuth(mgr, bl), RoleAuth("admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

// ── JWTAuth ──

func TestJWTAuth_ValidToken(t *testing.T) {
	mgr := testJWT()
	token, _ := mgr.GenerateAccessToken("user-1", "student", "B")

	w := get(authEngine(mgr, nil), "/me", token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"hostel":"B"`) {
		t.Errorf("hostel not injected: %s", w.Body.String())
	}
}

func TestJWTAuth_Rejects(t *testing.T) {
	mgr := testJWT()
	refresh, _ := mgr.GenerateRefreshToken("user-1", "student", "B")

	cases := map[string]string{
		"缺少认证头":         "",
		"无效 Token":      "garbage",
		"Refresh Token": refresh,
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			if w := get(authEngine(mgr, nil), "/me", token); w.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", w.Code)
			}
		})
	}
}

func TestJWTAuth_Blacklisted(t *testing.T) {
	mgr := testJWT()
	token, _ := mgr.GenerateAccessToken("user-1", "student", "A")
	claims, _ := mgr.ParseToken(token)

	bl := &stubBlacklist{revoked: map[string]bool{claims.ID: true}}
	if w := get(authEngine(mgr, bl), "/me", token); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for revoked token, got %d", w.Code)
	}

	// 黑名单查询失败时降级放行
	bl = &stubBlacklist{err: errors.New("redis down")}
	if w := get(authEngine(mgr, bl), "/me", token); w.Code != http.StatusOK {
		t.Errorf("expected 200 when blacklist unavailable, got %d", w.Code)
	}
}

// ── RoleAuth ──

func TestRoleAuth(t *testing.T) {
	mgr := testJWT()
	student, _ := mgr.GenerateAccessToken("user-1", "student", "A")
	admin, _ := mgr.GenerateAccessToken("admin-1", "admin", "A")
	r := authEngine(mgr, nil)

	if w := get(r, "/admin", student); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for student, got %d", w.Code)
	}
	if w := get(r, "/admin", admin); w.Code != http.StatusOK {
		t.Errorf("expected 200 for admin, got %d", w.Code)
	}
}

// ── RateLimit ──

func TestRateLimit(t *testing.T) {
	limiter := &stubLimiter{}
	r := gin.New()
	r.POST("/login", RateLimit(limiter, 2, time.Minute, zap.NewNop()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("POST", "/login", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("expected [200 200 429], got %v", codes)
	}
}

func TestRateLimit_NilLimiterPasses(t *testing.T) {
	r := gin.New()
	r.POST("/login", RateLimit(nil, 1, time.Minute, zap.NewNop()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("POST", "/login", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 without limiter, got %d", w.Code)
		}
	}
}

// ── BodyLimit ──

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(16))
	r.POST("/echo", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/echo", strings.NewReader(strings.Repeat("x", 64))))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/echo", strings.NewReader("small")))
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ── RequestID ──

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	r.ServeHTTP(w, req)
	if w.Body.String() != "abc-123" || w.Header().Get("X-Request-ID") != "abc-123" {
		t.Errorf("expected request id to be propagated, got %q", w.Body.String())
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("a", 100))
	r.ServeHTTP(w, req)
	if len(w.Body.String()) != 36 {
		t.Errorf("oversized request id should be replaced by uuid, got %q", w.Body.String())
	}
}

// ── CORS ──

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173/"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest("OPTIONS", "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204 for preflight, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Error("allowed origin should be echoed")
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("unknown origin must not be allowed")
	}
}

// ── Metrics ──

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	m := metrics.New()
	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/mess-choices/:studentId", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, id := range []string{"a", "b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/mess-choices/"+id, nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/nope", nil))

	if got := testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/mess-choices/:studentId", "200")); got != 2 {
		t.Errorf("expected 2 requests on route template, got %v", got)
	}
	if got := testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "unmatched", "404")); got != 1 {
		t.Errorf("expected 1 unmatched request, got %v", got)
	}
}
