package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/petcrushes/petcrushes-backend/internal/config"
	"github.com/petcrushes/petcrushes-backend/internal/mail"
	"github.com/petcrushes/petcrushes-backend/internal/repo"
)

// --- capturing fake sender so the OTP flow never hits the network ---
type captureSender struct {
	lastEmail string
	lastCode  string
}

func (s *captureSender) SendOtp(_ context.Context, email, code string, _ time.Time) (mail.DeliveryResult, error) {
	s.lastEmail = email
	s.lastCode = code
	return mail.DeliveryResult{Delivered: true, Provider: "fake"}, nil
}

// --- test DB helper (pure-Go sqlite, no CGO) ---
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "router.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func testConfig() config.Config {
	return config.Config{
		APIBasePath:     "/api",
		FeedPageSize:    20,
		FeedMaxPageSize: 100,
		RateRPS:         1000,
		RateBurst:       1000,
		CORS:            config.CORSConfig{AllowedOrigins: nil}, // AllowAllOrigins branch
		Security:        config.SecurityConfig{EnableHSTS: false},
		OTEL:            config.OTELConfig{ServiceName: "test-svc"},
		Auth: config.AuthConfig{
			JWTSecret:      "router-test-secret",
			TokenTTL:       time.Hour,
			OtpTTL:         10 * time.Minute,
			OtpMaxAttempts: 5,
			OtpRateRPS:     1000,
			OtpRateBurst:   1000,
		},
	}
}

func TestRegisterRoutes_CORSAllowAll_Health_Metrics_Fallbacks(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, newTestDB(t), testConfig(), Collaborators{Sender: &captureSender{}})

	// /health works
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	// CORS (AllowAllOrigins) → header "*"
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("AllowAllOrigins expected '*', got %q", got)
	}

	// /metrics is wired
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || len(w.Body.Bytes()) == 0 {
		t.Fatalf("GET /metrics bad: code=%d len=%d", w.Code, w.Body.Len())
	}

	// NoRoute → 404
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/nope", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET /nope expected 404, got %d", w.Code)
	}

	// NoMethod → 405 (POST /health)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/health", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST /health expected 405, got %d", w.Code)
	}
}

func TestRegisterRoutes_CORSWithOrigins_HeaderEcho(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := testConfig()
	cfg.CORS.AllowedOrigins = []string{"http://example.com"}
	RegisterRoutes(r, newTestDB(t), cfg, Collaborators{Sender: &captureSender{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://example.com")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://example.com" {
		t.Fatalf("expected ACAO echo, got %q", got)
	}
}

func TestRegisterRoutes_PublicVsAuthedSurface(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, newTestDB(t), testConfig(), Collaborators{Sender: &captureSender{}})

	// Public listing works without a token.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/pets", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/pets = %d, body=%s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/adoptions", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/adoptions = %d", w.Code)
	}

	// Authenticated surface rejects anonymous callers.
	for _, rt := range []struct {
		method, path string
	}{
		{http.MethodGet, "/api/feed"},
		{http.MethodGet, "/api/matches"},
		{http.MethodGet, "/api/users/me"},
		{http.MethodGet, "/api/pets/mine"},
		{http.MethodGet, "/api/pets/mine/default"},
		{http.MethodPost, "/api/likes"},
		{http.MethodPost, "/api/reports"},
	} {
		w = httptest.NewRecorder()
		req = httptest.NewRequest(rt.method, rt.path, nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s expected 401, got %d", rt.method, rt.path, w.Code)
		}
	}
}

// End-to-end over HTTP: request a code, verify it, then create and read back
// a pet with the issued bearer token.
func TestRegisterRoutes_LoginAndCreatePetFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	sender := &captureSender{}
	RegisterRoutes(r, newTestDB(t), testConfig(), Collaborators{Sender: sender})

	do := func(method, path, token string, payload any) *httptest.ResponseRecorder {
		t.Helper()
		var body io.Reader
		if payload != nil {
			b, err := json.Marshal(payload)
			if err != nil {
				t.Fatalf("marshal payload: %v", err)
			}
			body = bytes.NewReader(b)
		}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(method, path, body)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		r.ServeHTTP(w, req)
		return w
	}

	// 1) Request a login code
	w := do(http.MethodPost, "/api/auth/request-otp", "", gin.H{"email": "ana@example.com"})
	if w.Code != http.StatusOK {
		t.Fatalf("request-otp = %d, body=%s", w.Code, w.Body.String())
	}
	if sender.lastCode == "" || sender.lastEmail != "ana@example.com" {
		t.Fatalf("sender not invoked: %+v", sender)
	}

	// 2) Verify it and collect the bearer token
	w = do(http.MethodPost, "/api/auth/verify-otp", "", gin.H{"email": "ana@example.com", "code": sender.lastCode})
	if w.Code != http.StatusOK {
		t.Fatalf("verify-otp = %d, body=%s", w.Code, w.Body.String())
	}
	var verify struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &verify); err != nil || verify.Token == "" {
		t.Fatalf("expected token in verify response, body=%s err=%v", w.Body.String(), err)
	}

	// 3) Create a pet with the token
	w = do(http.MethodPost, "/api/pets", verify.Token, gin.H{
		"displayName":          "Mel",
		"species":              "dog",
		"breed":                "vira-lata",
		"gender":               "FEMALE",
		"size":                 "MEDIUM",
		"objective":            "BREEDING",
		"region":               "Porto Alegre - RS",
		"colors":               []string{"caramelo"},
		"photos":               []string{"https://cdn/p1.jpg", "https://cdn/p2.jpg", "https://cdn/p3.jpg"},
		"videoUrl":             "https://cdn/v.mp4",
		"videoDurationSeconds": 12,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create pet = %d, body=%s", w.Code, w.Body.String())
	}

	// 4) The pet shows up on the authenticated "mine" listing
	w = do(http.MethodGet, "/api/pets/mine", verify.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("pets/mine = %d, body=%s", w.Code, w.Body.String())
	}
}

func Test_limitBody_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// tiny cap to trigger MaxBytesReader
	r.Use(limitBody(10))
	r.POST("/echo", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.String(http.StatusRequestEntityTooLarge, "too big")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString("0123456789AB")) // 12 bytes
	r.ServeHTTP(w, req)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 from limitBody, got %d", w.Code)
	}
}

func Test_groupWithPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	// "/" and "" should mount at root
	root1 := groupWithPrefix(r, "/")
	root1.GET("/one", func(c *gin.Context) { c.String(http.StatusOK, "one") })
	root2 := groupWithPrefix(r, "")
	root2.GET("/two", func(c *gin.Context) { c.String(http.StatusOK, "two") })

	// non-root prefix
	api := groupWithPrefix(r, "/api")
	api.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	for path, want := range map[string]string{"/one": "one", "/two": "two", "/api/ping": "pong"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK || rec.Body.String() != want {
			t.Fatalf("GET %s got %d %q", path, rec.Code, rec.Body.String())
		}
	}
}

// Smoke test that a request traverses the otel + logging + ratelimit +
// security-headers pipeline.
func TestPipeline_Smoke(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := testConfig()
	cfg.Security = config.SecurityConfig{EnableHSTS: true, HSTSMaxAge: time.Hour} // only set on https
	RegisterRoutes(r, newTestDB(t), cfg, Collaborators{Sender: &captureSender{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.URL.Scheme = "https"
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("pipeline GET /health = %d", w.Code)
	}
	// RequestID header should be present (from RequestID middleware)
	if rid := w.Header().Get("X-Request-ID"); rid == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}
}
