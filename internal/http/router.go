// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, authentication, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/petcrushes/petcrushes-backend/internal/config"
	"github.com/petcrushes/petcrushes-backend/internal/http/handlers"
	"github.com/petcrushes/petcrushes-backend/internal/http/middleware"
	"github.com/petcrushes/petcrushes-backend/internal/mail"
	"github.com/petcrushes/petcrushes-backend/internal/media"
	"github.com/petcrushes/petcrushes-backend/internal/services"
)

// Collaborators groups the external adapters injected into RegisterRoutes.
// Nil fields select degraded-but-safe behavior: a nil Uploader answers the
// upload endpoint with 503, a nil Sender is replaced by the dev-console
// fallback inside the mail package.
type Collaborators struct {
	Sender   mail.OtpSender
	Uploader media.Uploader
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting, CORS
// and security headers, health and metrics endpoints, and then mounts the
// public and authenticated API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Rate limiter (per user/IP)
//  8. CORS and Security headers
//  9. Response compression
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config, collab Collaborators) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction. OTP codes only travel in bodies,
	// which are never logged; emails in query strings are pattern-redacted.
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (32 MiB: leaves room for multipart media)
	r.Use(limitBody(32 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 8) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// 9) Compress JSON responses (feed and match lists carry photo URL lists)
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (opt-in; serves the generated OpenAPI document)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← db/collaborators/config
	sender := collab.Sender
	if sender == nil {
		sender = mail.NewResendSender(cfg.Mail.ResendAPIKey, cfg.Mail.From)
	}
	throttle := services.NewTokenBucketThrottle(cfg.Auth.OtpRateRPS, cfg.Auth.OtpRateBurst)

	authSvc := services.NewAuthService(db, sender, throttle, []byte(cfg.Auth.JWTSecret))
	authSvc.TokenTTL = cfg.Auth.TokenTTL
	authSvc.OtpTTL = cfg.Auth.OtpTTL
	authSvc.MaxAttempts = cfg.Auth.OtpMaxAttempts

	petSvc := services.NewPetService(db)
	matchSvc := services.NewMatchService(db)
	msgSvc := services.NewMessageService(db, matchSvc)
	feedSvc := services.NewFeedService(db)
	feedSvc.DefaultLimit = cfg.FeedPageSize
	feedSvc.MaxLimit = cfg.FeedMaxPageSize
	reportSvc := services.NewReportService(db)
	adoptionSvc := services.NewAdoptionService(db)
	adoptionSvc.DefaultLimit = cfg.FeedPageSize
	adoptionSvc.MaxLimit = cfg.FeedMaxPageSize
	userSvc := services.NewUserService(db)
	mediaSvc := services.NewMediaService(collab.Uploader)

	h := handlers.New(petSvc, matchSvc, feedSvc, msgSvc, reportSvc, adoptionSvc, authSvc, userSvc, mediaSvc)

	base := groupWithPrefix(r, cfg.APIBasePath)

	// Public surface: login, browsing pets and adoption listings.
	{
		base.POST("/auth/request-otp", h.RequestOtp)
		base.GET("/auth/exists", h.AuthExists)
		base.POST("/auth/verify-otp", h.VerifyOtp)

		base.GET("/pets", h.ListPets)
		base.GET("/pets/:id", h.GetPet)
		base.GET("/adoptions", h.ListAdoptions)
		base.GET("/adoptions/:id", h.GetAdoption)
	}

	// Everything else requires a bearer token.
	authed := base.Group("", middleware.RequireAuth(authSvc))
	{
		// Pets. The static /pets/mine routes are registered alongside the
		// parameterized public /pets/:id one; Gin resolves static segments
		// first.
		authed.POST("/pets", h.CreatePet)
		authed.GET("/pets/mine", h.MyPets)
		authed.GET("/pets/mine/active", h.GetActivePet)
		authed.GET("/pets/mine/default", h.GetDefaultPet)
		authed.PATCH("/pets/mine/active", h.SetActivePet)
		authed.PUT("/pets/:id", h.UpdatePet)
		authed.DELETE("/pets/:id", h.DeletePet)

		// Discovery and matching
		authed.GET("/feed", h.Feed)
		authed.POST("/likes", h.Like)
		authed.GET("/matches", h.ListMatches)
		authed.GET("/matches/:id", h.GetMatch)
		authed.POST("/matches/:id/messages", h.PostChatMessage)

		// Moderation
		authed.POST("/reports", h.CreateReport)

		// Adoption marketplace (mutations)
		authed.POST("/adoptions", h.CreateAdoption)
		authed.PATCH("/adoptions/:id", h.UpdateAdoption)

		// Profile and media
		authed.GET("/users/me", h.GetMe)
		authed.PATCH("/users/me", h.UpdateMe)
		authed.POST("/media/upload", h.UploadMedia)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
