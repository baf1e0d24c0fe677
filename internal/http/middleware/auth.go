// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides bearer-token authentication. Token verification is
// delegated to a TokenParser so the middleware stays decoupled from the
// signing scheme and the services package.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenParser validates a bearer token and returns the user id it was issued
// for. Implementations return a non-nil error for expired, malformed, or
// otherwise invalid tokens.
type TokenParser interface {
	ParseToken(token string) (string, error)
}

// RequireAuth returns a Gin middleware that authenticates requests via the
// Authorization header ("Bearer <token>").
//
// On success the authenticated user id is stored in the Gin context under the
// "userID" key, where handlers and the rate limiter key function pick it up.
// On failure the request is aborted with a standardized JSON 401 body:
//
//	{ "request_id": "...", "code": "unauthorized", "message": "..." }
//
// Place this after RequestID() so the error body carries the correlation ID.
func RequireAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		userID, err := parser.ParseToken(token)
		if err != nil || userID == "" {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// bearerToken extracts the token from an Authorization header value. The
// "Bearer" scheme comparison is case-insensitive; anything else yields "".
func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

func abortUnauthorized(c *gin.Context, msg string) {
	rid, _ := c.Get(requestIDKey)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"request_id": asString(rid),
		"code":       "unauthorized",
		"message":    msg,
	})
}
