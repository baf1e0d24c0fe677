// Auth HTTP handlers.
//
// This file exposes the email-OTP login flow:
//   - POST /auth/request-otp  (generate and deliver a code)
//   - GET  /auth/exists       (does an account exist for this email?)
//   - POST /auth/verify-otp   (exchange a code for a bearer token)
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/petcrushes/petcrushes-backend/internal/domain"
)

//
// DTOs
//

// RequestOtpRequest asks for a login code.
type RequestOtpRequest struct {
	Email string `json:"email" binding:"required" example:"ana@example.com"`
}

// RequestOtpResponse reports when the code expires and how it was delivered.
type RequestOtpResponse struct {
	ExpiresAt time.Time `json:"expiresAt"`
	Delivered bool      `json:"delivered"`
	Provider  string    `json:"provider" example:"resend"`
}

// ExistsResponse reports whether an account exists for the queried email.
type ExistsResponse struct {
	Exists bool `json:"exists"`
}

// VerifyOtpRequest exchanges a code for a token.
type VerifyOtpRequest struct {
	Email string `json:"email" binding:"required" example:"ana@example.com"`
	Code  string `json:"code" binding:"required,len=6" example:"123456"`
}

// VerifyOtpResponse is a successful login.
type VerifyOtpResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

//
// Handlers
//

// RequestOtp godoc
// @ID          requestOtp
// @Summary     Request a login code
// @Description Generates a six-digit code for the email and delivers it. Requesting a new code invalidates any previously pending one.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.RequestOtpRequest  true  "Email"
//
// @Success     200  {object}  handlers.RequestOtpResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid email"
// @Failure     429  {object}  handlers.ErrorResponse  "Too many code requests"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /auth/request-otp [post]
func (h *Handlers) RequestOtp(c *gin.Context) {
	var req RequestOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failField(c, http.StatusBadRequest, ErrCodeBadRequest, "email required", "email")
		return
	}

	res, err := h.authSvc.RequestOtp(c.Request.Context(), req.Email)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, RequestOtpResponse{
		ExpiresAt: res.ExpiresAt,
		Delivered: res.Delivery.Delivered,
		Provider:  res.Delivery.Provider,
	})
}

// AuthExists godoc
// @ID          authExists
// @Summary     Check whether an account exists
// @Description Lets the client label the flow "sign in" vs "sign up" before the code arrives.
// @Tags        Auth
// @Produce     json
//
// @Param       email  query  string  true  "Email to check"
//
// @Success     200  {object}  handlers.ExistsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid email"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /auth/exists [get]
func (h *Handlers) AuthExists(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		failField(c, http.StatusBadRequest, ErrCodeBadRequest, "email required", "email")
		return
	}

	exists, err := h.authSvc.Exists(c.Request.Context(), email)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, ExistsResponse{Exists: exists})
}

// VerifyOtp godoc
// @ID          verifyOtp
// @Summary     Verify a login code
// @Description Exchanges a valid code for a bearer token, creating the account on first login. Codes are single-use and burn out after repeated wrong guesses.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.VerifyOtpRequest  true  "Email and code"
//
// @Success     200  {object}  handlers.VerifyOtpResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid or expired code"
// @Failure     429  {object}  handlers.ErrorResponse  "Attempt budget exhausted"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /auth/verify-otp [post]
func (h *Handlers) VerifyOtp(c *gin.Context) {
	var req VerifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "email and 6-digit code required")
		return
	}

	res, err := h.authSvc.VerifyOtp(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, VerifyOtpResponse{Token: res.Token, User: *res.User})
}
