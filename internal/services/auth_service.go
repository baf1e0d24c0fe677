// Package services – AuthService
//
// Email OTP login: a six-digit code is generated, its SHA-256 hash stored
// with a TTL and an attempt counter, and the code mailed (or logged, in dev).
// Verifying a valid code consumes it, upserts the user by email, and returns
// a signed HS256 token. Codes are single-use, requesting a new code
// invalidates older pending ones, and five wrong guesses burn the code.
package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/petcrushes/petcrushes-backend/internal/domain"
	"github.com/petcrushes/petcrushes-backend/internal/mail"
	"github.com/petcrushes/petcrushes-backend/internal/repo"
)

// OtpRequestResult reports a code request: when the code expires and how it
// was delivered.
type OtpRequestResult struct {
	ExpiresAt time.Time
	Delivery  mail.DeliveryResult
}

// VerifyResult is a successful login: the user and their bearer token.
type VerifyResult struct {
	User  *domain.User
	Token string
}

// AuthService implements the OTP login flow and token issuance.
type AuthService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Sender delivers codes over email.
	Sender mail.OtpSender
	// Throttle limits per-email code requests.
	Throttle OtpThrottle

	// JWTSecret signs and verifies bearer tokens.
	JWTSecret []byte
	// TokenTTL is the bearer-token lifetime.
	TokenTTL time.Duration
	// OtpTTL is the code lifetime.
	OtpTTL time.Duration
	// MaxAttempts burns a code after this many wrong guesses.
	MaxAttempts int
}

// NewAuthService constructs an AuthService with the product defaults:
// 10-minute codes, 5 attempts, 7-day tokens.
func NewAuthService(db *gorm.DB, sender mail.OtpSender, throttle OtpThrottle, jwtSecret []byte) *AuthService {
	return &AuthService{
		DB:          db,
		Sender:      sender,
		Throttle:    throttle,
		JWTSecret:   jwtSecret,
		TokenTTL:    7 * 24 * time.Hour,
		OtpTTL:      10 * time.Minute,
		MaxAttempts: 5,
	}
}

// RequestOtp generates and delivers a login code for email. Any previously
// pending code for the address stops working.
func (s *AuthService) RequestOtp(ctx context.Context, email string) (*OtpRequestResult, error) {
	tr := otel.Tracer("services/AuthService")
	ctx, span := tr.Start(ctx, "RequestOtp")
	defer span.End()

	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if s.Throttle != nil && !s.Throttle.Allow(email) {
		return nil, ErrOtpThrottled
	}

	code, err := generateOtpCode()
	if err != nil {
		return nil, err
	}

	otp, err := repo.CreateOtpCode(ctx, s.DB, email, HashOtpCode(code), s.OtpTTL)
	if err != nil {
		return nil, err
	}

	delivery, err := s.Sender.SendOtp(ctx, email, code, otp.ExpiresAt)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("otp.provider", delivery.Provider))
	return &OtpRequestResult{ExpiresAt: otp.ExpiresAt, Delivery: delivery}, nil
}

// Exists reports whether an account already exists for email, so the client
// can label the flow "sign in" vs "sign up".
func (s *AuthService) Exists(ctx context.Context, email string) (bool, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return false, err
	}
	_, err = repo.GetUserByEmail(ctx, s.DB, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// VerifyOtp checks code against the pending code for email. On success the
// code is consumed, the user is created or refreshed, and a token is issued.
func (s *AuthService) VerifyOtp(ctx context.Context, email, code string) (*VerifyResult, error) {
	tr := otel.Tracer("services/AuthService")
	ctx, span := tr.Start(ctx, "VerifyOtp")
	defer span.End()

	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	code = strings.TrimSpace(code)

	otp, err := repo.GetPendingOtpCode(ctx, s.DB, email, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOtpNotFound
		}
		return nil, err
	}
	if otp.Attempts >= s.MaxAttempts {
		return nil, ErrOtpAttemptsExceeded
	}

	if subtle.ConstantTimeCompare([]byte(otp.CodeHash), []byte(HashOtpCode(code))) != 1 {
		attempts, berr := repo.BumpOtpAttempts(ctx, s.DB, otp.ID)
		if berr != nil {
			return nil, berr
		}
		if attempts >= s.MaxAttempts {
			return nil, ErrOtpAttemptsExceeded
		}
		return nil, ErrOtpInvalid
	}

	if err := repo.MarkOtpUsed(ctx, s.DB, otp.ID); err != nil {
		return nil, err
	}

	u, err := s.upsertVerifiedUser(ctx, email)
	if err != nil {
		return nil, err
	}

	token, err := s.signToken(u)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("user.id", u.ID))
	return &VerifyResult{User: u, Token: token}, nil
}

// ParseToken validates a bearer token and returns the subject user id.
func (s *AuthService) ParseToken(tokenStr string) (string, error) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.JWTSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid {
		return "", ErrOtpInvalid
	}
	sub, err := tok.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrOtpInvalid
	}
	return sub, nil
}

func (s *AuthService) signToken(u *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"email": u.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.TokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.JWTSecret)
}

// upsertVerifiedUser finds or creates the account for email, marks it
// verified, and stamps the login time.
func (s *AuthService) upsertVerifiedUser(ctx context.Context, email string) (*domain.User, error) {
	u, err := repo.GetUserByEmail(ctx, s.DB, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		u, err = repo.CreateUser(ctx, s.DB, email, displayNameFromEmail(email))
		if err != nil {
			return nil, err
		}
		if _, uerr := repo.UpdateUser(ctx, s.DB, u.ID, map[string]any{"verified": true}); uerr != nil {
			return nil, uerr
		}
		u.Verified = true
	} else if err != nil {
		return nil, err
	} else if !u.Verified {
		if _, uerr := repo.UpdateUser(ctx, s.DB, u.ID, map[string]any{"verified": true}); uerr != nil {
			return nil, uerr
		}
		u.Verified = true
	}

	if err := repo.TouchLastLogin(ctx, s.DB, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

// displayNameFromEmail derives a friendly initial display name from the email
// local part: "ana.silva" becomes "Ana Silva". Most users are Brazilian, so
// Portuguese casing rules apply.
func displayNameFromEmail(email string) string {
	local := email
	if i := strings.IndexByte(email, '@'); i > 0 {
		local = email[:i]
	}
	local = strings.NewReplacer(".", " ", "_", " ", "-", " ", "+", " ").Replace(local)
	local = strings.Join(strings.Fields(local), " ")
	if local == "" {
		return ""
	}
	return cases.Title(language.BrazilianPortuguese).String(local)
}

// HashOtpCode returns the hex SHA-256 of a code, the only form ever stored.
func HashOtpCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// generateOtpCode returns a uniformly random six-digit code, zero-padded.
func generateOtpCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return "", &ValidationError{Field: "email", Msg: "must be a valid email address"}
	}
	return email, nil
}
