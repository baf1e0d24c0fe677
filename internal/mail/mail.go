// Package mail delivers one-time login codes over email.
//
// The Resend HTTP API is used when an API key is configured. Without one the
// sender degrades to a dev-console fallback that logs the code instead of
// sending it, so local environments work with zero setup. Callers always get
// a DeliveryResult telling them which path ran.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultFrom is used when no sender address is configured.
const DefaultFrom = "PetCrushes <no-reply@petcrushes.local>"

const resendEndpoint = "https://api.resend.com/emails"

// DeliveryResult reports how (and whether) a code was delivered.
type DeliveryResult struct {
	Delivered bool   `json:"delivered"`
	Provider  string `json:"provider"` // "resend" or "dev-console"
}

// OtpSender delivers a login code to an email address.
type OtpSender interface {
	SendOtp(ctx context.Context, email, code string, expiresAt time.Time) (DeliveryResult, error)
}

// ResendSender sends codes through the Resend API, falling back to the dev
// console when unconfigured or when Resend rejects the request. Delivery
// failures are downgraded to the fallback rather than surfaced as errors so
// a flaky provider never blocks login in non-production setups.
type ResendSender struct {
	// APIKey enables real delivery; empty means dev-console only.
	APIKey string
	// From is the sender address; empty uses DefaultFrom.
	From string
	// Client is the HTTP client; nil uses a 10s-timeout default.
	Client *http.Client
}

// NewResendSender constructs a ResendSender.
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{APIKey: apiKey, From: from}
}

type resendPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text"`
}

// SendOtp delivers code to email. It never returns an error for provider
// failures; those log and fall back to the dev console.
func (s *ResendSender) SendOtp(ctx context.Context, email, code string, expiresAt time.Time) (DeliveryResult, error) {
	if s.APIKey == "" {
		return s.devFallback(email, code, expiresAt), nil
	}

	from := s.From
	if from == "" {
		from = DefaultFrom
	}
	exp := expiresAt.UTC().Format(time.RFC3339)
	payload := resendPayload{
		From:    from,
		To:      []string{email},
		Subject: "Seu código de acesso - PetCrushes",
		HTML:    fmt.Sprintf("<p>Seu código de acesso é <strong>%s</strong>.</p><p>Ele expira em %s.</p>", code, exp),
		Text:    fmt.Sprintf("Seu código de acesso é %s. Ele expira em %s.", code, exp),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return DeliveryResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(body))
	if err != nil {
		return DeliveryResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.APIKey)

	resp, err := s.client().Do(req)
	if err != nil {
		log.Error().Err(err).Str("email", email).Msg("resend request failed")
		return s.devFallback(email, code, expiresAt), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		log.Error().
			Int("status", resp.StatusCode).
			Str("body", string(b)).
			Msg("resend rejected otp email")
		return s.devFallback(email, code, expiresAt), nil
	}

	return DeliveryResult{Delivered: true, Provider: "resend"}, nil
}

func (s *ResendSender) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return &http.Client{Timeout: 10 * time.Second}
}

func (s *ResendSender) devFallback(email, code string, expiresAt time.Time) DeliveryResult {
	log.Info().
		Str("email", email).
		Str("code", code).
		Time("expires_at", expiresAt).
		Msg("otp dev-console fallback")
	return DeliveryResult{Delivered: false, Provider: "dev-console"}
}
