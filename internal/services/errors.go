// Package services defines the business logic for pets, matching, feed,
// chat, adoptions and OTP login. This file centralizes common service-level
// error values so that they can be consistently returned by service methods
// and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the
// handler layer.
package services

import (
	"errors"
	"fmt"
)

// Pet and matching errors.
var (
	// ErrPetNotFound indicates that the requested pet does not exist, or is
	// not accessible to the current user where ownership is part of the
	// lookup (the two cases are deliberately indistinguishable).
	ErrPetNotFound = errors.New("pet not found")

	// ErrNotPetOwner is returned when a caller tries to mutate or act
	// through a pet they do not own.
	ErrNotPetOwner = errors.New("pet does not belong to the caller")

	// ErrSelfLike is returned when a pet tries to like itself.
	ErrSelfLike = errors.New("a pet cannot like itself")

	// ErrOwnTarget is returned when a caller likes a pet they also own
	// (no self-matching through a second pet).
	ErrOwnTarget = errors.New("cannot like your own pet")

	// ErrNoActivePet is returned when a like action requires an active pet
	// and the caller has none.
	ErrNoActivePet = errors.New("no active pet")
)

// ErrUserNotFound indicates the authenticated subject no longer has a row
// (e.g. a token outliving account deletion).
var ErrUserNotFound = errors.New("user not found")

// Match and chat errors.
var (
	// ErrMatchNotFound indicates the requested match does not exist or is
	// not visible to the caller.
	ErrMatchNotFound = errors.New("match not found")

	// ErrMatchForbidden is returned when a user who owns neither pet of a
	// match tries to read it or post into its chat.
	ErrMatchForbidden = errors.New("match does not involve the caller")

	// ErrEmptyMessage is returned when a chat message has no content after
	// trimming.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrMessageTooLong is returned when a chat message exceeds the
	// configured rune limit.
	ErrMessageTooLong = errors.New("message too long")
)

// Adoption errors.
var (
	// ErrAdoptionNotFound indicates the listing does not exist or does not
	// belong to the caller.
	ErrAdoptionNotFound = errors.New("adoption post not found")

	// ErrInvalidAdoptionStatus is returned for a status outside
	// DISPONIVEL/ADOTADO.
	ErrInvalidAdoptionStatus = errors.New("invalid adoption status")
)

// OTP login errors.
var (
	// ErrOtpNotFound is returned when verification finds no live code for
	// the email (never issued, expired, or already used).
	ErrOtpNotFound = errors.New("code expired or not found")

	// ErrOtpInvalid is returned when the submitted code does not match.
	ErrOtpInvalid = errors.New("invalid code")

	// ErrOtpAttemptsExceeded is returned once the failed-attempt budget for
	// a code is exhausted; the code is invalidated.
	ErrOtpAttemptsExceeded = errors.New("too many failed attempts")

	// ErrOtpThrottled is returned when code requests for an email arrive
	// faster than the configured rate. Recoverable after the window elapses.
	ErrOtpThrottled = errors.New("too many code requests")
)

// ErrMediaUnavailable is returned when the media collaborator is not
// configured or unreachable, so clients can offer a retry instead of
// blaming the input.
var ErrMediaUnavailable = errors.New("media service unavailable")

// BlockedContentError reports that a write was rejected because a text field
// contains sales/payment vocabulary. Field names the offending input field
// and Token the matched keyword.
type BlockedContentError struct {
	Field string
	Token string
}

// Error implements the error interface.
func (e *BlockedContentError) Error() string {
	return fmt.Sprintf("sales content is not allowed in %s (matched %q)", e.Field, e.Token)
}

// ValidationError reports a field-level input problem detected by a service
// beyond what request binding covers (media counts, video duration, enums).
type ValidationError struct {
	Field string
	Msg   string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}
