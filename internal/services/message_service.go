// Package services – MessageService
//
// Chat lives inside a match: only the two pet owners involved can read or
// write, the sender is recorded as the user (not the pet), and every outgoing
// message passes the sales-content filter before persisting.
package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/petcrushes/petcrushes-backend/internal/content"
	"github.com/petcrushes/petcrushes-backend/internal/domain"
	"github.com/petcrushes/petcrushes-backend/internal/repo"
)

// MessageService implements match-scoped chat.
type MessageService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Matches resolves match membership for authorization.
	Matches *MatchService

	// MaxRunes caps message length; 0 disables the cap.
	MaxRunes int
}

// NewMessageService constructs a MessageService with the product's length cap.
func NewMessageService(db *gorm.DB, matches *MatchService) *MessageService {
	return &MessageService{DB: db, Matches: matches, MaxRunes: 2000}
}

// Send validates and persists a message from callerID into matchID.
func (s *MessageService) Send(ctx context.Context, callerID string, matchID int64, text string) (*domain.Message, error) {
	tr := otel.Tracer("services/MessageService")
	ctx, span := tr.Start(ctx, "Send",
		trace.WithAttributes(attribute.Int64("match.id", matchID)),
	)
	defer span.End()

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if s.MaxRunes > 0 && utf8.RuneCountInString(text) > s.MaxRunes {
		return nil, ErrMessageTooLong
	}
	if tok, found := content.FindBlocked(text); found {
		return nil, &BlockedContentError{Field: "text", Token: tok}
	}

	m, err := s.authorizedMatch(ctx, callerID, matchID)
	if err != nil {
		return nil, err
	}
	return repo.CreateMessage(ctx, s.DB, m.ID, callerID, text)
}

// List returns the match's messages oldest-first. limit <= 0 returns all.
func (s *MessageService) List(ctx context.Context, callerID string, matchID int64, limit int) ([]domain.Message, error) {
	tr := otel.Tracer("services/MessageService")
	ctx, span := tr.Start(ctx, "List",
		trace.WithAttributes(attribute.Int64("match.id", matchID)),
	)
	defer span.End()

	m, err := s.authorizedMatch(ctx, callerID, matchID)
	if err != nil {
		return nil, err
	}
	return repo.ListMessages(ctx, s.DB, m.ID, limit)
}

// authorizedMatch loads the match and checks the caller owns one of its pets.
// An existing match the caller is not part of is reported as forbidden, not
// hidden, since match ids are already exposed to both participants.
func (s *MessageService) authorizedMatch(ctx context.Context, callerID string, matchID int64) (*domain.Match, error) {
	m, err := repo.GetMatch(ctx, s.DB, matchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	ok, _, err := s.Matches.participant(ctx, callerID, m)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if !ok {
		return nil, ErrMatchForbidden
	}
	return m, nil
}
