// Package services – MatchService
//
// This file implements the like/match engine. A like is a directed edge from
// one pet to another; when both directions exist, a single match row is
// materialized under the canonical (low, high) pair. Likes are idempotent and
// the match insert is race-safe: concurrent reciprocal likes converge on the
// same row through the unique pair index.
//
// Observability: public methods are OpenTelemetry-instrumented.
package services

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/petcrushes/petcrushes-backend/internal/domain"
	"github.com/petcrushes/petcrushes-backend/internal/repo"
)

// LikeResult reports the outcome of a like: whether a mutual match exists and,
// if so, which match row represents it.
type LikeResult struct {
	Matched bool
	MatchID int64
}

// MatchView is a match hydrated with both pets and the latest message, as the
// conversations screen renders it.
type MatchView struct {
	Match       domain.Match
	PetLow      domain.Pet
	PetHigh     domain.Pet
	LastMessage *domain.Message
}

// MatchService implements the like engine and match/conversation queries.
type MatchService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewMatchService constructs a MatchService.
func NewMatchService(db *gorm.DB) *MatchService {
	return &MatchService{DB: db}
}

// Like records a like from likerPetID to targetPetID on behalf of callerID and
// reconciles the reciprocal edge into a match when both directions exist.
// Repeating an existing like is a no-op that re-reports the current state.
func (s *MatchService) Like(ctx context.Context, callerID string, likerPetID, targetPetID int64) (*LikeResult, error) {
	tr := otel.Tracer("services/MatchService")
	ctx, span := tr.Start(ctx, "Like",
		trace.WithAttributes(
			attribute.Int64("pet.liker_id", likerPetID),
			attribute.Int64("pet.target_id", targetPetID),
		),
	)
	defer span.End()

	if likerPetID == targetPetID {
		return nil, ErrSelfLike
	}

	liker, err := repo.GetPet(ctx, s.DB, likerPetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPetNotFound
		}
		return nil, err
	}
	if liker.OwnerID != callerID {
		return nil, ErrNotPetOwner
	}

	target, err := repo.GetPet(ctx, s.DB, targetPetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPetNotFound
		}
		return nil, err
	}
	if target.OwnerID == callerID {
		return nil, ErrOwnTarget
	}

	// Idempotent path: the directed edge already exists, so just re-report.
	if _, err := repo.GetLike(ctx, s.DB, likerPetID, targetPetID); err == nil {
		return s.currentState(ctx, likerPetID, targetPetID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := repo.CreateLike(ctx, s.DB, likerPetID, targetPetID); err != nil {
		// A concurrent identical like hit the unique index first; the edge
		// exists either way.
		if !errors.Is(err, repo.ErrDuplicate) {
			return nil, err
		}
	}

	// Reciprocal edge present? Then materialize (or find) the match.
	if _, err := repo.GetLike(ctx, s.DB, targetPetID, likerPetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &LikeResult{Matched: false}, nil
		}
		return nil, err
	}

	m, err := repo.EnsureMatch(ctx, s.DB, likerPetID, targetPetID)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int64("match.id", m.ID))
	return &LikeResult{Matched: true, MatchID: m.ID}, nil
}

// currentState answers the idempotent re-like: report matched if a match row
// already exists for the pair.
func (s *MatchService) currentState(ctx context.Context, a, b int64) (*LikeResult, error) {
	m, err := repo.GetMatchByPair(ctx, s.DB, a, b)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &LikeResult{Matched: false}, nil
		}
		return nil, err
	}
	return &LikeResult{Matched: true, MatchID: m.ID}, nil
}

// ListForOwner returns all matches involving any of the caller's pets, hydrated
// with both pet profiles and the latest message per match.
func (s *MatchService) ListForOwner(ctx context.Context, ownerID string) ([]MatchView, error) {
	tr := otel.Tracer("services/MatchService")
	ctx, span := tr.Start(ctx, "ListForOwner",
		trace.WithAttributes(attribute.String("user.id", ownerID)),
	)
	defer span.End()

	pets, err := repo.ListPets(ctx, s.DB, repo.PetFilters{OwnerID: ownerID})
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(pets))
	for _, p := range pets {
		ids = append(ids, p.ID)
	}

	matches, err := repo.ListMatchesForPets(ctx, s.DB, ids)
	if err != nil {
		return nil, err
	}

	views := make([]MatchView, 0, len(matches))
	for _, m := range matches {
		v, err := s.hydrate(ctx, m)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// One side was deleted since the match was created; skip it.
				continue
			}
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

// Get returns a single hydrated match, enforcing that the caller owns one of
// the two pets involved.
func (s *MatchService) Get(ctx context.Context, callerID string, matchID int64) (*MatchView, error) {
	tr := otel.Tracer("services/MatchService")
	ctx, span := tr.Start(ctx, "Get",
		trace.WithAttributes(attribute.Int64("match.id", matchID)),
	)
	defer span.End()

	m, err := repo.GetMatch(ctx, s.DB, matchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	v, err := s.hydrate(ctx, *m)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if v.PetLow.OwnerID != callerID && v.PetHigh.OwnerID != callerID {
		return nil, ErrMatchForbidden
	}
	return v, nil
}

// participant reports whether callerID owns either pet of the match.
func (s *MatchService) participant(ctx context.Context, callerID string, m *domain.Match) (bool, *domain.Pet, error) {
	low, err := repo.GetPet(ctx, s.DB, m.PetLowID)
	if err != nil {
		return false, nil, err
	}
	if low.OwnerID == callerID {
		return true, low, nil
	}
	high, err := repo.GetPet(ctx, s.DB, m.PetHighID)
	if err != nil {
		return false, nil, err
	}
	if high.OwnerID == callerID {
		return true, high, nil
	}
	return false, nil, nil
}

func (s *MatchService) hydrate(ctx context.Context, m domain.Match) (*MatchView, error) {
	low, err := repo.GetPet(ctx, s.DB, m.PetLowID)
	if err != nil {
		return nil, err
	}
	high, err := repo.GetPet(ctx, s.DB, m.PetHighID)
	if err != nil {
		return nil, err
	}
	last, err := repo.LastMessage(ctx, s.DB, m.ID)
	if err != nil {
		return nil, err
	}
	return &MatchView{Match: m, PetLow: *low, PetHigh: *high, LastMessage: last}, nil
}
