// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Like and
// Match models, including the race-safe canonical-pair match upsert.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/petcrushes/petcrushes-backend/internal/domain"
)

// ErrDuplicate indicates that a row already exists for a unique key
// (directed like pair or canonical match pair).
var ErrDuplicate = errors.New("duplicate")

// isUniqueViolation detects unique-constraint violations across drivers that
// may not map to gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// SQLite typically: "UNIQUE constraint failed"
	// Postgres typically: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}

// GetLike fetches the directed like (liker -> target), or ErrNotFound.
func GetLike(ctx context.Context, db *gorm.DB, likerPetID, targetPetID int64) (*domain.Like, error) {
	var l domain.Like
	err := db.WithContext(ctx).
		Where("liker_pet_id = ? AND target_pet_id = ?", likerPetID, targetPetID).
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// CreateLike inserts the directed like (liker -> target). A second insert of
// the same ordered pair returns ErrDuplicate instead of a second row.
func CreateLike(ctx context.Context, db *gorm.DB, likerPetID, targetPetID int64) (*domain.Like, error) {
	l := &domain.Like{
		LikerPetID:  likerPetID,
		TargetPetID: targetPetID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(l).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return l, nil
}

// GetMatchByPair fetches the match for an unordered pet pair, normalizing the
// order before the lookup. Returns ErrNotFound when no match exists.
func GetMatchByPair(ctx context.Context, db *gorm.DB, petA, petB int64) (*domain.Match, error) {
	low, high := domain.CanonicalPair(petA, petB)
	var m domain.Match
	err := db.WithContext(ctx).
		Where("pet_low_id = ? AND pet_high_id = ?", low, high).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// EnsureMatch creates the match row for an unordered pet pair with
// insert-or-fetch semantics. Concurrent reciprocal likes racing to create the
// same match collide on the canonical-pair unique index; the loser re-reads
// the winner's row, so exactly one match ever exists per pair.
func EnsureMatch(ctx context.Context, db *gorm.DB, petA, petB int64) (*domain.Match, error) {
	low, high := domain.CanonicalPair(petA, petB)
	m := &domain.Match{
		PetLowID:  low,
		PetHighID: high,
		CreatedAt: time.Now().UTC(),
	}
	err := db.WithContext(ctx).Create(m).Error
	if err == nil {
		return m, nil
	}
	if !isUniqueViolation(err) {
		return nil, err
	}
	// Lost the race (or the match pre-existed): fetch the canonical row.
	return GetMatchByPair(ctx, db, low, high)
}

// GetMatch fetches a match by id, or ErrNotFound.
func GetMatch(ctx context.Context, db *gorm.DB, id int64) (*domain.Match, error) {
	var m domain.Match
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMatchesForPets returns every match involving any of the given pet ids,
// newest first. An empty id list yields an empty slice without touching the DB.
func ListMatchesForPets(ctx context.Context, db *gorm.DB, petIDs []int64) ([]domain.Match, error) {
	if len(petIDs) == 0 {
		return []domain.Match{}, nil
	}
	var out []domain.Match
	err := db.WithContext(ctx).
		Where("pet_low_id IN ? OR pet_high_id IN ?", petIDs, petIDs).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// MatchesStats returns aggregate metadata for matches involving the given
// pets: the row count and the greatest CreatedAt. Used for weak ETags on the
// match listing.
func MatchesStats(ctx context.Context, db *gorm.DB, petIDs []int64) (count int64, maxCreatedAt *time.Time, err error) {
	if len(petIDs) == 0 {
		return 0, nil, nil
	}
	q := db.WithContext(ctx).Model(&domain.Match{}).
		Where("pet_low_id IN ? OR pet_high_id IN ?", petIDs, petIDs)

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest created_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		CreatedAt time.Time
	}
	if err = q.Select("created_at").Order("created_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.CreatedAt, nil
}
