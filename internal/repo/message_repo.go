// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Message
// and Report models.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/petcrushes/petcrushes-backend/internal/domain"
)

// CreateMessage inserts a new message row in a match.
func CreateMessage(ctx context.Context, db *gorm.DB, matchID int64, senderID, content string) (*domain.Message, error) {
	m := &domain.Message{
		MatchID:   matchID,
		SenderID:  senderID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// ListMessages returns a match's messages ordered deterministically
// (CreatedAt ASC, ID ASC). A limit <= 0 returns all of them.
func ListMessages(ctx context.Context, db *gorm.DB, matchID int64, limit int) ([]domain.Message, error) {
	var out []domain.Message
	q := db.WithContext(ctx).
		Where("match_id = ?", matchID).
		Order("created_at ASC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}

// LastMessage returns the most recent message in a match, or nil when the
// match has no messages yet.
func LastMessage(ctx context.Context, db *gorm.DB, matchID int64) (*domain.Message, error) {
	var out []domain.Message
	err := db.WithContext(ctx).
		Where("match_id = ?", matchID).
		Order("created_at DESC, id DESC").
		Limit(1).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

// CreateReport inserts a complaint against a pet with PENDING status.
func CreateReport(ctx context.Context, db *gorm.DB, reporterID string, targetPetID int64, reason string) (*domain.Report, error) {
	r := &domain.Report{
		ReporterID:  reporterID,
		TargetPetID: targetPetID,
		Reason:      reason,
		Status:      domain.ReportPending,
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}
