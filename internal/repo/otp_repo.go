// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository helpers for the OtpCode
// model used by the email login flow.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/petcrushes/petcrushes-backend/internal/domain"
)

// CreateOtpCode stores a freshly issued code hash for email with the given
// TTL, invalidating any previously pending codes for the same address so at
// most one code is live per email.
func CreateOtpCode(ctx context.Context, db *gorm.DB, email, codeHash string, ttl time.Duration) (*domain.OtpCode, error) {
	now := time.Now().UTC()
	rec := &domain.OtpCode{
		Email:     email,
		CodeHash:  codeHash,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.OtpCode{}).
			Where("email = ? AND used_at IS NULL", email).
			Update("used_at", now).Error; err != nil {
			return err
		}
		return tx.Create(rec).Error
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// GetPendingOtpCode returns the live (unused, unexpired) code for email, or
// ErrNotFound.
func GetPendingOtpCode(ctx context.Context, db *gorm.DB, email string, now time.Time) (*domain.OtpCode, error) {
	var rec domain.OtpCode
	err := db.WithContext(ctx).
		Where("email = ? AND used_at IS NULL AND expires_at > ?", email, now).
		Order("created_at DESC").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// BumpOtpAttempts increments the failed-verification counter and returns the
// new count.
func BumpOtpAttempts(ctx context.Context, db *gorm.DB, id int64) (int, error) {
	err := db.WithContext(ctx).Model(&domain.OtpCode{}).
		Where("id = ?", id).
		Update("attempts", gorm.Expr("attempts + 1")).Error
	if err != nil {
		return 0, err
	}
	var rec domain.OtpCode
	if err := db.WithContext(ctx).Select("attempts").Where("id = ?", id).First(&rec).Error; err != nil {
		return 0, err
	}
	return rec.Attempts, nil
}

// MarkOtpUsed stamps used_at so the code cannot be replayed.
func MarkOtpUsed(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Model(&domain.OtpCode{}).
		Where("id = ?", id).
		Update("used_at", time.Now().UTC()).Error
}
