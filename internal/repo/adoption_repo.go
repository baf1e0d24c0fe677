// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// AdoptionPost model.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/petcrushes/petcrushes-backend/internal/domain"
)

// CreateAdoptionPost inserts a new adoption listing owned by ownerID.
func CreateAdoptionPost(ctx context.Context, db *gorm.DB, p *domain.AdoptionPost) error {
	p.CreatedAt = time.Now().UTC()
	if p.Status == "" {
		p.Status = domain.AdoptionAvailable
	}
	return db.WithContext(ctx).Create(p).Error
}

// GetAdoptionPost fetches a listing by id, or ErrNotFound.
func GetAdoptionPost(ctx context.Context, db *gorm.DB, id int64) (*domain.AdoptionPost, error) {
	var p domain.AdoptionPost
	if err := db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListAdoptionPosts returns a page of listings, newest first.
func ListAdoptionPosts(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.AdoptionPost, error) {
	var out []domain.AdoptionPost
	err := db.WithContext(ctx).
		Order("created_at desc, id desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// UpdateAdoptionPost applies column updates to a listing owned by ownerID and
// returns the fresh row. Ownership is enforced in the WHERE clause, so a
// foreign or missing listing both yield ErrNotFound.
func UpdateAdoptionPost(ctx context.Context, db *gorm.DB, id int64, ownerID string, updates map[string]any) (*domain.AdoptionPost, error) {
	if len(updates) > 0 {
		res := db.WithContext(ctx).
			Model(&domain.AdoptionPost{}).
			Where("id = ? AND owner_id = ?", id, ownerID).
			Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	} else if _, err := ownedAdoptionPost(ctx, db, id, ownerID); err != nil {
		return nil, err
	}
	return GetAdoptionPost(ctx, db, id)
}

func ownedAdoptionPost(ctx context.Context, db *gorm.DB, id int64, ownerID string) (*domain.AdoptionPost, error) {
	var p domain.AdoptionPost
	if err := db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
