// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Pet model,
// including the feed candidate query and atomic active-pet selection.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/petcrushes/petcrushes-backend/internal/domain"
)

// PetFilters are the optional exact-match feed/browse filters. Empty fields
// are skipped; provided fields are combined with AND semantics.
type PetFilters struct {
	Species    string
	Breed      string
	Gender     string
	Objective  string
	Region     string
	Size       string
	IsDonation *bool
	OwnerID    string // scope to a single owner ("my pets")
}

func applyPetFilters(q *gorm.DB, f PetFilters) *gorm.DB {
	if f.Species != "" {
		q = q.Where("species = ?", f.Species)
	}
	if f.Breed != "" {
		q = q.Where("breed = ?", f.Breed)
	}
	if f.Gender != "" {
		q = q.Where("gender = ?", f.Gender)
	}
	if f.Objective != "" {
		q = q.Where("objective = ?", f.Objective)
	}
	if f.Region != "" {
		q = q.Where("region = ?", f.Region)
	}
	if f.Size != "" {
		q = q.Where("size = ?", f.Size)
	}
	if f.IsDonation != nil {
		q = q.Where("is_donation = ?", *f.IsDonation)
	}
	if f.OwnerID != "" {
		q = q.Where("owner_id = ?", f.OwnerID)
	}
	return q
}

// CreatePet inserts a new Pet row.
func CreatePet(ctx context.Context, db *gorm.DB, p *domain.Pet) error {
	p.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Create(p).Error
}

// GetPet fetches a pet by id, or ErrNotFound.
func GetPet(ctx context.Context, db *gorm.DB, id int64) (*domain.Pet, error) {
	var p domain.Pet
	if err := db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPets returns pets matching the filters, newest first.
func ListPets(ctx context.Context, db *gorm.DB, f PetFilters) ([]domain.Pet, error) {
	var out []domain.Pet
	err := applyPetFilters(db.WithContext(ctx), f).
		Order("created_at desc, id desc").
		Find(&out).Error
	return out, err
}

// ListFeedCandidates returns a page of pets matching the filters, excluding
// every pet owned by excludeOwnerID, ordered newest first. The caller is
// responsible for mode-specific post-filtering and ranking, which is why the
// limit passed here is usually larger than the page actually served.
func ListFeedCandidates(ctx context.Context, db *gorm.DB, f PetFilters, excludeOwnerID string, offset, limit int) ([]domain.Pet, error) {
	var out []domain.Pet
	err := applyPetFilters(db.WithContext(ctx), f).
		Where("owner_id <> ?", excludeOwnerID).
		Order("created_at desc, id desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// UpdatePet applies column updates to a pet and returns the fresh row.
// Returns ErrNotFound when no row matched.
func UpdatePet(ctx context.Context, db *gorm.DB, id int64, updates map[string]any) (*domain.Pet, error) {
	if len(updates) > 0 {
		res := db.WithContext(ctx).Model(&domain.Pet{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return GetPet(ctx, db, id)
}

// DeletePet removes a pet row. Returns ErrNotFound when no row matched.
func DeletePet(ctx context.Context, db *gorm.DB, id int64) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Pet{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetActivePet returns the owner's pet flagged active, or ErrNotFound.
func GetActivePet(ctx context.Context, db *gorm.DB, ownerID string) (*domain.Pet, error) {
	var p domain.Pet
	err := db.WithContext(ctx).
		Where("owner_id = ? AND is_active = ?", ownerID, true).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetEarliestPet returns the owner's earliest-created pet, or ErrNotFound
// when the owner has none. Ties break on id so promotion is deterministic.
func GetEarliestPet(ctx context.Context, db *gorm.DB, ownerID string) (*domain.Pet, error) {
	var p domain.Pet
	err := db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC, id ASC").
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SetActivePet atomically clears the active flag on all of the owner's pets
// and sets it on petID. The pet must belong to the owner, otherwise
// ErrNotFound is returned (ownership and existence are deliberately not
// distinguished). A concurrent reader never observes zero or two active pets.
func SetActivePet(ctx context.Context, db *gorm.DB, ownerID string, petID int64) (*domain.Pet, error) {
	var out *domain.Pet
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p domain.Pet
		if err := tx.Where("id = ? AND owner_id = ?", petID, ownerID).First(&p).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Pet{}).
			Where("owner_id = ? AND is_active = ?", ownerID, true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Pet{}).
			Where("id = ?", petID).
			Update("is_active", true).Error; err != nil {
			return err
		}
		p.IsActive = true
		out = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PetsStats returns aggregate metadata for an owner's pets: the total number
// of rows and the maximum UpdatedAt among them. Used for weak ETags on the
// "my pets" listing. When the owner has no pets, count is 0 and maxUpdatedAt
// is nil.
func PetsStats(ctx context.Context, db *gorm.DB, ownerID string) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Pet{}).Where("owner_id = ?", ownerID)

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}
