package repo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/petcrushes/petcrushes-backend/internal/domain"
)

func newPetRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("pet_repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func seedPetAt(t *testing.T, db *gorm.DB, ownerID, name string, createdAt time.Time) *domain.Pet {
	t.Helper()
	p := &domain.Pet{
		OwnerID:     ownerID,
		DisplayName: name,
		Species:     "Dog",
		Breed:       "Vira-lata",
		Gender:      domain.GenderFemale,
		Colors:      domain.StringList{"Black"},
		AgeMonths:   12,
		Objective:   domain.ObjectiveCompanionship,
		Region:      "Rio de Janeiro, RJ",
		About:       "Sweet and calm.",
		Photos:      domain.StringList{"1.jpg", "2.jpg", "3.jpg"},
		VideoURL:    "https://cdn/v.mp4",
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed %s: %v", name, err)
	}
	// Backdate explicitly; Create stamps the current time.
	if err := db.Model(p).UpdateColumn("created_at", createdAt).Error; err != nil {
		t.Fatalf("backdate %s: %v", name, err)
	}
	p.CreatedAt = createdAt
	return p
}

func TestListPets_FiltersAndOrder(t *testing.T) {
	db := newPetRepoDB(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	old := seedPetAt(t, db, "u1", "Old", base)
	newer := seedPetAt(t, db, "u1", "Newer", base.Add(time.Hour))
	seedPetAt(t, db, "u2", "Other", base.Add(2*time.Hour))

	got, err := ListPets(context.Background(), db, PetFilters{OwnerID: "u1"})
	if err != nil {
		t.Fatalf("ListPets: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("pets for u1 = %d, want 2", len(got))
	}
	if got[0].ID != newer.ID || got[1].ID != old.ID {
		t.Fatalf("order = [%d %d], want [%d %d]", got[0].ID, got[1].ID, newer.ID, old.ID)
	}

	got, err = ListPets(context.Background(), db, PetFilters{Species: "Cat"})
	if err != nil {
		t.Fatalf("ListPets species: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("cats = %d, want 0", len(got))
	}
}

func TestListFeedCandidates_ExcludesOwner(t *testing.T) {
	db := newPetRepoDB(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	seedPetAt(t, db, "caller", "Mine", base)
	other := seedPetAt(t, db, "u2", "Theirs", base.Add(time.Minute))

	got, err := ListFeedCandidates(context.Background(), db, PetFilters{}, "caller", 0, 10)
	if err != nil {
		t.Fatalf("ListFeedCandidates: %v", err)
	}
	if len(got) != 1 || got[0].ID != other.ID {
		t.Fatalf("candidates = %#v, want only pet %d", got, other.ID)
	}
}

func TestSetActivePet_AtomicExclusivity(t *testing.T) {
	db := newPetRepoDB(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	p1 := seedPetAt(t, db, "u1", "First", base)
	p2 := seedPetAt(t, db, "u1", "Second", base.Add(time.Hour))

	if _, err := SetActivePet(context.Background(), db, "u1", p1.ID); err != nil {
		t.Fatalf("activate p1: %v", err)
	}
	got, err := SetActivePet(context.Background(), db, "u1", p2.ID)
	if err != nil {
		t.Fatalf("activate p2: %v", err)
	}
	if !got.IsActive || got.ID != p2.ID {
		t.Fatalf("returned pet = %+v, want active p2", got)
	}

	var n int64
	if err := db.Model(&domain.Pet{}).Where("owner_id = ? AND is_active = ?", "u1", true).Count(&n).Error; err != nil {
		t.Fatalf("count active: %v", err)
	}
	if n != 1 {
		t.Fatalf("active pets = %d, want exactly 1", n)
	}
}

func TestSetActivePet_ForeignPetNotFound(t *testing.T) {
	db := newPetRepoDB(t)
	theirs := seedPetAt(t, db, "u2", "Theirs", time.Now().UTC())

	_, err := SetActivePet(context.Background(), db, "u1", theirs.ID)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err = %v, want record not found", err)
	}
}

func TestGetEarliestPet_Deterministic(t *testing.T) {
	db := newPetRepoDB(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	first := seedPetAt(t, db, "u1", "First", base)
	seedPetAt(t, db, "u1", "Second", base.Add(time.Hour))

	got, err := GetEarliestPet(context.Background(), db, "u1")
	if err != nil {
		t.Fatalf("GetEarliestPet: %v", err)
	}
	if got.ID != first.ID {
		t.Fatalf("earliest = %d, want %d", got.ID, first.ID)
	}

	if _, err := GetEarliestPet(context.Background(), db, "nobody"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err = %v, want record not found", err)
	}
}

func TestDeletePet(t *testing.T) {
	db := newPetRepoDB(t)
	p := seedPetAt(t, db, "u1", "Gone", time.Now().UTC())

	if err := DeletePet(context.Background(), db, p.ID); err != nil {
		t.Fatalf("DeletePet: %v", err)
	}
	if err := DeletePet(context.Background(), db, p.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("second delete err = %v, want record not found", err)
	}
}

func TestUpdatePet_ColorsRoundTrip(t *testing.T) {
	db := newPetRepoDB(t)
	p := seedPetAt(t, db, "u1", "Mia", time.Now().UTC())

	got, err := UpdatePet(context.Background(), db, p.ID, map[string]any{
		"colors": domain.StringList{"White", "Brown"},
	})
	if err != nil {
		t.Fatalf("UpdatePet: %v", err)
	}
	if len(got.Colors) != 2 || got.Colors[0] != "White" {
		t.Fatalf("colors = %#v", got.Colors)
	}
}
