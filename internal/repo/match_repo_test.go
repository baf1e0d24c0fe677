package repo

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/petcrushes/petcrushes-backend/internal/domain"
)

func newMatchRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("match_repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Ensure the file handle is released before TempDir cleanup (Windows needs this).
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

func seedPet(t *testing.T, db *gorm.DB, ownerID, name string) *domain.Pet {
	t.Helper()
	p := &domain.Pet{
		OwnerID:     ownerID,
		DisplayName: name,
		Species:     "Dog",
		Breed:       "Golden Retriever",
		Gender:      domain.GenderMale,
		Colors:      domain.StringList{"Gold"},
		AgeMonths:   24,
		Objective:   domain.ObjectiveBreeding,
		Region:      "São Paulo, SP",
		About:       "Friendly and energetic.",
		Photos:      domain.StringList{"a.jpg", "b.jpg", "c.jpg"},
		VideoURL:    "https://cdn/video.mp4",
	}
	if err := CreatePet(context.Background(), db, p); err != nil {
		t.Fatalf("seed pet %s: %v", name, err)
	}
	return p
}

func TestCreateLike_DuplicateOrderedPair(t *testing.T) {
	db := newMatchRepoDB(t)
	a := seedPet(t, db, "u1", "Thor")
	b := seedPet(t, db, "u2", "Luna")

	if _, err := CreateLike(context.Background(), db, a.ID, b.ID); err != nil {
		t.Fatalf("first like: %v", err)
	}
	if _, err := CreateLike(context.Background(), db, a.ID, b.ID); err != ErrDuplicate {
		t.Fatalf("second like err = %v, want ErrDuplicate", err)
	}

	var n int64
	if err := db.Model(&domain.Like{}).Count(&n).Error; err != nil {
		t.Fatalf("count likes: %v", err)
	}
	if n != 1 {
		t.Fatalf("like rows = %d, want 1", n)
	}
}

func TestCreateLike_OppositeDirectionAllowed(t *testing.T) {
	db := newMatchRepoDB(t)
	a := seedPet(t, db, "u1", "Thor")
	b := seedPet(t, db, "u2", "Luna")

	if _, err := CreateLike(context.Background(), db, a.ID, b.ID); err != nil {
		t.Fatalf("a->b: %v", err)
	}
	if _, err := CreateLike(context.Background(), db, b.ID, a.ID); err != nil {
		t.Fatalf("b->a: %v", err)
	}
}

func TestEnsureMatch_CanonicalOrderAndIdempotence(t *testing.T) {
	db := newMatchRepoDB(t)
	a := seedPet(t, db, "u1", "Thor")
	b := seedPet(t, db, "u2", "Luna")

	// Insert with ids in "wrong" order: stored row must still be canonical.
	m1, err := EnsureMatch(context.Background(), db, b.ID, a.ID)
	if err != nil {
		t.Fatalf("EnsureMatch: %v", err)
	}
	low, high := domain.CanonicalPair(a.ID, b.ID)
	if m1.PetLowID != low || m1.PetHighID != high {
		t.Fatalf("match pair = (%d,%d), want (%d,%d)", m1.PetLowID, m1.PetHighID, low, high)
	}

	// Second ensure in either order returns the same row, not a new one.
	m2, err := EnsureMatch(context.Background(), db, a.ID, b.ID)
	if err != nil {
		t.Fatalf("EnsureMatch again: %v", err)
	}
	if m2.ID != m1.ID {
		t.Fatalf("second match id = %d, want %d", m2.ID, m1.ID)
	}

	var n int64
	if err := db.Model(&domain.Match{}).Count(&n).Error; err != nil {
		t.Fatalf("count matches: %v", err)
	}
	if n != 1 {
		t.Fatalf("match rows = %d, want 1", n)
	}
}

func TestGetMatchByPair_NormalizesOrder(t *testing.T) {
	db := newMatchRepoDB(t)
	a := seedPet(t, db, "u1", "Thor")
	b := seedPet(t, db, "u2", "Luna")

	created, err := EnsureMatch(context.Background(), db, a.ID, b.ID)
	if err != nil {
		t.Fatalf("EnsureMatch: %v", err)
	}

	got, err := GetMatchByPair(context.Background(), db, b.ID, a.ID)
	if err != nil {
		t.Fatalf("GetMatchByPair reversed: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("lookup id = %d, want %d", got.ID, created.ID)
	}
}

func TestListMatchesForPets(t *testing.T) {
	db := newMatchRepoDB(t)
	a := seedPet(t, db, "u1", "Thor")
	b := seedPet(t, db, "u2", "Luna")
	c := seedPet(t, db, "u3", "Rex")

	if _, err := EnsureMatch(context.Background(), db, a.ID, b.ID); err != nil {
		t.Fatalf("match ab: %v", err)
	}
	if _, err := EnsureMatch(context.Background(), db, b.ID, c.ID); err != nil {
		t.Fatalf("match bc: %v", err)
	}

	got, err := ListMatchesForPets(context.Background(), db, []int64{a.ID})
	if err != nil {
		t.Fatalf("ListMatchesForPets: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("matches for a = %d, want 1", len(got))
	}

	got, err = ListMatchesForPets(context.Background(), db, []int64{b.ID})
	if err != nil {
		t.Fatalf("ListMatchesForPets b: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("matches for b = %d, want 2", len(got))
	}

	got, err = ListMatchesForPets(context.Background(), db, nil)
	if err != nil {
		t.Fatalf("ListMatchesForPets empty: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("matches for no pets = %d, want 0", len(got))
	}
}

func TestMatchesStats(t *testing.T) {
	db := newMatchRepoDB(t)
	a := seedPet(t, db, "u1", "Thor")
	b := seedPet(t, db, "u2", "Luna")

	count, maxTS, err := MatchesStats(context.Background(), db, []int64{a.ID})
	if err != nil || count != 0 || maxTS != nil {
		t.Fatalf("empty stats = (%d,%v,%v)", count, maxTS, err)
	}

	if _, err := EnsureMatch(context.Background(), db, a.ID, b.ID); err != nil {
		t.Fatalf("EnsureMatch: %v", err)
	}
	count, maxTS, err = MatchesStats(context.Background(), db, []int64{a.ID, b.ID})
	if err != nil {
		t.Fatalf("MatchesStats: %v", err)
	}
	if count != 1 || maxTS == nil {
		t.Fatalf("stats = (%d,%v), want (1, non-nil)", count, maxTS)
	}
}
