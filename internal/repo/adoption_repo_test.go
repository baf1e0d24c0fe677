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

func newAdoptionRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("adoption_repo_test_%d.db", time.Now().UnixNano()))
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

func seedAdoptionAt(t *testing.T, db *gorm.DB, ownerID, title string, createdAt time.Time) *domain.AdoptionPost {
	t.Helper()
	p := &domain.AdoptionPost{
		OwnerID:     ownerID,
		Title:       title,
		Species:     "dog",
		Description: "Procurando um lar.",
		Region:      "São Paulo - SP",
		Status:      domain.AdoptionAvailable,
	}
	if err := CreateAdoptionPost(context.Background(), db, p); err != nil {
		t.Fatalf("seed %s: %v", title, err)
	}
	if err := db.Model(p).UpdateColumn("created_at", createdAt).Error; err != nil {
		t.Fatalf("backdate %s: %v", title, err)
	}
	return p
}

func TestCreateAndGetAdoptionPost(t *testing.T) {
	db := newAdoptionRepoDB(t)
	ctx := context.Background()

	p := seedAdoptionAt(t, db, "u1", "Filhotes", time.Now())
	if p.ID == 0 {
		t.Fatalf("expected assigned id")
	}

	got, err := GetAdoptionPost(ctx, db, p.ID)
	if err != nil || got.Title != "Filhotes" {
		t.Fatalf("GetAdoptionPost: %+v, %v", got, err)
	}

	if _, err := GetAdoptionPost(ctx, db, 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListAdoptionPosts_NewestFirstWithPaging(t *testing.T) {
	db := newAdoptionRepoDB(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	for i := 0; i < 5; i++ {
		seedAdoptionAt(t, db, "u1", fmt.Sprintf("post-%d", i), base.Add(time.Duration(i)*time.Minute))
	}

	first, err := ListAdoptionPosts(ctx, db, 0, 2)
	if err != nil {
		t.Fatalf("ListAdoptionPosts: %v", err)
	}
	if len(first) != 2 || first[0].Title != "post-4" || first[1].Title != "post-3" {
		t.Fatalf("wrong first page: %+v", first)
	}

	second, err := ListAdoptionPosts(ctx, db, 2, 2)
	if err != nil {
		t.Fatalf("ListAdoptionPosts offset: %v", err)
	}
	if len(second) != 2 || second[0].Title != "post-2" {
		t.Fatalf("wrong second page: %+v", second)
	}
}

func TestUpdateAdoptionPost_OwnershipInWhere(t *testing.T) {
	db := newAdoptionRepoDB(t)
	ctx := context.Background()

	p := seedAdoptionAt(t, db, "u1", "Filhotes", time.Now())

	got, err := UpdateAdoptionPost(ctx, db, p.ID, "u1", map[string]any{"status": domain.AdoptionAdopted})
	if err != nil {
		t.Fatalf("UpdateAdoptionPost: %v", err)
	}
	if got.Status != domain.AdoptionAdopted {
		t.Fatalf("status not applied: %+v", got)
	}

	// Someone else's id → indistinguishable from missing
	if _, err := UpdateAdoptionPost(ctx, db, p.ID, "intruder", map[string]any{"title": "hack"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign owner, got %v", err)
	}
	if _, err := UpdateAdoptionPost(ctx, db, 9999, "u1", map[string]any{"title": "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing id, got %v", err)
	}

	// Empty update set still enforces ownership and returns the fresh row
	same, err := UpdateAdoptionPost(ctx, db, p.ID, "u1", map[string]any{})
	if err != nil || same.Title != "Filhotes" {
		t.Fatalf("no-op update: %+v, %v", same, err)
	}
}
