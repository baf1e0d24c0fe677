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
)

func newOtpRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("otp_repo_test_%d.db", time.Now().UnixNano()))
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

func TestCreateOtpCode_SupersedesPending(t *testing.T) {
	db := newOtpRepoDB(t)
	ctx := context.Background()

	first, err := CreateOtpCode(ctx, db, "ana@example.com", "hash1", 10*time.Minute)
	if err != nil {
		t.Fatalf("first code: %v", err)
	}
	second, err := CreateOtpCode(ctx, db, "ana@example.com", "hash2", 10*time.Minute)
	if err != nil {
		t.Fatalf("second code: %v", err)
	}

	got, err := GetPendingOtpCode(ctx, db, "ana@example.com", time.Now().UTC())
	if err != nil {
		t.Fatalf("GetPendingOtpCode: %v", err)
	}
	if got.ID != second.ID {
		t.Fatalf("pending id = %d, want %d (first %d must be superseded)", got.ID, second.ID, first.ID)
	}
}

func TestGetPendingOtpCode_ExpiredOrUsed(t *testing.T) {
	db := newOtpRepoDB(t)
	ctx := context.Background()

	rec, err := CreateOtpCode(ctx, db, "ana@example.com", "hash", time.Minute)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// After expiry the code is invisible.
	if _, err := GetPendingOtpCode(ctx, db, "ana@example.com", time.Now().UTC().Add(2*time.Minute)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired lookup err = %v, want ErrNotFound", err)
	}

	// After consumption it is too.
	if err := MarkOtpUsed(ctx, db, rec.ID); err != nil {
		t.Fatalf("MarkOtpUsed: %v", err)
	}
	if _, err := GetPendingOtpCode(ctx, db, "ana@example.com", time.Now().UTC()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("used lookup err = %v, want ErrNotFound", err)
	}
}

func TestBumpOtpAttempts(t *testing.T) {
	db := newOtpRepoDB(t)
	ctx := context.Background()

	rec, err := CreateOtpCode(ctx, db, "ana@example.com", "hash", time.Minute)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	for want := 1; want <= 3; want++ {
		got, err := BumpOtpAttempts(ctx, db, rec.ID)
		if err != nil {
			t.Fatalf("bump %d: %v", want, err)
		}
		if got != want {
			t.Fatalf("attempts = %d, want %d", got, want)
		}
	}
}
