package services

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/petcrushes/petcrushes-backend/internal/domain"
	"github.com/petcrushes/petcrushes-backend/internal/repo"
)

// newServiceDB opens a throwaway SQLite database with the full schema.
func newServiceDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("service_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "open sqlite")

	// Ensure the file handle is released before TempDir cleanup (Windows needs this).
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	require.NoError(t, repo.AutoMigrate(db), "automigrate")
	return db
}

// seedUser creates a user for tests and returns its id.
func seedUser(t *testing.T, db *gorm.DB, email string) string {
	t.Helper()
	u, err := repo.CreateUser(context.Background(), db, email, "")
	require.NoError(t, err)
	return u.ID
}

// validPetInput returns an input that passes all media and content checks.
func validPetInput(name string) PetInput {
	return PetInput{
		DisplayName:  name,
		Species:      "dog",
		Breed:        "vira-lata",
		Gender:       domain.GenderFemale,
		Size:         domain.SizeMedium,
		Colors:       []string{"caramelo"},
		AgeMonths:    24,
		Vaccinated:   true,
		Objective:    domain.ObjectiveBreeding,
		Region:       "São Paulo - SP",
		About:        "Adora passear no parque.",
		Photos:       []string{"p1.jpg", "p2.jpg", "p3.jpg"},
		VideoURL:     "v.mp4",
		VideoSeconds: 12,
	}
}

// seedServicePet creates a pet through the service so defaults apply.
func seedServicePet(t *testing.T, svc *PetService, ownerID, name string) *domain.Pet {
	t.Helper()
	p, err := svc.Create(context.Background(), ownerID, validPetInput(name))
	require.NoError(t, err)
	return p
}
