package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/petcrushes/petcrushes-backend/internal/domain"
	"github.com/petcrushes/petcrushes-backend/internal/repo"
)

// ReportService records complaints against pet profiles. Reports land in
// PENDING status for out-of-band moderation; there is no in-app resolution
// flow yet.
type ReportService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewReportService constructs a ReportService.
func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

// File creates a report from reporterID against targetPetID.
func (s *ReportService) File(ctx context.Context, reporterID string, targetPetID int64, reason string) (*domain.Report, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, &ValidationError{Field: "reason", Msg: "required"}
	}

	if _, err := repo.GetPet(ctx, s.DB, targetPetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPetNotFound
		}
		return nil, err
	}

	return repo.CreateReport(ctx, s.DB, reporterID, targetPetID, reason)
}
