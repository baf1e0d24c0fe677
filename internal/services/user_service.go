package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/petcrushes/petcrushes-backend/internal/domain"
	"github.com/petcrushes/petcrushes-backend/internal/repo"
)

// ProfileUpdate carries a partial profile edit. Nil pointers mean unchanged.
type ProfileUpdate struct {
	DisplayName         *string
	FirstName           *string
	LastName            *string
	Whatsapp            *string
	Region              *string
	ProfileImageURL     *string
	OnboardingCompleted *bool
}

// UserService exposes the authenticated user's own profile.
type UserService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewUserService constructs a UserService.
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// Get returns the user's profile.
func (s *UserService) Get(ctx context.Context, userID string) (*domain.User, error) {
	u, err := repo.GetUser(ctx, s.DB, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// Update applies a partial profile edit and returns the fresh row.
func (s *UserService) Update(ctx context.Context, userID string, upd ProfileUpdate) (*domain.User, error) {
	updates := map[string]any{}
	if upd.DisplayName != nil {
		name := strings.TrimSpace(*upd.DisplayName)
		if name == "" {
			return nil, &ValidationError{Field: "displayName", Msg: "must not be empty"}
		}
		updates["display_name"] = name
	}
	if upd.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*upd.FirstName)
	}
	if upd.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*upd.LastName)
	}
	if upd.Whatsapp != nil {
		updates["whatsapp"] = strings.TrimSpace(*upd.Whatsapp)
	}
	if upd.Region != nil {
		updates["region"] = strings.TrimSpace(*upd.Region)
	}
	if upd.ProfileImageURL != nil {
		updates["profile_image_url"] = *upd.ProfileImageURL
	}
	if upd.OnboardingCompleted != nil {
		updates["onboarding_completed"] = *upd.OnboardingCompleted
	}
	if len(updates) == 0 {
		return s.Get(ctx, userID)
	}

	u, err := repo.UpdateUser(ctx, s.DB, userID, updates)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}
