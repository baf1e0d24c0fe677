// Package services – PetService
//
// This file implements the PetService, which manages the lifecycle of pet
// profiles. It validates media requirements (photo count, video duration),
// runs the sales-content filter over free-text fields, enforces ownership on
// mutation, and owns active-pet selection: every owner has at most one pet
// driving the discovery feed, and switching is an atomic flag flip.
//
// Service-level errors (e.g. ErrPetNotFound, ErrNotPetOwner) are returned for
// predictable cases so handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/petcrushes/petcrushes-backend/internal/content"
	"github.com/petcrushes/petcrushes-backend/internal/domain"
	"github.com/petcrushes/petcrushes-backend/internal/repo"
)

// PetInput is the full payload for pet registration. All fields are required
// unless noted; media minimums are validated here, not at the transport layer.
type PetInput struct {
	DisplayName  string
	Species      string
	Breed        string
	Gender       string
	Size         string // optional depending on species
	Colors       []string
	AgeMonths    int
	Pedigree     bool
	Vaccinated   bool
	Neutered     bool
	HealthNotes  string
	Objective    string
	IsDonation   bool
	Region       string
	About        string
	Photos       []string
	VideoURL     string
	VideoSeconds int
}

// PetUpdate carries a partial pet edit. Nil pointers mean "leave unchanged";
// this keeps absent distinguishable from zero values.
type PetUpdate struct {
	DisplayName  *string
	Species      *string
	Breed        *string
	Gender       *string
	Size         *string
	Colors       *[]string
	AgeMonths    *int
	Pedigree     *bool
	Vaccinated   *bool
	Neutered     *bool
	HealthNotes  *string
	Objective    *string
	IsDonation   *bool
	Region       *string
	About        *string
	Photos       *[]string
	VideoURL     *string
	VideoSeconds *int
}

// PetService provides pet CRUD and active-pet selection.
type PetService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB

	// MinPhotos is the minimum photo count at registration.
	MinPhotos int
	// MinVideoSeconds is the minimum presentation-video duration.
	MinVideoSeconds int
}

// NewPetService constructs a PetService with the product's media minimums.
func NewPetService(db *gorm.DB) *PetService {
	return &PetService{DB: db, MinPhotos: 3, MinVideoSeconds: 5}
}

// Create validates and persists a new pet owned by ownerID. The owner's first
// pet becomes active automatically.
func (s *PetService) Create(ctx context.Context, ownerID string, in PetInput) (*domain.Pet, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	p := &domain.Pet{
		OwnerID:      ownerID,
		DisplayName:  strings.TrimSpace(in.DisplayName),
		Species:      in.Species,
		Breed:        in.Breed,
		Gender:       in.Gender,
		Size:         in.Size,
		Colors:       domain.StringList(in.Colors),
		AgeMonths:    in.AgeMonths,
		Pedigree:     in.Pedigree,
		Vaccinated:   in.Vaccinated,
		Neutered:     in.Neutered,
		HealthNotes:  in.HealthNotes,
		Objective:    in.Objective,
		IsDonation:   in.IsDonation,
		Region:       in.Region,
		About:        in.About,
		Photos:       domain.StringList(in.Photos),
		VideoURL:     in.VideoURL,
		VideoSeconds: in.VideoSeconds,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// First pet for this owner drives the feed by default.
		_, aerr := repo.GetActivePet(ctx, tx, ownerID)
		if errors.Is(aerr, gorm.ErrRecordNotFound) {
			p.IsActive = true
		} else if aerr != nil {
			return aerr
		}
		return repo.CreatePet(ctx, tx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns a pet by id together with its owner's public profile.
func (s *PetService) Get(ctx context.Context, id int64) (*domain.Pet, *domain.User, error) {
	p, err := repo.GetPet(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrPetNotFound
		}
		return nil, nil, err
	}
	owner, err := repo.GetUser(ctx, s.DB, p.OwnerID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}
	return p, owner, nil
}

// List returns pets matching the public browse filters, newest first.
func (s *PetService) List(ctx context.Context, f repo.PetFilters) ([]domain.Pet, error) {
	return repo.ListPets(ctx, s.DB, f)
}

// Mine returns every pet owned by ownerID, newest first.
func (s *PetService) Mine(ctx context.Context, ownerID string) ([]domain.Pet, error) {
	return repo.ListPets(ctx, s.DB, repo.PetFilters{OwnerID: ownerID})
}

// Update applies a partial edit to a pet, enforcing owner-only mutation and
// re-running the content filter over edited free text.
func (s *PetService) Update(ctx context.Context, callerID string, petID int64, upd PetUpdate) (*domain.Pet, error) {
	existing, err := repo.GetPet(ctx, s.DB, petID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPetNotFound
		}
		return nil, err
	}
	if existing.OwnerID != callerID {
		return nil, ErrNotPetOwner
	}

	updates := map[string]any{}
	if upd.DisplayName != nil {
		updates["display_name"] = strings.TrimSpace(*upd.DisplayName)
	}
	if upd.Species != nil {
		updates["species"] = *upd.Species
	}
	if upd.Breed != nil {
		updates["breed"] = *upd.Breed
	}
	if upd.Gender != nil {
		if !validGender(*upd.Gender) {
			return nil, &ValidationError{Field: "gender", Msg: "must be MALE or FEMALE"}
		}
		updates["gender"] = *upd.Gender
	}
	if upd.Size != nil {
		if *upd.Size != "" && !validSize(*upd.Size) {
			return nil, &ValidationError{Field: "size", Msg: "must be SMALL, MEDIUM or LARGE"}
		}
		updates["size"] = *upd.Size
	}
	if upd.Colors != nil {
		updates["colors"] = domain.StringList(*upd.Colors)
	}
	if upd.AgeMonths != nil {
		if *upd.AgeMonths < 0 {
			return nil, &ValidationError{Field: "ageMonths", Msg: "must be >= 0"}
		}
		updates["age_months"] = *upd.AgeMonths
	}
	if upd.Pedigree != nil {
		updates["pedigree"] = *upd.Pedigree
	}
	if upd.Vaccinated != nil {
		updates["vaccinated"] = *upd.Vaccinated
	}
	if upd.Neutered != nil {
		updates["neutered"] = *upd.Neutered
	}
	if upd.HealthNotes != nil {
		if tok, found := content.FindBlocked(*upd.HealthNotes); found {
			return nil, &BlockedContentError{Field: "healthNotes", Token: tok}
		}
		updates["health_notes"] = *upd.HealthNotes
	}
	if upd.Objective != nil {
		if !validObjective(*upd.Objective) {
			return nil, &ValidationError{Field: "objective", Msg: "must be BREEDING, COMPANIONSHIP or SOCIALIZATION"}
		}
		updates["objective"] = *upd.Objective
	}
	if upd.IsDonation != nil {
		updates["is_donation"] = *upd.IsDonation
	}
	if upd.Region != nil {
		updates["region"] = *upd.Region
	}
	if upd.About != nil {
		if tok, found := content.FindBlocked(*upd.About); found {
			return nil, &BlockedContentError{Field: "about", Token: tok}
		}
		updates["about"] = *upd.About
	}
	if upd.Photos != nil {
		if len(*upd.Photos) < s.MinPhotos {
			return nil, &ValidationError{Field: "photos", Msg: "at least 3 photos are required"}
		}
		updates["photos"] = domain.StringList(*upd.Photos)
	}
	if upd.VideoURL != nil {
		if strings.TrimSpace(*upd.VideoURL) == "" {
			return nil, &ValidationError{Field: "videoUrl", Msg: "a presentation video is required"}
		}
		updates["video_url"] = *upd.VideoURL
	}
	if upd.VideoSeconds != nil {
		if *upd.VideoSeconds < s.MinVideoSeconds {
			return nil, &ValidationError{Field: "videoSeconds", Msg: "video must be at least 5 seconds"}
		}
		updates["video_seconds"] = *upd.VideoSeconds
	}

	return repo.UpdatePet(ctx, s.DB, petID, updates)
}

// Delete removes a pet, enforcing owner-only mutation.
func (s *PetService) Delete(ctx context.Context, callerID string, petID int64) error {
	existing, err := repo.GetPet(ctx, s.DB, petID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPetNotFound
		}
		return err
	}
	if existing.OwnerID != callerID {
		return ErrNotPetOwner
	}
	return repo.DeletePet(ctx, s.DB, petID)
}

// ActivePet returns the owner's active pet. When no pet carries the flag yet
// (e.g. data predating the flag), the earliest-created pet is promoted and
// persisted as active. Returns (nil, nil) for owners with no pets.
func (s *PetService) ActivePet(ctx context.Context, ownerID string) (*domain.Pet, error) {
	p, err := repo.GetActivePet(ctx, s.DB, ownerID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	earliest, err := repo.GetEarliestPet(ctx, s.DB, ownerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return repo.SetActivePet(ctx, s.DB, ownerID, earliest.ID)
}

// SetActive switches the owner's active pet to petID. A pet that does not
// exist and a pet owned by someone else fail identically with ErrPetNotFound.
func (s *PetService) SetActive(ctx context.Context, ownerID string, petID int64) (*domain.Pet, error) {
	p, err := repo.SetActivePet(ctx, s.DB, ownerID, petID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPetNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PetService) validateInput(in PetInput) error {
	if strings.TrimSpace(in.DisplayName) == "" {
		return &ValidationError{Field: "displayName", Msg: "required"}
	}
	if strings.TrimSpace(in.Species) == "" {
		return &ValidationError{Field: "species", Msg: "required"}
	}
	if strings.TrimSpace(in.Breed) == "" {
		return &ValidationError{Field: "breed", Msg: "required"}
	}
	if !validGender(in.Gender) {
		return &ValidationError{Field: "gender", Msg: "must be MALE or FEMALE"}
	}
	if in.Size != "" && !validSize(in.Size) {
		return &ValidationError{Field: "size", Msg: "must be SMALL, MEDIUM or LARGE"}
	}
	if in.AgeMonths < 0 {
		return &ValidationError{Field: "ageMonths", Msg: "must be >= 0"}
	}
	if !validObjective(in.Objective) {
		return &ValidationError{Field: "objective", Msg: "must be BREEDING, COMPANIONSHIP or SOCIALIZATION"}
	}
	if strings.TrimSpace(in.Region) == "" {
		return &ValidationError{Field: "region", Msg: "required"}
	}
	if len(in.Photos) < s.MinPhotos {
		return &ValidationError{Field: "photos", Msg: "at least 3 photos are required"}
	}
	if strings.TrimSpace(in.VideoURL) == "" {
		return &ValidationError{Field: "videoUrl", Msg: "a presentation video is required"}
	}
	if in.VideoSeconds < s.MinVideoSeconds {
		return &ValidationError{Field: "videoSeconds", Msg: "video must be at least 5 seconds"}
	}
	if tok, found := content.FindBlocked(in.About); found {
		return &BlockedContentError{Field: "about", Token: tok}
	}
	if tok, found := content.FindBlocked(in.HealthNotes); found {
		return &BlockedContentError{Field: "healthNotes", Token: tok}
	}
	return nil
}

func validGender(g string) bool {
	return g == domain.GenderMale || g == domain.GenderFemale
}

func validSize(s string) bool {
	switch s {
	case domain.SizeSmall, domain.SizeMedium, domain.SizeLarge:
		return true
	}
	return false
}

func validObjective(o string) bool {
	switch o {
	case domain.ObjectiveBreeding, domain.ObjectiveCompanionship, domain.ObjectiveSocialization:
		return true
	}
	return false
}
