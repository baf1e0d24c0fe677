// Package services – AdoptionService
//
// Adoption listings are independent of the matching graph: a simple
// create/list/update lifecycle with a DISPONIVEL → ADOTADO status flip.
// Descriptions pass the sales-content filter; adoption is free by definition.
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

// AdoptionInput is the payload for creating an adoption listing.
type AdoptionInput struct {
	Title       string
	Species     string
	Description string
	Region      string
	Photos      []string
}

// AdoptionUpdate carries a partial listing edit. Nil pointers mean unchanged.
type AdoptionUpdate struct {
	Title       *string
	Species     *string
	Description *string
	Region      *string
	Photos      *[]string
	Status      *string
}

// AdoptionPage is one page of listings.
type AdoptionPage struct {
	Items   []domain.AdoptionPost
	Page    int
	Limit   int
	HasMore bool
}

// AdoptionService manages adoption listings.
type AdoptionService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB

	// DefaultLimit applies when the request carries no page size.
	DefaultLimit int
	// MaxLimit caps the requested page size.
	MaxLimit int
}

// NewAdoptionService constructs an AdoptionService with the product's paging
// defaults.
func NewAdoptionService(db *gorm.DB) *AdoptionService {
	return &AdoptionService{DB: db, DefaultLimit: 10, MaxLimit: 50}
}

// Create validates and persists a new listing owned by ownerID.
func (s *AdoptionService) Create(ctx context.Context, ownerID string, in AdoptionInput) (*domain.AdoptionPost, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, &ValidationError{Field: "title", Msg: "required"}
	}
	if strings.TrimSpace(in.Species) == "" {
		return nil, &ValidationError{Field: "species", Msg: "required"}
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, &ValidationError{Field: "description", Msg: "required"}
	}
	if strings.TrimSpace(in.Region) == "" {
		return nil, &ValidationError{Field: "region", Msg: "required"}
	}
	if tok, found := content.FindBlocked(in.Description); found {
		return nil, &BlockedContentError{Field: "description", Token: tok}
	}

	p := &domain.AdoptionPost{
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(in.Title),
		Species:     in.Species,
		Description: in.Description,
		Region:      in.Region,
		Photos:      domain.StringList(in.Photos),
		Status:      domain.AdoptionAvailable,
	}
	if err := repo.CreateAdoptionPost(ctx, s.DB, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns a single listing.
func (s *AdoptionService) Get(ctx context.Context, id int64) (*domain.AdoptionPost, error) {
	p, err := repo.GetAdoptionPost(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdoptionNotFound
		}
		return nil, err
	}
	return p, nil
}

// List returns one page of listings, newest first. HasMore uses the same
// full-page heuristic as the feed.
func (s *AdoptionService) List(ctx context.Context, page, limit int) (*AdoptionPage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = s.DefaultLimit
	}
	if limit > s.MaxLimit {
		limit = s.MaxLimit
	}

	items, err := repo.ListAdoptionPosts(ctx, s.DB, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	return &AdoptionPage{
		Items:   items,
		Page:    page,
		Limit:   limit,
		HasMore: len(items) == limit,
	}, nil
}

// Update applies a partial edit, owner-only. A listing that does not exist and
// one owned by someone else fail identically with ErrAdoptionNotFound.
func (s *AdoptionService) Update(ctx context.Context, callerID string, id int64, upd AdoptionUpdate) (*domain.AdoptionPost, error) {
	updates := map[string]any{}
	if upd.Title != nil {
		if strings.TrimSpace(*upd.Title) == "" {
			return nil, &ValidationError{Field: "title", Msg: "required"}
		}
		updates["title"] = strings.TrimSpace(*upd.Title)
	}
	if upd.Species != nil {
		updates["species"] = *upd.Species
	}
	if upd.Description != nil {
		if tok, found := content.FindBlocked(*upd.Description); found {
			return nil, &BlockedContentError{Field: "description", Token: tok}
		}
		updates["description"] = *upd.Description
	}
	if upd.Region != nil {
		updates["region"] = *upd.Region
	}
	if upd.Photos != nil {
		updates["photos"] = domain.StringList(*upd.Photos)
	}
	if upd.Status != nil {
		if *upd.Status != domain.AdoptionAvailable && *upd.Status != domain.AdoptionAdopted {
			return nil, ErrInvalidAdoptionStatus
		}
		updates["status"] = *upd.Status
	}

	p, err := repo.UpdateAdoptionPost(ctx, s.DB, id, callerID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdoptionNotFound
		}
		return nil, err
	}
	return p, nil
}
