// Package services – FeedService
//
// This file implements discovery-feed browsing. Candidates are read from the
// database with exact-match filters and the caller's own pets excluded, then
// shaped per mode in memory: "crushes" drops neutered pets, "friends" ranks
// pets that are neutered or looking for socialization first. The page is
// over-fetched so mode filtering rarely starves it, then truncated.
package services

import (
	"context"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/petcrushes/petcrushes-backend/internal/domain"
	"github.com/petcrushes/petcrushes-backend/internal/repo"
)

// Feed modes.
const (
	FeedModeCrushes = "crushes"
	FeedModeFriends = "friends"
)

// FeedFilters narrows the feed. Zero-valued fields are ignored; all present
// filters are combined with AND and exact matching.
type FeedFilters struct {
	Species   string
	Gender    string
	Objective string
	Region    string
	Size      string
	Mode      string // crushes (default) or friends
	Page      int    // 1-based
	Limit     int
}

// FeedPage is one page of discoverable pets.
type FeedPage struct {
	Items   []domain.Pet
	Page    int
	Limit   int
	HasMore bool
}

// FeedService assembles the discovery feed.
type FeedService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB

	// DefaultLimit applies when the request carries no page size.
	DefaultLimit int
	// MaxLimit caps the requested page size.
	MaxLimit int
}

// NewFeedService constructs a FeedService with the product's paging defaults.
func NewFeedService(db *gorm.DB) *FeedService {
	return &FeedService{DB: db, DefaultLimit: 10, MaxLimit: 50}
}

// Browse returns one feed page for the caller. The caller's own pets never
// appear. HasMore is a heuristic: true exactly when the page came back full,
// so the last full page may report one spurious extra page.
func (s *FeedService) Browse(ctx context.Context, callerID string, f FeedFilters) (*FeedPage, error) {
	tr := otel.Tracer("services/FeedService")
	ctx, span := tr.Start(ctx, "Browse",
		trace.WithAttributes(
			attribute.String("feed.mode", f.Mode),
			attribute.Int("page", f.Page),
		),
	)
	defer span.End()

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit <= 0 {
		limit = s.DefaultLimit
	}
	if limit > s.MaxLimit {
		limit = s.MaxLimit
	}
	mode := f.Mode
	if mode == "" {
		mode = FeedModeCrushes
	}
	if mode != FeedModeCrushes && mode != FeedModeFriends {
		return nil, &ValidationError{Field: "mode", Msg: "must be crushes or friends"}
	}

	// Over-fetch so in-memory mode filtering rarely starves the page.
	candidates, err := repo.ListFeedCandidates(ctx, s.DB, repo.PetFilters{
		Species:   f.Species,
		Gender:    f.Gender,
		Objective: f.Objective,
		Region:    f.Region,
		Size:      f.Size,
	}, callerID, (page-1)*limit, limit*2)
	if err != nil {
		return nil, err
	}

	items := shapeByMode(mode, candidates)
	if len(items) > limit {
		items = items[:limit]
	}

	span.SetAttributes(attribute.Int("feed.items", len(items)))
	return &FeedPage{
		Items:   items,
		Page:    page,
		Limit:   limit,
		HasMore: len(items) == limit,
	}, nil
}

// shapeByMode applies the mode's visibility rules. Crushes is about breeding
// interest, so neutered pets are removed. Friends keeps everyone but surfaces
// neutered pets and socialization seekers first, preserving recency order
// within each group.
func shapeByMode(mode string, candidates []domain.Pet) []domain.Pet {
	if mode == FeedModeCrushes {
		out := make([]domain.Pet, 0, len(candidates))
		for _, p := range candidates {
			if !p.Neutered {
				out = append(out, p)
			}
		}
		return out
	}

	out := make([]domain.Pet, len(candidates))
	copy(out, candidates)
	sort.SliceStable(out, func(i, j int) bool {
		return friendly(out[i]) && !friendly(out[j])
	})
	return out
}

func friendly(p domain.Pet) bool {
	return p.Neutered || p.Objective == domain.ObjectiveSocialization
}
