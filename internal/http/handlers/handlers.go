// Handler wiring.
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses. Service dependencies are consumed
// through interfaces so tests can substitute fakes without a database.
package handlers

import (
	"context"
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/petcrushes/petcrushes-backend/internal/domain"
	"github.com/petcrushes/petcrushes-backend/internal/repo"
	"github.com/petcrushes/petcrushes-backend/internal/services"
	"github.com/petcrushes/petcrushes-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// PetService defines pet lifecycle and active-pet operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type PetService interface {
	Create(ctx context.Context, ownerID string, in services.PetInput) (*domain.Pet, error)
	Get(ctx context.Context, id int64) (*domain.Pet, *domain.User, error)
	List(ctx context.Context, f repo.PetFilters) ([]domain.Pet, error)
	Mine(ctx context.Context, ownerID string) ([]domain.Pet, error)
	Update(ctx context.Context, callerID string, petID int64, upd services.PetUpdate) (*domain.Pet, error)
	Delete(ctx context.Context, callerID string, petID int64) error
	ActivePet(ctx context.Context, ownerID string) (*domain.Pet, error)
	SetActive(ctx context.Context, ownerID string, petID int64) (*domain.Pet, error)
}

// MatchService defines the like engine and match queries.
type MatchService interface {
	Like(ctx context.Context, callerID string, likerPetID, targetPetID int64) (*services.LikeResult, error)
	ListForOwner(ctx context.Context, ownerID string) ([]services.MatchView, error)
	Get(ctx context.Context, callerID string, matchID int64) (*services.MatchView, error)
}

// FeedService assembles the discovery feed.
type FeedService interface {
	Browse(ctx context.Context, callerID string, f services.FeedFilters) (*services.FeedPage, error)
}

// MessageService defines match-scoped chat operations.
type MessageService interface {
	Send(ctx context.Context, callerID string, matchID int64, text string) (*domain.Message, error)
	List(ctx context.Context, callerID string, matchID int64, limit int) ([]domain.Message, error)
}

// ReportService files complaints against pet profiles.
type ReportService interface {
	File(ctx context.Context, reporterID string, targetPetID int64, reason string) (*domain.Report, error)
}

// AdoptionService manages adoption listings.
type AdoptionService interface {
	Create(ctx context.Context, ownerID string, in services.AdoptionInput) (*domain.AdoptionPost, error)
	Get(ctx context.Context, id int64) (*domain.AdoptionPost, error)
	List(ctx context.Context, page, limit int) (*services.AdoptionPage, error)
	Update(ctx context.Context, callerID string, id int64, upd services.AdoptionUpdate) (*domain.AdoptionPost, error)
}

// AuthService implements OTP login and token issuance.
type AuthService interface {
	RequestOtp(ctx context.Context, email string) (*services.OtpRequestResult, error)
	Exists(ctx context.Context, email string) (bool, error)
	VerifyOtp(ctx context.Context, email, code string) (*services.VerifyResult, error)
}

// UserService exposes the authenticated user's profile.
type UserService interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, upd services.ProfileUpdate) (*domain.User, error)
}

// MediaService stores uploaded photos and videos.
type MediaService interface {
	Upload(ctx context.Context, ownerID string, r io.Reader, filename, kind string, durationSeconds int) (*services.UploadResult, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints of the API. It depends on abstract
// service interfaces to keep transport concerns separate from business logic.
type Handlers struct {
	petSvc      PetService
	matchSvc    MatchService
	feedSvc     FeedService
	msgSvc      MessageService
	reportSvc   ReportService
	adoptionSvc AdoptionService
	authSvc     AuthService
	userSvc     UserService
	mediaSvc    MediaService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(
	petSvc PetService,
	matchSvc MatchService,
	feedSvc FeedService,
	msgSvc MessageService,
	reportSvc ReportService,
	adoptionSvc AdoptionService,
	authSvc AuthService,
	userSvc UserService,
	mediaSvc MediaService,
) *Handlers {
	return &Handlers{
		petSvc:      petSvc,
		matchSvc:    matchSvc,
		feedSvc:     feedSvc,
		msgSvc:      msgSvc,
		reportSvc:   reportSvc,
		adoptionSvc: adoptionSvc,
		authSvc:     authSvc,
		userSvc:     userSvc,
		mediaSvc:    mediaSvc,
	}
}

// callerID extracts the authenticated user id from Gin context (set by the
// auth middleware). Routes behind RequireAuth always have it; an empty string
// on an unauthenticated route is a programming error surfaced as 401 by the
// caller.
func callerID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// pathID parses a positive int64 path parameter; 0 means invalid.
func pathID(c *gin.Context, name string) int64 {
	id := utils.Atoi64Default(c.Param(name), 0)
	if id < 0 {
		return 0
	}
	return id
}

// clampPagination parses and bounds page and limit query params to sane
// defaults and limits, returning (page, limit).
func clampPagination(c *gin.Context) (page, limit int) {
	const (
		defaultPage  = 1
		defaultLimit = 10
		maxLimit     = 50
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	limit = utils.AtoiDefault(c.Query("limit"), defaultLimit)
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return
}

// weakETag formats the weak ETag used by cacheable list endpoints.
func weakETag(scope, owner string, count int64, ts *time.Time) string {
	var unix int64
	if ts != nil {
		unix = ts.Unix()
	}
	return `W/"` + scope + `:` + owner + `:` + utils.Itoa64(count) + `:` + utils.Itoa64(unix) + `"`
}
