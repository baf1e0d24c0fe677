// Feed HTTP handler.
//
// GET /feed — the discovery feed: filtered, mode-shaped, paginated pets,
// always excluding the caller's own.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petcrushes/petcrushes-backend/internal/domain"
	"github.com/petcrushes/petcrushes-backend/internal/services"
)

// FeedResponse is one page of the discovery feed.
type FeedResponse struct {
	Items   []domain.Pet `json:"items"`
	Page    int          `json:"page"`
	Limit   int          `json:"limit"`
	HasMore bool         `json:"hasMore"`
}

// Feed godoc
// @ID          feed
// @Summary     Browse the discovery feed
// @Description Returns discoverable pets for the current user. Mode "crushes" (default) hides neutered pets; "friends" ranks neutered and socialization-seeking pets first.
// @Tags        Feed
// @Produce     json
// @Security    BearerAuth
//
// @Param       species    query  string  false "Species filter"
// @Param       gender     query  string  false "MALE or FEMALE"
// @Param       objective  query  string  false "BREEDING, COMPANIONSHIP or SOCIALIZATION"
// @Param       region     query  string  false "Region filter"
// @Param       size       query  string  false "SMALL, MEDIUM or LARGE"
// @Param       mode       query  string  false "crushes or friends"  default(crushes)
// @Param       page       query  int     false "Page number"          minimum(1) default(1)
// @Param       limit      query  int     false "Items per page"       minimum(1) maximum(50) default(10)
//
// @Success     200  {object}  handlers.FeedResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /feed [get]
func (h *Handlers) Feed(c *gin.Context) {
	page, limit := clampPagination(c)

	fp, err := h.feedSvc.Browse(c.Request.Context(), callerID(c), services.FeedFilters{
		Species:   c.Query("species"),
		Gender:    c.Query("gender"),
		Objective: c.Query("objective"),
		Region:    c.Query("region"),
		Size:      c.Query("size"),
		Mode:      c.Query("mode"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, FeedResponse{
		Items:   fp.Items,
		Page:    fp.Page,
		Limit:   fp.Limit,
		HasMore: fp.HasMore,
	})
}
