// Like, match and chat HTTP handlers.
//
// This file exposes:
//   - POST /likes                  (like a pet, possibly creating a match)
//   - GET  /matches                (caller's matches, hydrated)
//   - GET  /matches/{id}           (one match + ordered messages)
//   - POST /matches/{id}/messages  (send a chat message)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petcrushes/petcrushes-backend/internal/domain"
	"github.com/petcrushes/petcrushes-backend/internal/services"
)

//
// DTOs
//

// LikeRequest is the JSON payload for liking a pet. When likerPetId is
// omitted the caller's active pet is used.
type LikeRequest struct {
	LikerPetID  int64 `json:"likerPetId" example:"12"`
	TargetPetID int64 `json:"targetPetId" binding:"required" example:"34"`
}

// LikeResponse reports whether the like completed a match.
type LikeResponse struct {
	Matched bool  `json:"matched"`
	MatchID int64 `json:"matchId,omitempty"`
}

// MatchItem is a match hydrated for the conversations screen.
type MatchItem struct {
	ID          int64           `json:"id"`
	Pets        []domain.Pet    `json:"pets"`
	LastMessage *domain.Message `json:"lastMessage,omitempty"`
	CreatedAt   string          `json:"createdAt"`
}

// MatchDetailResponse is one match with its full ordered message history.
type MatchDetailResponse struct {
	Match    MatchItem        `json:"match"`
	Messages []domain.Message `json:"messages"`
}

// PostChatMessageRequest is the JSON payload for a chat message.
type PostChatMessageRequest struct {
	Content string `json:"content" binding:"required,min=1" example:"Oi! A Mel adorou o Rex."`
}

func matchItem(v services.MatchView) MatchItem {
	return MatchItem{
		ID:          v.Match.ID,
		Pets:        []domain.Pet{v.PetLow, v.PetHigh},
		LastMessage: v.LastMessage,
		CreatedAt:   v.Match.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

//
// Handlers
//

// Like godoc
// @ID          like
// @Summary     Like a pet
// @Description Records a like from one of the caller's pets. When the target already liked back, reports the match. Repeating a like is a no-op that re-reports the current state.
// @Tags        Matches
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.LikeRequest  true  "Like payload; likerPetId defaults to the caller's active pet"
//
// @Success     200  {object}  handlers.LikeResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Self-like or no active pet"
// @Failure     403  {object}  handlers.ErrorResponse  "Pet not owned by caller"
// @Failure     404  {object}  handlers.ErrorResponse  "Pet not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /likes [post]
func (h *Handlers) Like(c *gin.Context) {
	var req LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TargetPetID <= 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "targetPetId must be a positive integer")
		return
	}
	ctx := c.Request.Context()
	uid := callerID(c)

	liker := req.LikerPetID
	if liker == 0 {
		active, err := h.petSvc.ActivePet(ctx, uid)
		if err != nil {
			failService(c, err)
			return
		}
		if active == nil {
			failService(c, services.ErrNoActivePet)
			return
		}
		liker = active.ID
	}

	res, err := h.matchSvc.Like(ctx, uid, liker, req.TargetPetID)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, LikeResponse{Matched: res.Matched, MatchID: res.MatchID})
}

// ListMatches godoc
// @ID          listMatches
// @Summary     List the caller's matches
// @Description Returns every match involving any of the caller's pets, each hydrated with both pet profiles and the latest message.
// @Tags        Matches
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {array}   handlers.MatchItem
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /matches [get]
func (h *Handlers) ListMatches(c *gin.Context) {
	views, err := h.matchSvc.ListForOwner(c.Request.Context(), callerID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	items := make([]MatchItem, 0, len(views))
	for _, v := range views {
		items = append(items, matchItem(v))
	}
	ok(c, http.StatusOK, items)
}

// GetMatch godoc
// @ID          getMatch
// @Summary     Get a match with its messages
// @Description Returns one match the caller participates in, with the full message history oldest-first.
// @Tags        Matches
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  int  true  "Match ID"
//
// @Success     200  {object}  handlers.MatchDetailResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     403  {object}  handlers.ErrorResponse  "Caller not in match"
// @Failure     404  {object}  handlers.ErrorResponse  "Match not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /matches/{id} [get]
func (h *Handlers) GetMatch(c *gin.Context) {
	id := pathID(c, "id")
	if id == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "match id must be a positive integer")
		return
	}
	ctx := c.Request.Context()
	uid := callerID(c)

	v, err := h.matchSvc.Get(ctx, uid, id)
	if err != nil {
		failService(c, err)
		return
	}
	msgs, err := h.msgSvc.List(ctx, uid, id, 0)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, MatchDetailResponse{Match: matchItem(*v), Messages: msgs})
}

// PostChatMessage godoc
// @ID          postChatMessage
// @Summary     Send a chat message
// @Description Appends a message to a match's conversation. Content is trimmed, length-capped and content-filtered.
// @Tags        Matches
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  int                              true  "Match ID"
// @Param       body  body  handlers.PostChatMessageRequest  true  "Message payload"
//
// @Success     201  {object}  domain.Message
// @Failure     400  {object}  handlers.ErrorResponse  "Empty, too long or blocked content"
// @Failure     403  {object}  handlers.ErrorResponse  "Caller not in match"
// @Failure     404  {object}  handlers.ErrorResponse  "Match not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /matches/{id}/messages [post]
func (h *Handlers) PostChatMessage(c *gin.Context) {
	id := pathID(c, "id")
	if id == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "match id must be a positive integer")
		return
	}

	var req PostChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "content required")
		return
	}

	m, err := h.msgSvc.Send(c.Request.Context(), callerID(c), id, req.Content)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, m)
}
