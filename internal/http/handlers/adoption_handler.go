// Adoption HTTP handlers.
//
// This file exposes REST endpoints for standalone adoption listings:
//   - GET    /adoptions        (public paginated list)
//   - POST   /adoptions        (create)
//   - GET    /adoptions/{id}   (single listing)
//   - PATCH  /adoptions/{id}   (update, owner-only)
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

// CreateAdoptionRequest is the JSON payload for a new adoption listing.
type CreateAdoptionRequest struct {
	Title       string   `json:"title" binding:"required,min=1,max=160" example:"Filhotes para adoção"`
	Species     string   `json:"species" binding:"required" example:"dog"`
	Description string   `json:"description" binding:"required,min=1" example:"Três filhotes dóceis procurando um lar."`
	Region      string   `json:"region" binding:"required" example:"São Paulo - SP"`
	Photos      []string `json:"photos"`
}

// UpdateAdoptionRequest is the JSON payload for a partial listing edit.
type UpdateAdoptionRequest struct {
	Title       *string   `json:"title"`
	Species     *string   `json:"species"`
	Description *string   `json:"description"`
	Region      *string   `json:"region"`
	Photos      *[]string `json:"photos"`
	Status      *string   `json:"status" example:"ADOTADO"`
}

// AdoptionListResponse is one page of adoption listings.
type AdoptionListResponse struct {
	Items   []domain.AdoptionPost `json:"items"`
	Page    int                   `json:"page"`
	Limit   int                   `json:"limit"`
	HasMore bool                  `json:"hasMore"`
}

//
// Handlers
//

// ListAdoptions godoc
// @ID          listAdoptions
// @Summary     List adoption posts
// @Description Public paginated adoption listings, newest first.
// @Tags        Adoptions
// @Produce     json
//
// @Param       page   query  int  false "Page number"     minimum(1) default(1)
// @Param       limit  query  int  false "Items per page"  minimum(1) maximum(50) default(10)
//
// @Success     200  {object}  handlers.AdoptionListResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /adoptions [get]
func (h *Handlers) ListAdoptions(c *gin.Context) {
	page, limit := clampPagination(c)

	p, err := h.adoptionSvc.List(c.Request.Context(), page, limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, AdoptionListResponse{
		Items:   p.Items,
		Page:    p.Page,
		Limit:   p.Limit,
		HasMore: p.HasMore,
	})
}

// CreateAdoption godoc
// @ID          createAdoption
// @Summary     Create an adoption post
// @Description Creates a listing owned by the current user. Descriptions are content-filtered; adoption is free by definition.
// @Tags        Adoptions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.CreateAdoptionRequest  true  "Listing payload"
//
// @Success     201  {object}  domain.AdoptionPost
// @Failure     400  {object}  handlers.ErrorResponse  "Validation or blocked content"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /adoptions [post]
func (h *Handlers) CreateAdoption(c *gin.Context) {
	var req CreateAdoptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	p, err := h.adoptionSvc.Create(c.Request.Context(), callerID(c), services.AdoptionInput{
		Title:       req.Title,
		Species:     req.Species,
		Description: req.Description,
		Region:      req.Region,
		Photos:      req.Photos,
	})
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, p)
}

// GetAdoption godoc
// @ID          getAdoption
// @Summary     Get an adoption post
// @Tags        Adoptions
// @Produce     json
//
// @Param       id  path  int  true  "Listing ID"
//
// @Success     200  {object}  domain.AdoptionPost
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Listing not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /adoptions/{id} [get]
func (h *Handlers) GetAdoption(c *gin.Context) {
	id := pathID(c, "id")
	if id == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "listing id must be a positive integer")
		return
	}
	p, err := h.adoptionSvc.Get(c.Request.Context(), id)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}

// UpdateAdoption godoc
// @ID          updateAdoption
// @Summary     Update an adoption post
// @Description Applies a partial edit to a listing owned by the current user, including the DISPONIVEL/ADOTADO status flip. A foreign listing is reported as not found.
// @Tags        Adoptions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  int                             true  "Listing ID"
// @Param       body  body  handlers.UpdateAdoptionRequest  true  "Fields to change"
//
// @Success     200  {object}  domain.AdoptionPost
// @Failure     400  {object}  handlers.ErrorResponse  "Validation or blocked content"
// @Failure     404  {object}  handlers.ErrorResponse  "Listing not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /adoptions/{id} [patch]
func (h *Handlers) UpdateAdoption(c *gin.Context) {
	id := pathID(c, "id")
	if id == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "listing id must be a positive integer")
		return
	}

	var req UpdateAdoptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	p, err := h.adoptionSvc.Update(c.Request.Context(), callerID(c), id, services.AdoptionUpdate{
		Title:       req.Title,
		Species:     req.Species,
		Description: req.Description,
		Region:      req.Region,
		Photos:      req.Photos,
		Status:      req.Status,
	})
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}
