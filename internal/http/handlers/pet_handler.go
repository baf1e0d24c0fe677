// Pet HTTP handlers.
//
// This file exposes REST endpoints for pet resources:
//   - GET    /pets               (public list with filters)
//   - GET    /pets/mine          (caller's pets, ETag support)
//   - GET    /pets/mine/active   (caller's active pet)
//   - PATCH  /pets/mine/active   (switch active pet)
//   - GET    /pets/{id}          (single pet + owner)
//   - POST   /pets               (register)
//   - PUT    /pets/{id}          (update, owner-only)
//   - DELETE /pets/{id}          (delete, owner-only)
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/petcrushes/petcrushes-backend/internal/domain"
	"github.com/petcrushes/petcrushes-backend/internal/repo"
	"github.com/petcrushes/petcrushes-backend/internal/services"
)

//
// DTOs
//

// CreatePetRequest is the JSON payload for registering a pet.
type CreatePetRequest struct {
	DisplayName  string   `json:"displayName" binding:"required,min=1,max=120" example:"Mel"`
	Species      string   `json:"species" binding:"required" example:"dog"`
	Breed        string   `json:"breed" binding:"required" example:"vira-lata"`
	Gender       string   `json:"gender" binding:"required" example:"FEMALE"`
	Size         string   `json:"size" example:"MEDIUM"`
	Colors       []string `json:"colors" example:"caramelo"`
	AgeMonths    int      `json:"ageMonths" example:"24"`
	Pedigree     bool     `json:"pedigree"`
	Vaccinated   bool     `json:"vaccinated"`
	Neutered     bool     `json:"neutered"`
	HealthNotes  string   `json:"healthNotes"`
	Objective    string   `json:"objective" binding:"required" example:"BREEDING"`
	IsDonation   bool     `json:"isDonation"`
	Region       string   `json:"region" binding:"required" example:"São Paulo - SP"`
	About        string   `json:"about"`
	Photos       []string `json:"photos"`
	VideoURL     string   `json:"videoUrl"`
	VideoSeconds int      `json:"videoDurationSeconds"`
}

// UpdatePetRequest is the JSON payload for a partial pet edit. Absent fields
// are left unchanged.
type UpdatePetRequest struct {
	DisplayName  *string   `json:"displayName"`
	Species      *string   `json:"species"`
	Breed        *string   `json:"breed"`
	Gender       *string   `json:"gender"`
	Size         *string   `json:"size"`
	Colors       *[]string `json:"colors"`
	AgeMonths    *int      `json:"ageMonths"`
	Pedigree     *bool     `json:"pedigree"`
	Vaccinated   *bool     `json:"vaccinated"`
	Neutered     *bool     `json:"neutered"`
	HealthNotes  *string   `json:"healthNotes"`
	Objective    *string   `json:"objective"`
	IsDonation   *bool     `json:"isDonation"`
	Region       *string   `json:"region"`
	About        *string   `json:"about"`
	Photos       *[]string `json:"photos"`
	VideoURL     *string   `json:"videoUrl"`
	VideoSeconds *int      `json:"videoDurationSeconds"`
}

// SetActivePetRequest selects which of the caller's pets drives the feed.
type SetActivePetRequest struct {
	PetID int64 `json:"petId" binding:"required" example:"42"`
}

// PetWithOwner pairs a pet with its owner's public profile.
type PetWithOwner struct {
	Pet   domain.Pet   `json:"pet"`
	Owner *domain.User `json:"owner,omitempty"`
}

//
// Handlers
//

// CreatePet godoc
// @ID          createPet
// @Summary     Register a pet
// @Description Creates a pet for the current user. Requires at least 3 photos and a presentation video of 5+ seconds; free text is content-filtered.
// @Tags        Pets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.CreatePetRequest  true  "Pet payload"
//
// @Success     201  {object}  domain.Pet
// @Failure     400  {object}  handlers.ErrorResponse  "Validation or blocked content"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /pets [post]
func (h *Handlers) CreatePet(c *gin.Context) {
	var req CreatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	p, err := h.petSvc.Create(c.Request.Context(), callerID(c), services.PetInput{
		DisplayName:  req.DisplayName,
		Species:      req.Species,
		Breed:        req.Breed,
		Gender:       req.Gender,
		Size:         req.Size,
		Colors:       req.Colors,
		AgeMonths:    req.AgeMonths,
		Pedigree:     req.Pedigree,
		Vaccinated:   req.Vaccinated,
		Neutered:     req.Neutered,
		HealthNotes:  req.HealthNotes,
		Objective:    req.Objective,
		IsDonation:   req.IsDonation,
		Region:       req.Region,
		About:        req.About,
		Photos:       req.Photos,
		VideoURL:     req.VideoURL,
		VideoSeconds: req.VideoSeconds,
	})
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, p)
}

// ListPets godoc
// @ID          listPets
// @Summary     List pets
// @Description Public pet listing with exact-match filters, newest first.
// @Tags        Pets
// @Produce     json
//
// @Param       species     query  string  false "Species filter"
// @Param       breed       query  string  false "Breed filter"
// @Param       gender      query  string  false "MALE or FEMALE"
// @Param       objective   query  string  false "BREEDING, COMPANIONSHIP or SOCIALIZATION"
// @Param       region      query  string  false "Region filter"
// @Param       size        query  string  false "SMALL, MEDIUM or LARGE"
// @Param       isDonation  query  bool    false "Donation listings only"
//
// @Success     200  {array}   domain.Pet
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /pets [get]
func (h *Handlers) ListPets(c *gin.Context) {
	f := repo.PetFilters{
		Species:   c.Query("species"),
		Breed:     c.Query("breed"),
		Gender:    c.Query("gender"),
		Objective: c.Query("objective"),
		Region:    c.Query("region"),
		Size:      c.Query("size"),
	}
	if v, has := c.GetQuery("isDonation"); has {
		b := strings.EqualFold(v, "true") || v == "1"
		f.IsDonation = &b
	}

	pets, err := h.petSvc.List(c.Request.Context(), f)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, pets)
}

// MyPets godoc
// @ID          myPets
// @Summary     List the caller's pets
// @Description Returns every pet owned by the current user, newest first. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Pets
// @Produce     json
// @Security    BearerAuth
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
//
// @Success     200  {array}   domain.Pet
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string "Not Modified"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /pets/mine [get]
func (h *Handlers) MyPets(c *gin.Context) {
	ctx := c.Request.Context()
	uid := callerID(c)

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, isConcrete := h.petSvc.(*services.PetService); isConcrete {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.PetsStats(ctx, db, uid)
		if err == nil {
			etag := weakETag("pets", uid, count, maxTS)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	pets, err := h.petSvc.Mine(ctx, uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, pets)
}

// GetPet godoc
// @ID          getPet
// @Summary     Get a pet
// @Description Returns a single pet together with its owner's public profile.
// @Tags        Pets
// @Produce     json
//
// @Param       id  path  int  true  "Pet ID"
//
// @Success     200  {object}  handlers.PetWithOwner
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Pet not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /pets/{id} [get]
func (h *Handlers) GetPet(c *gin.Context) {
	id := pathID(c, "id")
	if id == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "pet id must be a positive integer")
		return
	}

	p, owner, err := h.petSvc.Get(c.Request.Context(), id)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, PetWithOwner{Pet: *p, Owner: owner})
}

// UpdatePet godoc
// @ID          updatePet
// @Summary     Update a pet
// @Description Applies a partial edit to a pet owned by the current user. Edited free text is content-filtered.
// @Tags        Pets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  int                        true  "Pet ID"
// @Param       body  body  handlers.UpdatePetRequest  true  "Fields to change"
//
// @Success     200  {object}  domain.Pet
// @Failure     400  {object}  handlers.ErrorResponse  "Validation or blocked content"
// @Failure     403  {object}  handlers.ErrorResponse  "Not the owner"
// @Failure     404  {object}  handlers.ErrorResponse  "Pet not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /pets/{id} [put]
func (h *Handlers) UpdatePet(c *gin.Context) {
	id := pathID(c, "id")
	if id == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "pet id must be a positive integer")
		return
	}

	var req UpdatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	p, err := h.petSvc.Update(c.Request.Context(), callerID(c), id, services.PetUpdate{
		DisplayName:  req.DisplayName,
		Species:      req.Species,
		Breed:        req.Breed,
		Gender:       req.Gender,
		Size:         req.Size,
		Colors:       req.Colors,
		AgeMonths:    req.AgeMonths,
		Pedigree:     req.Pedigree,
		Vaccinated:   req.Vaccinated,
		Neutered:     req.Neutered,
		HealthNotes:  req.HealthNotes,
		Objective:    req.Objective,
		IsDonation:   req.IsDonation,
		Region:       req.Region,
		About:        req.About,
		Photos:       req.Photos,
		VideoURL:     req.VideoURL,
		VideoSeconds: req.VideoSeconds,
	})
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}

// DeletePet godoc
// @ID          deletePet
// @Summary     Delete a pet
// @Description Removes a pet owned by the current user.
// @Tags        Pets
// @Security    BearerAuth
//
// @Param       id  path  int  true  "Pet ID"
//
// @Success     204  {string}  string "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     403  {object}  handlers.ErrorResponse  "Not the owner"
// @Failure     404  {object}  handlers.ErrorResponse  "Pet not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /pets/{id} [delete]
func (h *Handlers) DeletePet(c *gin.Context) {
	id := pathID(c, "id")
	if id == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "pet id must be a positive integer")
		return
	}
	if err := h.petSvc.Delete(c.Request.Context(), callerID(c), id); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}

// GetActivePet godoc
// @ID          getActivePet
// @Summary     Get the caller's active pet
// @Description Returns the pet currently driving the discovery feed. 204 when the user has no pets yet.
// @Tags        Pets
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {object}  domain.Pet
// @Success     204  {string}  string "No pets yet"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /pets/mine/active [get]
func (h *Handlers) GetActivePet(c *gin.Context) {
	p, err := h.petSvc.ActivePet(c.Request.Context(), callerID(c))
	if err != nil {
		failService(c, err)
		return
	}
	if p == nil {
		noContent(c)
		return
	}
	ok(c, http.StatusOK, p)
}

// GetDefaultPet godoc
// @ID          getDefaultPet
// @Summary     Get the caller's default pet
// @Description Legacy alias of /pets/mine/active kept for older clients: resolves the active pet, falling back to the earliest-created one.
// @Tags        Pets
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {object}  domain.Pet
// @Success     204  {string}  string "No pets yet"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /pets/mine/default [get]
func (h *Handlers) GetDefaultPet(c *gin.Context) {
	h.GetActivePet(c)
}

// SetActivePet godoc
// @ID          setActivePet
// @Summary     Switch the caller's active pet
// @Description Atomically moves the active flag to the given pet. A pet the caller does not own is reported as not found.
// @Tags        Pets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.SetActivePetRequest  true  "Pet to activate"
//
// @Success     200  {object}  domain.Pet
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Pet not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /pets/mine/active [patch]
func (h *Handlers) SetActivePet(c *gin.Context) {
	var req SetActivePetRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PetID <= 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "petId must be a positive integer")
		return
	}

	p, err := h.petSvc.SetActive(c.Request.Context(), callerID(c), req.PetID)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}
