// User profile HTTP handlers.
//
//   - GET   /users/me   (current profile)
//   - PATCH /users/me   (partial profile edit)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petcrushes/petcrushes-backend/internal/services"
)

// UpdateProfileRequest is the JSON payload for a partial profile edit. Absent
// fields are left unchanged.
type UpdateProfileRequest struct {
	DisplayName         *string `json:"displayName"`
	FirstName           *string `json:"firstName"`
	LastName            *string `json:"lastName"`
	Whatsapp            *string `json:"whatsapp"`
	Region              *string `json:"region"`
	ProfileImageURL     *string `json:"profileImageUrl"`
	OnboardingCompleted *bool   `json:"onboardingCompleted"`
}

// GetMe godoc
// @ID          getMe
// @Summary     Get the current user's profile
// @Tags        Users
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {object}  domain.User
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users/me [get]
func (h *Handlers) GetMe(c *gin.Context) {
	u, err := h.userSvc.Get(c.Request.Context(), callerID(c))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, u)
}

// UpdateMe godoc
// @ID          updateMe
// @Summary     Update the current user's profile
// @Description Applies a partial edit; absent fields are left unchanged.
// @Tags        Users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.UpdateProfileRequest  true  "Fields to change"
//
// @Success     200  {object}  domain.User
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users/me [patch]
func (h *Handlers) UpdateMe(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	u, err := h.userSvc.Update(c.Request.Context(), callerID(c), services.ProfileUpdate{
		DisplayName:         req.DisplayName,
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Whatsapp:            req.Whatsapp,
		Region:              req.Region,
		ProfileImageURL:     req.ProfileImageURL,
		OnboardingCompleted: req.OnboardingCompleted,
	})
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, u)
}
