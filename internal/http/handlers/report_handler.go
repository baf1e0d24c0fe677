// Report HTTP handler.
//
// POST /reports — file a complaint against a pet profile. Reports land in
// PENDING status; moderation happens out of band.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreateReportRequest is the JSON payload for filing a report.
type CreateReportRequest struct {
	TargetPetID int64  `json:"targetPetId" binding:"required" example:"34"`
	Reason      string `json:"reason" binding:"required,min=1" example:"perfil parece venda disfarçada"`
}

// CreateReport godoc
// @ID          createReport
// @Summary     Report a pet profile
// @Description Files a complaint against a pet on behalf of the current user.
// @Tags        Reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.CreateReportRequest  true  "Report payload"
//
// @Success     201  {object}  domain.Report
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Pet not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /reports [post]
func (h *Handlers) CreateReport(c *gin.Context) {
	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TargetPetID <= 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "targetPetId and reason are required")
		return
	}

	r, err := h.reportSvc.File(c.Request.Context(), callerID(c), req.TargetPetID, req.Reason)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, r)
}
