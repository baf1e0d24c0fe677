// Media upload HTTP handler.
//
// POST /media/upload — multipart upload of a photo or presentation video,
// forwarded to the storage collaborator. 503 when the collaborator is
// unconfigured, so clients can offer a retry instead of blaming the input.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petcrushes/petcrushes-backend/internal/utils"
)

// UploadResponse is a stored media file.
type UploadResponse struct {
	URL             string `json:"url"`
	DurationSeconds int    `json:"duration,omitempty"`
}

// UploadMedia godoc
// @ID          uploadMedia
// @Summary     Upload a photo or video
// @Description Accepts a multipart form with "file", "kind" (image|video) and, for videos, "duration" in seconds. Returns the public URL.
// @Tags        Media
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
//
// @Param       file      formData  file    true   "Media file"
// @Param       kind      formData  string  true   "image or video"
// @Param       duration  formData  int     false  "Video duration in seconds"
//
// @Success     201  {object}  handlers.UploadResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     503  {object}  handlers.ErrorResponse  "Media collaborator unavailable"
// @Router      /media/upload [post]
func (h *Handlers) UploadMedia(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		failField(c, http.StatusBadRequest, ErrCodeBadRequest, "file required", "file")
		return
	}
	kind := c.PostForm("kind")
	duration := utils.AtoiDefault(c.PostForm("duration"), 0)

	f, err := fh.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unreadable file")
		return
	}
	defer f.Close()

	res, err := h.mediaSvc.Upload(c.Request.Context(), callerID(c), f, fh.Filename, kind, duration)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, UploadResponse{URL: res.URL, DurationSeconds: res.DurationSeconds})
}
