package services

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/petcrushes/petcrushes-backend/internal/media"
)

// UploadResult is a stored media file: its public URL and, for videos, the
// client-reported duration.
type UploadResult struct {
	URL             string
	DurationSeconds int
}

// MediaService uploads pet photos and presentation videos. A nil Uploader
// means the collaborator is unconfigured and every upload fails with
// ErrMediaUnavailable.
type MediaService struct {
	// Uploader is the storage backend.
	Uploader media.Uploader
	// Folder prefixes every upload path.
	Folder string
	// MaxBytes caps a single upload; 0 disables the cap.
	MaxBytes int64
}

// NewMediaService constructs a MediaService storing under "petcrushes" with a
// 25 MiB cap.
func NewMediaService(up media.Uploader) *MediaService {
	return &MediaService{Uploader: up, Folder: "petcrushes", MaxBytes: 25 << 20}
}

// Upload stores the stream for ownerID. kind is "image" or "video";
// durationSeconds is the client-reported video length (0 for images).
func (s *MediaService) Upload(ctx context.Context, ownerID string, r io.Reader, filename, kind string, durationSeconds int) (*UploadResult, error) {
	if s.Uploader == nil {
		return nil, ErrMediaUnavailable
	}
	if kind != "image" && kind != "video" {
		return nil, &ValidationError{Field: "kind", Msg: "must be image or video"}
	}
	if kind == "video" && durationSeconds < 0 {
		return nil, &ValidationError{Field: "durationSeconds", Msg: "must be >= 0"}
	}
	if s.MaxBytes > 0 {
		r = io.LimitReader(r, s.MaxBytes)
	}

	// Random public id; the original extension is kept so Cloudinary detects
	// the format.
	name := uuid.NewString()
	if ext := strings.ToLower(path.Ext(filename)); ext != "" {
		name += ext
	}

	url, err := s.Uploader.Upload(ctx, r, s.Folder+"/"+ownerID, name, kind)
	if err != nil {
		return nil, ErrMediaUnavailable
	}
	return &UploadResult{URL: url, DurationSeconds: durationSeconds}, nil
}
