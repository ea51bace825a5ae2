package media

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/designhire-backend/internal/domain"
	"github.com/yungbote/designhire-backend/internal/platform/apierr"
	"github.com/yungbote/designhire-backend/internal/platform/dbctx"
	"github.com/yungbote/designhire-backend/internal/services"
)

const (
	MaxFileSize   = 10 * 1024 * 1024
	URLExpiry     = time.Hour
	ThumbnailJob  = "media_thumbnail"
	FileTypeImage = "image"
	FileTypeDoc   = "document"
	FileTypeVideo = "video"
)

var allowedContentTypes = map[string][]string{
	FileTypeImage: {"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp"},
	FileTypeDoc: {
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	},
	FileTypeVideo: {"video/mp4", "video/webm"},
}

var imageExtensions = map[string]bool{"jpg": true, "jpeg": true, "png": true, "gif": true, "webp": true}

type Actor struct {
	UserID uuid.UUID
	Role   string
}

func (a Actor) isAdmin() bool { return a.Role == types.RoleAdmin }

type SignedURLInput struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	FileType    string `json:"file_type"`
	FileSize    int64  `json:"file_size"`
}

type SignedURL struct {
	UploadURL   string `json:"upload_url"`
	ObjectKey   string `json:"object_key"`
	DownloadURL string `json:"download_url"`
	ExpiresIn   int    `json:"expires_in"`
}

type DeleteResult struct {
	Message   string `json:"message"`
	ObjectKey string `json:"object_key"`
}

type FileURL struct {
	URL       string `json:"url"`
	ObjectKey string `json:"object_key"`
	ExpiresIn int    `json:"expires_in"`
}

type ProcessResult struct {
	Message   string    `json:"message"`
	JobID     uuid.UUID `json:"job_id"`
	ObjectKey string    `json:"object_key"`
	Status    string    `json:"status"`
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func validContentType(contentType, fileType string) bool {
	for _, ct := range allowedContentTypes[fileType] {
		if ct == contentType {
			return true
		}
	}
	return false
}

// ObjectKey builds <file_type>/<user_id>/<YYYYMMDD>/<hash>[.ext].
func ObjectKey(userID uuid.UUID, fileName, fileType string, now time.Time, hash string) string {
	key := fmt.Sprintf("%s/%s/%s/%s", fileType, userID, now.UTC().Format("20060102"), hash)
	if i := strings.LastIndex(fileName, "."); i >= 0 && i < len(fileName)-1 {
		key += "." + fileName[i+1:]
	}
	return key
}

func (u Usecases) SignedUploadURL(ctx context.Context, actor Actor, in SignedURLInput) (*SignedURL, error) {
	fileType := strings.TrimSpace(in.FileType)
	if fileType == "" {
		fileType = FileTypeImage
	}
	if _, ok := allowedContentTypes[fileType]; !ok {
		return nil, apierr.BadRequest("invalid_file_type", "file_type must be one of: image, document, video")
	}
	if strings.TrimSpace(in.FileName) == "" {
		return nil, apierr.BadRequest("invalid_request", "file_name is required")
	}
	if !validContentType(in.ContentType, fileType) {
		return nil, apierr.BadRequest("invalid_content_type",
			fmt.Sprintf("File type %s not allowed for %s", in.ContentType, fileType))
	}
	if in.FileSize < 1 {
		return nil, apierr.BadRequest("invalid_file_size", "file_size must be positive")
	}
	if in.FileSize > MaxFileSize {
		return nil, apierr.BadRequest("file_too_large",
			fmt.Sprintf("File size exceeds maximum allowed size of %dMB", MaxFileSize/1024/1024))
	}

	key := ObjectKey(actor.UserID, in.FileName, fileType, u.deps.Now(), u.deps.RandHex(8))
	uploadURL, err := u.deps.Store.PresignPut(ctx, key, in.ContentType, URLExpiry)
	if err != nil {
		u.deps.Log.Error("Presign upload failed", "object_key", key, "error", err)
		return nil, apierr.Internal("upload_url_failed", errors.New("Failed to generate upload URL"))
	}
	downloadURL, err := u.deps.Store.PresignGet(ctx, key, URLExpiry)
	if err != nil {
		u.deps.Log.Error("Presign download failed", "object_key", key, "error", err)
		return nil, apierr.Internal("download_url_failed", errors.New("Failed to generate download URL"))
	}

	if fileType == FileTypeImage && u.deps.Jobs != nil {
		req := services.JobRequest{
			OwnerUserID: actor.UserID,
			JobType:     ThumbnailJob,
			EntityType:  "media",
			Payload:     map[string]any{"object_key": key},
		}
		if _, err := u.deps.Jobs.Enqueue(dbctx.Context{Ctx: ctx}, req); err != nil {
			u.deps.Log.Warn("Thumbnail enqueue failed", "object_key", key, "error", err)
		}
	}

	return &SignedURL{
		UploadURL:   uploadURL,
		ObjectKey:   key,
		DownloadURL: downloadURL,
		ExpiresIn:   int(URLExpiry.Seconds()),
	}, nil
}

// checkOwner applies the key convention: segment [1] is the uploader's id.
func checkOwner(actor Actor, key, forbiddenMsg string) error {
	parts := strings.Split(key, "/")
	if len(parts) < 2 {
		return apierr.BadRequest("invalid_object_key", "Invalid object_key format")
	}
	owner, err := uuid.Parse(parts[1])
	if err != nil {
		return apierr.BadRequest("invalid_object_key", "Invalid object_key format")
	}
	if owner != actor.UserID && !actor.isAdmin() {
		return apierr.Forbidden(forbiddenMsg)
	}
	return nil
}

func (u Usecases) Delete(ctx context.Context, actor Actor, objectKey string) (*DeleteResult, error) {
	key := strings.TrimLeft(strings.TrimSpace(objectKey), "/")
	if err := checkOwner(actor, key, "You don't have permission to delete this file"); err != nil {
		return nil, err
	}
	if err := u.deps.Store.Delete(ctx, key); err != nil {
		u.deps.Log.Error("Object delete failed", "object_key", key, "error", err)
		return nil, apierr.Internal("delete_failed", errors.New("Failed to delete file"))
	}
	return &DeleteResult{Message: "File deleted successfully", ObjectKey: key}, nil
}

func (u Usecases) FileURL(ctx context.Context, objectKey string) (*FileURL, error) {
	key := strings.TrimLeft(strings.TrimSpace(objectKey), "/")
	if key == "" {
		return nil, apierr.BadRequest("invalid_object_key", "object_key is required")
	}
	url, err := u.deps.Store.PresignGet(ctx, key, URLExpiry)
	if err != nil {
		u.deps.Log.Error("Presign download failed", "object_key", key, "error", err)
		return nil, apierr.Internal("file_url_failed", errors.New("Failed to generate file URL"))
	}
	return &FileURL{URL: url, ObjectKey: key, ExpiresIn: int(URLExpiry.Seconds())}, nil
}

func (u Usecases) Process(ctx context.Context, actor Actor, objectKey string, profileID *uuid.UUID) (*ProcessResult, error) {
	key := strings.TrimLeft(strings.TrimSpace(objectKey), "/")
	if err := checkOwner(actor, key, "You don't have permission to process this file"); err != nil {
		return nil, err
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(key), "."))
	if !imageExtensions[ext] {
		return nil, apierr.BadRequest("not_an_image", "Only images can be processed for thumbnails")
	}
	if u.deps.Jobs == nil {
		return nil, apierr.New(http.StatusServiceUnavailable, "jobs_unavailable", errors.New("Background processing is unavailable"))
	}
	req := services.JobRequest{
		OwnerUserID: actor.UserID,
		JobType:     ThumbnailJob,
		EntityType:  "media",
		Payload:     map[string]any{"object_key": key},
	}
	if profileID != nil && *profileID != uuid.Nil {
		req.Payload["profile_id"] = profileID.String()
		req.EntityType, req.EntityID = "profile", profileID
	}
	job, err := u.deps.Jobs.Enqueue(dbctx.Context{Ctx: ctx}, req)
	if err != nil {
		u.deps.Log.Error("Thumbnail enqueue failed", "object_key", key, "error", err)
		return nil, apierr.Internal("enqueue_failed", errors.New("Failed to enqueue processing job"))
	}
	return &ProcessResult{
		Message:   "Image processing job enqueued",
		JobID:     job.ID,
		ObjectKey: key,
		Status:    "pending",
	}, nil
}
