// internal/app/features/uploads/handler.go
package uploads

import (
	"context"
	"mime"
	"net/http"

	"github.com/almanarfoundation/manarhub/internal/app/system/timeouts"
	"github.com/almanarfoundation/manarhub/internal/app/system/webjson"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MaxUploadBytes caps one media upload regardless of kind.
const MaxUploadBytes = 512 << 20 // 512 MiB

// kindLimit caps what each media area accepts. Both checks run before
// anything is written to blob storage.
type kindLimit struct {
	maxBytes int64
	types    map[string]bool
}

var kindLimits = map[string]kindLimit{
	"audio": {
		maxBytes: 200 << 20,
		types: map[string]bool{
			"audio/mpeg":  true,
			"audio/mp4":   true,
			"audio/x-m4a": true,
			"audio/aac":   true,
			"audio/ogg":   true,
			"audio/wav":   true,
		},
	},
	"video": {
		maxBytes: 512 << 20,
		types: map[string]bool{
			"video/mp4":       true,
			"video/webm":      true,
			"video/quicktime": true,
		},
	},
	"ebook": {
		maxBytes: 50 << 20,
		types: map[string]bool{
			"application/pdf":      true,
			"application/epub+zip": true,
		},
	},
	"image": {
		maxBytes: 10 << 20,
		types: map[string]bool{
			"image/jpeg": true,
			"image/png":  true,
			"image/webp": true,
			"image/gif":  true,
		},
	},
}

// Handler streams media uploads into blob storage and reports upload
// progress. Blobs are stored first and referenced by a content document
// afterwards; a blob whose document save then fails is logged as
// orphaned rather than rolled back.
type Handler struct {
	Store storage.Store
	Log   *zap.Logger

	progress *progressTracker
}

func NewHandler(store storage.Store, log *zap.Logger) *Handler {
	return &Handler{Store: store, Log: log, progress: newProgressTracker()}
}

// HandleUpload serves POST /{uploadID}. The body is multipart with a
// single "file" part plus a "kind" field naming the media area
// ("audio", "video", "ebook", "image"). The client picks uploadID (a
// UUID); retrying a dropped upload under the same id keeps the reported
// progress monotone.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	uploadID := chi.URLParam(r, "uploadID")
	if uploadID == "" {
		webjson.Error(w, http.StatusBadRequest, "upload id is required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		webjson.Error(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	kind := r.FormValue("kind")
	limit, ok := kindLimits[kind]
	if !ok {
		webjson.Error(w, http.StatusBadRequest, "kind must be audio, video, ebook, or image")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		webjson.Error(w, http.StatusBadRequest, "file part is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mt
	}
	if !limit.types[contentType] {
		webjson.Error(w, http.StatusUnsupportedMediaType, contentType+" is not accepted for "+kind+" uploads")
		return
	}
	if header.Size > limit.maxBytes {
		webjson.Error(w, http.StatusRequestEntityTooLarge, "file exceeds the size limit for "+kind+" uploads")
		return
	}

	h.progress.Start(uploadID, header.Size)

	reader := &progressReader{r: file, id: uploadID, tracker: h.progress}
	info, err := putBlob(ctx, h.Store, kind, header.Filename, reader, header.Size, contentType)
	if err != nil {
		h.Log.Error("media upload failed",
			zap.Error(err),
			zap.String("upload_id", uploadID),
			zap.String("file", header.Filename),
		)
		webjson.Error(w, http.StatusInternalServerError, "upload failed")
		return
	}

	h.progress.Finish(uploadID)

	h.Log.Info("media uploaded",
		zap.String("upload_id", uploadID),
		zap.String("path", info.Path),
		zap.Int64("size", info.Size),
	)

	webjson.Created(w, map[string]any{
		"path":         info.Path,
		"file_name":    info.FileName,
		"file_size":    info.Size,
		"content_type": info.ContentType,
	})
}

// HandleProgress serves GET /{uploadID}/progress.
func (h *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	uploadID := chi.URLParam(r, "uploadID")
	state, ok := h.progress.Get(uploadID)
	if !ok {
		webjson.Error(w, http.StatusNotFound, "unknown upload")
		return
	}
	webjson.OK(w, map[string]any{
		"received": state.Received,
		"total":    state.Total,
		"percent":  state.Percent(),
		"done":     state.Done,
	})
}

// HandleForget serves DELETE /{uploadID}/progress once the dashboard
// has consumed the final state.
func (h *Handler) HandleForget(w http.ResponseWriter, r *http.Request) {
	h.progress.Forget(chi.URLParam(r, "uploadID"))
	webjson.OK(w, map[string]any{"forgotten": true})
}

// LogOrphanedBlob records a blob whose content document was never
// saved. Cleanup is a manual follow-up; the log line carries everything
// needed to find the blob.
func (h *Handler) LogOrphanedBlob(path, reason string) {
	h.Log.Warn("orphaned media blob",
		zap.String("path", path),
		zap.String("reason", reason),
	)
}
