package upload

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/user/launcher-go/apperror"
)

// Handler serves POST /api/upload.
type Handler struct {
	store *BlobStore
}

// NewHandler creates a new upload Handler.
func NewHandler(store *BlobStore) *Handler {
	return &Handler{store: store}
}

// HandleUpload reads the raw request body and relays it to the blob store.
// On success it answers 200 with {"url": ...}; an upstream failure is passed
// through with the upstream status and response text. The body is forwarded
// as-is: no retry, no chunking, no server-side size check.
func (h *Handler) HandleUpload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, apperror.NewValidationError("failed to read upload body", err))
			return
		}
		defer r.Body.Close()
		if len(body) == 0 {
			writeError(w, apperror.NewValidationError("empty upload", nil))
			return
		}

		detected := mimetype.Detect(body)
		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			contentType = detected.String()
		}
		key := "uploads/" + uuid.NewString() + detected.Extension()

		result, err := h.store.Put(r.Context(), key, contentType, bytes.NewReader(body))
		if err != nil {
			var upstream *UpstreamError
			if errors.As(err, &upstream) {
				// Relay the upstream error text and status verbatim.
				w.Header().Set("Content-Type", "text/plain; charset=utf-8")
				w.WriteHeader(upstream.Status)
				_, _ = w.Write([]byte(upstream.Body))
				return
			}
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}

func writeError(w http.ResponseWriter, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("an unexpected error occurred", err)
	}
	writeJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
