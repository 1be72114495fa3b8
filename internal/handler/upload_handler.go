package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"userhub/internal/app/storage"
	"userhub/internal/pkg/logx"
)

// HandleServeUpload streams a stored profile picture back to the client.
// The route is public: picture URLs are embedded in pages and fetched by the
// browser without any session context.
func HandleServeUpload(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filename := chi.URLParam(r, "filename")

		obj, err := deps.Storage.Open(r.Context(), filename)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			logx.Error(err, "failed to open stored file", "key", filename)
			http.Error(w, "failed to read file", http.StatusInternalServerError)
			return
		}
		defer obj.Content.Close()

		w.Header().Set("Content-Type", obj.ContentType)
		if obj.Size > 0 {
			w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
		}
		w.Header().Set("X-Content-Type-Options", "nosniff")

		if _, err := io.Copy(w, obj.Content); err != nil {
			logx.Warn("interrupted while streaming stored file", "key", filename, "error", err)
		}
	}
}
