package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dshapiro789/NationalParkExplorer/internal/api/middleware"
	"github.com/dshapiro789/NationalParkExplorer/internal/tiles"
)

// GetTile proxies a map tile, serving the cached copy while offline.
func GetTile(loader *tiles.Loader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url := r.URL.Query().Get("url")
		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "url must be an absolute http(s) URL")
			return
		}

		blob, err := loader.Load(r.Context(), url)
		if errors.Is(err, tiles.ErrNotCached) {
			middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, "Tile not cached")
			return
		}
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to load tile")
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.Write(blob)
	}
}
