package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"server/internal/domain"
	"server/internal/export"
	"server/internal/infra"
	"server/internal/providers/image"
	"server/internal/providers/prompt"
	"server/internal/providers/stock"
	"server/internal/session"
	"server/internal/storage"
)

// App bundles the handler dependencies. Handlers hang off it so wiring stays
// in one place.
type App struct {
	Logger         infra.Logger
	Store          *session.Store
	Describer      prompt.Describer
	Enhancer       prompt.Enhancer
	Generator      image.Generator
	Searcher       stock.Searcher
	Files          *storage.FileStore
	Renderer       *export.Renderer
	StorageBaseURL string
	SearchWait     time.Duration
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]any{
		"error":   code,
		"message": message,
	})
}

// currentSession resolves the session from the URL and writes the 404 itself
// when it is gone, so handlers can bail with a plain return.
func (a *App) currentSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "id")
	sess, err := a.Store.Get(id)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "session not found")
		} else {
			a.error(w, http.StatusInternalServerError, "internal", "failed to load session")
		}
		return nil, false
	}
	return sess, true
}

// assetURL maps a storage key to its public static URL.
func (a *App) assetURL(key string) string {
	return strings.TrimSuffix(a.StorageBaseURL, "/") + "/" + strings.TrimPrefix(key, "/")
}
