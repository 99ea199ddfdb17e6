package handlers

import (
	"net/http"
)

// Health reports liveness. The service has no external hard dependencies,
// so a reachable process is a healthy one.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": a.Store.Len(),
	})
}
