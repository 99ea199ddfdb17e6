package handlers

import (
	"encoding/json"
	"net/http"

	"server/internal/domain"
	"server/internal/garment"
)

// SessionCreate starts a new configurator session with the default design.
func (a *App) SessionCreate(w http.ResponseWriter, r *http.Request) {
	sess := a.Store.Create()
	a.Logger.Info().Str("session_id", sess.ID).Msg("session created")
	a.json(w, http.StatusCreated, sess.State())
}

// SessionGet returns the session state snapshot.
func (a *App) SessionGet(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.currentSession(w, r)
	if !ok {
		return
	}
	a.json(w, http.StatusOK, sess.State())
}

// SessionPatch applies a partial design update. Only sleeve and fabric
// changes rebuild the mesh; everything else mutates in place.
func (a *App) SessionPatch(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.currentSession(w, r)
	if !ok {
		return
	}
	var p domain.Patch
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	a.json(w, http.StatusOK, sess.Update(p))
}

// SessionDelete discards the session immediately instead of waiting for the
// idle sweep.
func (a *App) SessionDelete(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.currentSession(w, r)
	if !ok {
		return
	}
	a.Store.Delete(sess.ID)
	w.WriteHeader(http.StatusNoContent)
}

// Mesh returns a summary of the garment mesh, or the raw OBJ serialization
// when ?format=obj is requested.
func (a *App) Mesh(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.currentSession(w, r)
	if !ok {
		return
	}
	if r.URL.Query().Get("format") == "obj" {
		view := sess.RenderView()
		w.Header().Set("Content-Type", "model/obj")
		keep := func(p *garment.Part) bool {
			return p.Name != garment.PartDecal || len(view.Artwork) > 0
		}
		if err := garment.WriteOBJ(w, view.Garment, keep); err != nil {
			a.Logger.Error().Err(err).Msg("obj serialization failed")
		}
		return
	}
	a.json(w, http.StatusOK, sess.MeshInfo())
}
