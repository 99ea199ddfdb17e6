package handlers

import (
	"fmt"
	"net/http"

	"server/internal/export"
	"server/internal/session"
)

// Screenshot renders the current garment headlessly and streams it back as
// a PNG download, the server-side stand-in for the browser screenshot.
func (a *App) Screenshot(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.currentSession(w, r)
	if !ok {
		return
	}
	gen, ok := sess.Begin(session.OpExport)
	if !ok {
		a.error(w, http.StatusConflict, "busy", "an export is already in flight")
		return
	}
	defer sess.Finish(session.OpExport, gen, nil)

	view := sess.RenderView()
	data, err := a.Renderer.Screenshot(r.Context(), view)
	if err != nil {
		a.Logger.Error().Err(err).Str("session_id", sess.ID).Msg("screenshot failed")
		a.error(w, http.StatusInternalServerError, "internal", "render failed")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(view.Theme)))
	_, _ = w.Write(data)
}

// Bundle zips the rendered screenshot together with the source artwork.
func (a *App) Bundle(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.currentSession(w, r)
	if !ok {
		return
	}
	gen, ok := sess.Begin(session.OpExport)
	if !ok {
		a.error(w, http.StatusConflict, "busy", "an export is already in flight")
		return
	}
	defer sess.Finish(session.OpExport, gen, nil)

	view := sess.RenderView()
	_, artworkMIME := sess.Artwork()
	data, name, err := a.Renderer.Bundle(r.Context(), view, artworkMIME)
	if err != nil {
		a.Logger.Error().Err(err).Str("session_id", sess.ID).Msg("bundle failed")
		a.error(w, http.StatusInternalServerError, "internal", "render failed")
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	_, _ = w.Write(data)
}
