package handlers

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"server/internal/domain"
	"server/internal/middleware"
	"server/internal/providers/image"
	"server/internal/session"
)

type generateRequest struct {
	Prompt                string `json:"prompt"`
	TransparentBackground bool   `json:"transparent_background"`
}

type generateResponse struct {
	State      session.State `json:"state"`
	ArtworkURL string        `json:"artwork_url,omitempty"`
}

// ImagesGenerate produces decal artwork from the session's prompt and binds
// it onto the garment. The artwork bytes are cached on disk so the client
// can reference a stable URL.
func (a *App) ImagesGenerate(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.currentSession(w, r)
	if !ok {
		return
	}
	var req generateRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	cfg := sess.Design()
	promptText := strings.TrimSpace(req.Prompt)
	if promptText == "" {
		promptText = strings.TrimSpace(cfg.PromptText)
	}
	if promptText == "" {
		a.error(w, http.StatusBadRequest, "empty_prompt", "describe or type a prompt first")
		return
	}

	gen, ok := sess.Begin(session.OpGenerate)
	if !ok {
		a.error(w, http.StatusConflict, "busy", "a generate request is already in flight")
		return
	}

	art, err := a.Generator.Generate(r.Context(), image.GenerateRequest{
		Theme:                 cfg.Theme,
		Prompt:                promptText,
		BaseColor:             cfg.BaseColor,
		TransparentBackground: req.TransparentBackground,
		RequestID:             middleware.RequestIDFromContext(r.Context()),
	})
	if err != nil {
		sess.Finish(session.OpGenerate, gen, func() {
			sess.SetError("Artwork generation failed. Try again or adjust the prompt.")
		})
		switch {
		case errors.Is(err, domain.ErrMissingAPIKey):
			a.error(w, http.StatusServiceUnavailable, "missing_api_key", "AI service credentials are not configured")
		case errors.Is(err, domain.ErrEmptyPrompt):
			a.error(w, http.StatusBadRequest, "empty_prompt", "describe or type a prompt first")
		default:
			a.error(w, http.StatusBadGateway, "provider_failure", "image generation failed")
		}
		return
	}

	key := "artwork/" + sess.ID + "/" + uuid.NewString() + extensionForMIME(art.MIME)
	if storedKey, werr := a.Files.Write(r.Context(), key, art.Data); werr != nil {
		a.Logger.Error().Err(werr).Msg("artwork cache write failed")
	} else {
		key = storedKey
	}

	var bindErr error
	current := sess.Finish(session.OpGenerate, gen, func() {
		bindErr = sess.SetArtwork(art.Data, art.MIME, a.assetURL(key), false)
	})
	if !current {
		a.json(w, http.StatusOK, generateResponse{State: sess.State()})
		return
	}
	if bindErr != nil {
		sess.SetError("The generated artwork could not be applied.")
		a.error(w, http.StatusUnprocessableEntity, "decode_failed", "generated artwork could not be decoded")
		return
	}
	a.json(w, http.StatusOK, generateResponse{State: sess.State(), ArtworkURL: a.assetURL(key)})
}

func extensionForMIME(mimeType string) string {
	exts, err := mime.ExtensionsByType(mimeType)
	if err != nil || len(exts) == 0 {
		return ".png"
	}
	return exts[0]
}
