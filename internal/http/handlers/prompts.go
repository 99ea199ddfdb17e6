package handlers

import (
	"errors"
	"net/http"
	"strings"

	"server/internal/domain"
	"server/internal/session"
)

type promptResponse struct {
	State  session.State `json:"state"`
	Prompt string        `json:"prompt"`
}

// PromptDescribe asks the text provider for a fresh design description for
// the session's current theme and stores it as the prompt text.
func (a *App) PromptDescribe(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.currentSession(w, r)
	if !ok {
		return
	}
	gen, ok := sess.Begin(session.OpDescribe)
	if !ok {
		a.error(w, http.StatusConflict, "busy", "a describe request is already in flight")
		return
	}

	theme := sess.Design().Theme
	text, err := a.Describer.Describe(r.Context(), theme)
	if err != nil {
		sess.Finish(session.OpDescribe, gen, func() {
			sess.SetError("The AI text service is unavailable right now.")
		})
		a.error(w, http.StatusBadGateway, "provider_failure", "describe failed")
		return
	}

	current := sess.Finish(session.OpDescribe, gen, func() {
		sess.Update(domain.Patch{PromptText: &text})
	})
	if !current {
		a.json(w, http.StatusOK, promptResponse{State: sess.State(), Prompt: ""})
		return
	}
	a.json(w, http.StatusOK, promptResponse{State: sess.State(), Prompt: text})
}

// PromptEnhance rewrites the session's prompt text through the text
// provider. Without credentials the provider refuses instead of degrading.
func (a *App) PromptEnhance(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.currentSession(w, r)
	if !ok {
		return
	}
	cfg := sess.Design()
	if strings.TrimSpace(cfg.PromptText) == "" {
		a.error(w, http.StatusBadRequest, "empty_prompt", "describe or type a prompt first")
		return
	}
	gen, ok := sess.Begin(session.OpEnhance)
	if !ok {
		a.error(w, http.StatusConflict, "busy", "an enhance request is already in flight")
		return
	}

	enhanced, err := a.Enhancer.Enhance(r.Context(), cfg.PromptText, cfg.Theme)
	if err != nil {
		sess.Finish(session.OpEnhance, gen, nil)
		switch {
		case errors.Is(err, domain.ErrMissingAPIKey):
			a.error(w, http.StatusServiceUnavailable, "missing_api_key", "AI service credentials are not configured")
		default:
			sess.SetError("Prompt enhancement failed; your text is unchanged.")
			a.error(w, http.StatusBadGateway, "provider_failure", "enhance failed")
		}
		return
	}

	current := sess.Finish(session.OpEnhance, gen, func() {
		sess.Update(domain.Patch{PromptText: &enhanced})
	})
	if !current {
		a.json(w, http.StatusOK, promptResponse{State: sess.State(), Prompt: ""})
		return
	}
	a.json(w, http.StatusOK, promptResponse{State: sess.State(), Prompt: enhanced})
}
