package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"server/internal/providers/stock"
)

const defaultSearchWait = 15 * time.Second

type searchResponse struct {
	Items      []stock.Photo `json:"items"`
	Superseded bool          `json:"superseded,omitempty"`
}

// StockSearch runs a debounced stock-photo search. Rapid consecutive calls
// within the debounce window cancel each other; only the last one reaches
// the providers. ?immediate=true bypasses the debounce for explicit
// searches, as opposed to search-as-you-type.
func (a *App) StockSearch(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.currentSession(w, r)
	if !ok {
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		a.json(w, http.StatusOK, searchResponse{Items: []stock.Photo{}})
		return
	}
	count, _ := strconv.Atoi(r.URL.Query().Get("count"))

	if r.URL.Query().Get("immediate") == "true" {
		photos, err := a.Searcher.Search(r.Context(), query, count)
		if err != nil || photos == nil {
			photos = []stock.Photo{}
		}
		a.json(w, http.StatusOK, searchResponse{Items: photos})
		return
	}

	results := make(chan []stock.Photo, 1)
	sess.Debounce.Schedule(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		photos, err := a.Searcher.Search(ctx, query, count)
		if err != nil || photos == nil {
			photos = []stock.Photo{}
		}
		results <- photos
	})

	wait := a.SearchWait
	if wait <= 0 {
		wait = defaultSearchWait
	}
	select {
	case photos := <-results:
		a.json(w, http.StatusOK, searchResponse{Items: photos})
	case <-r.Context().Done():
		// Client moved on; a newer keystroke owns the debouncer now.
	case <-time.After(wait):
		a.json(w, http.StatusOK, searchResponse{Items: []stock.Photo{}, Superseded: true})
	}
}
