// Package stock wraps the interchangeable stock-photo search providers.
// Missing credentials and provider failures both degrade to an empty result
// list; search is reference material for the user, never a hard dependency.
package stock

import "context"

// Photo is one search hit with thumbnail and full-size URLs.
type Photo struct {
	ThumbURL     string `json:"thumb_url"`
	FullURL      string `json:"full_url"`
	Photographer string `json:"photographer,omitempty"`
	Source       string `json:"source"`
}

// Searcher is the contract implemented by every stock-photo provider.
type Searcher interface {
	Search(ctx context.Context, query string, count int) ([]Photo, error)
}

// Multi tries providers in order and returns the first non-empty result
// set. Errors are swallowed into empty lists, matching the per-provider
// behavior.
type Multi struct {
	providers []Searcher
}

func NewMulti(providers ...Searcher) *Multi {
	return &Multi{providers: providers}
}

func (m *Multi) Search(ctx context.Context, query string, count int) ([]Photo, error) {
	for _, p := range m.providers {
		photos, err := p.Search(ctx, query, count)
		if err != nil {
			continue
		}
		if len(photos) > 0 {
			return photos, nil
		}
	}
	return []Photo{}, nil
}

var _ Searcher = (*Multi)(nil)
