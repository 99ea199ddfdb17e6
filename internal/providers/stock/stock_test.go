package stock

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPexelsSearch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "pexels-key" {
			t.Fatalf("auth header = %s", got)
		}
		if got := r.URL.Query().Get("query"); got != "fox art" {
			t.Fatalf("query = %s", got)
		}
		if got := r.URL.Query().Get("per_page"); got != "3" {
			t.Fatalf("per_page = %s", got)
		}
		var resp pexelsResponse
		resp.Photos = make([]struct {
			Photographer string `json:"photographer"`
			Src          struct {
				Medium string `json:"medium"`
				Large  string `json:"large"`
			} `json:"src"`
		}, 2)
		resp.Photos[0].Photographer = "Alex"
		resp.Photos[0].Src.Medium = "https://img/thumb0"
		resp.Photos[0].Src.Large = "https://img/full0"
		resp.Photos[1].Src.Medium = "https://img/thumb1"
		resp.Photos[1].Src.Large = "https://img/full1"
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer ts.Close()

	c := NewPexelsClient(PexelsOptions{APIKey: "pexels-key", BaseURL: ts.URL})
	photos, err := c.Search(context.Background(), "fox art", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(photos) != 2 {
		t.Fatalf("photos = %d, want 2", len(photos))
	}
	if photos[0].ThumbURL != "https://img/thumb0" || photos[0].FullURL != "https://img/full0" {
		t.Fatalf("photo mapping wrong: %+v", photos[0])
	}
	if photos[0].Source != "pexels" {
		t.Fatalf("source = %s", photos[0].Source)
	}
}

func TestPexelsMissingKeySkipsNetwork(t *testing.T) {
	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer ts.Close()

	c := NewPexelsClient(PexelsOptions{BaseURL: ts.URL})
	photos, err := c.Search(context.Background(), "anything", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(photos) != 0 {
		t.Fatalf("photos = %d, want 0", len(photos))
	}
	if called {
		t.Fatal("network call issued without credentials")
	}
}

func TestPexelsFailureYieldsEmptyList(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer ts.Close()

	c := NewPexelsClient(PexelsOptions{APIKey: "pexels-key", BaseURL: ts.URL})
	photos, err := c.Search(context.Background(), "anything", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(photos) != 0 {
		t.Fatalf("photos = %d, want 0 on failure", len(photos))
	}
}

func TestUnsplashSearch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Client-ID unsplash-key" {
			t.Fatalf("auth header = %s", got)
		}
		var resp unsplashResponse
		resp.Results = make([]struct {
			User struct {
				Name string `json:"name"`
			} `json:"user"`
			URLs struct {
				Small   string `json:"small"`
				Regular string `json:"regular"`
			} `json:"urls"`
		}, 1)
		resp.Results[0].User.Name = "Sam"
		resp.Results[0].URLs.Small = "https://img/small"
		resp.Results[0].URLs.Regular = "https://img/regular"
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer ts.Close()

	c := NewUnsplashClient(UnsplashOptions{AccessKey: "unsplash-key", BaseURL: ts.URL})
	photos, err := c.Search(context.Background(), "fox art", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(photos) != 1 {
		t.Fatalf("photos = %d, want 1", len(photos))
	}
	if photos[0].Photographer != "Sam" || photos[0].Source != "unsplash" {
		t.Fatalf("photo mapping wrong: %+v", photos[0])
	}
}

type stubSearcher struct {
	photos []Photo
	err    error
	calls  int
}

func (s *stubSearcher) Search(ctx context.Context, query string, count int) ([]Photo, error) {
	s.calls++
	return s.photos, s.err
}

func TestMultiFirstNonEmptyWins(t *testing.T) {
	empty := &stubSearcher{}
	failing := &stubSearcher{err: errors.New("down")}
	full := &stubSearcher{photos: []Photo{{FullURL: "https://img/x", Source: "pexels"}}}
	unreached := &stubSearcher{photos: []Photo{{FullURL: "https://img/y", Source: "unsplash"}}}

	m := NewMulti(empty, failing, full, unreached)
	photos, err := m.Search(context.Background(), "q", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(photos) != 1 || photos[0].FullURL != "https://img/x" {
		t.Fatalf("unexpected result: %+v", photos)
	}
	if unreached.calls != 0 {
		t.Fatal("later provider queried after a hit")
	}
}

func TestMultiAllEmpty(t *testing.T) {
	m := NewMulti(&stubSearcher{}, &stubSearcher{err: errors.New("down")})
	photos, err := m.Search(context.Background(), "q", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if photos == nil || len(photos) != 0 {
		t.Fatalf("want empty non-nil list, got %#v", photos)
	}
}
