package stock

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const unsplashDefaultTimeout = 10 * time.Second

type UnsplashOptions struct {
	AccessKey  string
	BaseURL    string
	HTTPClient *http.Client
}

// UnsplashClient queries the Unsplash photo search API. Without an access
// key it returns empty results and never touches the network.
type UnsplashClient struct {
	accessKey string
	baseURL   string
	client    *http.Client
}

type unsplashResponse struct {
	Results []struct {
		User struct {
			Name string `json:"name"`
		} `json:"user"`
		URLs struct {
			Small   string `json:"small"`
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
}

func NewUnsplashClient(opts UnsplashOptions) *UnsplashClient {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = "https://api.unsplash.com"
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: unsplashDefaultTimeout}
	}
	return &UnsplashClient{
		accessKey: strings.TrimSpace(opts.AccessKey),
		baseURL:   base,
		client:    client,
	}
}

func (c *UnsplashClient) Search(ctx context.Context, query string, count int) ([]Photo, error) {
	if c.accessKey == "" || strings.TrimSpace(query) == "" {
		return []Photo{}, nil
	}
	if count <= 0 {
		count = 6
	}
	endpoint := fmt.Sprintf("%s/search/photos?query=%s&per_page=%d", c.baseURL, url.QueryEscape(query), count)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return []Photo{}, nil
	}
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return []Photo{}, nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return []Photo{}, nil
	}
	var out unsplashResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return []Photo{}, nil
	}
	photos := make([]Photo, 0, len(out.Results))
	for _, r := range out.Results {
		photos = append(photos, Photo{
			ThumbURL:     r.URLs.Small,
			FullURL:      r.URLs.Regular,
			Photographer: r.User.Name,
			Source:       "unsplash",
		})
	}
	return photos, nil
}

var _ Searcher = (*UnsplashClient)(nil)
