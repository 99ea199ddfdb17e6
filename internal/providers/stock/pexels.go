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

const pexelsDefaultTimeout = 10 * time.Second

type PexelsOptions struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// PexelsClient queries the Pexels photo search API. Without an API key it
// returns empty results and never touches the network.
type PexelsClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

type pexelsResponse struct {
	Photos []struct {
		Photographer string `json:"photographer"`
		Src          struct {
			Medium string `json:"medium"`
			Large  string `json:"large"`
		} `json:"src"`
	} `json:"photos"`
}

func NewPexelsClient(opts PexelsOptions) *PexelsClient {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = "https://api.pexels.com/v1"
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: pexelsDefaultTimeout}
	}
	return &PexelsClient{
		apiKey:  strings.TrimSpace(opts.APIKey),
		baseURL: base,
		client:  client,
	}
}

func (c *PexelsClient) Search(ctx context.Context, query string, count int) ([]Photo, error) {
	if c.apiKey == "" || strings.TrimSpace(query) == "" {
		return []Photo{}, nil
	}
	if count <= 0 {
		count = 6
	}
	endpoint := fmt.Sprintf("%s/search?query=%s&per_page=%d", c.baseURL, url.QueryEscape(query), count)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return []Photo{}, nil
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return []Photo{}, nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return []Photo{}, nil
	}
	var out pexelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return []Photo{}, nil
	}
	photos := make([]Photo, 0, len(out.Photos))
	for _, p := range out.Photos {
		photos = append(photos, Photo{
			ThumbURL:     p.Src.Medium,
			FullURL:      p.Src.Large,
			Photographer: p.Photographer,
			Source:       "pexels",
		})
	}
	return photos, nil
}

var _ Searcher = (*PexelsClient)(nil)
