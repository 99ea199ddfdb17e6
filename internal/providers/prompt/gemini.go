package prompt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"server/internal/domain"
)

const geminiDefaultTimeout = 15 * time.Second

type GeminiOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	Fallback   Describer
}

// GeminiClient implements Describer and Enhancer over the generateContent
// REST API. Description failures degrade to the fallback describer;
// enhancement failures surface so the caller can keep the original prompt.
type GeminiClient struct {
	apiKey   string
	model    string
	baseURL  string
	client   *http.Client
	fallback Describer
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature    float64 `json:"temperature,omitempty"`
	CandidateCount int     `json:"candidateCount,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func NewGeminiClient(opts GeminiOptions) *GeminiClient {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "gemini-1.5-flash"
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: geminiDefaultTimeout}
	}
	fallback := opts.Fallback
	if fallback == nil {
		fallback = NewStaticDescriber()
	}
	return &GeminiClient{
		apiKey:   strings.TrimSpace(opts.APIKey),
		model:    model,
		baseURL:  baseURL,
		client:   client,
		fallback: fallback,
	}
}

func (g *GeminiClient) Describe(ctx context.Context, theme domain.Theme) (string, error) {
	if g.apiKey == "" {
		return g.fallback.Describe(ctx, theme)
	}
	text, err := g.generate(ctx, g.buildDescribePrompt(theme), 0.9)
	if err != nil {
		return g.fallback.Describe(ctx, theme)
	}
	return text, nil
}

func (g *GeminiClient) Enhance(ctx context.Context, promptText string, theme domain.Theme) (string, error) {
	if g.apiKey == "" {
		return "", domain.ErrMissingAPIKey
	}
	return g.generate(ctx, g.buildEnhancePrompt(promptText, theme), 0.6)
}

func (g *GeminiClient) generate(ctx context.Context, instruction string, temperature float64) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: instruction}},
		}},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:    temperature,
			CandidateCount: 1,
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return "", err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint(), &buf)
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", g.apiKey)
	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: gemini http %d", domain.ErrProviderFailure, resp.StatusCode)
	}
	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	text := extractText(out)
	if text == "" {
		return "", fmt.Errorf("%w: empty response", domain.ErrProviderFailure)
	}
	return text, nil
}

func (g *GeminiClient) endpoint() string {
	return fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimRight(g.baseURL, "/"), url.PathEscape(g.model), url.QueryEscape(g.apiKey))
}

func extractText(resp geminiResponse) string {
	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if s := strings.TrimSpace(part.Text); s != "" {
				return s
			}
		}
	}
	return ""
}

func (g *GeminiClient) buildDescribePrompt(theme domain.Theme) string {
	sb := &strings.Builder{}
	sb.WriteString("You write prompts for T-shirt graphic generation. ")
	fmt.Fprintf(sb, "Write one short, vivid description (at most 25 words) of a shirt graphic on the theme %q. ", theme)
	sb.WriteString("Respond with the description only, no preamble and no quotes.")
	return sb.String()
}

func (g *GeminiClient) buildEnhancePrompt(promptText string, theme domain.Theme) string {
	sb := &strings.Builder{}
	sb.WriteString("You refine prompts for an AI image generator that renders T-shirt graphics. ")
	fmt.Fprintf(sb, "Theme: %s. Rewrite the following prompt to be more specific about subject, composition and palette while keeping the user's intent: %q. ", theme, promptText)
	sb.WriteString("Respond with the revised prompt only.")
	return sb.String()
}

var (
	_ Describer = (*GeminiClient)(nil)
	_ Enhancer  = (*GeminiClient)(nil)
)
