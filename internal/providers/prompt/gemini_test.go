package prompt

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"server/internal/domain"
)

func geminiTextResponse(text string) geminiResponse {
	var resp geminiResponse
	resp.Candidates = []struct {
		Content geminiContent `json:"content"`
	}{{Content: geminiContent{Role: "model", Parts: []geminiPart{{Text: text}}}}}
	return resp
}

func TestGeminiDescribe(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-goog-api-key"); got != "test-key" {
			t.Fatalf("unexpected api key header: %s", got)
		}
		var payload geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(payload.Contents) != 1 || len(payload.Contents[0].Parts) != 1 {
			t.Fatalf("unexpected payload shape: %+v", payload)
		}
		if !strings.Contains(payload.Contents[0].Parts[0].Text, "space") {
			t.Fatalf("instruction does not mention the theme: %s", payload.Contents[0].Parts[0].Text)
		}
		_ = json.NewEncoder(w).Encode(geminiTextResponse("A ringed planet over a violet nebula"))
	}))
	defer ts.Close()

	client := NewGeminiClient(GeminiOptions{APIKey: "test-key", BaseURL: ts.URL})
	got, err := client.Describe(context.Background(), domain.ThemeSpace)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if got != "A ringed planet over a violet nebula" {
		t.Fatalf("unexpected description: %s", got)
	}
}

func TestGeminiDescribeFallsBackOnFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := NewGeminiClient(GeminiOptions{APIKey: "test-key", BaseURL: ts.URL})
	got, err := client.Describe(context.Background(), domain.ThemeNature)
	if err != nil {
		t.Fatalf("Describe should fall back, got error: %v", err)
	}
	if !strings.Contains(got, "forest") {
		t.Fatalf("fallback description unexpected: %s", got)
	}
}

func TestGeminiDescribeWithoutKeyUsesFallback(t *testing.T) {
	client := NewGeminiClient(GeminiOptions{})
	got, err := client.Describe(context.Background(), domain.ThemeRetro)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if got == "" {
		t.Fatal("fallback description is empty")
	}
}

func TestGeminiEnhance(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(geminiTextResponse("a detailed fox portrait, centered, warm autumn palette"))
	}))
	defer ts.Close()

	client := NewGeminiClient(GeminiOptions{APIKey: "test-key", BaseURL: ts.URL})
	got, err := client.Enhance(context.Background(), "a fox", domain.ThemeAnimals)
	if err != nil {
		t.Fatalf("Enhance: %v", err)
	}
	if !strings.Contains(got, "fox portrait") {
		t.Fatalf("unexpected enhancement: %s", got)
	}
}

func TestGeminiEnhanceMissingKey(t *testing.T) {
	client := NewGeminiClient(GeminiOptions{})
	_, err := client.Enhance(context.Background(), "a fox", domain.ThemeAnimals)
	if !errors.Is(err, domain.ErrMissingAPIKey) {
		t.Fatalf("error = %v, want ErrMissingAPIKey", err)
	}
}

func TestGeminiEnhanceProviderFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	client := NewGeminiClient(GeminiOptions{APIKey: "test-key", BaseURL: ts.URL})
	_, err := client.Enhance(context.Background(), "a fox", domain.ThemeAnimals)
	if !errors.Is(err, domain.ErrProviderFailure) {
		t.Fatalf("error = %v, want ErrProviderFailure", err)
	}
}

func TestStaticDescriberCoversAllThemes(t *testing.T) {
	s := NewStaticDescriber()
	for _, theme := range []domain.Theme{
		domain.ThemeAbstract, domain.ThemeNature, domain.ThemeSpace,
		domain.ThemeRetro, domain.ThemeTypography, domain.ThemeAnimals,
	} {
		got, err := s.Describe(context.Background(), theme)
		if err != nil {
			t.Fatalf("Describe(%s): %v", theme, err)
		}
		if got == "" {
			t.Fatalf("empty description for theme %s", theme)
		}
	}
}
