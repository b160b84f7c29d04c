package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultHTTPTimeout = 30 * time.Second

// HTTPProvider calls an external translation service. The service accepts a
// JSON body {"texts": [...], "target_lang": "xx"} and answers
// {"translations": [...]} with one entry per input text.
type HTTPProvider struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// HTTPOption customizes the HTTP provider.
type HTTPOption func(*HTTPProvider)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(p *HTTPProvider) {
		if client != nil {
			p.httpClient = client
		}
	}
}

// WithAPIKey sets the bearer token sent with every request.
func WithAPIKey(key string) HTTPOption {
	return func(p *HTTPProvider) {
		p.apiKey = strings.TrimSpace(key)
	}
}

// NewHTTPProvider constructs a provider against the given endpoint.
func NewHTTPProvider(endpoint string, opts ...HTTPOption) *HTTPProvider {
	provider := &HTTPProvider{
		endpoint:   strings.TrimRight(strings.TrimSpace(endpoint), "/"),
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(provider)
	}
	if provider.httpClient == nil {
		provider.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return provider
}

type translateRequest struct {
	Texts      []string `json:"texts"`
	TargetLang string   `json:"target_lang"`
}

type translateResponse struct {
	Translations []string `json:"translations"`
	Error        string   `json:"error,omitempty"`
}

func (p *HTTPProvider) Translate(ctx context.Context, texts []string, targetLang string) ([]string, error) {
	if p.endpoint == "" {
		return nil, errors.New("translate: endpoint required")
	}
	if len(texts) == 0 {
		return nil, nil
	}
	encoded, err := json.Marshal(translateRequest{Texts: texts, TargetLang: targetLang})
	if err != nil {
		return nil, fmt.Errorf("translate: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("translate: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("translate: request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("translate: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("translate: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var decoded translateResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("translate: decode response: %w", err)
	}
	if decoded.Error != "" {
		return nil, fmt.Errorf("translate: service error: %s", strings.TrimSpace(decoded.Error))
	}
	if len(decoded.Translations) != len(texts) {
		return nil, fmt.Errorf("translate: got %d translations for %d texts", len(decoded.Translations), len(texts))
	}
	return decoded.Translations, nil
}
