package translate

import (
	"context"
	"fmt"
	"sync"
)

// Provider translates a batch of cue texts into one target language. A
// failure is reported, never retried here; retry policy belongs to the
// caller.
type Provider interface {
	Translate(ctx context.Context, texts []string, targetLang string) ([]string, error)
}

// StaticProvider serves translations from an in-memory table, keyed by
// target language and source text. Missing entries translate to the empty
// string so the caller's skip accounting sees them.
type StaticProvider struct {
	mu    sync.Mutex
	table map[string]map[string]string
}

// NewStaticProvider builds a provider over language -> source text ->
// translated text.
func NewStaticProvider(table map[string]map[string]string) *StaticProvider {
	return &StaticProvider{table: table}
}

func (p *StaticProvider) Translate(ctx context.Context, texts []string, targetLang string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	entries, ok := p.table[targetLang]
	if !ok {
		return nil, fmt.Errorf("no translations for language %q", targetLang)
	}
	out := make([]string, len(texts))
	for i, text := range texts {
		out[i] = entries[text]
	}
	return out, nil
}
