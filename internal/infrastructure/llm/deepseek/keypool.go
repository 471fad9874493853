package deepseek

import (
	"strings"

	"itpf-legal-api/internal/domain/corpus"
	apperrors "itpf-legal-api/pkg/errors"
)

// Placeholder values that sometimes leak in from deployment templates;
// treated the same as blank entries.
var placeholderKeys = map[string]bool{
	"your-actual-deepseek-key-here": true,
	"your_actual_key_here":          true,
}

// KeyPool is the ordered, read-only pool of upstream credentials.
// Selection is a pure function of (language, attempt), so concurrent
// requests may legitimately pick the same key.
type KeyPool struct {
	keys []string
}

// NewKeyPool builds a pool from the configured credential list,
// dropping blank and placeholder entries.
func NewKeyPool(keys []string) *KeyPool {
	valid := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" || placeholderKeys[k] {
			continue
		}
		valid = append(valid, k)
	}
	return &KeyPool{keys: valid}
}

// Size returns the number of usable credentials.
func (p *KeyPool) Size() int {
	return len(p.keys)
}

// Select picks the credential for the given retry attempt. Arabic
// requests are biased to the second key onward, reserving it for the
// heavier Arabic processing path.
func (p *KeyPool) Select(lang corpus.Language, attempt int) (string, error) {
	if len(p.keys) == 0 {
		return "", apperrors.ErrNoCredentials
	}
	bias := 0
	if lang == corpus.LanguageArabic {
		bias = 1
	}
	return p.keys[(attempt+bias)%len(p.keys)], nil
}

// MaxAttempts is the number of single-call attempts allowed before a
// throttled or failing upstream error is surfaced: one per key.
func (p *KeyPool) MaxAttempts() int {
	if len(p.keys) == 0 {
		return 0
	}
	return len(p.keys)
}
