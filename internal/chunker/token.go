package chunker

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

// Sizer measures how big a piece of text is.
type Sizer interface {
	Size(text string) int
}

// CharSizer counts runes.
type CharSizer struct{}

func (CharSizer) Size(text string) int {
	return utf8.RuneCountInString(text)
}

// TokenSizer counts BPE tokens of a named model's encoding.
type TokenSizer struct {
	model string
	enc   *tiktoken.Tiktoken
}

// NewTokenSizer fails for models without a known encoding, or when the
// encoding cannot be loaded.
func NewTokenSizer(model string) (*TokenSizer, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("tokenizer for model %q: %w", model, err)
	}
	return &TokenSizer{model: model, enc: enc}, nil
}

func (s *TokenSizer) Size(text string) int {
	return len(s.enc.Encode(text, nil, nil))
}

func (s *TokenSizer) Model() string {
	return s.model
}

// SizerForModel resolves a model name: "chars" (or empty) counts runes,
// anything else is looked up as a tokenizer model.
func SizerForModel(model string) (Sizer, error) {
	switch strings.ToLower(strings.TrimSpace(model)) {
	case "", "chars", "characters":
		return CharSizer{}, nil
	}
	ts, err := NewTokenSizer(model)
	if err != nil {
		return nil, err
	}
	return ts, nil
}

// EstimateTokens gives a rough token count using the ~1.33 tokens/word heuristic.
// Used for reporting only; chunk boundaries use a Sizer.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	words := len(strings.Fields(text))
	tokens := int(float64(words) * 1.33)
	if tokens < 1 && len(text) > 0 {
		tokens = 1
	}
	return tokens
}
