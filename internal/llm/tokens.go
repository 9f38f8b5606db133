package llm

import (
	"sync"

	"github.com/tiktoken-go/tokenizer"
)

var (
	codecOnce sync.Once
	codec     tokenizer.Codec
)

// CountTokens approximates the prompt size with the cl100k_base encoding.
// If the codec cannot be loaded it falls back to four bytes per token.
func CountTokens(text string) int {
	if text == "" {
		return 0
	}
	codecOnce.Do(func() {
		enc, err := tokenizer.Get(tokenizer.Cl100kBase)
		if err == nil {
			codec = enc
		}
	})
	if codec != nil {
		if n, err := codec.Count(text); err == nil {
			return n
		}
	}
	return (len(text) + 3) / 4
}

// RequestTokens counts the system and user prompt of req.
func RequestTokens(req Request) int {
	return CountTokens(req.System) + CountTokens(req.Prompt)
}
