// Package llm adapts the hosted completion model to the dialogue controller.
package llm

import (
	"context"
	"iter"
	"strings"

	"github.com/muhammadolammi/bulletdoctor/internal/session"
)

// Provider streams a completion for an assembled prompt. The returned
// sequence is lazy and can be ranged over once.
type Provider interface {
	Stream(ctx context.Context, messages []session.Message) iter.Seq2[string, error]
}

// Collect drains seq, passing each fragment to onChunk, and returns the
// concatenated text. It stops at the first error.
func Collect(seq iter.Seq2[string, error], onChunk func(string)) (string, error) {
	var b strings.Builder
	for chunk, err := range seq {
		if err != nil {
			return b.String(), err
		}
		if chunk == "" {
			continue
		}
		if onChunk != nil {
			onChunk(chunk)
		}
		b.WriteString(chunk)
	}
	return b.String(), nil
}
