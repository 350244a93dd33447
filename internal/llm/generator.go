// Package llm abstracts the hosted text-generation service behind a small
// capability interface so pipeline stages are testable with a deterministic
// engine.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// ErrGeneration indicates the service returned a malformed or empty
// response. Generation stages fail fast on it; only the evaluator retries.
var ErrGeneration = errors.New("generation failed")

// ErrEmptyResponse is the empty-response flavor of a generation failure.
var ErrEmptyResponse = fmt.Errorf("%w: empty response", ErrGeneration)

// Generator is the capability interface for all LLM-backed stages: one
// prompt in, generated text out. Implementations make one network call per
// Generate; retry policy belongs to the caller.
type Generator interface {
	// Generate sends prompt to the service and returns the raw text reply.
	Generate(ctx context.Context, model string, prompt string) (string, error)

	// Close releases the underlying client.
	Close() error
}

// Engine types selectable in ytbench.yaml.
const (
	EngineGemini = "gemini"
	EngineStatic = "static"
)

// StaticOptions configures the deterministic engine.
type StaticOptions struct {
	Responses []string `mapstructure:"responses"`
}

// New creates a Generator from an engine type and its option map, as
// configured in ytbench.yaml. The gemini engine requires apiKey; the static
// engine ignores it.
func New(ctx context.Context, engineType, apiKey string, options map[string]any) (Generator, error) {
	switch engineType {
	case EngineGemini:
		return NewGemini(ctx, apiKey)
	case EngineStatic:
		var opts StaticOptions
		if err := mapstructure.Decode(options, &opts); err != nil {
			return nil, fmt.Errorf("decode static engine options: %w", err)
		}
		return NewStatic(opts.Responses...), nil
	default:
		return nil, fmt.Errorf("unknown engine type: %s", engineType)
	}
}
