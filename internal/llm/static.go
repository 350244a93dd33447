package llm

import (
	"context"
	"sync"
)

// Static is a deterministic generator that replays a fixed sequence of
// responses. It backs the "static" engine type and most pipeline tests.
// When the sequence is exhausted the last response repeats; with no
// responses configured every call returns ErrEmptyResponse.
type Static struct {
	mu        sync.Mutex
	responses []string
	calls     int
	prompts   []string
}

// NewStatic creates a Static generator replaying responses in order.
func NewStatic(responses ...string) *Static {
	return &Static{responses: responses}
}

// Generate implements [Generator].
func (s *Static) Generate(_ context.Context, _ string, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prompts = append(s.prompts, prompt)
	s.calls++

	if len(s.responses) == 0 {
		return "", ErrEmptyResponse
	}

	i := s.calls - 1
	if i >= len(s.responses) {
		i = len(s.responses) - 1
	}
	return s.responses[i], nil
}

// Calls returns how many times Generate has been invoked.
func (s *Static) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Prompts returns a copy of every prompt passed to Generate, in order.
func (s *Static) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.prompts))
	copy(out, s.prompts)
	return out
}

// Close implements [Generator].
func (s *Static) Close() error { return nil }
