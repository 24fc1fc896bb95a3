// Package llmtest provides a scripted LLMProvider for tests.
package llmtest

import (
	"context"
	"fmt"
	"sync"

	"contract-workflow-be/pkg/llm"
)

// Reply is one scripted answer. A non-nil Err is returned instead of Text.
type Reply struct {
	Text string
	Err  error
}

// Scripted answers prompts in order. Once the script is exhausted the last
// reply repeats.
type Scripted struct {
	mu      sync.Mutex
	replies []Reply
	prompts []string
}

func NewScripted(replies ...Reply) *Scripted {
	return &Scripted{replies: replies}
}

// Always returns a provider that answers every prompt with text.
func Always(text string) *Scripted {
	return NewScripted(Reply{Text: text})
}

// Failing returns a provider whose every call fails with err.
func Failing(err error) *Scripted {
	return NewScripted(Reply{Err: err})
}

func (s *Scripted) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.replies) == 0 {
		return "", fmt.Errorf("llmtest: no scripted reply")
	}

	idx := len(s.prompts)
	if idx >= len(s.replies) {
		idx = len(s.replies) - 1
	}
	s.prompts = append(s.prompts, prompt)

	r := s.replies[idx]
	return r.Text, r.Err
}

func (s *Scripted) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	var prompt string
	if len(history) > 0 {
		prompt = history[len(history)-1].Content
	}
	return s.Generate(ctx, prompt, options...)
}

// Prompts returns every prompt received so far.
func (s *Scripted) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}

func (s *Scripted) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}
