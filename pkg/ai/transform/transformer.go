// Package transform turns a prompt into a parsed, schema-checked value by way
// of a language model.
package transform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"contract-workflow-be/pkg/llm"
	"contract-workflow-be/pkg/schema"
)

var (
	// ErrOutputValidation means the model answered but the answer is unusable.
	ErrOutputValidation = errors.New("model output failed validation")
	// ErrUpstream means the model call itself failed or timed out.
	ErrUpstream = errors.New("language model request failed")
)

type Transformer struct {
	provider  llm.LLMProvider
	validator *schema.Validator
	timeout   time.Duration
	options   []llm.Option
}

// New wires a transformer. A zero timeout leaves the caller's deadline as the only bound.
func New(provider llm.LLMProvider, timeout time.Duration, options ...llm.Option) *Transformer {
	return &Transformer{
		provider:  provider,
		validator: schema.Default(),
		timeout:   timeout,
		options:   options,
	}
}

// Into decodes the model's JSON object into out and validates it under schemaName.
func (t *Transformer) Into(ctx context.Context, schemaName, prompt string, out interface{}) error {
	response, err := t.complete(ctx, prompt)
	if err != nil {
		return err
	}

	jsonContent := extractJSON(response, '{', '}')
	if jsonContent == "" {
		return fmt.Errorf("%w: no JSON object in %s response", ErrOutputValidation, schemaName)
	}

	if err := json.Unmarshal([]byte(jsonContent), out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrOutputValidation, schemaName, err)
	}

	if err := t.validator.Validate(schemaName, out); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputValidation, err)
	}

	return nil
}

// Raw returns the first JSON array or object in the response, checked only for well-formedness.
func (t *Transformer) Raw(ctx context.Context, prompt string) (json.RawMessage, error) {
	response, err := t.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	jsonContent := extractJSON(response, '[', ']')
	if obj := extractJSON(response, '{', '}'); obj != "" &&
		(jsonContent == "" || strings.Index(response, obj) < strings.Index(response, jsonContent)) {
		jsonContent = obj
	}

	if jsonContent == "" || !json.Valid([]byte(jsonContent)) {
		return nil, fmt.Errorf("%w: response is not well-formed JSON", ErrOutputValidation)
	}

	return json.RawMessage(jsonContent), nil
}

func (t *Transformer) complete(ctx context.Context, prompt string) (string, error) {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	response, err := t.provider.Generate(ctx, prompt, t.options...)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return response, nil
}

// extractJSON isolates the outermost open...close span, which also strips
// markdown fences and chatter around the payload.
func extractJSON(response string, open, close byte) string {
	startIdx := strings.IndexByte(response, open)
	endIdx := strings.LastIndexByte(response, close)

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return ""
	}

	return response[startIdx : endIdx+1]
}
