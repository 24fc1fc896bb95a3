package transform

import (
	"context"
	"errors"
	"testing"
	"time"

	"contract-workflow-be/pkg/llm"
	"contract-workflow-be/pkg/llm/llmtest"
	"contract-workflow-be/pkg/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name" validate:"required"`
	Level string `json:"level" validate:"required,oneof=low high"`
}

func TestTransformer_Into(t *testing.T) {
	tests := []struct {
		name     string
		response string
		wantErr  error
		want     sample
	}{
		{
			name:     "plain json",
			response: `{"name":"deal","level":"low"}`,
			want:     sample{Name: "deal", Level: "low"},
		},
		{
			name:     "fenced json with chatter",
			response: "Sure, here it is:\n```json\n{\"name\":\"deal\",\"level\":\"high\"}\n```",
			want:     sample{Name: "deal", Level: "high"},
		},
		{
			name:     "no json",
			response: "I cannot help with that.",
			wantErr:  ErrOutputValidation,
		},
		{
			name:     "malformed json",
			response: `{"name": "deal", "level": }`,
			wantErr:  ErrOutputValidation,
		},
		{
			name:     "schema violation",
			response: `{"name":"deal","level":"extreme"}`,
			wantErr:  ErrOutputValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(llmtest.Always(tt.response), time.Second)

			var got sample
			err := tr.Into(context.Background(), "sample", "prompt", &got)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, errors.Is(err, schema.ErrValidation), "output errors must stay retryable")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransformer_UpstreamError(t *testing.T) {
	boom := errors.New("quota exceeded")
	tr := New(llmtest.Failing(boom), time.Second)

	var got sample
	err := tr.Into(context.Background(), "sample", "prompt", &got)

	assert.ErrorIs(t, err, ErrUpstream)
	assert.ErrorIs(t, err, boom)
}

type slowProvider struct{}

func (slowProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (p slowProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return p.Generate(ctx, "", options...)
}

func TestTransformer_TimeoutIsUpstreamError(t *testing.T) {
	tr := New(slowProvider{}, 20*time.Millisecond)

	_, err := tr.Raw(context.Background(), "prompt")

	assert.ErrorIs(t, err, ErrUpstream)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTransformer_Raw(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
		wantErr  bool
	}{
		{name: "array", response: "```json\n[{\"a\":1},{\"b\":2}]\n```", want: `[{"a":1},{"b":2}]`},
		{name: "object", response: `Result: {"items":[1,2]}`, want: `{"items":[1,2]}`},
		{name: "free text", response: "looks similar", wantErr: true},
		{name: "broken", response: `{"a": [1, 2}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := New(llmtest.Always(tt.response), 0).Raw(context.Background(), "prompt")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrOutputValidation)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(raw))
		})
	}
}
