package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"contract-workflow-be/pkg/llm"
)

const defaultTemperature = 0.2

var errEmptyResponse = errors.New("ollama returned an empty response")

// OllamaProvider talks to a local Ollama server. Deadlines come from the
// caller's context.
type OllamaProvider struct {
	BaseURL   string
	ModelName string
	Client    *http.Client
}

var _ llm.LLMProvider = &OllamaProvider{}

func NewOllamaProvider(baseURL, modelName string) *OllamaProvider {
	return &OllamaProvider{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		ModelName: modelName,
		Client:    &http.Client{},
	}
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type chatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Format   string          `json:"format,omitempty"`
	Options  ollamaOptions   `json:"options"`
}

type chatResponse struct {
	Message ollamaMessage `json:"message"`
}

type generateRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Format  string        `json:"format,omitempty"`
	Options ollamaOptions `json:"options"`
}

type generateResponse struct {
	Response string `json:"response"`
}

func (o *OllamaProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.Apply(llm.Options{Temperature: defaultTemperature}, opts...)

	messages := make([]ollamaMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = "assistant"
		}
		messages[i] = ollamaMessage{Role: role, Content: msg.Content}
	}

	var res chatResponse
	err := o.post(ctx, "/api/chat", chatRequest{
		Model:    o.model(options),
		Messages: messages,
		Format:   format(options),
		Options:  ollamaOptions{Temperature: options.Temperature, NumPredict: options.MaxTokens},
	}, &res)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(res.Message.Content) == "" {
		return "", errEmptyResponse
	}
	return res.Message.Content, nil
}

// Generate uses the completion endpoint, which skips the chat template.
func (o *OllamaProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	options := llm.Apply(llm.Options{Temperature: defaultTemperature}, opts...)

	var res generateResponse
	err := o.post(ctx, "/api/generate", generateRequest{
		Model:   o.model(options),
		Prompt:  prompt,
		Format:  format(options),
		Options: ollamaOptions{Temperature: options.Temperature, NumPredict: options.MaxTokens},
	}, &res)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(res.Response) == "" {
		return "", errEmptyResponse
	}
	return res.Response, nil
}

func (o *OllamaProvider) model(options llm.Options) string {
	if options.Model != "" {
		return options.Model
	}
	return o.ModelName
}

func format(options llm.Options) string {
	if options.JSONResponse {
		return "json"
	}
	return ""
}

func (o *OllamaProvider) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.Client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama error: status %d, body: %s", resp.StatusCode, string(raw))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
