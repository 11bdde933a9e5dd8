package assistant

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/sharjeelz/famories/internal/apperr"
)

// OpenAI implements Completer and Transcriber against the OpenAI API or
// any compatible endpoint.
type OpenAI struct {
	client openai.Client
	model  string
}

// OpenAIOption configures the OpenAI backend.
type OpenAIOption func(*openAIConfig)

type openAIConfig struct {
	model   string
	baseURL string
}

// WithModel sets the chat completion model.
func WithModel(model string) OpenAIOption {
	return func(c *openAIConfig) { c.model = model }
}

// WithBaseURL points the client at an OpenAI-compatible endpoint.
func WithBaseURL(url string) OpenAIOption {
	return func(c *openAIConfig) { c.baseURL = url }
}

// NewOpenAI creates the backend. apiKey is required.
func NewOpenAI(apiKey string, opts ...OpenAIOption) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("assistant: OpenAI API key is required")
	}
	cfg := openAIConfig{model: "gpt-4"}
	for _, opt := range opts {
		opt(&cfg)
	}
	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if cfg.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.baseURL))
	}
	return &OpenAI{
		client: openai.NewClient(reqOpts...),
		model:  cfg.model,
	}, nil
}

// Complete sends one system plus one user message and returns the first
// choice verbatim.
func (o *OpenAI) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", fmt.Errorf("assistant: completion: %w: %v", apperr.ErrServiceUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("assistant: completion returned no choices: %w", apperr.ErrServiceUnavailable)
	}
	return resp.Choices[0].Message.Content, nil
}

// Transcribe converts an uploaded audio file to text. An empty
// transcript is treated as unrecognized speech.
func (o *OpenAI) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	resp, err := o.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model: openai.AudioModelWhisper1,
		File:  openai.File(audio, filename, "application/octet-stream"),
	})
	if err != nil {
		return "", fmt.Errorf("assistant: transcription: %w: %v", apperr.ErrServiceUnavailable, err)
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", apperr.ErrUnintelligibleAudio
	}
	return text, nil
}
