package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// LangChainProvider implements Completer on top of any langchaingo model.
type LangChainProvider struct {
	model   llms.Model
	name    string
	timeout time.Duration
}

// NewOpenAIProvider builds an OpenAI-compatible provider. baseURL may point at any compatible gateway.
func NewOpenAIProvider(apiKey, model, baseURL string, timeout time.Duration) (*LangChainProvider, error) {
	opts := []openai.Option{openai.WithToken(apiKey)}
	if model != "" {
		opts = append(opts, openai.WithModel(model))
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create openai client: %w", err)
	}
	return &LangChainProvider{model: llm, name: "openai", timeout: timeout}, nil
}

// NewOllamaProvider builds a provider backed by a local Ollama server.
func NewOllamaProvider(model, baseURL string, timeout time.Duration) (*LangChainProvider, error) {
	if model == "" {
		model = "llama3.2"
	}
	opts := []ollama.Option{ollama.WithModel(model)}
	if baseURL != "" {
		opts = append(opts, ollama.WithServerURL(baseURL))
	}
	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}
	return &LangChainProvider{model: llm, name: "ollama", timeout: timeout}, nil
}

func (p *LangChainProvider) Complete(ctx context.Context, prompt string) (string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	out, err := llms.GenerateFromSinglePrompt(ctx, p.model, prompt, llms.WithTemperature(0.3))
	if err != nil {
		return "", fmt.Errorf("%s: generate: %w", p.name, err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("%s: %w", p.name, ErrEmptyResponse)
	}
	return out, nil
}
