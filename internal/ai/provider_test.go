package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"skyguide/internal/config"
)

func TestNewProvider_Unsupported(t *testing.T) {
	_, closeFn, err := NewProvider(context.Background(), config.LLMConfig{Provider: "bard"})
	require.Error(t, err)
	require.NotNil(t, closeFn)
	assert.NoError(t, closeFn())
}

func TestNewProvider_Ollama(t *testing.T) {
	c, closeFn, err := NewProvider(context.Background(), config.LLMConfig{
		Provider: config.ProviderOllama,
		BaseURL:  "http://127.0.0.1:1",
	})
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &LangChainProvider{}, c)
}

func TestCompleterFunc(t *testing.T) {
	var c Completer = CompleterFunc(func(_ context.Context, prompt string) (string, error) {
		return "echo: " + prompt, nil
	})
	out, err := c.Complete(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "echo: hi", out)
}

// fakeModel is a minimal llms.Model for exercising LangChainProvider without a server.
type fakeModel struct {
	reply string
	err   error
}

func (m fakeModel) GenerateContent(_ context.Context, _ []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: m.reply}}}, nil
}

func (m fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func TestLangChainProvider_Complete(t *testing.T) {
	p := &LangChainProvider{model: fakeModel{reply: "  Hà Nội \n"}, name: "fake", timeout: time.Second}
	out, err := p.Complete(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "Hà Nội", out)
}

func TestLangChainProvider_EmptyReply(t *testing.T) {
	p := &LangChainProvider{model: fakeModel{reply: "   "}, name: "fake"}
	_, err := p.Complete(context.Background(), "prompt")
	assert.True(t, errors.Is(err, ErrEmptyResponse))
}

func TestLangChainProvider_Error(t *testing.T) {
	p := &LangChainProvider{model: fakeModel{err: errors.New("boom")}, name: "fake"}
	_, err := p.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
