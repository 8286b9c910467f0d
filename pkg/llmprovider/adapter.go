package llmprovider

import (
	"context"

	"homework-planner/pkg/gemini"
	"homework-planner/pkg/perplexity"
)

// PerplexityAdapter adapts pkg/perplexity to llmprovider.Provider interface.
// Any OpenAI-compatible chat endpoint can sit behind it under its own name.
type PerplexityAdapter struct {
	client perplexity.IPerplexity
	name   string
}

// NewPerplexityAdapter creates a new Perplexity adapter
func NewPerplexityAdapter(client perplexity.IPerplexity) *PerplexityAdapter {
	return &PerplexityAdapter{client: client, name: "perplexity"}
}

// NewChatCompletionsAdapter names an OpenAI-compatible endpoint reached through the perplexity client.
func NewChatCompletionsAdapter(name string, client perplexity.IPerplexity) *PerplexityAdapter {
	return &PerplexityAdapter{client: client, name: name}
}

// GenerateContent implements Provider interface
func (a *PerplexityAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	messages := make([]perplexity.Message, 0, len(req.Messages)+1)
	if req.SystemInstruction != "" {
		messages = append(messages, perplexity.Message{Role: "system", Content: req.SystemInstruction})
	}
	for _, m := range req.Messages {
		messages = append(messages, perplexity.Message{Role: m.Role, Content: m.Text})
	}

	resp, err := a.client.GenerateContent(ctx, &perplexity.Request{
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	return &Response{
		Text:         resp.Text(),
		ProviderName: a.Name(),
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns provider name
func (a *PerplexityAdapter) Name() string {
	return a.name
}

// Model returns model name
func (a *PerplexityAdapter) Model() string {
	return a.client.Model()
}

// GeminiAdapter adapts pkg/gemini to llmprovider.Provider interface
type GeminiAdapter struct {
	client gemini.IGemini
}

// NewGeminiAdapter creates a new Gemini adapter
func NewGeminiAdapter(client gemini.IGemini) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *GeminiAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	messages := make([]gemini.Message, len(req.Messages))
	for i, m := range req.Messages {
		messages[i] = gemini.Message{Role: m.Role, Text: m.Text}
	}

	resp, err := a.client.GenerateContent(ctx, &gemini.Request{
		SystemInstruction: req.SystemInstruction,
		Messages:          messages,
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	return &Response{
		Text:         resp.Text,
		ProviderName: a.Name(),
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns provider name
func (a *GeminiAdapter) Name() string {
	return "gemini"
}

// Model returns model name
func (a *GeminiAdapter) Model() string {
	return a.client.Model()
}
