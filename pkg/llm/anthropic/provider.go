package anthropic

import (
	"context"
	"fmt"
	"strings"

	"tv-keuzehulp-be/pkg/llm"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultMaxTokens = 1024

type AnthropicProvider struct {
	ModelName string
	client    anthropic.Client
}

var _ llm.LLMProvider = &AnthropicProvider{}

// NewAnthropicProvider accepts extra request options, e.g. option.WithBaseURL
// to point the client at a proxy.
func NewAnthropicProvider(apiKey, modelName string, opts ...option.RequestOption) *AnthropicProvider {
	clientOpts := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)
	return &AnthropicProvider{
		ModelName: modelName,
		client:    anthropic.NewClient(clientOpts...),
	}
}

func (p *AnthropicProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.Apply(llm.Options{Temperature: 0.7, Model: p.ModelName, MaxTokens: defaultMaxTokens}, opts...)

	if options.MaxTokens <= 0 {
		options.MaxTokens = defaultMaxTokens
	}

	system, turns := llm.SplitSystem(history)

	messages := make([]anthropic.MessageParam, 0, len(turns))
	for _, msg := range turns {
		block := anthropic.NewTextBlock(msg.Content)
		if msg.Role == "assistant" || msg.Role == "model" {
			messages = append(messages, anthropic.MessageParam{
				Role:    anthropic.MessageParamRoleAssistant,
				Content: []anthropic.ContentBlockParamUnion{block},
			})
		} else {
			messages = append(messages, anthropic.NewUserMessage(block))
		}
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(options.Model),
		Messages:  messages,
		MaxTokens: int64(options.MaxTokens),
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	if options.Temperature > 0 {
		params.Temperature = anthropic.Float(options.Temperature)
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(text.Text)
		}
	}

	content := strings.TrimSpace(b.String())
	if content == "" {
		return "", llm.ErrEmptyCompletion
	}
	return content, nil
}

func (p *AnthropicProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
