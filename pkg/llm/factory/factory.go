package factory

import (
	"fmt"

	"tv-keuzehulp-be/pkg/llm"
	"tv-keuzehulp-be/pkg/llm/anthropic"
	"tv-keuzehulp-be/pkg/llm/ollama"
	"tv-keuzehulp-be/pkg/llm/openai"
)

// ProviderConfig carries everything a provider may need; each provider reads its own fields
type ProviderConfig struct {
	Provider      string
	Model         string
	OpenAIKey     string
	OpenAIBaseURL string
	AnthropicKey  string
	OllamaBaseURL string
	HFKey         string
	HFBaseURL     string
}

const huggingFaceRouterURL = "https://router.huggingface.co/v1"

func NewLLMProvider(cfg ProviderConfig) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("openai provider requires OPENAI_API_KEY")
		}
		return openai.NewOpenAIProvider(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.Model), nil
	case "anthropic":
		if cfg.AnthropicKey == "" {
			return nil, fmt.Errorf("anthropic provider requires ANTHROPIC_API_KEY")
		}
		return anthropic.NewAnthropicProvider(cfg.AnthropicKey, cfg.Model), nil
	case "huggingface":
		// The router speaks the chat-completions protocol
		if cfg.HFKey == "" {
			return nil, fmt.Errorf("huggingface provider requires HF_API_KEY")
		}
		baseURL := cfg.HFBaseURL
		if baseURL == "" {
			baseURL = huggingFaceRouterURL
		}
		return openai.NewOpenAIProvider(cfg.HFKey, baseURL, cfg.Model), nil
	case "ollama":
		baseURL := cfg.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
