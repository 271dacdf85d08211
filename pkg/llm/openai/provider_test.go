package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tv-keuzehulp-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func completion(content string) map[string]interface{} {
	choices := []interface{}{}
	if content != "-" {
		choices = append(choices, map[string]interface{}{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]interface{}{"role": "assistant", "content": content},
		})
	}
	return map[string]interface{}{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": choices,
	}
}

func TestChat(t *testing.T) {
	var got capturedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completion(" Kies de LG. "))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("sk-test", srv.URL, "gpt-4o-mini")
	out, err := p.Chat(context.Background(), []llm.Message{
		{Role: "system", Content: "keuzehulp"},
		{Role: "model", Content: "hallo"},
		{Role: "user", Content: "welke tv?"},
	}, llm.WithMaxTokens(200), llm.WithTemperature(0.3))

	require.NoError(t, err)
	assert.Equal(t, "Kies de LG.", out)
	assert.Equal(t, "gpt-4o-mini", got.Model)
	assert.Equal(t, 200, got.MaxTokens)
	assert.Equal(t, 0.3, got.Temperature)
	require.Len(t, got.Messages, 3)
	assert.Equal(t, []string{"system", "assistant", "user"}, []string{got.Messages[0].Role, got.Messages[1].Role, got.Messages[2].Role})
}

func TestChatFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		empty   bool
	}{
		{name: "server error", handler: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"message":"quota","type":"insufficient_quota"}}`))
		}},
		{name: "no choices", empty: true, handler: func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(completion("-"))
		}},
		{name: "blank content", empty: true, handler: func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(completion("   "))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewOpenAIProvider("sk-test", srv.URL, "gpt-4o-mini").Generate(context.Background(), "hoi")
			require.Error(t, err)
			if tt.empty {
				assert.ErrorIs(t, err, llm.ErrEmptyCompletion)
			}
		})
	}
}
