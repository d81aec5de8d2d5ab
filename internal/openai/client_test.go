package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateChatCompletion(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/v1/chat/completions" {
				t.Errorf("expected path /v1/chat/completions, got %s", r.URL.Path)
			}
			if r.Header.Get("Authorization") != "Bearer test-key" {
				t.Errorf("expected bearer auth, got %s", r.Header.Get("Authorization"))
			}
			if r.Header.Get("Content-Type") != "application/json" {
				t.Errorf("expected Content-Type application/json, got %s", r.Header.Get("Content-Type"))
			}

			var req ChatRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("failed to decode request body: %v", err)
			}
			if req.Model != "gpt-3.5-turbo" {
				t.Errorf("expected model gpt-3.5-turbo, got %s", req.Model)
			}
			if req.MaxTokens != 2000 {
				t.Errorf("expected max_tokens 2000, got %d", req.MaxTokens)
			}
			if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
				t.Errorf("expected system+user messages, got %+v", req.Messages)
			}

			json.NewEncoder(w).Encode(ChatResponse{
				ID:     "chatcmpl-123",
				Object: "chat.completion",
				Model:  "gpt-3.5-turbo",
				Choices: []Choice{
					{Message: Message{Role: "assistant", Content: "<html>summary</html>"}, FinishReason: "stop"},
				},
				Usage: Usage{PromptTokens: 100, CompletionTokens: 50, TotalTokens: 150},
			})
		}))
		defer server.Close()

		client := NewClient("test-key", WithBaseURL(server.URL))
		temp := 0.4
		resp, err := client.CreateChatCompletion(context.Background(), &ChatRequest{
			Model:       "gpt-3.5-turbo",
			MaxTokens:   2000,
			Temperature: &temp,
			Messages: []Message{
				{Role: "system", Content: "instructions"},
				{Role: "user", Content: "data"},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.FirstContent() != "<html>summary</html>" {
			t.Errorf("unexpected content: %q", resp.FirstContent())
		}
		if resp.Usage.TotalTokens != 150 {
			t.Errorf("expected 150 total tokens, got %d", resp.Usage.TotalTokens)
		}
	})

	t.Run("API error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error": map[string]string{
					"type":    "invalid_request_error",
					"message": "Incorrect API key provided",
				},
			})
		}))
		defer server.Close()

		client := NewClient("bad-key", WithBaseURL(server.URL))
		_, err := client.CreateChatCompletion(context.Background(), &ChatRequest{Model: "gpt-3.5-turbo"})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected *APIError, got %T", err)
		}
		if apiErr.StatusCode != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", apiErr.StatusCode)
		}
		if apiErr.ErrorDetail.Type != "invalid_request_error" {
			t.Errorf("unexpected error type: %s", apiErr.ErrorDetail.Type)
		}
	})

	t.Run("empty choices", func(t *testing.T) {
		resp := &ChatResponse{}
		if resp.FirstContent() != "" {
			t.Errorf("expected empty content, got %q", resp.FirstContent())
		}
	})
}
