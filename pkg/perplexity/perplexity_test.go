package perplexity_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"homework-planner/pkg/perplexity"
)

func TestGenerateContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"message":"invalid api key","type":"auth"}}`))
			return
		}

		var req perplexity.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.Model != "sonar" || len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"message":"unexpected payload"}}`))
			return
		}

		w.Write([]byte(`{"id":"1","model":"sonar","choices":[{"index":0,"message":{"role":"assistant","content":"{\"date\":\"2026-01-12\"}"}}],"usage":{"prompt_tokens":10,"completion_tokens":5,"total_tokens":15}}`))
	}))
	defer ts.Close()

	client, err := perplexity.New(perplexity.Config{APIKey: "test-key", BaseURL: ts.URL})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	resp, err := client.GenerateContent(context.Background(), &perplexity.Request{
		Messages: []perplexity.Message{
			{Role: "system", Content: "raw JSON only"},
			{Role: "user", Content: "plan my day"},
		},
	})
	if err != nil {
		t.Fatalf("GenerateContent() error = %v", err)
	}
	if resp.Text() != `{"date":"2026-01-12"}` {
		t.Errorf("Text() = %q", resp.Text())
	}
	if resp.Usage.TotalTokens != 15 {
		t.Errorf("TotalTokens = %d, want 15", resp.Usage.TotalTokens)
	}
}

func TestGenerateContentAPIError(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		wantMessage   string
		wantRetryable bool
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":{"message":"invalid api key"}}`, "invalid api key", false},
		{"rate limited", http.StatusTooManyRequests, `{"error":{"message":"slow down"}}`, "slow down", true},
		{"plain body", http.StatusBadGateway, `upstream unavailable`, "upstream unavailable", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			client, _ := perplexity.New(perplexity.Config{APIKey: "k", BaseURL: ts.URL})
			_, err := client.GenerateContent(context.Background(), &perplexity.Request{})

			var apiErr *perplexity.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error = %v, want APIError", err)
			}
			if apiErr.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMessage)
			}
			if apiErr.Retryable() != tt.wantRetryable {
				t.Errorf("Retryable() = %v, want %v", apiErr.Retryable(), tt.wantRetryable)
			}
		})
	}
}

func TestNewRequiresKey(t *testing.T) {
	if _, err := perplexity.New(perplexity.Config{}); err == nil {
		t.Error("New() without key should fail")
	}
}
