package gemini_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"homework-planner/pkg/gemini"
)

func TestGenerateContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-api-key" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"code":401,"message":"API key not valid","status":"UNAUTHENTICATED"}}`))
			return
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if _, ok := body["system_instruction"]; !ok {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "{\"date\":"}, {"text": "\"2026-01-12\"}"}]}}],
			"usageMetadata": {"promptTokenCount": 12, "candidatesTokenCount": 8, "totalTokenCount": 20}
		}`))
	}))
	defer ts.Close()

	client, err := gemini.New(gemini.Config{APIKey: "test-api-key", APIURL: ts.URL})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	resp, err := client.GenerateContent(context.Background(), &gemini.Request{
		SystemInstruction: "raw JSON only",
		Messages:          []gemini.Message{{Role: "user", Text: "plan"}},
	})
	if err != nil {
		t.Fatalf("GenerateContent() error = %v", err)
	}
	if resp.Text != `{"date":"2026-01-12"}` {
		t.Errorf("Text = %q", resp.Text)
	}
	if resp.Usage.TotalTokens != 20 {
		t.Errorf("TotalTokens = %d, want 20", resp.Usage.TotalTokens)
	}
	if client.Model() != gemini.DefaultModel {
		t.Errorf("Model() = %s, want %s", client.Model(), gemini.DefaultModel)
	}
}

func TestGenerateContentAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"model not found"}}`))
	}))
	defer ts.Close()

	client, _ := gemini.New(gemini.Config{APIKey: "k", APIURL: ts.URL})
	_, err := client.GenerateContent(context.Background(), &gemini.Request{})

	var apiErr *gemini.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want APIError", err)
	}
	if apiErr.Message != "model not found" || apiErr.Retryable() {
		t.Errorf("unexpected APIError: %+v retryable=%v", apiErr, apiErr.Retryable())
	}
}
