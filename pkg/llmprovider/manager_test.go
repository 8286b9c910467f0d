package llmprovider

import (
	"context"
	"errors"
	"testing"
	"time"

	"homework-planner/pkg/perplexity"
)

type mockProvider struct {
	name      string
	model     string
	err       error
	response  *Response
	callCount int
}

func (m *mockProvider) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	m.callCount++
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *mockProvider) Name() string  { return m.name }
func (m *mockProvider) Model() string { return m.model }

type mockLogger struct {
	infoMessages []string
	warnMessages []string
}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any) {
	m.infoMessages = append(m.infoMessages, template)
}
func (m *mockLogger) Warn(ctx context.Context, arg ...any) {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any) {
	m.warnMessages = append(m.warnMessages, template)
}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}

var planRequest = &Request{
	SystemInstruction: "raw JSON only",
	Messages:          []Message{{Role: "user", Text: "plan my afternoon"}},
}

func okResponse(provider string) *Response {
	return &Response{
		Text:         `{"date":"2026-01-12","blocks":[],"reasoning":"ok"}`,
		ProviderName: provider,
		Usage:        &Usage{InputTokens: 100, OutputTokens: 50, TotalTokens: 150},
	}
}

func TestGenerateContent_SuccessWithPrimaryProvider(t *testing.T) {
	primary := &mockProvider{name: "primary", model: "primary-model", response: okResponse("primary")}
	logger := &mockLogger{}
	manager := NewManager([]Provider{primary}, &Config{FallbackEnabled: true, RetryAttempts: 3}, logger)

	resp, err := manager.GenerateContent(context.Background(), planRequest)
	if err != nil {
		t.Fatalf("GenerateContent() error = %v", err)
	}
	if resp.ProviderName != "primary" {
		t.Errorf("ProviderName = %s, want primary", resp.ProviderName)
	}
	if primary.callCount != 1 {
		t.Errorf("primary called %d times, want 1", primary.callCount)
	}
	if len(logger.infoMessages) != 1 || len(logger.warnMessages) != 0 {
		t.Errorf("logs: info=%d warn=%d, want 1/0", len(logger.infoMessages), len(logger.warnMessages))
	}
}

func TestGenerateContent_FallbackToSecondaryProvider(t *testing.T) {
	primary := &mockProvider{name: "primary", err: errors.New("connection reset")}
	secondary := &mockProvider{name: "secondary", response: okResponse("secondary")}
	logger := &mockLogger{}
	manager := NewManager([]Provider{primary, secondary},
		&Config{FallbackEnabled: true, RetryAttempts: 2, RetryDelay: time.Millisecond}, logger)

	resp, err := manager.GenerateContent(context.Background(), planRequest)
	if err != nil {
		t.Fatalf("GenerateContent() error = %v", err)
	}
	if resp.ProviderName != "secondary" {
		t.Errorf("ProviderName = %s, want secondary", resp.ProviderName)
	}
	if primary.callCount != 2 {
		t.Errorf("primary called %d times, want 2", primary.callCount)
	}
	if secondary.callCount != 1 {
		t.Errorf("secondary called %d times, want 1", secondary.callCount)
	}
	if len(logger.warnMessages) != 1 {
		t.Errorf("warn logs = %d, want 1", len(logger.warnMessages))
	}
}

func TestGenerateContent_ClientErrorFailsFast(t *testing.T) {
	rejected := &perplexity.APIError{StatusCode: 401, Message: "invalid api key"}
	primary := &mockProvider{name: "perplexity", err: rejected}
	manager := NewManager([]Provider{primary},
		&Config{RetryAttempts: 3, RetryDelay: time.Millisecond}, &mockLogger{})

	_, err := manager.GenerateContent(context.Background(), planRequest)

	if primary.callCount != 1 {
		t.Errorf("provider called %d times, want 1 for a 4xx", primary.callCount)
	}
	var apiErr *perplexity.APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "invalid api key" {
		t.Errorf("error = %v, want the endpoint's message preserved", err)
	}
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Errorf("error = %v, want ErrAllProvidersFailed", err)
	}
}

func TestGenerateContent_RateLimitIsRetried(t *testing.T) {
	primary := &mockProvider{name: "perplexity", err: &perplexity.APIError{StatusCode: 429, Message: "slow down"}}
	manager := NewManager([]Provider{primary},
		&Config{RetryAttempts: 3, RetryDelay: time.Millisecond}, &mockLogger{})

	if _, err := manager.GenerateContent(context.Background(), planRequest); err == nil {
		t.Fatal("expected error")
	}
	if primary.callCount != 3 {
		t.Errorf("provider called %d times, want 3", primary.callCount)
	}
}

func TestGenerateContent_NoFallbackWhenDisabled(t *testing.T) {
	primary := &mockProvider{name: "primary", err: errors.New("timeout")}
	secondary := &mockProvider{name: "secondary", response: okResponse("secondary")}
	manager := NewManager([]Provider{primary, secondary},
		&Config{FallbackEnabled: false, RetryAttempts: 2, RetryDelay: time.Millisecond}, &mockLogger{})

	resp, err := manager.GenerateContent(context.Background(), planRequest)
	if err == nil || resp != nil {
		t.Fatalf("GenerateContent() = %v, %v; want error", resp, err)
	}
	if secondary.callCount != 0 {
		t.Errorf("secondary called %d times, want 0", secondary.callCount)
	}
}

func TestGenerateContent_NoProvidersConfigured(t *testing.T) {
	manager := NewManager(nil, &Config{RetryAttempts: 3}, &mockLogger{})

	_, err := manager.GenerateContent(context.Background(), planRequest)
	if !errors.Is(err, ErrNoProvidersConfigured) {
		t.Errorf("error = %v, want ErrNoProvidersConfigured", err)
	}
	if manager.HasProviders() {
		t.Error("HasProviders() = true with no providers")
	}
}
