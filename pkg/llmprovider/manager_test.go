package llmprovider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"
)

// mockProvider is a test implementation of the Provider interface
type mockProvider struct {
	name      string
	model     string
	err       error
	response  *Response
	delay     time.Duration
	callCount int
	lastReq   *Request
}

func (m *mockProvider) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	m.callCount++
	m.lastReq = req
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *mockProvider) Name() string {
	return m.name
}

func (m *mockProvider) Model() string {
	return m.model
}

type statusErr int

func (s statusErr) Error() string   { return fmt.Sprintf("status %d", int(s)) }
func (s statusErr) HTTPStatus() int { return int(s) }

// mockLogger is a test implementation of the Logger interface
type mockLogger struct {
	infoMessages []string
	warnMessages []string
}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any) {
	m.infoMessages = append(m.infoMessages, fmt.Sprintf(template, arg...))
}
func (m *mockLogger) Warn(ctx context.Context, arg ...any) {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any) {
	m.warnMessages = append(m.warnMessages, fmt.Sprintf(template, arg...))
}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}

func okResponse(provider, text string) *Response {
	return &Response{
		Content:      text,
		ProviderName: provider,
		ModelName:    provider + "-model",
		Usage:        &Usage{InputTokens: 100, OutputTokens: 50, TotalTokens: 150},
	}
}

func userMessages(text string) []Message {
	return []Message{{Role: RoleUser, Content: text}}
}

func TestGenerateContent_SuccessWithPrimaryProvider(t *testing.T) {
	primary := &mockProvider{name: "primary", model: "primary-model", response: okResponse("primary", "Hello")}
	logger := &mockLogger{}
	manager := NewManager([]Provider{primary}, &Config{FallbackEnabled: true, RetryAttempts: 3, RetryDelay: time.Millisecond}, logger)

	resp, err := manager.GenerateContent(context.Background(), &Request{Messages: userMessages("Hello")})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if resp.ProviderName != "primary" {
		t.Errorf("Expected provider name 'primary', got: %s", resp.ProviderName)
	}
	if primary.callCount != 1 {
		t.Errorf("Expected primary provider to be called once, got: %d", primary.callCount)
	}
	if len(logger.infoMessages) != 1 || len(logger.warnMessages) != 0 {
		t.Errorf("Expected 1 info and 0 warn logs, got %d/%d", len(logger.infoMessages), len(logger.warnMessages))
	}
}

func TestGenerateContent_FallbackToSecondaryProvider(t *testing.T) {
	primary := &mockProvider{name: "primary", err: errors.New("boom")}
	secondary := &mockProvider{name: "secondary", response: okResponse("secondary", "from secondary")}
	logger := &mockLogger{}
	manager := NewManager([]Provider{primary, secondary}, &Config{FallbackEnabled: true, RetryAttempts: 2}, logger)

	resp, err := manager.GenerateContent(context.Background(), &Request{Messages: userMessages("Hello")})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if resp.ProviderName != "secondary" {
		t.Errorf("Expected secondary provider, got: %s", resp.ProviderName)
	}
	if primary.callCount != 2 {
		t.Errorf("Expected primary to be retried twice, got: %d", primary.callCount)
	}
	if len(logger.warnMessages) != 1 {
		t.Errorf("Expected 1 warn log, got: %d", len(logger.warnMessages))
	}
}

func TestGenerateContent_AllProvidersFail(t *testing.T) {
	primary := &mockProvider{name: "primary", err: errors.New("boom")}
	secondary := &mockProvider{name: "secondary", err: statusErr(http.StatusTooManyRequests)}
	manager := NewManager([]Provider{primary, secondary}, &Config{FallbackEnabled: true, RetryAttempts: 1}, &mockLogger{})

	_, err := manager.GenerateContent(context.Background(), &Request{Messages: userMessages("Hello")})
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Fatalf("Expected ErrAllProvidersFailed, got: %v", err)
	}

	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("Expected *ProviderError in chain, got: %v", err)
	}
	if pe.Provider != "secondary" || pe.Kind != KindRateLimit {
		t.Errorf("Expected last error from secondary classified rate_limit, got %+v", pe)
	}
}

func TestGenerateContent_NoFallbackWhenDisabled(t *testing.T) {
	primary := &mockProvider{name: "primary", err: errors.New("boom")}
	secondary := &mockProvider{name: "secondary", response: okResponse("secondary", "unused")}
	manager := NewManager([]Provider{primary, secondary}, &Config{FallbackEnabled: false, RetryAttempts: 1}, &mockLogger{})

	if _, err := manager.GenerateContent(context.Background(), &Request{Messages: userMessages("Hello")}); err == nil {
		t.Fatal("Expected error when fallback disabled")
	}
	if secondary.callCount != 0 {
		t.Errorf("Expected secondary not to be called, got: %d", secondary.callCount)
	}
}

func TestGenerateContent_NoProvidersConfigured(t *testing.T) {
	manager := NewManager(nil, &Config{}, &mockLogger{})
	if _, err := manager.GenerateContent(context.Background(), &Request{Messages: userMessages("x")}); !errors.Is(err, ErrNoProvidersConfigured) {
		t.Fatalf("Expected ErrNoProvidersConfigured, got: %v", err)
	}
}

func TestGenerateContent_EmptyCompletionIsMalformed(t *testing.T) {
	primary := &mockProvider{name: "primary", response: okResponse("primary", "   ")}
	manager := NewManager([]Provider{primary}, &Config{RetryAttempts: 3}, &mockLogger{})

	_, err := manager.GenerateContent(context.Background(), &Request{Messages: userMessages("Hello")})
	var pe *ProviderError
	if !errors.As(err, &pe) || pe.Kind != KindMalformed {
		t.Fatalf("Expected malformed provider error, got: %v", err)
	}
	if primary.callCount != 1 {
		t.Errorf("Expected malformed response not to be retried, got %d calls", primary.callCount)
	}
}

func TestGenerateContent_GlobalTimeout(t *testing.T) {
	slow := &mockProvider{name: "slow", delay: time.Second, response: okResponse("slow", "late")}
	manager := NewManager([]Provider{slow}, &Config{RetryAttempts: 1, MaxTotalTimeout: 20 * time.Millisecond}, &mockLogger{})

	start := time.Now()
	_, err := manager.GenerateContent(context.Background(), &Request{Messages: userMessages("Hello")})
	if time.Since(start) > 500*time.Millisecond {
		t.Fatalf("Expected timeout to cut the call short")
	}
	var pe *ProviderError
	if !errors.As(err, &pe) || pe.Kind != KindTimeout {
		t.Fatalf("Expected timeout provider error, got: %v", err)
	}
}

func TestGenerate_AppliesConfiguredPersona(t *testing.T) {
	primary := &mockProvider{name: "primary", response: okResponse("primary", "Hi there")}
	manager := NewManager([]Provider{primary}, &Config{
		RetryAttempts:     1,
		SystemInstruction: "You are natAI",
		Temperature:       0.5,
		MaxTokens:         256,
	}, &mockLogger{})

	history := []Message{
		{Role: RoleUser, Content: "a"},
		{Role: RoleAssistant, Content: "b"},
		{Role: RoleUser, Content: "c"},
	}
	text, err := manager.Generate(context.Background(), history)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if text != "Hi there" {
		t.Errorf("Expected 'Hi there', got %q", text)
	}
	req := primary.lastReq
	if req.SystemInstruction != "You are natAI" || req.Temperature != 0.5 || req.MaxTokens != 256 {
		t.Errorf("Expected configured persona on request, got %+v", req)
	}
	if len(req.Messages) != 3 || req.Messages[0].Content != "a" || req.Messages[2].Content != "c" {
		t.Errorf("Expected history passed oldest first, got %+v", req.Messages)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"deadline", fmt.Errorf("wrap: %w", context.DeadlineExceeded), KindTimeout},
		{"429", statusErr(http.StatusTooManyRequests), KindRateLimit},
		{"504", statusErr(http.StatusGatewayTimeout), KindTimeout},
		{"500", statusErr(http.StatusInternalServerError), KindUpstream},
		{"empty", ErrEmptyCompletion, KindMalformed},
		{"other", errors.New("connection reset"), KindUpstream},
		{"already classified", &ProviderError{Provider: "p", Kind: KindRateLimit, Err: errors.New("x")}, KindRateLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %s, want %s", got, tt.want)
			}
		})
	}
}
