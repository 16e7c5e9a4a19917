package llmprovider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"chat-relay/pkg/log"
)

// Manager orchestrates provider selection, fallback, and retry logic
type Manager struct {
	providers []Provider
	config    *Config
	logger    log.Logger
}

// Config defines configuration for the Provider Manager
type Config struct {
	FallbackEnabled bool
	RetryAttempts   int // attempts per provider; 1 means no retry
	RetryDelay      time.Duration
	MaxTotalTimeout time.Duration // bounds the whole fallback chain

	// Applied to every request built by Generate.
	SystemInstruction string
	Temperature       float64
	MaxTokens         int
}

// NewManager creates a new Provider Manager with the given providers, config, and logger
func NewManager(providers []Provider, config *Config, logger log.Logger) *Manager {
	if config == nil {
		config = &Config{}
	}
	return &Manager{
		providers: providers,
		config:    config,
		logger:    logger,
	}
}

// Generate renders messages into a Request with the configured persona and
// returns the completion text. A blank completion is a malformed response.
func (m *Manager) Generate(ctx context.Context, messages []Message) (string, error) {
	resp, err := m.GenerateContent(ctx, &Request{
		SystemInstruction: m.config.SystemInstruction,
		Messages:          messages,
		Temperature:       m.config.Temperature,
		MaxTokens:         m.config.MaxTokens,
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// GenerateContent iterates through providers in priority order with fallback logic
func (m *Manager) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	if len(m.providers) == 0 {
		return nil, ErrNoProvidersConfigured
	}
	if req == nil || len(req.Messages) == 0 {
		return nil, &ProviderError{Provider: "manager", Kind: KindMalformed, Err: ErrInvalidRequest}
	}

	var cancel context.CancelFunc
	if m.config.MaxTotalTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, m.config.MaxTotalTimeout)
		defer cancel()
	}

	var lastErr error

	for i, provider := range m.providers {
		if err := ctx.Err(); err != nil {
			lastErr = &ProviderError{
				Provider: provider.Name(),
				Kind:     Classify(err),
				Err:      fmt.Errorf("deadline reached after trying %d provider(s): %w", i, err),
			}
			break
		}

		resp, err := m.generateWithRetry(ctx, provider, req)
		if err == nil {
			m.logSuccess(ctx, provider, resp)
			return resp, nil
		}

		m.logFailure(ctx, provider, err)
		lastErr = err

		if !m.config.FallbackEnabled {
			break
		}
	}

	return nil, fmt.Errorf("%w: %w", ErrAllProvidersFailed, lastErr)
}

// generateWithRetry implements retry mechanism with linear backoff
func (m *Manager) generateWithRetry(ctx context.Context, provider Provider, req *Request) (*Response, error) {
	attempts := m.config.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr *ProviderError

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * m.config.RetryDelay
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, wrapProviderError(provider.Name(), ctx.Err())
			}
		}

		resp, err := provider.GenerateContent(ctx, req)
		if err == nil && resp != nil && strings.TrimSpace(resp.Content) != "" {
			return resp, nil
		}
		if err == nil {
			err = ErrEmptyCompletion
		}

		lastErr = wrapProviderError(provider.Name(), err)
		if errors.Is(err, context.Canceled) || lastErr.Kind == KindMalformed {
			break
		}
	}

	return nil, lastErr
}

func (m *Manager) logSuccess(ctx context.Context, provider Provider, resp *Response) {
	var in, out int
	if resp.Usage != nil {
		in, out = resp.Usage.InputTokens, resp.Usage.OutputTokens
	}
	m.logger.Infof(ctx, "LLM generation successful: provider=%s model=%s input_tokens=%d output_tokens=%d",
		provider.Name(), provider.Model(), in, out)
}

func (m *Manager) logFailure(ctx context.Context, provider Provider, err error) {
	m.logger.Warnf(ctx, "LLM generation failed: provider=%s model=%s kind=%s error=%v",
		provider.Name(), provider.Model(), Classify(err), err)
}
