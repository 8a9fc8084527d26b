package llm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lorenzotomasdiez/llm-debate/internal/chat"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// Step is the decision taken after a failed key attempt.
type Step int

const (
	Rotate Step = iota // try the next key
	Abort              // stop and return the error
)

// NextStep decides whether a failed attempt moves on to the next key.
// Status 0 means no HTTP response was received.
func NextStep(status int) Step {
	switch status {
	case 0, http.StatusUnauthorized, http.StatusTooManyRequests:
		return Rotate
	}
	return Abort
}

// DirectClient calls the upstream provider directly, rotating through the
// keys of a CredentialSource on auth and quota failures.
type DirectClient struct {
	baseURL    string
	keys       CredentialSource
	httpClient *http.Client
	timeout    time.Duration
	log        *logrus.Logger
}

// NewDirectClient creates a DirectClient for provider.
func NewDirectClient(provider chat.Provider, keys CredentialSource, timeout time.Duration, log *logrus.Logger) *DirectClient {
	return NewDirectClientWithBaseURL(provider.BaseURL(), keys, timeout, log)
}

// NewDirectClientWithBaseURL creates a DirectClient with a custom base URL (for testing).
func NewDirectClientWithBaseURL(baseURL string, keys CredentialSource, timeout time.Duration, log *logrus.Logger) *DirectClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &DirectClient{
		baseURL:    baseURL,
		keys:       keys,
		httpClient: &http.Client{},
		timeout:    timeout,
		log:        orDiscard(log),
	}
}

// Invoke tries each key in order until one succeeds, a non-rotating error
// occurs, or the keys run out.
func (c *DirectClient) Invoke(ctx context.Context, model, prompt, systemMessage string) (string, error) {
	var lastErr error
	for i, key := range c.keys.Keys() {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("llm: %w", err)
		}
		text, err := c.attempt(ctx, key, model, prompt, systemMessage)
		if err == nil {
			return text, nil
		}
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			return "", err
		}
		lastErr = err
		entry := c.log.WithFields(logrus.Fields{
			"model":  model,
			"key":    i + 1,
			"kind":   apiErr.Kind.String(),
			"status": apiErr.Status,
			"detail": apiErr.Detail,
		})
		if NextStep(apiErr.Status) == Abort {
			entry.Warn("key attempt failed, not rotating")
			return "", err
		}
		entry.Warn("key attempt failed, rotating")
	}
	if lastErr != nil {
		return "", lastErr
	}
	return "", newError(NoValidKey, 0, "")
}

func (c *DirectClient) attempt(ctx context.Context, key, model, prompt, systemMessage string) (string, error) {
	rec := &statusRecorder{next: c.httpClient.Transport}
	cfg := openai.DefaultConfig(key)
	cfg.BaseURL = c.baseURL
	cfg.HTTPClient = &http.Client{Transport: rec}
	client := openai.NewClientWithConfig(cfg)

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := chat.NewRequest(model, prompt, systemMessage)
	msgs := make([]openai.ChatCompletionMessage, len(req.Messages))
	for i, m := range req.Messages {
		msgs[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}

	resp, err := client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    msgs,
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
		TopP:        float32(req.TopP),
		Stream:      req.Stream,
	})
	if err != nil {
		if rec.status != 0 && (rec.status < 200 || rec.status > 299) {
			return "", newError(Classify(rec.status, rec.body), rec.status, rec.body)
		}
		var urlErr *url.Error
		if errors.As(err, &urlErr) || ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
			return "", transportError(ctx, err)
		}
		return "", newError(UnexpectedResponse, rec.status, err.Error())
	}
	if len(resp.Choices) == 0 {
		return "", newError(UnexpectedResponse, rec.status, "no choices in response")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", newError(UnexpectedResponse, rec.status, "empty message content")
	}
	return text, nil
}

// statusRecorder remembers the status and error body of the last response so
// that failures can be classified independently of the SDK's error types.
type statusRecorder struct {
	next   http.RoundTripper
	status int
	body   string
}

func (r *statusRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	next := r.next
	if next == nil {
		next = http.DefaultTransport
	}
	resp, err := next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	r.status = resp.StatusCode
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, readErr
		}
		r.body = string(b)
		resp.Body = io.NopCloser(bytes.NewReader(b))
	}
	return resp, nil
}
