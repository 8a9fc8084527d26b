package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lorenzotomasdiez/llm-debate/internal/chat"
	"github.com/sirupsen/logrus"
)

// DefaultTimeout bounds a single model invocation.
const DefaultTimeout = 45 * time.Second

// Invoker is implemented by both transport modes.
type Invoker interface {
	Invoke(ctx context.Context, model, prompt, systemMessage string) (string, error)
}

// ProxyClient calls a credential proxy. It never holds an upstream secret
// and performs no retries.
type ProxyClient struct {
	httpClient *http.Client
	url        string
	timeout    time.Duration
	log        *logrus.Logger
}

// NewProxyClient creates a client posting to the proxy endpoint at url.
// A zero timeout selects DefaultTimeout; a nil logger discards output.
func NewProxyClient(url string, timeout time.Duration, log *logrus.Logger) *ProxyClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ProxyClient{
		httpClient: &http.Client{},
		url:        url,
		timeout:    timeout,
		log:        orDiscard(log),
	}
}

// Invoke sends one prompt through the proxy and returns the generated text.
func (c *ProxyClient) Invoke(ctx context.Context, model, prompt, systemMessage string) (string, error) {
	if systemMessage == "" {
		systemMessage = chat.DefaultSystemMessage
	}
	body, err := json.Marshal(chat.ProxyRequest{
		Model:         model,
		Prompt:        prompt,
		SystemMessage: systemMessage,
	})
	if err != nil {
		return "", fmt.Errorf("llm: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("llm: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", c.fail(transportError(ctx, err), model)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", c.fail(transportError(ctx, err), model)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env chat.ErrorBody
		detail := string(respBody)
		hints := detail
		if json.Unmarshal(respBody, &env) == nil && (env.Error != "" || env.Details != "") {
			detail = env.Details
			hints = env.Error + " " + env.Details
		}
		return "", c.fail(newError(Classify(resp.StatusCode, hints), resp.StatusCode, detail), model)
	}

	return decodeText(respBody, model, c.log)
}

func (c *ProxyClient) fail(err error, model string) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		c.log.WithFields(logrus.Fields{
			"model":  model,
			"kind":   apiErr.Kind.String(),
			"status": apiErr.Status,
			"detail": apiErr.Detail,
		}).Warn("model invocation failed")
	}
	return err
}

// decodeText extracts the first choice's content from a success body.
func decodeText(body []byte, model string, log *logrus.Logger) (string, error) {
	var chatResp chat.ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		log.WithField("model", model).Warnf("undecodable success body: %v", err)
		return "", newError(UnexpectedResponse, http.StatusOK, err.Error())
	}
	text, ok := chatResp.Text()
	if !ok {
		log.WithField("model", model).Warn("success body without choices[0].message.content")
		return "", newError(UnexpectedResponse, http.StatusOK, string(body))
	}
	return text, nil
}

// transportError converts a failed round trip into an APIError, unless the
// caller's own context ended, in which case that error is returned wrapped.
func transportError(parent context.Context, err error) error {
	if parent.Err() != nil {
		return fmt.Errorf("llm: %w", parent.Err())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return newError(Timeout, 0, err.Error())
	}
	return newError(Transport, 0, err.Error())
}

func orDiscard(log *logrus.Logger) *logrus.Logger {
	if log != nil {
		return log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
