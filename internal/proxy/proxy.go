// Package proxy forwards chat completion calls to an upstream provider,
// attaching a secret that stays on the server.
package proxy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lorenzotomasdiez/llm-debate/internal/chat"
	"github.com/lorenzotomasdiez/llm-debate/internal/llm"
	"github.com/sirupsen/logrus"
)

// Options configure a Handler. Zero values select production defaults.
type Options struct {
	// Lookup resolves the provider's secret. Defaults to os.Getenv so a key
	// rotated in the environment is seen on the next request.
	Lookup func(key string) string
	// UpstreamURL overrides the provider endpoint (for testing).
	UpstreamURL string
	// Referer and Title are sent as OpenRouter attribution headers when set.
	Referer string
	Title   string
	Timeout time.Duration
	Log     *logrus.Logger
}

// Handler is one credential proxy instance bound to a single provider.
type Handler struct {
	provider   chat.Provider
	upstream   string
	lookup     func(string) string
	referer    string
	title      string
	httpClient *http.Client
	log        *logrus.Logger
}

// New creates a proxy Handler for provider.
func New(provider chat.Provider, opts Options) *Handler {
	h := &Handler{
		provider: provider,
		upstream: provider.URL,
		lookup:   opts.Lookup,
		referer:  opts.Referer,
		title:    opts.Title,
		log:      opts.Log,
	}
	if opts.UpstreamURL != "" {
		h.upstream = opts.UpstreamURL
	}
	if h.lookup == nil {
		h.lookup = os.Getenv
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = llm.DefaultTimeout
	}
	h.httpClient = &http.Client{Timeout: timeout}
	if h.log == nil {
		h.log = logrus.New()
		h.log.SetOutput(io.Discard)
	}
	return h
}

// Serve is the gin handler. Register it with router.Any so that the method
// check below produces the 405 response.
func (h *Handler) Serve(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		h.reject(c, http.StatusMethodNotAllowed, llm.MethodNotAllowed, "")
		return
	}

	apiKey := h.lookup(h.provider.KeyEnv)
	if apiKey == "" {
		h.log.WithField("provider", h.provider.Name).Errorf("%s environment variable not set", h.provider.KeyEnv)
		h.reject(c, http.StatusInternalServerError, llm.MissingCredential, "")
		return
	}

	var body chat.ProxyRequest
	if err := c.ShouldBindJSON(&body); err != nil || body.Model == "" || body.Prompt == "" {
		h.reject(c, http.StatusBadRequest, llm.BadRequest, "")
		return
	}

	payload, err := json.Marshal(chat.NewRequest(body.Model, body.Prompt, body.SystemMessage))
	if err != nil {
		h.fetchFailed(c, err)
		return
	}
	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost, h.upstream, bytes.NewReader(payload))
	if err != nil {
		h.fetchFailed(c, err)
		return
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")
	if h.referer != "" {
		req.Header.Set("HTTP-Referer", h.referer)
	}
	if h.title != "" {
		req.Header.Set("X-Title", h.title)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		h.fetchFailed(c, err)
		return
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		h.fetchFailed(c, err)
		return
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		kind := llm.Classify(resp.StatusCode, string(respBody))
		h.log.WithFields(logrus.Fields{
			"provider": h.provider.Name,
			"model":    body.Model,
			"status":   resp.StatusCode,
			"kind":     kind.String(),
		}).Errorf("%s API error: %s", h.provider.Name, respBody)
		c.JSON(resp.StatusCode, chat.ErrorBody{
			Error:   llm.MessageFor(kind, resp.StatusCode),
			Details: string(respBody),
		})
		return
	}

	c.Data(http.StatusOK, "application/json", respBody)
}

func (h *Handler) reject(c *gin.Context, status int, kind llm.Kind, details string) {
	c.JSON(status, chat.ErrorBody{Error: llm.MessageFor(kind, status), Details: details})
}

func (h *Handler) fetchFailed(c *gin.Context, err error) {
	h.log.WithField("provider", h.provider.Name).Errorf("error calling %s: %v", h.provider.Name, err)
	c.JSON(http.StatusInternalServerError, chat.ErrorBody{
		Error:   fmt.Sprintf("Failed to fetch from %s via proxy.", h.provider.Name),
		Details: err.Error(),
	})
}
