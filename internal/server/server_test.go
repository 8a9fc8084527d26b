package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lorenzotomasdiez/llm-debate/internal/chat"
	"github.com/lorenzotomasdiez/llm-debate/internal/debate"
	"github.com/lorenzotomasdiez/llm-debate/internal/debate/verdict"
	"github.com/lorenzotomasdiez/llm-debate/internal/llm"
	"github.com/lorenzotomasdiez/llm-debate/internal/models"
	"github.com/lorenzotomasdiez/llm-debate/internal/proxy"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// scriptedLLM answers with "<n>" for the n-th call and fails the call at failAt.
type scriptedLLM struct {
	calls  atomic.Int32
	failAt int32
	models []string
	mu     sync.Mutex
}

func (s *scriptedLLM) Invoke(_ context.Context, model, _, _ string) (string, error) {
	n := s.calls.Add(1)
	s.mu.Lock()
	s.models = append(s.models, model)
	s.mu.Unlock()
	if n == s.failAt {
		return "", &llm.APIError{Kind: llm.RateLimited, Status: 429, Message: llm.MessageFor(llm.RateLimited, 429)}
	}
	return "answer " + string(rune('0'+n)), nil
}

func newTestRouter(t *testing.T, client debate.LLMClient) (*gin.Engine, *debate.Session) {
	t.Helper()
	p, err := debate.BuiltinProfile("classic", "en")
	if err != nil {
		t.Fatalf("BuiltinProfile: %v", err)
	}
	aliases := models.DefaultRegistry()
	session := debate.NewSession(debate.NewEngine(client, verdict.NewJudge(client, p), p, aliases))
	router, err := NewRouter(StartOpts{
		Session: session,
		Aliases: aliases,
		Proxies: map[string]*proxy.Handler{
			"openrouter": proxy.New(chat.OpenRouter, proxy.Options{Lookup: func(string) string { return "" }}),
		},
	})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	return router, session
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const startBody = `{"topic":"Remote work","proponent":"llama-4-maverick","opponent":"b","judge":"j"}`

func TestNewRouter_NilSession(t *testing.T) {
	_, err := NewRouter(StartOpts{})
	if err == nil || !strings.Contains(err.Error(), "session is required") {
		t.Fatalf("expected session error, got %v", err)
	}
}

func TestStartDebate(t *testing.T) {
	client := &scriptedLLM{}
	router, _ := newTestRouter(t, client)

	rec := do(router, http.MethodPost, "/api/debates", startBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	var got debate.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Verdict == nil || got.Verdict.Text != "answer 5" {
		t.Errorf("unexpected verdict %+v", got.Verdict)
	}
	if len(got.Transcript.Turns) != 4 {
		t.Errorf("expected 4 turns, got %d", len(got.Transcript.Turns))
	}
	if client.models[0] != "meta-llama/llama-4-maverick:free" {
		t.Errorf("alias not resolved, first call used %q", client.models[0])
	}
}

func TestStartDebate_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"topic":`},
		{"empty topic", `{"topic":"   ","proponent":"a","opponent":"b","judge":"j"}`},
		{"missing model", `{"topic":"x","proponent":"a","opponent":"b"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &scriptedLLM{}
			router, _ := newTestRouter(t, client)
			rec := do(router, http.MethodPost, "/api/debates", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if client.calls.Load() != 0 {
				t.Errorf("expected no model calls, got %d", client.calls.Load())
			}
		})
	}
}

func TestStartDebate_FailureStillReturnsResult(t *testing.T) {
	router, _ := newTestRouter(t, &scriptedLLM{failAt: 2})

	rec := do(router, http.MethodPost, "/api/debates", startBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var got map[string]any
	json.Unmarshal(rec.Body.Bytes(), &got)
	if got["failure"] != "An error occurred: Rate limit exceeded or quota finished." {
		t.Errorf("failure = %v", got["failure"])
	}
	if _, ok := got["verdict"]; ok {
		t.Error("failed run must not carry a verdict")
	}
}

type gateLLM struct {
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func (g *gateLLM) Invoke(ctx context.Context, _, _, _ string) (string, error) {
	g.once.Do(func() { close(g.started) })
	select {
	case <-g.release:
		return "ok", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func TestStartDebate_Busy(t *testing.T) {
	gate := &gateLLM{started: make(chan struct{}), release: make(chan struct{})}
	router, session := newTestRouter(t, gate)

	done := make(chan int, 1)
	go func() {
		done <- do(router, http.MethodPost, "/api/debates", startBody).Code
	}()
	<-gate.started

	rec := do(router, http.MethodPost, "/api/debates", startBody)
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
	health := do(router, http.MethodGet, "/healthz", "")
	if !strings.Contains(health.Body.String(), `"busy":true`) {
		t.Errorf("healthz should report busy: %s", health.Body)
	}

	close(gate.release)
	if code := <-done; code != http.StatusOK {
		t.Errorf("first run status = %d", code)
	}
	if session.Busy() {
		t.Error("session should be idle")
	}
}

func TestLastAndDownload(t *testing.T) {
	router, session := newTestRouter(t, &scriptedLLM{})

	if rec := do(router, http.MethodGet, "/api/debates/last", ""); rec.Code != http.StatusNotFound {
		t.Errorf("last before any run: status = %d, want 404", rec.Code)
	}
	if rec := do(router, http.MethodGet, "/api/debates/last/download", ""); rec.Code != http.StatusNotFound {
		t.Errorf("download before any run: status = %d, want 404", rec.Code)
	}

	do(router, http.MethodPost, "/api/debates", startBody)
	last, ok := session.Last()
	if !ok {
		t.Fatal("expected a snapshot")
	}

	rec := do(router, http.MethodGet, "/api/debates/last", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), last.ID) {
		t.Errorf("last: status = %d, body = %s", rec.Code, rec.Body)
	}

	rec = do(router, http.MethodGet, "/api/debates/last/download", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("download status = %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="debate_history.txt"` {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain") {
		t.Errorf("Content-Type = %q", rec.Header().Get("Content-Type"))
	}
	if rec.Body.String() != last.Export() {
		t.Errorf("download body = %q, want %q", rec.Body, last.Export())
	}
}

func TestModels(t *testing.T) {
	router, _ := newTestRouter(t, &scriptedLLM{})

	rec := do(router, http.MethodGet, "/api/models", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got struct {
		Aliases []models.Alias `json:"aliases"`
	}
	json.Unmarshal(rec.Body.Bytes(), &got)
	if len(got.Aliases) != 4 || got.Aliases[0].Name != "deepseek-r1-0528" {
		t.Errorf("aliases = %+v", got.Aliases)
	}
}

func TestProxyRouteMounted(t *testing.T) {
	router, _ := newTestRouter(t, &scriptedLLM{})

	rec := do(router, http.MethodGet, "/api/proxy/openrouter", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET status = %d, want 405", rec.Code)
	}
	rec = do(router, http.MethodPost, "/api/proxy/openrouter", `{"model":"m","prompt":"p"}`)
	if rec.Code != http.StatusInternalServerError || !strings.Contains(rec.Body.String(), "API key not configured") {
		t.Errorf("POST without secret: status = %d, body = %s", rec.Code, rec.Body)
	}
	if rec := do(router, http.MethodPost, "/api/proxy/groq", `{}`); rec.Code != http.StatusNotFound {
		t.Errorf("unregistered proxy: status = %d, want 404", rec.Code)
	}
}
