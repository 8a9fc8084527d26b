package llm

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		status int
		body   string
		want   Kind
	}{
		{http.StatusUnauthorized, "", AuthOrQuota},
		{http.StatusTooManyRequests, "No instances available", RateLimited},
		{http.StatusBadRequest, "unknown model", BadModelOrParams},
		{http.StatusBadRequest, "Missing model or prompt in request body.", BadRequest},
		{http.StatusMethodNotAllowed, "", MethodNotAllowed},
		{http.StatusServiceUnavailable, "", ModelUnavailable},
		{http.StatusInternalServerError, "upstream said: No instances available for model", ModelUnavailable},
		{http.StatusInternalServerError, "503 Service Unavailable", ModelUnavailable},
		{http.StatusInternalServerError, "API key not configured.", MissingCredential},
		{http.StatusInternalServerError, "Failed to fetch from Groq via proxy.", Transport},
		{http.StatusInternalServerError, "boom", UpstreamOther},
		{http.StatusBadGateway, "", UpstreamOther},
		{http.StatusNotFound, "", UpstreamOther},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d %s", tt.status, tt.body), func(t *testing.T) {
			if got := Classify(tt.status, tt.body); got != tt.want {
				t.Errorf("Classify(%d, %q) = %s, want %s", tt.status, tt.body, got, tt.want)
			}
		})
	}
}

func TestMessageForUpstreamOtherIncludesStatus(t *testing.T) {
	got := MessageFor(UpstreamOther, 502)
	if got != "Error calling LLM: 502" {
		t.Errorf("MessageFor = %q", got)
	}
}

func TestMessageForIsFixedPerKind(t *testing.T) {
	for k := range kindNames {
		if k == UpstreamOther {
			continue
		}
		if MessageFor(k, 400) != MessageFor(k, 500) {
			t.Errorf("message for %s depends on status", k)
		}
		if MessageFor(k, 0) == "" {
			t.Errorf("empty message for %s", k)
		}
	}
}

func TestAPIErrorNeverCarriesDetailInError(t *testing.T) {
	err := error(newError(RateLimited, 429, "secret-ish upstream body"))
	if strings.Contains(err.Error(), "secret-ish") {
		t.Errorf("Error() leaked detail: %q", err.Error())
	}
	var apiErr *APIError
	if !errors.As(fmt.Errorf("wrapped: %w", err), &apiErr) {
		t.Fatal("errors.As failed through wrapping")
	}
	if apiErr.Detail != "secret-ish upstream body" {
		t.Errorf("detail = %q", apiErr.Detail)
	}
}

func TestKindString(t *testing.T) {
	if RateLimited.String() != "rate_limited" {
		t.Errorf("RateLimited.String() = %q", RateLimited.String())
	}
	if Kind(99).String() != "kind(99)" {
		t.Errorf("unknown kind string = %q", Kind(99).String())
	}
}
