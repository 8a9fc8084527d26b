package llm

import (
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a failed model invocation.
type Kind int

const (
	UpstreamOther Kind = iota
	MethodNotAllowed
	MissingCredential
	BadRequest
	AuthOrQuota
	RateLimited
	BadModelOrParams
	ModelUnavailable
	UnexpectedResponse
	Transport
	Timeout
	NoValidKey
)

var kindNames = map[Kind]string{
	UpstreamOther:      "upstream_other",
	MethodNotAllowed:   "method_not_allowed",
	MissingCredential:  "missing_credential",
	BadRequest:         "bad_request",
	AuthOrQuota:        "auth_or_quota",
	RateLimited:        "rate_limited",
	BadModelOrParams:   "bad_model_or_params",
	ModelUnavailable:   "model_unavailable",
	UnexpectedResponse: "unexpected_response",
	Transport:          "transport",
	Timeout:            "timeout",
	NoValidKey:         "no_valid_key",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// APIError is the uniform failure returned by every Invoker.
// Message is safe to show to end users; Detail holds the raw upstream text
// and is meant for logs only.
type APIError struct {
	Kind    Kind
	Status  int // HTTP status, 0 when no response was received
	Message string
	Detail  string
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("llm: %s (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("llm: %s: %s", e.Kind, e.Message)
}

func newError(kind Kind, status int, detail string) *APIError {
	return &APIError{
		Kind:    kind,
		Status:  status,
		Message: MessageFor(kind, status),
		Detail:  detail,
	}
}

// Body substrings the proxy and providers are known to emit.
var (
	unavailableHints = []string{"No instances available", "Service Unavailable"}
	missingKeyHint   = "API key not configured"
	missingBodyHint  = "Missing model or prompt"
	proxyFetchHint   = "via proxy"
)

// Classify maps an HTTP status and optional body text to a Kind.
func Classify(status int, body string) Kind {
	switch status {
	case http.StatusUnauthorized:
		return AuthOrQuota
	case http.StatusTooManyRequests:
		return RateLimited
	case http.StatusBadRequest:
		if strings.Contains(body, missingBodyHint) {
			return BadRequest
		}
		return BadModelOrParams
	case http.StatusMethodNotAllowed:
		return MethodNotAllowed
	case http.StatusServiceUnavailable:
		return ModelUnavailable
	case http.StatusInternalServerError:
		for _, hint := range unavailableHints {
			if strings.Contains(body, hint) {
				return ModelUnavailable
			}
		}
		if strings.Contains(body, missingKeyHint) {
			return MissingCredential
		}
		if strings.Contains(body, proxyFetchHint) {
			return Transport
		}
	}
	return UpstreamOther
}

// MessageFor returns the fixed user-facing message for a Kind.
func MessageFor(kind Kind, status int) string {
	switch kind {
	case MethodNotAllowed:
		return "Method Not Allowed"
	case MissingCredential:
		return "API key not configured."
	case BadRequest:
		return "Missing model or prompt in request body."
	case AuthOrQuota:
		return "API key invalid or quota exceeded."
	case RateLimited:
		return "Rate limit exceeded or quota finished."
	case BadModelOrParams:
		return "Bad request - check model name or parameters."
	case ModelUnavailable:
		return "The selected model is not available right now. Please try again shortly or choose a different model."
	case UnexpectedResponse:
		return "Unexpected response from the model provider."
	case Transport:
		return "Could not reach the model provider."
	case Timeout:
		return "The model did not respond in time."
	case NoValidKey:
		return "No valid OpenRouter API key."
	}
	return fmt.Sprintf("Error calling LLM: %d", status)
}
