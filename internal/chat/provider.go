package chat

import "strings"

// Provider describes an upstream OpenAI-compatible chat completion service.
type Provider struct {
	Name   string // display name used in proxy error messages
	URL    string // full chat completions endpoint
	KeyEnv string // environment variable holding the server-side secret
}

// BaseURL returns the endpoint with the /chat/completions suffix removed,
// the form expected by OpenAI-compatible SDKs.
func (p Provider) BaseURL() string {
	return strings.TrimSuffix(p.URL, "/chat/completions")
}

var (
	Groq = Provider{
		Name:   "Groq",
		URL:    "https://api.groq.com/openai/v1/chat/completions",
		KeyEnv: "GROQ_API_KEY",
	}
	OpenRouter = Provider{
		Name:   "OpenRouter",
		URL:    "https://openrouter.ai/api/v1/chat/completions",
		KeyEnv: "OPENROUTER_API_KEY",
	}
)

// LookupProvider returns the provider registered under name ("groq" or "openrouter").
func LookupProvider(name string) (Provider, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "groq":
		return Groq, true
	case "openrouter", "":
		return OpenRouter, true
	}
	return Provider{}, false
}
