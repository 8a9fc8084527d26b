package chat

import "strings"

// Fixed generation parameters sent with every chat completion.
const (
	Temperature = 0.7
	MaxTokens   = 1024
	TopP        = 1
)

// DefaultSystemMessage is used when the caller supplies no system message.
const DefaultSystemMessage = "You are a helpful assistant taking part in a debate."

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a request to the chat completions endpoint.
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	TopP        float64   `json:"top_p"`
	Stream      bool      `json:"stream"`
}

// NewRequest builds the two-message request used for every turn.
func NewRequest(model, prompt, systemMessage string) ChatRequest {
	if systemMessage == "" {
		systemMessage = DefaultSystemMessage
	}
	return ChatRequest{
		Model: model,
		Messages: []Message{
			{Role: "system", Content: systemMessage},
			{Role: "user", Content: prompt},
		},
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
		TopP:        TopP,
		Stream:      false,
	}
}

// ChatResponse represents a response from the chat completions endpoint.
type ChatResponse struct {
	Choices []Choice `json:"choices"`
}

// Choice represents a single completion choice.
type Choice struct {
	Message *Message `json:"message"`
}

// Text returns the trimmed content of the first choice. ok is false when the
// response has no choices or the first choice carries no content.
func (r *ChatResponse) Text() (text string, ok bool) {
	if r == nil || len(r.Choices) == 0 || r.Choices[0].Message == nil {
		return "", false
	}
	text = strings.TrimSpace(r.Choices[0].Message.Content)
	return text, text != ""
}

// ProxyRequest is the body a ProxyClient posts to a credential proxy.
type ProxyRequest struct {
	Model         string `json:"model"`
	Prompt        string `json:"prompt"`
	SystemMessage string `json:"systemMessage,omitempty"`
}

// ErrorBody is the JSON error envelope returned by a credential proxy.
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
