// Package groq implements the ai.Provider interface for Groq's
// OpenAI-compatible chat completions API.
package groq

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/procurea/scdra/internal/httpx"
	"github.com/procurea/scdra/providers/ai"
)

const (
	// DefaultBaseURL is Groq's OpenAI-compatible endpoint root.
	DefaultBaseURL = "https://api.groq.com/openai/v1"

	// DefaultModel is used when the request does not name a model.
	DefaultModel = "llama-3.3-70b-versatile"

	chatCompletionsPath = "/chat/completions"
)

// Provider is the Groq implementation of [ai.Provider].
type Provider struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewProvider builds a Provider with the API key taken from the GROQ_API_KEY
// environment variable. Override with WithAPIKey.
func NewProvider() *Provider {
	return &Provider{
		apiKey:  os.Getenv("GROQ_API_KEY"),
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
	}
}

// WithAPIKey sets the API key used for authenticating requests.
func (p *Provider) WithAPIKey(apiKey string) ai.Provider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL overrides the default base URL for API requests.
func (p *Provider) WithBaseURL(baseURL string) ai.Provider {
	p.baseURL = baseURL
	return p
}

// WithHttpClient sets the HTTP client used for outbound requests.
func (p *Provider) WithHttpClient(httpClient *http.Client) ai.Provider {
	p.httpClient = httpClient
	return p
}

// WithModel sets the default model used when a request does not name one.
func (p *Provider) WithModel(model string) *Provider {
	p.model = model
	return p
}

// SendMessage sends the chat request to Groq and returns the completed
// response.
func (p *Provider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("groq: missing API key (set GROQ_API_KEY or use WithAPIKey)")
	}

	wireRequest := convertRequest(request, p.model)

	wireResponse, err := httpx.PostJSON[chatCompletionResponse](
		ctx, p.httpClient, p.baseURL+chatCompletionsPath, p.apiKey, wireRequest)
	if err != nil {
		return nil, fmt.Errorf("groq: chat completion: %w", err)
	}

	return convertResponse(wireResponse)
}
