package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"golang.org/x/oauth2"
)

const (
	// DefaultEndpoint is the text-generation endpoint the schedule prompt is posted to.
	DefaultEndpoint = "https://gemini.googleapis.com/v1/models/gemini-1.5:generateMessage"

	DefaultTemperature     = 0.7
	DefaultMaxOutputTokens = 500

	apiKeyEnv = "GEMINI_API_KEY"
)

// ErrMissingAPIKey is the configuration error raised before any network call.
var ErrMissingAPIKey = errors.New("please set your GEMINI_API_KEY environment variable")

// Config holds the settings for one Client.
type Config struct {
	APIKey          string
	Endpoint        string
	Temperature     float64
	MaxOutputTokens int
}

// ConfigFromEnv reads the credential from GEMINI_API_KEY as-is. Everything else is fixed.
func ConfigFromEnv() (Config, error) {
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return Config{}, ErrMissingAPIKey
	}
	return Config{
		APIKey:          apiKey,
		Endpoint:        DefaultEndpoint,
		Temperature:     DefaultTemperature,
		MaxOutputTokens: DefaultMaxOutputTokens,
	}, nil
}

// Client posts prompts to the generation endpoint with a bearer credential.
type Client struct {
	client          *http.Client
	endpoint        string
	temperature     float64
	maxOutputTokens int
}

// NewClient wraps base (http.DefaultTransport when nil) so every request carries
// "Authorization: Bearer <key>". No timeout is applied unless base sets one.
func NewClient(cfg Config, base *http.Client) (*Client, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}

	var hc http.Client
	if base != nil {
		hc = *base
	}
	hc.Transport = &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey, TokenType: "Bearer"}),
		Base:   hc.Transport,
	}

	return &Client{
		client:          &hc,
		endpoint:        cfg.Endpoint,
		temperature:     cfg.Temperature,
		maxOutputTokens: cfg.MaxOutputTokens,
	}, nil
}

type generateRequest struct {
	Prompt          string  `json:"prompt"`
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// Do sends one prompt and returns the raw response. The status code is not inspected;
// callers must close the body.
func (c *Client) Do(ctx context.Context, prompt string) (*http.Response, error) {
	if c == nil {
		return nil, errors.New("gemini client not initialized")
	}

	body, err := json.Marshal(generateRequest{
		Prompt:          prompt,
		Temperature:     c.temperature,
		MaxOutputTokens: c.maxOutputTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call model: %w", err)
	}
	return resp, nil
}

// Generate sends one prompt and returns the full response body.
func (c *Client) Generate(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := c.Do(ctx, prompt)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return respBody, nil
}
