// Package gemini generates chat replies with the Google Gen AI SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/lovefest/lovefest_backend/config"
)

var (
	ErrNoAPIKey  = errors.New("gemini: api key is required")
	ErrEmptyText = errors.New("gemini: response missing text")
)

const (
	DefaultModel      = "gemini-2.5-flash"
	DefaultAPIVersion = "v1beta"
)

type Config struct {
	APIKey     string
	Model      string
	BaseURL    string // empty uses the SDK default host
	APIVersion string
	HTTPClient *http.Client
}

func FromCentralConfig(c config.ChatConfig) Config {
	return Config{
		APIKey:     c.APIKey,
		Model:      c.Model,
		BaseURL:    c.Endpoint,
		APIVersion: c.APIVersion,
		HTTPClient: &http.Client{Timeout: c.ChatTimeout()},
	}
}

type Client struct {
	genai *genai.Client
	model string
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNoAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    cfg.BaseURL,
			APIVersion: cfg.APIVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &Client{genai: gc, model: cfg.Model}, nil
}

// Generate sends a single-turn prompt and returns the trimmed reply text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return ExtractText(resp)
}

// ExtractText turns a response into reply text. A blocked prompt or a blank
// reply is an error.
func ExtractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", ErrEmptyText
	}
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return "", fmt.Errorf("prompt blocked: %s", fb.BlockReason)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyText
	}
	return text, nil
}
