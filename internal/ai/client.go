package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/Rorical/QuickAct/internal/config"
	"github.com/Rorical/QuickAct/internal/gateway"
)

const DefaultTemperature float32 = 0.7

// Client is the AI gateway over an OpenAI-compatible chat completions API.
// Credentials travel with each request, so one Client serves every profile.
type Client struct {
	httpClient  *http.Client
	temperature float32
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTemperature(t float32) Option {
	return func(c *Client) { c.temperature = t }
}

func NewClient(opts ...Option) *Client {
	c := &Client{temperature: DefaultTemperature}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) api(apiKey, baseURL string) *openai.Client {
	clientConfig := openai.DefaultConfig(apiKey)
	clientConfig.BaseURL = config.DefaultBaseURL
	if baseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if c.httpClient != nil {
		clientConfig.HTTPClient = c.httpClient
	}
	return openai.NewClientWithConfig(clientConfig)
}

// ProcessText runs one rewrite and returns the trimmed reply.
func (c *Client) ProcessText(ctx context.Context, req gateway.AIRequest) (string, error) {
	prompt, err := SystemPrompt(req.Action, req.Tone)
	if err != nil {
		return "", err
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = config.DefaultMaxTokens
	}

	resp, err := c.api(req.APIKey, req.BaseURL).CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: req.ModelID,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt},
			{Role: openai.ChatMessageRoleUser, Content: req.Text},
		},
		MaxTokens:   maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", mapError(err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no content in AI response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// ListModels returns the model IDs the key can use, sorted.
func (c *Client) ListModels(ctx context.Context, apiKey, baseURL string) ([]string, error) {
	list, err := c.api(apiKey, baseURL).ListModels(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	ids := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		if m.ID != "" {
			ids = append(ids, m.ID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// DefaultModel picks a model when the profile has none: the first free model,
// then the first gemini-2.0-flash variant, then the first model.
func DefaultModel(ids []string) string {
	for _, id := range ids {
		if strings.Contains(id, "free") {
			return id
		}
	}
	for _, id := range ids {
		if strings.Contains(id, "gemini-2.0-flash") {
			return id
		}
	}
	if len(ids) > 0 {
		return ids[0]
	}
	return ""
}

// mapError turns go-openai and transport failures into gateway errors.
func mapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return &gateway.StatusError{Code: apiErr.HTTPStatusCode, Message: apiErr.Message}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		msg := strings.TrimSpace(string(reqErr.Body))
		if msg == "" && reqErr.Err != nil {
			msg = reqErr.Err.Error()
		}
		return &gateway.StatusError{Code: reqErr.HTTPStatusCode, Message: msg}
	}
	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", gateway.ErrUnreachable, err)
	}
	return err
}
