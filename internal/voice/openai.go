package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"neetstudio/pkg/httputil"
)

const (
	openAISpeechURL = "https://api.openai.com/v1/audio/speech"
	defaultTimeout  = 60 * time.Second
)

type openAIRequest struct {
	Model string  `json:"model"`
	Voice string  `json:"voice"`
	Input string  `json:"input"`
	Speed float64 `json:"speed,omitempty"`
}

type openAIErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// OpenAIClient implements Provider using the OpenAI speech endpoint.
type OpenAIClient struct {
	apiKey     string
	httpClient *httputil.RetryClient
	model      string
	voice      string
	speed      float64
	baseURL    string
}

// OpenAIOptions configures the OpenAI TTS client.
type OpenAIOptions struct {
	Model string
	Voice string
	Speed float64
}

func NewOpenAIClient(apiKey string, opts OpenAIOptions) *OpenAIClient {
	speed := opts.Speed
	if speed == 0 {
		speed = 1.0
	}
	return &OpenAIClient{
		apiKey: apiKey,
		httpClient: httputil.NewRetryClient(
			&http.Client{Timeout: defaultTimeout},
			httputil.DefaultRetryConfig(),
		),
		model:   opts.Model,
		voice:   opts.Voice,
		speed:   speed,
		baseURL: openAISpeechURL,
	}
}

func (c *OpenAIClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	data, err := json.Marshal(openAIRequest{
		Model: c.model,
		Voice: c.voice,
		Input: text,
		Speed: c.speed,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		var errResp openAIErrorResponse
		if jsonErr := json.Unmarshal(body, &errResp); jsonErr == nil && errResp.Error.Message != "" {
			return nil, fmt.Errorf("openai: %s", errResp.Error.Message)
		}
		return nil, fmt.Errorf("openai: %s", resp.Status)
	}

	if len(body) == 0 {
		return nil, fmt.Errorf("openai: empty audio response")
	}
	return body, nil
}
