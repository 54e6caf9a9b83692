package narrator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/balcaohq/backend/internal/domain"
)

// systemInstruction is the fixed persona for every completion call. The
// product data itself travels in the user message.
const systemInstruction = "Você é um atendente virtual de uma empresa. " +
	"Produza uma descrição de produto clara e útil a partir dos dados fornecidos."

// Client calls a chat-completion endpoint to paraphrase matched-product
// text. Failures here never abort a query; the caller falls back to the
// raw match text.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	model      string
}

// NewClient creates a completion client for the given endpoint and model.
func NewClient(apiKey, baseURL, model string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Describe sends the formatted match text to the completion endpoint and
// returns the trimmed completion.
func (c *Client) Describe(ctx context.Context, formattedMatch string) (string, error) {
	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: formattedMatch},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrNarratorUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrNarratorUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrNarratorUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		slog.Warn("completion call failed", "status", resp.StatusCode)
		return "", fmt.Errorf("%w: status %d, body: %s",
			domain.ErrNarratorUnavailable, resp.StatusCode, string(respBody))
	}

	var completion chatResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrNarratorUnavailable, err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", domain.ErrNarratorUnavailable)
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}

// Noop is a narrator that returns the match text unchanged. It backs the
// configuration with narration disabled.
type Noop struct{}

// Describe returns the input as-is.
func (Noop) Describe(ctx context.Context, formattedMatch string) (string, error) {
	return formattedMatch, nil
}
