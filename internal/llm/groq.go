package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

const (
	defaultGroqURL   = "https://api.groq.com/openai/v1/chat/completions"
	defaultGroqModel = "llama-3.3-70b-versatile"
)

// GroqClient talks to Groq's OpenAI-compatible chat completions endpoint.
type GroqClient struct {
	apiKey string
	model  string
	apiURL string
	http   *http.Client
}

func NewGroqClient() *GroqClient {
	apiURL := os.Getenv("GROQ_API_URL")
	if apiURL == "" {
		apiURL = defaultGroqURL
	}
	model := os.Getenv("GROQ_MODEL")
	if model == "" {
		model = defaultGroqModel
	}

	return &GroqClient{
		apiKey: os.Getenv("GROQ_API_KEY"),
		model:  model,
		apiURL: apiURL,
		http:   &http.Client{Timeout: 60 * time.Second},
	}
}

func (g *GroqClient) Name() string { return "groq:" + g.model }

// Complete sends one user message and returns the first choice's content.
func (g *GroqClient) Complete(ctx context.Context, req Request) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("%w: missing GROQ_API_KEY", ErrUnavailable)
	}
	if req.Prompt == "" {
		return "", errors.New("empty prompt")
	}

	payload := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "user", Content: req.Prompt},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		g.apiURL,
		bytes.NewBuffer(body),
	)
	if err != nil {
		return "", err
	}

	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("GROQ_ERROR status=%d body=%s", resp.StatusCode, truncate(raw, 300))
		return "", fmt.Errorf("%w: groq status %d", ErrUnavailable, resp.StatusCode)
	}

	var result chatResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: empty groq response", ErrUnavailable)
	}

	return result.Choices[0].Message.Content, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
