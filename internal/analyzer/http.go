package analyzer

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPAnalyzer is a client for any OpenAI-compatible chat completion API,
// used as the fallback when the local CLI binary is missing or failing.
type HTTPAnalyzer struct {
	ApiURL     string
	ApiKey     string
	Model      string
	HttpClient *http.Client
}

func NewHTTPAnalyzer(apiURL, apiKey, model string) *HTTPAnalyzer {
	return &HTTPAnalyzer{
		ApiURL: apiURL,
		ApiKey: apiKey,
		Model:  model,
		HttpClient: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

func (c *HTTPAnalyzer) Name() string { return "http:" + c.Model }

type (
	apiRequest struct {
		Model    string    `json:"model"`
		Messages []message `json:"messages"`
		Stream   bool      `json:"stream"`
	}
	message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	streamChunk struct {
		Choices []struct {
			Delta struct {
				Content string `json:"content"`
			} `json:"delta"`
		} `json:"choices"`
	}
)

// analyzeStream sends a prompt and returns the response as a stream of text
// chunks.
func (c *HTTPAnalyzer) analyzeStream(ctx context.Context, prompt string) (<-chan string, error) {
	reqBody, err := json.Marshal(apiRequest{
		Model: c.Model,
		Messages: []message{
			{Role: "user", Content: prompt},
		},
		Stream: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.ApiURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.ApiKey)

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("api returned non-200 status: %s, body: %s", resp.Status, string(bodyBytes))
	}

	outChan := make(chan string)

	go func() {
		defer close(outChan)
		defer resp.Body.Close()

		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			select {
			case <-ctx.Done():
				return
			default:
				line := scanner.Text()
				if strings.HasPrefix(line, "data: ") {
					jsonStr := strings.TrimPrefix(line, "data: ")
					if jsonStr == "[DONE]" {
						return
					}

					var chunk streamChunk
					if err := json.Unmarshal([]byte(jsonStr), &chunk); err == nil {
						if len(chunk.Choices) > 0 {
							outChan <- chunk.Choices[0].Delta.Content
						}
					}
				}
			}
		}
	}()

	return outChan, nil
}

// Analyze collects the stream into a single response string.
func (c *HTTPAnalyzer) Analyze(ctx context.Context, prompt string) (string, error) {
	stream, err := c.analyzeStream(ctx, prompt)
	if err != nil {
		return "", err
	}

	var result strings.Builder
	for chunk := range stream {
		result.WriteString(chunk)
	}
	return strings.TrimSpace(result.String()), nil
}
