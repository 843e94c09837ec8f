package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kolinabir/hirelens/internal/models"
)

const defaultGroqURL = "https://api.groq.com/openai/v1/chat/completions"

type groqClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewGroqClient creates a Groq chat-completions client.
func NewGroqClient(apiKey string) Client {
	return &groqClient{
		apiKey:     apiKey,
		model:      "llama-3.3-70b-versatile",
		baseURL:    defaultGroqURL,
		httpClient: &http.Client{},
	}
}

// newGroqClientWithURL exists for tests that point the client at a mock server.
func newGroqClientWithURL(apiKey, baseURL string, httpClient *http.Client) Client {
	return &groqClient{
		apiKey:     apiKey,
		model:      "llama-3.3-70b-versatile",
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqRequest struct {
	Model       string        `json:"model"`
	Messages    []groqMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type groqResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// ExtractJobs sends the raw posts to Groq and parses the structured jobs the
// model returns.
func (c *groqClient) ExtractJobs(ctx context.Context, posts []models.Post) ([]models.ExtractedJob, error) {
	postsJSON, err := json.Marshal(posts)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal posts: %w", err)
	}

	reqBody := groqRequest{
		Model: c.model,
		Messages: []groqMessage{
			{Role: "system", Content: buildSystemPrompt()},
			{Role: "user", Content: buildUserPrompt(string(postsJSON))},
		},
		Temperature: 0.2, // low temperature for consistency
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal groq request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("groq API returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var groqResp groqResponse
	if err := json.Unmarshal(bodyBytes, &groqResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if groqResp.Error != nil {
		return nil, fmt.Errorf("API error: %s", groqResp.Error.Message)
	}
	if len(groqResp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned from groq API")
	}

	// Clean the response from potential markdown wrappers
	cleanedJSON := cleanMarkdownJSON(groqResp.Choices[0].Message.Content)

	var jobs []models.ExtractedJob
	if err := json.Unmarshal([]byte(cleanedJSON), &jobs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal AI response to jobs (raw length: %d): %w", len(cleanedJSON), err)
	}
	return jobs, nil
}

// cleanMarkdownJSON removes backticks and "json" prefix if the AI model tries to be helpful
func cleanMarkdownJSON(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}
