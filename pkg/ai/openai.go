package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type openAIClient struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	httpClient  *http.Client
}

// NewOpenAIClient creates a client for any OpenAI-compatible chat completions
// endpoint (Groq, OpenAI, local gateways).
func NewOpenAIClient(baseURL, apiKey, model string, temperature float64, timeout time.Duration) Client {
	return &openAIClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *openAIClient) complete(ctx context.Context, messages []chatMessage) (string, error) {
	reqBody := chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create http request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("API error: %s", chatResp.Error.Message)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from AI API")
	}

	return chatResp.Choices[0].Message.Content, nil
}

func (c *openAIClient) ParseResume(ctx context.Context, resumeText string) (string, error) {
	content, err := c.complete(ctx, []chatMessage{
		{Role: "user", Content: buildParsePrompt(resumeText)},
	})
	if err != nil {
		return "", err
	}

	cleaned := cleanMarkdownJSON(content)
	if !json.Valid([]byte(cleaned)) {
		return "", fmt.Errorf("AI returned invalid JSON (raw length: %d)", len(cleaned))
	}
	return cleaned, nil
}

func (c *openAIClient) GenerateEmail(ctx context.Context, in GenerateEmailInput) (*EmailDraft, error) {
	content, err := c.complete(ctx, []chatMessage{
		{Role: "user", Content: buildGeneratePrompt(in)},
	})
	if err != nil {
		return nil, err
	}
	return parseDraft(content)
}

func (c *openAIClient) ReviseEmail(ctx context.Context, subject, body, instruction string) (*EmailDraft, error) {
	content, err := c.complete(ctx, []chatMessage{
		{Role: "user", Content: buildRevisePrompt(subject, body, instruction)},
	})
	if err != nil {
		return nil, err
	}
	return parseDraft(content)
}

func (c *openAIClient) Chat(ctx context.Context, in ChatInput) (string, error) {
	messages := make([]chatMessage, 0, len(in.History)+2)
	messages = append(messages, chatMessage{Role: "system", Content: buildChatSystemPrompt(in.Subject, in.Body)})
	for _, turn := range in.History {
		messages = append(messages, chatMessage{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, chatMessage{Role: "user", Content: in.Message})

	return c.complete(ctx, messages)
}

func parseDraft(content string) (*EmailDraft, error) {
	cleaned := cleanMarkdownJSON(content)

	var draft EmailDraft
	if err := json.Unmarshal([]byte(cleaned), &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal AI response to email draft (raw length: %d): %w", len(cleaned), err)
	}
	if draft.Body == "" {
		return nil, fmt.Errorf("AI response is missing the email body")
	}
	return &draft, nil
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
