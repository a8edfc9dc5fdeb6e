package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/learnio/learnio/internal/model"
)

const (
	defaultModel     = "claude-sonnet-4-20250514"
	defaultMaxTokens = 1024
	defaultBaseURL   = "https://api.anthropic.com/v1/messages"
	apiVersion       = "2023-06-01"
)

// Fallback replies returned when the completion call fails for any
// reason. The chat surfaces never see transport errors directly.
const (
	chatFallback      = "Sorry, I encountered an error while processing your request. Please try again."
	summarizeFallback = "Sorry, I couldn't summarize the text."
)

// Client calls the remote messages API to generate assistant replies
// and summaries. It keeps no conversation state; callers pass the full
// prompt each time.
type Client struct {
	apiKey    string
	baseURL   string
	model     string
	maxTokens int
	client    *http.Client
}

// New creates a completion client. Empty or zero arguments fall back
// to the package defaults.
func New(apiKey, baseURL, modelName string, maxTokens int) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if modelName == "" {
		modelName = defaultModel
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	return &Client{
		apiKey:    apiKey,
		baseURL:   baseURL,
		model:     modelName,
		maxTokens: maxTokens,
		client:    &http.Client{},
	}
}

// GenerateResponse produces an assistant reply to prompt in the given
// language. Failures of any kind return a fixed apology string; the
// method never returns an error.
func (c *Client) GenerateResponse(ctx context.Context, prompt string, language model.Language) string {
	reply, err := c.call(ctx, chatSystemInstruction(language), prompt)
	if err != nil {
		return chatFallback
	}
	return reply
}

// Summarize condenses text into a few numbered key points. Failures
// return a fixed apology string.
func (c *Client) Summarize(ctx context.Context, text string) string {
	prompt := "Summarize the following conversation/text into a few key points, " +
		"using a numbered list. Keep it concise and clear:\n\n" + text
	reply, err := c.call(ctx, "", prompt)
	if err != nil {
		return summarizeFallback
	}
	return reply
}

// chatSystemInstruction builds the formatting contract the chat views
// rely on: numbered points, a bold subtitle followed by the
// explanation on the same line, blank lines between points, and no
// other markdown.
func chatSystemInstruction(language model.Language) string {
	name := language.DisplayName()

	var sb strings.Builder
	sb.WriteString("You are a helpful assistant for Learnio.AI.\n")
	sb.WriteString(fmt.Sprintf("The user requires a response in %s.\n", name))
	sb.WriteString(fmt.Sprintf("Your entire response must be in %s.\n\n", name))
	sb.WriteString("Strictly adhere to the following formatting rules:\n")
	sb.WriteString("1. Your response must be a numbered list (e.g., 1., 2., 3.).\n")
	sb.WriteString("2. Each numbered point must start with a subtitle, formatted in bold using markdown (e.g., **Subtitle:**).\n")
	sb.WriteString("3. The explanation text must follow the subtitle on the same line.\n")
	sb.WriteString("4. Ensure there is one blank line between each numbered point to create clean separation.\n")
	sb.WriteString("5. Do not use any other special symbols, asterisks, or markdown formatting. The only markdown allowed is for the bold subtitle.\n")
	sb.WriteString("6. The tone must be clear, polite, and professional.")
	return sb.String()
}

// call makes a single request to the messages API and returns the
// concatenated text content.
func (c *Client) call(ctx context.Context, system, prompt string) (string, error) {
	reqBody := apiRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    system,
		Messages: []apiMessage{
			{
				Role: "user",
				Content: []apiContentBlock{
					{Type: "text", Text: prompt},
				},
			},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL, bytes.NewReader(bodyBytes),
	)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling completion API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiErrorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("API error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result apiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	var parts []string
	for _, block := range result.Content {
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "")), nil
}

// --- messages API types ---

type apiRequest struct {
	Model     string       `json:"model"`
	MaxTokens int          `json:"max_tokens"`
	System    string       `json:"system,omitempty"`
	Messages  []apiMessage `json:"messages"`
}

type apiMessage struct {
	Role    string            `json:"role"`
	Content []apiContentBlock `json:"content"`
}

type apiContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type apiResponse struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Role       string            `json:"role"`
	Content    []apiContentBlock `json:"content"`
	Model      string            `json:"model"`
	StopReason string            `json:"stop_reason"`
}

type apiErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}
