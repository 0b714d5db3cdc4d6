// Package llm talks to an OpenAI-compatible chat-completions API to
// generate lead suggestions and outreach email drafts. Keys are supplied
// per request (bring your own key); nothing is stored.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/prospectio/leadscout/models"
)

// Client is a lightweight OpenAI-compatible API client.
// It uses net/http directly — no third-party SDK needed.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new LLM client with the given http.Client.
// Pass nil to use a default client.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{httpClient: httpClient}
}

// chatRequest is the OpenAI chat completion request body.
type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

// chatResponse is the minimal OpenAI chat completion response we need.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// chatErrorResponse captures an API error from the LLM provider.
type chatErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// GenerateLeads asks the model for count plausible lead profiles in the
// given niche and returns them as candidates tagged "ai-generated".
func (c *Client) GenerateLeads(ctx context.Context, niche string, count int, params models.LLMParams) ([]models.CandidateLead, *models.LLMUsage, error) {
	system := fmt.Sprintf(`You are a lead research assistant. Suggest %d realistic public social media profiles worth researching for the niche described by the user.

Return ONLY a JSON object of the form {"leads": [...]} where each entry has the fields:
username, platform (twitter|instagram|linkedin|facebook|tiktok|youtube), full_name, bio, followers (integer estimate), profile_url.

Rules:
- Return ONLY valid JSON, no markdown fences or explanation.
- Do not invent contact details such as emails or phone numbers.`, count)

	raw, usage, err := c.complete(ctx, system, niche, params)
	if err != nil {
		return nil, nil, err
	}

	var payload struct {
		Leads []models.CandidateLead `json:"leads"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, usage, models.NewAPIError(models.ErrCodeLLMFailure, "LLM returned unexpected JSON shape", err)
	}

	for i := range payload.Leads {
		if payload.Leads[i].Platform == "" {
			payload.Leads[i].Platform = models.PlatformUnknown
		}
		payload.Leads[i].Tags = []string{"ai-generated"}
	}
	return payload.Leads, usage, nil
}

// DraftEmail generates an outreach email for a stored lead.
func (c *Client) DraftEmail(ctx context.Context, lead *models.Lead, purpose, tone string, params models.LLMParams) (*models.EmailDraft, *models.LLMUsage, error) {
	system := fmt.Sprintf(`You are an outreach copywriter. Write a short %s cold email to the lead described by the user.

Return ONLY a JSON object of the form {"subject": "...", "body": "..."} with no markdown fences or explanation.`, tone)

	leadJSON, err := json.Marshal(lead)
	if err != nil {
		return nil, nil, fmt.Errorf("llm: marshal lead: %w", err)
	}
	user := fmt.Sprintf("Purpose: %s\n\nLead:\n%s", purpose, leadJSON)

	raw, usage, err := c.complete(ctx, system, user, params)
	if err != nil {
		return nil, nil, err
	}

	var draft models.EmailDraft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, usage, models.NewAPIError(models.ErrCodeLLMFailure, "LLM returned unexpected JSON shape", err)
	}
	return &draft, usage, nil
}

// complete performs one JSON-mode chat completion and returns the raw JSON
// content plus usage.
func (c *Client) complete(ctx context.Context, system, user string, params models.LLMParams) (json.RawMessage, *models.LLMUsage, error) {
	reqBody := chatRequest{
		Model: params.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature:    0.7,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, nil, fmt.Errorf("llm: marshal request: %w", err)
	}

	endpoint := strings.TrimRight(params.BaseURL, "/") + "/chat/completions"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("llm: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+params.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, models.NewAPIError(models.ErrCodeLLMFailure, "LLM request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, models.NewAPIError(models.ErrCodeLLMFailure, "failed to read LLM response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, nil, classifyLLMError(resp.StatusCode, respBody)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, nil, models.NewAPIError(models.ErrCodeLLMFailure, "failed to parse LLM response", err)
	}

	if len(chatResp.Choices) == 0 {
		return nil, nil, models.NewAPIError(models.ErrCodeLLMFailure, "LLM returned no choices", nil)
	}

	raw := chatResp.Choices[0].Message.Content
	if !json.Valid([]byte(raw)) {
		return nil, nil, models.NewAPIError(models.ErrCodeLLMFailure, "LLM returned invalid JSON", nil)
	}

	usage := &models.LLMUsage{
		PromptTokens:     chatResp.Usage.PromptTokens,
		CompletionTokens: chatResp.Usage.CompletionTokens,
		TotalTokens:      chatResp.Usage.TotalTokens,
	}
	return json.RawMessage(raw), usage, nil
}

// classifyLLMError maps HTTP status codes to appropriate error codes.
func classifyLLMError(statusCode int, body []byte) *models.APIError {
	var errResp chatErrorResponse
	msg := "LLM API error"
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		msg = errResp.Error.Message
	}

	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return models.NewAPIError(models.ErrCodeLLMAuthFailure, msg, nil)
	case statusCode == http.StatusTooManyRequests:
		return models.NewAPIError(models.ErrCodeLLMRateLimited, msg, nil)
	default:
		return models.NewAPIError(models.ErrCodeLLMFailure, fmt.Sprintf("LLM API returned %d: %s", statusCode, msg), nil)
	}
}
