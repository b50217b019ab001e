package geminiservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// --- Gemini API Configuration ---
const (
	DefaultBaseURL     = "https://generativelanguage.googleapis.com"
	DefaultModel       = "gemini-2.5-flash"
	defaultTimeout     = 60 * time.Second
	structuredMimeType = "application/json"
	maxErrorBody       = 2048
)

var (
	// ErrNotConfigured is returned when no API key was supplied.
	ErrNotConfigured = errors.New("AI service is not configured")

	// ErrNoContent is returned when Gemini answered 200 but produced no text,
	// e.g. the prompt was blocked or the candidate list is empty.
	ErrNoContent = errors.New("no content found in Gemini response")
)

// APIError is a non-200 answer from the Gemini API.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("API returned non-200 status: %s", e.Status)
}

// Config holds the settings needed to reach the Gemini API.
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	Timeout     time.Duration
	Temperature float64
}

// --- Structs for Gemini API Request/Response ---

type GeminiPayload struct {
	Contents          []GeminiContent   `json:"contents"`
	SystemInstruction *GeminiContent    `json:"systemInstruction,omitempty"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
}

type GeminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []GeminiPart `json:"parts"`
}

type GeminiPart struct {
	Text string `json:"text,omitempty"`
}

type GenerationConfig struct {
	ResponseMimeType string        `json:"responseMimeType"`
	ResponseSchema   *GeminiSchema `json:"responseSchema,omitempty"`
	Temperature      *float64      `json:"temperature,omitempty"`
}

type GeminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
}

type geminiErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Request is one structured generation call.
type Request struct {
	// Operation names the call for logs and metrics (e.g. "waterSavingTipsPrompt").
	Operation    string
	SystemPrompt string
	Prompt       string
	Schema       *GeminiSchema
}

// Client calls the Gemini generateContent endpoint.
type Client struct {
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	http        *http.Client
	log         zerolog.Logger
}

// NewClient builds a Client; empty settings fall back to defaults.
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		temperature: cfg.Temperature,
		http:        &http.Client{Timeout: cfg.Timeout},
		log:         logger.With().Str("component", "gemini").Str("model", cfg.Model).Logger(),
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Generate sends one structured generation request and returns the raw JSON
// text Gemini produced. It never retries.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	if !c.Configured() {
		c.log.Error().Str("operation", req.Operation).Msg("GEMINI_API_KEY is not set")
		return "", ErrNotConfigured
	}

	payload := GeminiPayload{
		Contents: []GeminiContent{
			{Role: "user", Parts: []GeminiPart{{Text: req.Prompt}}},
		},
		GenerationConfig: &GenerationConfig{
			ResponseMimeType: structuredMimeType,
			ResponseSchema:   req.Schema,
		},
	}
	if req.SystemPrompt != "" {
		payload.SystemInstruction = &GeminiContent{
			Parts: []GeminiPart{{Text: req.SystemPrompt}},
		}
	}
	if c.temperature > 0 {
		t := c.temperature
		payload.GenerationConfig.Temperature = &t
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(c.model), url.QueryEscape(c.apiKey))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	c.log.Debug().Str("operation", req.Operation).Int("prompt_chars", len(req.Prompt)).Msg("Calling Gemini API")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := readAPIError(resp)
		c.log.Warn().Err(apiErr).Str("operation", req.Operation).Int("status", resp.StatusCode).Msg("Gemini call failed")
		return "", apiErr
	}

	var geminiResp GeminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if geminiResp.PromptFeedback != nil && geminiResp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked (%s)", ErrNoContent, geminiResp.PromptFeedback.BlockReason)
	}

	if len(geminiResp.Candidates) > 0 && len(geminiResp.Candidates[0].Content.Parts) > 0 {
		// Structured output arrives as a JSON document inside the "text" part.
		return geminiResp.Candidates[0].Content.Parts[0].Text, nil
	}

	return "", ErrNoContent
}

// readAPIError pulls the human-readable message out of a Gemini error body.
func readAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode, Status: resp.Status}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var parsed geminiErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		apiErr.Message = parsed.Error.Message
	}
	return apiErr
}
