// Package genai talks to a Gemini-style generateContent endpoint to turn the
// current canvas plus a text prompt into a replacement image.
package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const pngMIMEType = "image/png"

// Client is an HTTP client for the image generation service.
type Client struct {
	client   *http.Client
	logger   *slog.Logger
	endpoint string
	apiKey   string
}

// NewClient creates a generation client for the given endpoint.
func NewClient(endpoint, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		logger:   logger,
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
	}
}

// generateRequest is the generateContent request body.
type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

// content groups the parts of one conversational turn.
type content struct {
	Parts []part `json:"parts"`
}

// part carries either text or inline image data.
type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

// inlineData is a base64-encoded media blob.
type inlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

// generationConfig selects the response modalities.
type generationConfig struct {
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

// generateResponse is the generateContent response body.
type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

// candidate is one generated answer.
type candidate struct {
	Content content `json:"content"`
}

// errorResponse is the service's JSON error envelope.
type errorResponse struct {
	Error apiError `json:"error"`
}

// apiError carries the service-side failure details.
type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// EditImage sends the canvas PNG and the prompt to the model and returns the
// raw bytes of the first image in the response.
func (c *Client) EditImage(ctx context.Context, model, prompt string, png []byte) ([]byte, error) {
	req := generateRequest{
		Contents: []content{{
			Parts: []part{
				{Text: prompt},
				{InlineData: &inlineData{
					MIMEType: pngMIMEType,
					Data:     base64.StdEncoding.EncodeToString(png),
				}},
			},
		}},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
		},
	}

	reqJSON, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.endpoint, model, url.QueryEscape(c.apiKey))

	httpReq, err := http.NewRequestWithContext(ctx, "POST", reqURL, bytes.NewReader(reqJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	c.logger.Debug("Sending generation request",
		"model", model,
		"prompt_len", len(prompt),
		"image_bytes", len(png))

	startTime := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	duration := time.Since(startTime)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Generation HTTP error",
			"status", resp.StatusCode,
			"body", string(body),
			"duration", duration)
		return nil, fmt.Errorf("generation failed: %s", extractErrorMessage(resp.StatusCode, body))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	image, err := firstImage(genResp)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Generation response received",
		"duration", duration,
		"image_bytes", len(image))

	return image, nil
}

// firstImage scans the candidates for the first inline image part.
func firstImage(resp generateResponse) ([]byte, error) {
	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if p.InlineData == nil || p.InlineData.Data == "" {
				continue
			}
			data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("failed to decode image data: %w", err)
			}
			return data, nil
		}
	}
	return nil, fmt.Errorf("response contained no image")
}

// extractErrorMessage pulls the service's error message out of an error body,
// falling back to the HTTP status when the body is not the expected JSON.
func extractErrorMessage(statusCode int, body []byte) string {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		return errResp.Error.Message
	}
	return fmt.Sprintf("service returned status %d", statusCode)
}
