package ocrclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// OCRClientError represents an error that occurred during an OCR backend call
type OCRClientError struct {
	Op  string // Operation that caused the error
	Err error  // Original error
}

// Error implements the error interface
func (e *OCRClientError) Error() string {
	if e.Err == nil {
		return "ocr client error: " + e.Op
	}
	return "ocr client error: " + e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error
func (e *OCRClientError) Unwrap() error {
	return e.Err
}

// Client represents a client for the raw text recognition service
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Config holds configuration for the OCR client
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// NewClient creates a new text recognition client
func NewClient(config *Config) *Client {
	if config.Timeout == 0 {
		config.Timeout = 120 * time.Second
	}

	return &Client{
		baseURL: config.BaseURL,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// RecognizeText sends an image URL to the recognition service and returns the
// raw recognized text. The text comes back unstructured; parsing it into line
// items is the pipeline's job, not the backend's.
func (c *Client) RecognizeText(ctx context.Context, imageURL string) (string, error) {
	payload := map[string]string{
		"image_url": imageURL,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", &OCRClientError{
			Op:  "marshal_request",
			Err: fmt.Errorf("failed to marshal JSON payload: %w", err),
		}
	}

	url := fmt.Sprintf("%s/recognize", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", &OCRClientError{
			Op:  "create_request",
			Err: fmt.Errorf("failed to create request: %w", err),
		}
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &OCRClientError{
			Op:  "send_request",
			Err: fmt.Errorf("failed to send request: %w", err),
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &OCRClientError{
			Op:  "read_response",
			Err: fmt.Errorf("failed to read response: %w", err),
		}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &OCRClientError{
			Op:  "check_response_status",
			Err: fmt.Errorf("recognition service error (status %d): %s", resp.StatusCode, string(respBody)),
		}
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", &OCRClientError{
			Op:  "parse_response",
			Err: fmt.Errorf("failed to parse response: %w", err),
		}
	}

	return result.Text, nil
}

// HealthCheck checks if the recognition service is healthy
func (c *Client) HealthCheck() error {
	url := fmt.Sprintf("%s/health", c.baseURL)
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("health check failed (status %d): %s", resp.StatusCode, string(body))
	}

	return nil
}
