package docscan

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ridwanfathin/pantry-receipt-service/internal/domain"
)

const extractionPrompt = `You are a receipt data extraction assistant. Extract the following information from the receipt image:
- Vendor name
- Vendor address
- Purchase date (in YYYY-MM-DD format)
- Line items (including name, quantity, unit price, and line total for each)
- Subtotal
- Tax amount
- Total amount
- The raw recognized text of the receipt

Format your response as a valid JSON object with the following structure:
{
  "vendor_name": "...",
  "vendor_address": "...",
  "date": "YYYY-MM-DD",
  "items": [
    {
      "name": "...",
      "qty": 1,
      "price": 0.0,
      "total": 0.0
    }
  ],
  "subtotal": 0.0,
  "tax": 0.0,
  "total": 0.0,
  "raw_text": "..."
}

If a field is not present on the receipt, use an empty string for text fields and 0.0 for amounts.

Do not include any other text in your response, only provide the JSON.`

// ExtractDocument extracts a structured receipt document from an image. The
// image is sent inline as a base64 data URL together with the configured
// category hints. Any non-success response from the service is returned as a
// DocScanError for the caller to surface as a recognition failure.
func (c *Client) ExtractDocument(ctx context.Context, imageData []byte) (*domain.ReceiptDocument, error) {
	if c.apiKey == "" {
		return nil, &DocScanError{
			Op:  "validate_configuration",
			Err: fmt.Errorf("document extraction API key is not configured. Please set DOCSCAN_API_KEY environment variable"),
		}
	}

	type Message struct {
		Role    string        `json:"role"`
		Content []interface{} `json:"content"`
	}

	type ImageURL struct {
		URL string `json:"url"`
	}

	type Content struct {
		Type     string    `json:"type"`
		Text     string    `json:"text,omitempty"`
		ImageURL *ImageURL `json:"image_url,omitempty"`
	}

	systemContent := Content{
		Type: "text",
		Text: extractionPrompt,
	}

	userText := "Extract the data from this receipt image."
	if len(c.categoryHints) > 0 {
		userText = fmt.Sprintf("Extract the data from this receipt image. The receipt is likely from one of these store categories: %s.",
			strings.Join(c.categoryHints, ", "))
	}

	// Encode the image as an inline data URL
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(imageData)

	userContent := []interface{}{
		Content{
			Type: "text",
			Text: userText,
		},
		Content{
			Type:     "image_url",
			ImageURL: &ImageURL{URL: dataURL},
		},
	}

	requestPayload := map[string]interface{}{
		"model": c.modelID,
		"messages": []Message{
			{
				Role:    "system",
				Content: []interface{}{systemContent},
			},
			{
				Role:    "user",
				Content: userContent,
			},
		},
	}

	requestData, err := json.Marshal(requestPayload)
	if err != nil {
		return nil, &DocScanError{
			Op:  "marshal_request",
			Err: fmt.Errorf("failed to marshal request payload: %w", err),
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(requestData))
	if err != nil {
		return nil, &DocScanError{
			Op:  "create_extract_request",
			Err: fmt.Errorf("failed to create request: %w", err),
		}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &DocScanError{
			Op:  "send_extract_request",
			Err: fmt.Errorf("failed to send request: %w", err),
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &DocScanError{
			Op:  "read_response",
			Err: fmt.Errorf("failed to read response body: %w", err),
		}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &DocScanError{
			Op:  "check_api_response",
			Err: fmt.Errorf("API error: %s - %s", resp.Status, string(respBody)),
		}
	}

	return c.parseExtractionResponse(respBody)
}
