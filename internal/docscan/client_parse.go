package docscan

import (
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/ridwanfathin/pantry-receipt-service/internal/domain"
)

// documentDTO mirrors the JSON shape the extraction prompt asks the model for
type documentDTO struct {
	VendorName    string  `json:"vendor_name"`
	VendorAddress string  `json:"vendor_address"`
	Date          string  `json:"date"`
	Subtotal      float64 `json:"subtotal"`
	Tax           float64 `json:"tax"`
	Total         float64 `json:"total"`
	RawText       string  `json:"raw_text"`
	Items         []struct {
		Name  string  `json:"name"`
		Qty   float64 `json:"qty"`
		Price float64 `json:"price"`
		Total float64 `json:"total"`
	} `json:"items"`
}

var (
	jsonFencePattern = regexp.MustCompile("```json\\s*|```\\s*")
	jsonBodyPattern  = regexp.MustCompile(`\{[\s\S]*\}`)
)

// parseExtractionResponse parses the chat-completions response from the
// extraction service into a receipt document.
func (c *Client) parseExtractionResponse(respBody []byte) (*domain.ReceiptDocument, error) {
	type Choice struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}

	type Response struct {
		Choices []Choice `json:"choices"`
	}

	var response Response
	if err := json.Unmarshal(respBody, &response); err != nil {
		return nil, &DocScanError{
			Op:  "parse_response_json",
			Err: fmt.Errorf("failed to unmarshal response: %w", err),
		}
	}

	if len(response.Choices) == 0 {
		return nil, &DocScanError{
			Op:  "check_response_choices",
			Err: fmt.Errorf("no choices in response"),
		}
	}

	content := response.Choices[0].Message.Content

	var dto documentDTO
	if err := json.Unmarshal([]byte(content), &dto); err == nil {
		return dtoToDocument(&dto), nil
	}

	// Models sometimes wrap the JSON in markdown fences or prose; strip the
	// fences and take the outermost JSON object.
	c.logger.Debug("extraction content is not bare JSON, trying fenced extraction")
	return c.extractJSONContent(content)
}

// extractJSONContent recovers a JSON document from fenced or prose-wrapped content
func (c *Client) extractJSONContent(content string) (*domain.ReceiptDocument, error) {
	content = jsonFencePattern.ReplaceAllString(content, "")

	jsonMatch := jsonBodyPattern.FindString(content)
	if jsonMatch == "" {
		return nil, &DocScanError{
			Op:  "extract_json_content",
			Err: fmt.Errorf("no JSON object found in response content"),
		}
	}

	var dto documentDTO
	if err := json.Unmarshal([]byte(jsonMatch), &dto); err != nil {
		c.logger.Warn("failed to parse extracted JSON content", zap.Error(err))
		return nil, &DocScanError{
			Op:  "extract_json_content",
			Err: fmt.Errorf("failed to parse JSON content: %w", err),
		}
	}

	return dtoToDocument(&dto), nil
}

// dtoToDocument maps the service DTO onto the domain document. Missing or
// degraded fields become explicit placeholders instead of failing the scan.
func dtoToDocument(dto *documentDTO) *domain.ReceiptDocument {
	doc := domain.NewReceiptDocument()
	doc.VendorName = dto.VendorName
	if doc.VendorName == "" {
		doc.VendorName = "Unknown Vendor"
	}
	doc.VendorAddress = dto.VendorAddress
	doc.Subtotal = dto.Subtotal
	doc.Tax = dto.Tax
	doc.Total = dto.Total
	doc.RawText = dto.RawText

	if dto.Date != "" {
		if date, err := time.Parse("2006-01-02", dto.Date); err == nil {
			doc.Date = domain.DateOnly{Time: date}
		}
	}

	for _, item := range dto.Items {
		quantity := int(item.Qty)
		if quantity < 1 {
			quantity = 1
		}
		doc.AddItem(domain.ReceiptLineItem{
			Name:     item.Name,
			Quantity: quantity,
			Price:    item.Price,
			Total:    item.Total,
		})
	}

	return doc
}
