package docscan

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatResponse(t *testing.T, content string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	})
	require.NoError(t, err)
	return body
}

const sampleDocument = `{
	"vendor_name": "Corner Grocery",
	"vendor_address": "12 Main St",
	"date": "2026-08-14",
	"items": [
		{"name": "Milk", "qty": 2, "price": 4.29, "total": 8.58},
		{"name": "Bread", "qty": 1, "price": 2.50, "total": 2.50}
	],
	"subtotal": 11.08,
	"tax": 0.89,
	"total": 11.97,
	"raw_text": "2 x Milk 4.29\nBread 2.50\nTotal 11.97"
}`

func TestParseExtractionResponse_BareJSON(t *testing.T) {
	client := NewClient(nil)

	doc, err := client.parseExtractionResponse(chatResponse(t, sampleDocument))

	require.NoError(t, err)
	assert.Equal(t, "Corner Grocery", doc.VendorName)
	assert.Equal(t, "2026-08-14", doc.Date.Format("2006-01-02"))
	require.Len(t, doc.Items, 2)
	assert.Equal(t, "Milk", doc.Items[0].Name)
	assert.Equal(t, 2, doc.Items[0].Quantity)
	assert.Equal(t, 8.58, doc.Items[0].Total)
	assert.Equal(t, 11.97, doc.Total)
	assert.NotEmpty(t, doc.RawText)
}

func TestParseExtractionResponse_FencedJSON(t *testing.T) {
	client := NewClient(nil)
	content := "Here is the extracted data:\n```json\n" + sampleDocument + "\n```"

	doc, err := client.parseExtractionResponse(chatResponse(t, content))

	require.NoError(t, err)
	assert.Equal(t, "Corner Grocery", doc.VendorName)
	require.Len(t, doc.Items, 2)
}

func TestParseExtractionResponse_MissingVendorGetsPlaceholder(t *testing.T) {
	client := NewClient(nil)
	content := `{"vendor_name": "", "items": [{"name": "Milk", "qty": 0, "price": 4.29}], "total": 4.29}`

	doc, err := client.parseExtractionResponse(chatResponse(t, content))

	require.NoError(t, err)
	assert.Equal(t, "Unknown Vendor", doc.VendorName)
	require.Len(t, doc.Items, 1)
	// Zero quantity from the service defaults to 1.
	assert.Equal(t, 1, doc.Items[0].Quantity)
}

func TestParseExtractionResponse_NoChoices(t *testing.T) {
	client := NewClient(nil)

	_, err := client.parseExtractionResponse([]byte(`{"choices": []}`))

	require.Error(t, err)
	var docErr *DocScanError
	require.ErrorAs(t, err, &docErr)
	assert.Equal(t, "check_response_choices", docErr.Op)
}

func TestParseExtractionResponse_NoJSONInContent(t *testing.T) {
	client := NewClient(nil)

	_, err := client.parseExtractionResponse(chatResponse(t, "sorry, I could not read the image"))

	require.Error(t, err)
}
