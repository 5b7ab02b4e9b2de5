package domain

import (
	"encoding/json"
	"time"
)

// DateOnly is a custom type for handling date-only strings from JSON
type DateOnly struct {
	time.Time
}

// UnmarshalJSON implements custom unmarshaling for date-only strings
func (d *DateOnly) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	// Handle null/empty dates
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}

	// Parse date-only format
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// MarshalJSON implements custom marshaling for date-only strings
func (d DateOnly) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format("2006-01-02"))
}

// ReceiptLineItem represents one purchased item extracted from a receipt.
// Price and Total are zero when the source did not expose them; InventoryID
// is empty until reconciliation matches the item against a pantry record.
type ReceiptLineItem struct {
	Name        string  `json:"name"`
	Quantity    int     `json:"qty"`
	Price       float64 `json:"price,omitempty"`
	Total       float64 `json:"total,omitempty"`
	InventoryID string  `json:"inventory_id,omitempty"`
}

// ReceiptDocument represents a structured extraction result for one scanned
// receipt, including document-level metadata the raw-OCR path cannot provide.
// RawText carries the recognized text for audit and debugging.
type ReceiptDocument struct {
	VendorName    string            `json:"vendor_name"`
	VendorAddress string            `json:"vendor_address"`
	Date          DateOnly          `json:"date"`
	Items         []ReceiptLineItem `json:"items"`
	Subtotal      float64           `json:"subtotal"`
	Tax           float64           `json:"tax"`
	Total         float64           `json:"total"`
	RawText       string            `json:"raw_text,omitempty"`
}

// NewReceiptDocument creates a new receipt document with default values
func NewReceiptDocument() *ReceiptDocument {
	return &ReceiptDocument{
		Items: make([]ReceiptLineItem, 0),
	}
}

// AddItem appends a line item to the document
func (d *ReceiptDocument) AddItem(item ReceiptLineItem) {
	d.Items = append(d.Items, item)
}

// ReceiptScan is the result of one scan operation: the reconciled line items
// plus, when the structured backend produced it, document metadata.
// Document is nil on the raw-OCR path.
type ReceiptScan struct {
	Document *ReceiptDocument  `json:"document,omitempty"`
	Items    []ReceiptLineItem `json:"items"`
}
