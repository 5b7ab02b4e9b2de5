package model

import (
	"fmt"

	"github.com/ridwanfathin/pantry-receipt-service/internal/domain"
)

// ScanResponse represents the response for one scan operation
type ScanResponse struct {
	Document *DocumentResponse  `json:"document,omitempty"`
	Items    []LineItemResponse `json:"items"`
}

// DocumentResponse represents document-level metadata from the structured backend
type DocumentResponse struct {
	VendorName    string `json:"vendorName"`
	VendorAddress string `json:"vendorAddress,omitempty"`
	Date          string `json:"date,omitempty"`
	Subtotal      string `json:"subtotal"`
	Tax           string `json:"tax"`
	Total         string `json:"total"`
}

// LineItemResponse represents a single extracted line item
type LineItemResponse struct {
	Name        string `json:"name"`
	Qty         int    `json:"qty"`
	Price       string `json:"price,omitempty"`
	Total       string `json:"total,omitempty"`
	InventoryID string `json:"inventoryId,omitempty"`
}

// ReconcileRequest represents the payload for re-running reconciliation
type ReconcileRequest struct {
	Items []ReconcileRequestItem `json:"items" binding:"required"`
}

// ReconcileRequestItem represents one item to reconcile
type ReconcileRequestItem struct {
	Name  string  `json:"name" binding:"required"`
	Qty   int     `json:"qty"`
	Price float64 `json:"price"`
	Total float64 `json:"total"`
}

// ReconcileResponse represents the annotated item sequence
type ReconcileResponse struct {
	Items []LineItemResponse `json:"items"`
}

// PantryRecordsResponse represents the current pantry snapshot
type PantryRecordsResponse struct {
	Records []PantryRecordResponse `json:"records"`
}

// PantryRecordResponse represents a single pantry record
type PantryRecordResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Status  string        `json:"status"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FormatScanResponse maps a domain scan result onto the response DTO
func FormatScanResponse(scan *domain.ReceiptScan) ScanResponse {
	response := ScanResponse{
		Items: FormatLineItems(scan.Items),
	}

	if scan.Document != nil {
		doc := &DocumentResponse{
			VendorName:    scan.Document.VendorName,
			VendorAddress: scan.Document.VendorAddress,
			Subtotal:      formatAmount(scan.Document.Subtotal),
			Tax:           formatAmount(scan.Document.Tax),
			Total:         formatAmount(scan.Document.Total),
		}
		if !scan.Document.Date.IsZero() {
			doc.Date = scan.Document.Date.Format("2006-01-02")
		}
		response.Document = doc
	}

	return response
}

// FormatLineItems maps domain line items onto response DTOs
func FormatLineItems(items []domain.ReceiptLineItem) []LineItemResponse {
	formatted := make([]LineItemResponse, 0, len(items))
	for _, item := range items {
		dto := LineItemResponse{
			Name:        item.Name,
			Qty:         item.Quantity,
			InventoryID: item.InventoryID,
		}
		if item.Price != 0 {
			dto.Price = formatAmount(item.Price)
		}
		if item.Total != 0 {
			dto.Total = formatAmount(item.Total)
		}
		formatted = append(formatted, dto)
	}
	return formatted
}

// ToDomainItems maps a reconcile request onto domain line items
func (r *ReconcileRequest) ToDomainItems() []domain.ReceiptLineItem {
	items := make([]domain.ReceiptLineItem, 0, len(r.Items))
	for _, item := range r.Items {
		quantity := item.Qty
		if quantity < 1 {
			quantity = 1
		}
		items = append(items, domain.ReceiptLineItem{
			Name:     item.Name,
			Quantity: quantity,
			Price:    item.Price,
			Total:    item.Total,
		})
	}
	return items
}

// formatAmount renders a decimal amount with two fractional digits
func formatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
