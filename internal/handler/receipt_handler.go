package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ridwanfathin/pantry-receipt-service/internal/model"
	"github.com/ridwanfathin/pantry-receipt-service/internal/repository"
	"github.com/ridwanfathin/pantry-receipt-service/internal/service"
)

// ReceiptHandler handles HTTP requests for receipt scanning operations
type ReceiptHandler struct {
	scanService service.ScanService
	pantryRepo  repository.PantryRepository
	logger      *zap.Logger
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(scanService service.ScanService, pantryRepo repository.PantryRepository, logger *zap.Logger) *ReceiptHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReceiptHandler{
		scanService: scanService,
		pantryRepo:  pantryRepo,
		logger:      logger,
	}
}

// ScanReceipt handles the POST /receipts/scan endpoint
// @Summary Scan a receipt image
// @Description Upload a receipt image, extract its line items, and reconcile them against the pantry
// @Tags receipts
// @Accept multipart/form-data
// @Produce json
// @Param receiptImage formData file true "Receipt image file"
// @Success 200 {object} model.ScanResponse "Reconciled scan result"
// @Failure 400 {object} model.ErrorResponse "Bad request"
// @Failure 422 {object} model.ErrorResponse "Unable to process receipt"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/receipts/scan [post]
func (h *ReceiptHandler) ScanReceipt(c *gin.Context) {
	file, _, err := c.Request.FormFile("receiptImage")
	if err != nil {
		respondBadRequest(c, ErrFileUpload, newErrorDetail("receiptImage", "Receipt image is required"))
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("failed to read uploaded file", zap.Error(err))
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	scan, err := h.scanService.ScanReceiptImage(c.Request.Context(), imageData)
	if err != nil {
		// Internal detail goes to the log; the client gets a generic,
		// retryable message.
		h.logger.Error("receipt scan failed",
			zap.Error(err),
			zap.Int("file_size", len(imageData)))

		switch service.ErrorKindOf(err) {
		case service.KindAcquisition:
			respondBadRequest(c, ErrFileUpload, newErrorDetail("receiptImage", "Image could not be read"))
		case service.KindRecognition:
			respondUnprocessableEntity(c, ErrScanFailed)
		default:
			respondInternalServerError(c, ErrInternalServer)
		}
		return
	}

	respondOK(c, model.FormatScanResponse(scan))
}

// ReconcileItems handles the POST /receipts/reconcile endpoint
// @Summary Reconcile items with the pantry
// @Description Re-run pantry reconciliation for an already-extracted item sequence
// @Tags receipts
// @Accept json
// @Produce json
// @Param items body model.ReconcileRequest true "Items to reconcile"
// @Success 200 {object} model.ReconcileResponse "Annotated items"
// @Failure 400 {object} model.ErrorResponse "Invalid input"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/receipts/reconcile [post]
func (h *ReceiptHandler) ReconcileItems(c *gin.Context) {
	var input model.ReconcileRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, ErrInvalidInput)
		return
	}

	reconciled, err := h.scanService.ReconcileWithPantry(c.Request.Context(), input.ToDomainItems())
	if err != nil {
		h.logger.Error("reconciliation failed", zap.Error(err))
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	respondOK(c, model.ReconcileResponse{Items: model.FormatLineItems(reconciled)})
}

// GetPantryRecords handles the GET /pantry/records endpoint
// @Summary List pantry records
// @Description Get the current read-only pantry snapshot used for reconciliation
// @Tags pantry
// @Produce json
// @Success 200 {object} model.PantryRecordsResponse "Pantry snapshot"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/pantry/records [get]
func (h *ReceiptHandler) GetPantryRecords(c *gin.Context) {
	records, err := h.pantryRepo.ListRecords(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list pantry records", zap.Error(err))
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	response := model.PantryRecordsResponse{
		Records: make([]model.PantryRecordResponse, 0, len(records)),
	}
	for _, record := range records {
		response.Records = append(response.Records, model.PantryRecordResponse{
			ID:   record.ID,
			Name: record.Name,
		})
	}

	respondOK(c, response)
}
