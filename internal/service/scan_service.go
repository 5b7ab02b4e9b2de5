package service

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ridwanfathin/pantry-receipt-service/internal/domain"
	"github.com/ridwanfathin/pantry-receipt-service/internal/imageutil"
	"github.com/ridwanfathin/pantry-receipt-service/internal/ocr"
	"github.com/ridwanfathin/pantry-receipt-service/internal/pantry"
	"github.com/ridwanfathin/pantry-receipt-service/internal/repository"
)

// ErrorKind classifies scan failures for the caller. Line-level extraction
// misses are not errors and never surface here; an empty item list is a
// successful scan.
type ErrorKind int

const (
	// KindInternal covers failures outside the acquisition/recognition taxonomy
	KindInternal ErrorKind = iota
	// KindAcquisition means the image could not be read or decoded
	KindAcquisition
	// KindRecognition means a backend returned a non-success response
	KindRecognition
)

// ScanServiceError represents an error in the scan service
type ScanServiceError struct {
	Op   string
	Kind ErrorKind
	Err  error
}

func (e *ScanServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

// Unwrap returns the underlying error
func (e *ScanServiceError) Unwrap() error {
	return e.Err
}

// ErrorKindOf returns the kind of a scan error, or KindInternal for
// anything else
func ErrorKindOf(err error) ErrorKind {
	var scanErr *ScanServiceError
	if errors.As(err, &scanErr) {
		return scanErr.Kind
	}
	return KindInternal
}

// DocumentExtractor is a structured extraction backend: it reads the image
// itself and returns document metadata alongside the line items.
type DocumentExtractor interface {
	ExtractDocument(ctx context.Context, imageData []byte) (*domain.ReceiptDocument, error)
}

// TextRecognizer is a raw-OCR backend: it fetches the image by URL and
// returns unstructured recognized text for the heuristic pipeline.
type TextRecognizer interface {
	RecognizeText(ctx context.Context, imageURL string) (string, error)
}

// ImageUploader hosts receipt images so a TextRecognizer can fetch them
type ImageUploader interface {
	UploadImage(imageData []byte, filename string) (string, error)
}

// ScanService defines the interface for receipt scanning business logic
type ScanService interface {
	// ScanReceiptImage extracts line items from a receipt image and
	// reconciles them against the current pantry snapshot.
	ScanReceiptImage(ctx context.Context, imageData []byte) (*domain.ReceiptScan, error)

	// ScanReceiptFile reads a receipt image from disk and scans it.
	ScanReceiptFile(ctx context.Context, path string) (*domain.ReceiptScan, error)

	// ReconcileWithPantry re-runs reconciliation for an already-extracted
	// item sequence against a fresh pantry snapshot.
	ReconcileWithPantry(ctx context.Context, items []domain.ReceiptLineItem) ([]domain.ReceiptLineItem, error)
}

// ScanServiceImpl implements the ScanService interface
type ScanServiceImpl struct {
	pantryRepo   repository.PantryRepository
	docExtractor DocumentExtractor
	recognizer   TextRecognizer
	uploader     ImageUploader
	logger       *zap.Logger
	workerPool   chan struct{}
}

// NewScanService creates a new ScanService. When docExtractor is non-nil the
// structured path is used; otherwise scanning goes through the raw-OCR path
// (recognizer + uploader + heuristic pipeline).
func NewScanService(pantryRepo repository.PantryRepository, docExtractor DocumentExtractor, recognizer TextRecognizer, uploader ImageUploader, logger *zap.Logger, maxWorkers int) ScanService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &ScanServiceImpl{
		pantryRepo:   pantryRepo,
		docExtractor: docExtractor,
		recognizer:   recognizer,
		uploader:     uploader,
		logger:       logger,
		workerPool:   make(chan struct{}, maxWorkers),
	}
}

// ScanReceiptImage processes a receipt image into reconciled line items
func (s *ScanServiceImpl) ScanReceiptImage(ctx context.Context, imageData []byte) (*domain.ReceiptScan, error) {
	// Acquire worker from pool
	select {
	case s.workerPool <- struct{}{}:
		defer func() {
			<-s.workerPool
		}()
	case <-ctx.Done():
		return nil, &ScanServiceError{
			Op:   "acquire_worker",
			Kind: KindInternal,
			Err:  ctx.Err(),
		}
	}

	if len(imageData) == 0 {
		return nil, &ScanServiceError{
			Op:   "validate_image",
			Kind: KindAcquisition,
			Err:  fmt.Errorf("image data is empty"),
		}
	}

	resized, err := imageutil.ResizeImage(imageData, nil)
	if err != nil {
		return nil, &ScanServiceError{
			Op:   "decode_image",
			Kind: KindAcquisition,
			Err:  err,
		}
	}

	var scan *domain.ReceiptScan
	if s.docExtractor != nil {
		scan, err = s.scanStructured(ctx, resized)
	} else {
		scan, err = s.scanRawText(ctx, resized)
	}
	if err != nil {
		return nil, err
	}

	reconciled, err := s.ReconcileWithPantry(ctx, scan.Items)
	if err != nil {
		return nil, err
	}
	scan.Items = reconciled

	s.logger.Info("receipt scan complete",
		zap.Int("item_count", len(scan.Items)),
		zap.Bool("structured", scan.Document != nil))

	return scan, nil
}

// scanStructured runs the document extraction backend. The backend already
// returns structured fields, so the heuristic pipeline is bypassed entirely.
func (s *ScanServiceImpl) scanStructured(ctx context.Context, imageData []byte) (*domain.ReceiptScan, error) {
	doc, err := s.docExtractor.ExtractDocument(ctx, imageData)
	if err != nil {
		s.logger.Error("document extraction failed", zap.Error(err))
		return nil, &ScanServiceError{
			Op:   "extract_document",
			Kind: KindRecognition,
			Err:  err,
		}
	}

	return &domain.ReceiptScan{
		Document: doc,
		Items:    doc.Items,
	}, nil
}

// scanRawText uploads the image, runs text recognition, and feeds the raw
// text through the heuristic extraction pipeline.
func (s *ScanServiceImpl) scanRawText(ctx context.Context, imageData []byte) (*domain.ReceiptScan, error) {
	if s.recognizer == nil {
		return nil, &ScanServiceError{
			Op:   "select_backend",
			Kind: KindInternal,
			Err:  fmt.Errorf("no recognition backend configured"),
		}
	}

	imageURL := ""
	if s.uploader != nil {
		filename := fmt.Sprintf("receipt_%s.png", uuid.NewString())
		uploaded, err := s.uploader.UploadImage(imageData, filename)
		if err != nil {
			s.logger.Error("image upload failed", zap.Error(err))
			return nil, &ScanServiceError{
				Op:   "upload_image",
				Kind: KindAcquisition,
				Err:  err,
			}
		}
		imageURL = uploaded
	}

	rawText, err := s.recognizer.RecognizeText(ctx, imageURL)
	if err != nil {
		s.logger.Error("text recognition failed", zap.Error(err))
		return nil, &ScanServiceError{
			Op:   "recognize_text",
			Kind: KindRecognition,
			Err:  err,
		}
	}

	items := ocr.ExtractItems(rawText)
	if len(items) == 0 {
		// A receipt with no recognizable items is a valid, empty result.
		s.logger.Warn("no items extracted from recognized text",
			zap.Int("text_length", len(rawText)))
	}

	return &domain.ReceiptScan{Items: items}, nil
}

// ScanReceiptFile reads an image from disk and scans it
func (s *ScanServiceImpl) ScanReceiptFile(ctx context.Context, path string) (*domain.ReceiptScan, error) {
	imageData, err := os.ReadFile(path)
	if err != nil {
		return nil, &ScanServiceError{
			Op:   "read_image_file",
			Kind: KindAcquisition,
			Err:  err,
		}
	}
	return s.ScanReceiptImage(ctx, imageData)
}

// ReconcileWithPantry annotates items with matching pantry record IDs
func (s *ScanServiceImpl) ReconcileWithPantry(ctx context.Context, items []domain.ReceiptLineItem) ([]domain.ReceiptLineItem, error) {
	records := []domain.PantryRecord{}
	if s.pantryRepo != nil {
		snapshot, err := s.pantryRepo.ListRecords(ctx)
		if err != nil {
			return nil, &ScanServiceError{
				Op:   "list_pantry_records",
				Kind: KindInternal,
				Err:  err,
			}
		}
		records = snapshot
	}

	return pantry.Reconcile(items, records), nil
}
