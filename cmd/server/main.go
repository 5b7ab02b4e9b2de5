package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/ridwanfathin/pantry-receipt-service/internal/config"
	"github.com/ridwanfathin/pantry-receipt-service/internal/database"
	"github.com/ridwanfathin/pantry-receipt-service/internal/docscan"
	"github.com/ridwanfathin/pantry-receipt-service/internal/handler"
	"github.com/ridwanfathin/pantry-receipt-service/internal/ocrclient"
	"github.com/ridwanfathin/pantry-receipt-service/internal/repository"
	"github.com/ridwanfathin/pantry-receipt-service/internal/server"
	"github.com/ridwanfathin/pantry-receipt-service/internal/service"
	"github.com/ridwanfathin/pantry-receipt-service/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Pantry store: Postgres when configured, in-memory otherwise.
	var pantryRepo repository.PantryRepository
	if cfg.PostgresDBURL != "" {
		db, err := database.NewPostgresDB(cfg.PostgresDBURL)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		pantryRepo = repository.NewPostgresPantryRepository(db.GetPool())
	} else {
		logger.Warn("no database configured, using in-memory pantry store")
		pantryRepo = repository.NewMemoryPantryRepository(nil)
	}

	// Extraction backends: structured document extraction when enabled,
	// otherwise raw OCR text plus the heuristic pipeline.
	var docExtractor service.DocumentExtractor
	var recognizer service.TextRecognizer
	var uploader service.ImageUploader

	if cfg.UseDocScan {
		logger.Info("using structured document extraction backend",
			zap.String("model", cfg.DocScanModelID))
		docExtractor = docscan.NewClient(&docscan.Config{
			APIKey:        cfg.DocScanAPIKey,
			APIURL:        cfg.DocScanAPIURL,
			ModelID:       cfg.DocScanModelID,
			CategoryHints: cfg.DocScanCategories,
			Timeout:       cfg.DocScanTimeout,
			Logger:        logger.Named("docscan"),
		})
	} else {
		logger.Info("using raw OCR backend", zap.String("base_url", cfg.OCRBaseURL))
		recognizer = ocrclient.NewClient(&ocrclient.Config{
			BaseURL: cfg.OCRBaseURL,
			Timeout: cfg.OCRTimeout,
		})
		s3Uploader, err := storage.NewS3Uploader(&storage.Config{
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			AccessKeySecret: cfg.S3AccessKeySecret,
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
		})
		if err != nil {
			logger.Warn("image storage unavailable, OCR backend must accept empty image URLs", zap.Error(err))
		} else {
			uploader = s3Uploader
		}
	}

	scanService := service.NewScanService(pantryRepo, docExtractor, recognizer, uploader, logger.Named("scan"), cfg.MaxWorkers)

	receiptHandler := handler.NewReceiptHandler(scanService, pantryRepo, logger.Named("handler"))

	appServer := server.NewServer(cfg, receiptHandler, logger.Named("server"))

	logger.Info("starting server", zap.Int("port", cfg.Port))
	if err := appServer.Start(); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

// newLogger builds the application logger from config
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.LogFormat == "pretty" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
