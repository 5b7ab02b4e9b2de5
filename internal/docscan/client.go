package docscan

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// DocScanError represents an error that occurred during a document extraction call
type DocScanError struct {
	Op  string // Operation that caused the error
	Err error  // Original error
}

// Error implements the error interface
func (e *DocScanError) Error() string {
	if e.Err == nil {
		return "docscan error: " + e.Op
	}
	return "docscan error: " + e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error
func (e *DocScanError) Unwrap() error {
	return e.Err
}

// Client represents a client for the document extraction service. The service
// is a vision model behind a chat-completions API; the image travels inline
// as a base64 data URL, so no separate upload step is needed on this path.
type Client struct {
	apiKey        string
	apiURL        string
	modelID       string
	categoryHints []string
	httpClient    *http.Client
	logger        *zap.Logger
}

// Config holds configuration for the document extraction client
type Config struct {
	APIKey        string
	APIURL        string
	ModelID       string
	CategoryHints []string
	Timeout       time.Duration
	Logger        *zap.Logger
}

// DefaultConfig returns a default configuration for the client
func DefaultConfig() *Config {
	return &Config{
		APIURL:        "https://openrouter.ai/api/v1/chat/completions",
		ModelID:       "meta-llama/llama-3.2-11b-vision-instruct:free",
		CategoryHints: []string{"grocery", "supermarket"},
		Timeout:       60 * time.Second,
	}
}

// NewClient creates a new document extraction client
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.APIURL == "" {
		config.APIURL = DefaultConfig().APIURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultConfig().Timeout
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	return &Client{
		apiKey:        config.APIKey,
		apiURL:        config.APIURL,
		modelID:       config.ModelID,
		categoryHints: config.CategoryHints,
		logger:        config.Logger,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}
