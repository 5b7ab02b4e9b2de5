package middleware

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// sensitiveHeaderPatterns contains regex patterns for headers that should be redacted
var sensitiveHeaderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)authorization`),
	regexp.MustCompile(`(?i)api[-_]?key`),
	regexp.MustCompile(`(?i)token`),
	regexp.MustCompile(`(?i)secret`),
	regexp.MustCompile(`(?i)cookie`),
	regexp.MustCompile(`(?i)session`),
}

// LoggerConfig holds configuration for the logger middleware
type LoggerConfig struct {
	Format string // "json" or "pretty"
}

// LogEntry represents a structured request log entry
type LogEntry struct {
	Timestamp   string              `json:"timestamp"`
	Method      string              `json:"method"`
	Path        string              `json:"path"`
	StatusCode  int                 `json:"status_code"`
	Latency     string              `json:"latency"`
	ClientIP    string              `json:"client_ip"`
	UserAgent   string              `json:"user_agent"`
	Headers     map[string]string   `json:"headers"`
	QueryParams map[string][]string `json:"query_params,omitempty"`
	Error       string              `json:"error,omitempty"`
}

// RequestLogger creates a middleware that logs all API requests. Receipt
// scans carry image payloads, so bodies are never logged, only metadata.
func RequestLogger(config LoggerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		entry := LogEntry{
			Timestamp:   time.Now().Format(time.RFC3339),
			Method:      c.Request.Method,
			Path:        c.Request.URL.Path,
			StatusCode:  c.Writer.Status(),
			Latency:     time.Since(startTime).String(),
			ClientIP:    c.ClientIP(),
			UserAgent:   c.Request.UserAgent(),
			Headers:     redactHeaders(c.Request.Header),
			QueryParams: c.Request.URL.Query(),
		}

		if len(c.Errors) > 0 {
			entry.Error = c.Errors.String()
		}

		if config.Format == "pretty" {
			fmt.Printf("[%s] %s %s -> %d (%s)\n",
				entry.Timestamp, entry.Method, entry.Path, entry.StatusCode, entry.Latency)
		} else {
			if data, err := json.Marshal(entry); err == nil {
				fmt.Println(string(data))
			}
		}
	}
}

// redactHeaders redacts sensitive headers
func redactHeaders(headers map[string][]string) map[string]string {
	redacted := make(map[string]string)
	for key, values := range headers {
		if isSensitiveHeader(key) {
			redacted[key] = "[REDACTED]"
		} else {
			redacted[key] = strings.Join(values, ", ")
		}
	}
	return redacted
}

// isSensitiveHeader checks if a header name is sensitive
func isSensitiveHeader(headerName string) bool {
	for _, pattern := range sensitiveHeaderPatterns {
		if pattern.MatchString(headerName) {
			return true
		}
	}
	return false
}
