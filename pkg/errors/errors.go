package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeFetch represents network/HTTP errors from the fetch adapter
	ErrorTypeFetch ErrorType = "fetch"
	// ErrorTypeRateLimit represents rate limiting errors
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeHistory represents price-history store errors
	ErrorTypeHistory ErrorType = "history"
	// ErrorTypePublisher represents alert publisher errors
	ErrorTypePublisher ErrorType = "publisher"
	// ErrorTypeCache represents cache-related errors
	ErrorTypeCache ErrorType = "cache"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// TrackerError represents a tracker-specific error
type TrackerError struct {
	Type    ErrorType
	Store   string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *TrackerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Store, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Store, e.Message)
}

// Unwrap returns the underlying error
func (e *TrackerError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is retryable
func (e *TrackerError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeFetch:
		return true
	case ErrorTypeRateLimit:
		return false
	default:
		return false
	}
}

// New creates a new TrackerError
func New(errType ErrorType, storeName, message string, err error) *TrackerError {
	return &TrackerError{
		Type:    errType,
		Store:   storeName,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewFetch creates a new fetch error
func NewFetch(storeName, message string, err error) *TrackerError {
	return New(ErrorTypeFetch, storeName, message, err)
}

// NewRateLimit creates a new rate limit error
func NewRateLimit(storeName string, duration time.Duration) *TrackerError {
	message := fmt.Sprintf("rate limited for %v", duration)
	return New(ErrorTypeRateLimit, storeName, message, nil)
}

// NewHistory creates a new history store error
func NewHistory(storeName, message string, err error) *TrackerError {
	return New(ErrorTypeHistory, storeName, message, err)
}

// NewPublisher creates a new publisher error
func NewPublisher(storeName, message string, err error) *TrackerError {
	return New(ErrorTypePublisher, storeName, message, err)
}

// NewCache creates a new cache error
func NewCache(storeName, message string, err error) *TrackerError {
	return New(ErrorTypeCache, storeName, message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *TrackerError {
	return New(ErrorTypeConfiguration, "", message, err)
}
