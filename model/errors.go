package model

import (
	"errors"
	"fmt"
)

// ErrorCause tags a failure with the external step that produced it, so
// callers can decide whether to retry, abort, or reduce batch size. The core
// itself never retries.
type ErrorCause string

const (
	CauseExtractionFailed ErrorCause = "EXTRACTION_FAILED"
	CauseEmbeddingFailed  ErrorCause = "EMBEDDING_FAILED"
	CauseStoreReadFailed  ErrorCause = "STORE_READ_FAILED"
	CauseStoreWriteFailed ErrorCause = "STORE_WRITE_FAILED"
	CauseGenerationFailed ErrorCause = "GENERATION_FAILED"
	CauseNotInitialized   ErrorCause = "NOT_INITIALIZED"
	CauseInvalidConfig    ErrorCause = "INVALID_CONFIG"
)

// IngestError reports an ingestion failure. ChunksStored is the number of
// chunks fully upserted before the failure, so a caller can resume ingestion
// instead of restarting it blindly.
type IngestError struct {
	Cause        ErrorCause
	ChunksStored int
	Err          error
}

func NewIngestError(cause ErrorCause, chunksStored int, err error) *IngestError {
	return &IngestError{Cause: cause, ChunksStored: chunksStored, Err: err}
}

func (e *IngestError) Error() string {
	return fmt.Sprintf("ingest failed (%s, %d chunks stored): %v", e.Cause, e.ChunksStored, e.Err)
}

func (e *IngestError) Unwrap() error {
	return e.Err
}

// RouterError reports a routing failure. Taking the direct path because no
// relevant context was found is not an error and never produces one.
type RouterError struct {
	Cause ErrorCause
	Err   error
}

func NewRouterError(cause ErrorCause, err error) *RouterError {
	return &RouterError{Cause: cause, Err: err}
}

func (e *RouterError) Error() string {
	return fmt.Sprintf("routing failed (%s): %v", e.Cause, e.Err)
}

func (e *RouterError) Unwrap() error {
	return e.Err
}

// ConfigError reports an invalid configuration value before any external call
// is made.
type ConfigError struct {
	Field  string
	Reason string
}

func NewConfigError(field, reason string) *ConfigError {
	return &ConfigError{Field: field, Reason: reason}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

// CauseOf extracts the ErrorCause from any error produced by this module.
// It returns an empty cause for foreign errors.
func CauseOf(err error) ErrorCause {
	var ingestErr *IngestError
	if errors.As(err, &ingestErr) {
		return ingestErr.Cause
	}
	var routerErr *RouterError
	if errors.As(err, &routerErr) {
		return routerErr.Cause
	}
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return CauseInvalidConfig
	}
	return ""
}
