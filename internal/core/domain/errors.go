package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	// Summary stores return it when a (source, keyword) summary is already cached.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates a document type no extractor can read.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrExtractionFailed indicates text could not be extracted from a document.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Summaries degrade to an error payload without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrRateLimited indicates a request was rejected by a rate limiter.
	ErrRateLimited = errors.New("rate limited")
)
