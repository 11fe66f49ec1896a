package oracle

import "github.com/pkg/errors"

var (
	// ErrNoStorage is returned by FetchAIResultContent when no storage reader is configured.
	ErrNoStorage = errors.New("no storage configured")
	// ErrEmptyResult is returned when the oracle has no result for the prompt yet.
	ErrEmptyResult = errors.New("empty ai result")
	// ErrEventNotFound is returned by ParsePromptRequest when the receipt has no promptRequest log.
	ErrEventNotFound = errors.New("event not found in receipt")
)
