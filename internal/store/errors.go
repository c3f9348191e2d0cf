package store

import "errors"

// Error Handling Guidelines:
// - Stores: return sentinel errors or fmt.Errorf("context: %w", err)
// - Models: map store sentinels to apperrors.* for HTTP-appropriate errors

// Predefined errors for the store layer.
var (
	// ErrNotFound indicates that a requested record was not found.
	ErrNotFound = errors.New("record not found")
)
