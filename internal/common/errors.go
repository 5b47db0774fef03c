// Package common defines shared sentinel errors used across the storage
// layers of CardVault. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Remote store errors. ErrRemoteUnavailable means the cloud provider is
	// unreachable or not configured; writes hitting it are queued, never
	// retried inline.
	ErrRemoteUnavailable = errors.New("remote storage unavailable")

	// Validation errors.
	ErrInvalidStorageMode   = errors.New("invalid storage mode")
	ErrInvalidResolveAction = errors.New("invalid resolve action")
)
