// Package remotestore keeps the card collection as a single JSON document in
// a user's cloud space. Every mutation is a read-modify-write of the whole
// document; the system assumes a single active writer, so there is no
// concurrency token and concurrent writers can lose updates.
package remotestore

import (
	"context"

	"github.com/dmitrijs2005/cardvault/internal/common"
)

// Provider supplies the file primitives of a provider-selected cloud
// backend. The document store is agnostic to which provider backs them.
//
// MkdirAll must be idempotent: an already existing directory is success.
// ReadFile returns common.ErrNotFound when the path does not exist.
type Provider interface {
	IsAvailable(ctx context.Context) bool
	Exists(ctx context.Context, path string) (bool, error)
	MkdirAll(ctx context.Context, path string) error
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, data []byte) error
}

// Unconfigured is the Provider used when the user has not set up any cloud
// binding. It reports the cloud as permanently unavailable, which makes
// every cloud-mode write degrade to the operation queue.
type Unconfigured struct{}

func (Unconfigured) IsAvailable(ctx context.Context) bool { return false }

func (Unconfigured) Exists(ctx context.Context, path string) (bool, error) {
	return false, common.ErrRemoteUnavailable
}

func (Unconfigured) MkdirAll(ctx context.Context, path string) error {
	return common.ErrRemoteUnavailable
}

func (Unconfigured) ReadFile(ctx context.Context, path string) ([]byte, error) {
	return nil, common.ErrRemoteUnavailable
}

func (Unconfigured) WriteFile(ctx context.Context, path string, data []byte) error {
	return common.ErrRemoteUnavailable
}
