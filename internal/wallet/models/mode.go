package models

import (
	"fmt"

	"github.com/dmitrijs2005/cardvault/internal/common"
)

// StorageMode is the process-wide storage policy. In local mode every write
// stays on the device; in cloud mode writes are fanned out to the remote
// document store as well.
type StorageMode string

const (
	StorageModeLocal StorageMode = "local"
	StorageModeCloud StorageMode = "cloud"
)

// ParseStorageMode validates a persisted or user-supplied mode string.
func ParseStorageMode(s string) (StorageMode, error) {
	switch StorageMode(s) {
	case StorageModeLocal:
		return StorageModeLocal, nil
	case StorageModeCloud:
		return StorageModeCloud, nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrInvalidStorageMode, s)
	}
}
