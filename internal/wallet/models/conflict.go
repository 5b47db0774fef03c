package models

// SyncConflictData is the ephemeral result of comparing the local and cloud
// collections on cloud-mode activation. It snapshots both sides so the UI
// can present a resolution choice; it is consumed by the resolver or
// discarded, never persisted.
type SyncConflictData struct {
	LocalCards []Card `json:"localCards"`
	CloudCards []Card `json:"cloudCards"`
	LocalCount int    `json:"localCount"`
	CloudCount int    `json:"cloudCount"`
}

// NewSyncConflictData snapshots both collections with their counts.
func NewSyncConflictData(localCards, cloudCards []Card) *SyncConflictData {
	return &SyncConflictData{
		LocalCards: localCards,
		CloudCards: cloudCards,
		LocalCount: len(localCards),
		CloudCount: len(cloudCards),
	}
}
