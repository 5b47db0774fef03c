package models

import (
	"time"

	"github.com/google/uuid"
)

// OperationType identifies the remote mutation a queued operation replays.
type OperationType string

const (
	OperationCreate   OperationType = "create"
	OperationUpdate   OperationType = "update"
	OperationDelete   OperationType = "delete"
	OperationFavorite OperationType = "favorite"
)

// QueuedOperation is a mutation that could not reach the remote store and
// must eventually be replayed. It is persisted after every enqueue and
// removed only after a successful replay. Attempts counts failed replays
// so the queue can evict operations that never succeed.
type QueuedOperation struct {
	Id         string        `json:"id"`
	Type       OperationType `json:"type"`
	Card       *Card         `json:"card,omitempty"`
	CardId     string        `json:"cardId,omitempty"`
	IsFavorite bool          `json:"isFavorite,omitempty"`
	Timestamp  int64         `json:"timestamp"`
	Attempts   int           `json:"attempts,omitempty"`
}

func newOperation(t OperationType) QueuedOperation {
	return QueuedOperation{
		Id:        uuid.NewString(),
		Type:      t,
		Timestamp: time.Now().UnixMilli(),
	}
}

// NewCreateOperation queues the creation of card on the remote store.
func NewCreateOperation(card Card) QueuedOperation {
	op := newOperation(OperationCreate)
	op.Card = &card
	return op
}

// NewUpdateOperation queues a full-card update on the remote store.
func NewUpdateOperation(card Card) QueuedOperation {
	op := newOperation(OperationUpdate)
	op.Card = &card
	return op
}

// NewDeleteOperation queues the deletion of the card with the given id.
func NewDeleteOperation(cardId string) QueuedOperation {
	op := newOperation(OperationDelete)
	op.CardId = cardId
	return op
}

// NewFavoriteOperation queues a favorite-flag change for the given card.
func NewFavoriteOperation(cardId string, isFavorite bool) QueuedOperation {
	op := newOperation(OperationFavorite)
	op.CardId = cardId
	op.IsFavorite = isFavorite
	return op
}
