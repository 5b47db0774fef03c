package remotestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cardvault/internal/common"
	"github.com/dmitrijs2005/cardvault/internal/logging"
	"github.com/dmitrijs2005/cardvault/internal/wallet/models"
)

// Fixed logical location of the collection inside the app-scoped cloud space.
const (
	DocumentDir  = "cards"
	DocumentPath = "cards/loyalty_cards.json"
)

// DocumentStore implements collection semantics over a Provider's file
// primitives. All card mutations read, modify and rewrite the whole document.
type DocumentStore struct {
	provider Provider
	codec    Codec
	log      logging.Logger
}

// NewDocumentStore returns a DocumentStore over the given provider. A nil
// codec defaults to plain JSON.
func NewDocumentStore(provider Provider, codec Codec, log logging.Logger) *DocumentStore {
	if codec == nil {
		codec = JSONCodec{}
	}
	return &DocumentStore{provider: provider, codec: codec, log: log}
}

// Available reports whether the backing cloud service is reachable.
func (s *DocumentStore) Available(ctx context.Context) bool {
	return s.provider.IsAvailable(ctx)
}

// Exists reports whether the remote document has been created yet.
func (s *DocumentStore) Exists(ctx context.Context) (bool, error) {
	if !s.provider.IsAvailable(ctx) {
		return false, common.ErrRemoteUnavailable
	}
	return s.provider.Exists(ctx, DocumentPath)
}

// ReadCollection returns the remote collection. A document that does not
// exist yet reads as an empty collection; an unavailable provider surfaces
// as ErrRemoteUnavailable.
func (s *DocumentStore) ReadCollection(ctx context.Context) ([]models.Card, error) {
	if !s.provider.IsAvailable(ctx) {
		return nil, common.ErrRemoteUnavailable
	}

	data, err := s.provider.ReadFile(ctx, DocumentPath)
	if errors.Is(err, common.ErrNotFound) {
		return []models.Card{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read remote document: %w", err)
	}

	return s.codec.Decode(data)
}

// WriteCollection replaces the remote document with the given collection,
// lazily creating the containing directory first.
func (s *DocumentStore) WriteCollection(ctx context.Context, cards []models.Card) error {
	if !s.provider.IsAvailable(ctx) {
		return common.ErrRemoteUnavailable
	}

	if err := s.provider.MkdirAll(ctx, DocumentDir); err != nil {
		return fmt.Errorf("failed to create remote directory: %w", err)
	}

	data, err := s.codec.Encode(cards)
	if err != nil {
		return err
	}
	if err := s.provider.WriteFile(ctx, DocumentPath, data); err != nil {
		return fmt.Errorf("failed to write remote document: %w", err)
	}
	s.log.Debug(ctx, "wrote remote document", "cards", len(cards))
	return nil
}

// CreateCard adds (or, on replay, replaces) a card in the remote document.
func (s *DocumentStore) CreateCard(ctx context.Context, card models.Card) error {
	return s.modify(ctx, func(cards []models.Card) []models.Card {
		for i := range cards {
			if cards[i].Id == card.Id {
				cards[i] = card
				return cards
			}
		}
		return append(cards, card)
	})
}

// UpdateCard replaces the card with the same id. A card missing remotely is
// appended so a replayed update still lands.
func (s *DocumentStore) UpdateCard(ctx context.Context, card models.Card) error {
	return s.CreateCard(ctx, card)
}

// DeleteCard removes the card with the given id. Deleting an absent card is
// success, which keeps queued deletes idempotent.
func (s *DocumentStore) DeleteCard(ctx context.Context, cardId string) error {
	return s.modify(ctx, func(cards []models.Card) []models.Card {
		out := cards[:0]
		for _, c := range cards {
			if c.Id != cardId {
				out = append(out, c)
			}
		}
		return out
	})
}

// SetFavorite sets the favorite flag of the card with the given id.
func (s *DocumentStore) SetFavorite(ctx context.Context, cardId string, isFavorite bool) error {
	return s.modify(ctx, func(cards []models.Card) []models.Card {
		for i := range cards {
			if cards[i].Id == cardId {
				cards[i].IsFavorite = isFavorite
			}
		}
		return cards
	})
}

func (s *DocumentStore) modify(ctx context.Context, fn func([]models.Card) []models.Card) error {
	cards, err := s.ReadCollection(ctx)
	if err != nil {
		return err
	}
	return s.WriteCollection(ctx, fn(cards))
}
