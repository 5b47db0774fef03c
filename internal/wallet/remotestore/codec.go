package remotestore

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/cardvault/internal/cryptox"
	"github.com/dmitrijs2005/cardvault/internal/wallet/models"
)

// Codec converts a card collection to and from the bytes stored in the cloud
// document.
type Codec interface {
	Encode(cards []models.Card) ([]byte, error)
	Decode(data []byte) ([]models.Card, error)
}

// JSONCodec stores the collection as a plain JSON array, identical in shape
// to the local representation.
type JSONCodec struct{}

func (JSONCodec) Encode(cards []models.Card) ([]byte, error) {
	if cards == nil {
		cards = []models.Card{}
	}
	return json.Marshal(cards)
}

func (JSONCodec) Decode(data []byte) ([]models.Card, error) {
	var cards []models.Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("failed to decode remote document: %w", err)
	}
	if cards == nil {
		cards = []models.Card{}
	}
	return cards, nil
}

// encryptedDocument is the on-disk envelope of an encrypted collection.
type encryptedDocument struct {
	Salt  []byte `json:"salt"`
	Nonce []byte `json:"nonce"`
	Data  []byte `json:"data"`
}

// EncryptedCodec encrypts the collection at rest in the cloud with a key
// derived from the user's passphrase. The salt travels with the document so
// any device with the passphrase can decode it.
type EncryptedCodec struct {
	passphrase []byte
}

func NewEncryptedCodec(passphrase string) *EncryptedCodec {
	return &EncryptedCodec{passphrase: []byte(passphrase)}
}

func (c *EncryptedCodec) Encode(cards []models.Card) ([]byte, error) {
	if cards == nil {
		cards = []models.Card{}
	}

	salt, err := cryptox.NewSalt()
	if err != nil {
		return nil, err
	}
	key := cryptox.DeriveKey(c.passphrase, salt)

	ciphertext, nonce, err := cryptox.EncryptJSON(cards, key)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt remote document: %w", err)
	}

	return json.Marshal(encryptedDocument{Salt: salt, Nonce: nonce, Data: ciphertext})
}

func (c *EncryptedCodec) Decode(data []byte) ([]models.Card, error) {
	var doc encryptedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode remote envelope: %w", err)
	}

	key := cryptox.DeriveKey(c.passphrase, doc.Salt)

	var cards []models.Card
	if err := cryptox.DecryptJSON(doc.Data, doc.Nonce, key, &cards); err != nil {
		return nil, fmt.Errorf("failed to decrypt remote document: %w", err)
	}
	if cards == nil {
		cards = []models.Card{}
	}
	return cards, nil
}
