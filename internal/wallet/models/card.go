// Package models defines the data types shared by the wallet storage layers:
// loyalty cards, queued mutations, the storage mode and sync conflict data.
package models

import (
	"time"

	"github.com/google/uuid"
)

// CodeType determines how a card's payload is rendered.
type CodeType string

const (
	CodeTypeBarcode CodeType = "barcode"
	CodeTypeQRCode  CodeType = "qrcode"
)

// BrandCustom is the sentinel brand value for cards without a catalog entry.
const BrandCustom = "custom"

// Card is the unit of record. Id is assigned once and never changes; it is
// the primary identity key within a collection. JSON tags match the persisted
// document shape used by both the local cache and the cloud file.
type Card struct {
	Id         string   `json:"id"`
	Name       string   `json:"name"`
	Brand      string   `json:"brand,omitempty"`
	Code       string   `json:"code"`
	CodeType   CodeType `json:"codeType"`
	Color      string   `json:"color"`
	DateAdded  int64    `json:"dateAdded"`
	LastUsed   *int64   `json:"lastUsed,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	IsFavorite bool     `json:"isFavorite"`
}

// NewCard creates a Card with a fresh id and a creation timestamp.
// An empty codeType is auto-detected from the payload.
func NewCard(name, brand, code string, codeType CodeType, color string) Card {
	if codeType == "" {
		codeType = DetectCodeType(code)
	}
	return Card{
		Id:        uuid.NewString(),
		Name:      name,
		Brand:     brand,
		Code:      code,
		CodeType:  codeType,
		Color:     color,
		DateAdded: time.Now().UnixMilli(),
	}
}

// Touch records that the card was just viewed.
func (c *Card) Touch() {
	now := time.Now().UnixMilli()
	c.LastUsed = &now
}

// DetectCodeType picks a rendering for a scanned payload: purely numeric
// payloads are treated as 1-D barcodes, everything else as QR.
func DetectCodeType(code string) CodeType {
	if code == "" {
		return CodeTypeQRCode
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return CodeTypeQRCode
		}
	}
	return CodeTypeBarcode
}
