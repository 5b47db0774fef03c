package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCard(t *testing.T) {
	c := NewCard("REWE", "rewe", "4049929001", "", "#cc0000")

	require.NotEmpty(t, c.Id)
	require.Equal(t, "REWE", c.Name)
	require.Equal(t, CodeTypeBarcode, c.CodeType)
	require.NotZero(t, c.DateAdded)
	require.Nil(t, c.LastUsed)
	require.False(t, c.IsFavorite)

	other := NewCard("Lidl", BrandCustom, "4049929001", "", "#0050aa")
	require.NotEqual(t, c.Id, other.Id)
}

func TestDetectCodeType(t *testing.T) {
	tests := []struct {
		code string
		want CodeType
	}{
		{"1234567890128", CodeTypeBarcode},
		{"0", CodeTypeBarcode},
		{"ABC-123", CodeTypeQRCode},
		{"https://example.com/c/1", CodeTypeQRCode},
		{"", CodeTypeQRCode},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, DetectCodeType(tc.code), "code %q", tc.code)
	}
}

func TestCard_Touch(t *testing.T) {
	c := NewCard("REWE", "rewe", "123", "", "#fff")
	require.Nil(t, c.LastUsed)
	c.Touch()
	require.NotNil(t, c.LastUsed)
	require.GreaterOrEqual(t, *c.LastUsed, c.DateAdded)
}

func TestParseStorageMode(t *testing.T) {
	m, err := ParseStorageMode("local")
	require.NoError(t, err)
	require.Equal(t, StorageModeLocal, m)

	m, err = ParseStorageMode("cloud")
	require.NoError(t, err)
	require.Equal(t, StorageModeCloud, m)

	_, err = ParseStorageMode("icloud")
	require.Error(t, err)
}
