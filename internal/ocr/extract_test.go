package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractItem_QuantityPrefix(t *testing.T) {
	item, ok := ExtractItem("2 x Tomato Soup 3.98")

	require.True(t, ok)
	assert.Equal(t, "Tomato Soup", item.Name)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, 3.98, item.Price)
}

func TestExtractItem_DefaultQuantity(t *testing.T) {
	item, ok := ExtractItem("Milk 1 Gallon 4.29")

	require.True(t, ok)
	assert.Equal(t, "Milk 1 Gallon", item.Name)
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, 4.29, item.Price)
}

func TestExtractItem_CompactQuantityPrefix(t *testing.T) {
	item, ok := ExtractItem("3X Eggs 2.15")

	require.True(t, ok)
	assert.Equal(t, "Eggs", item.Name)
	assert.Equal(t, 3, item.Quantity)
}

func TestExtractItem_NoPriceToken(t *testing.T) {
	_, ok := ExtractItem("Bananas")
	assert.False(t, ok)

	// An integer at line end is not a price token.
	_, ok = ExtractItem("Bananas 3")
	assert.False(t, ok)
}

func TestExtractItem_EndAnchoredPrice(t *testing.T) {
	item, ok := ExtractItem("Apples 2.00/lb 5.43")

	require.True(t, ok)
	assert.Equal(t, "Apples 2.00/lb", item.Name)
	assert.Equal(t, 5.43, item.Price)
}

func TestExtractItem_NameValidityGate(t *testing.T) {
	// First character must be a letter or digit.
	_, ok := ExtractItem("##!! 9.99")
	assert.False(t, ok)

	// Names shorter than two characters are noise.
	_, ok = ExtractItem("a 9.99")
	assert.False(t, ok)

	// Digit-leading names are legitimate products.
	item, ok := ExtractItem("2% Milk 3.49")
	require.True(t, ok)
	assert.Equal(t, "2% Milk", item.Name)
}

func TestExtractItem_CurrencySymbolNotCaptured(t *testing.T) {
	item, ok := ExtractItem("Orange Juice $4.99")

	require.True(t, ok)
	assert.Equal(t, "Orange Juice", item.Name)
	assert.Equal(t, 4.99, item.Price)
}

func TestExtractItem_TotalAbsentOnRawPath(t *testing.T) {
	item, ok := ExtractItem("Milk 4.29")

	require.True(t, ok)
	assert.Zero(t, item.Total)
	assert.Empty(t, item.InventoryID)
}
