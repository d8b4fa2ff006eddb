package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jerseyLine(qty int) Line {
	return Line{
		ProductID: "P1",
		Name:      "Manchester Jersey Home 2024",
		Price:     decimal.NewFromInt(500),
		Image:     "/images/jersey.jpg",
		Quantity:  qty,
	}
}

func TestCart_Add_MergesSameProduct(t *testing.T) {
	c := Cart{}.Add(jerseyLine(1)).Add(jerseyLine(2))

	require.Len(t, c, 1)
	assert.Equal(t, 3, c[0].Quantity)
	assert.Equal(t, 3, c.Count())
}

func TestCart_Add_DoesNotMutateReceiver(t *testing.T) {
	original := Cart{jerseyLine(1)}
	_ = original.Add(jerseyLine(5))
	assert.Equal(t, 1, original[0].Quantity)
}

func TestCart_AdjustQuantity(t *testing.T) {
	c := Cart{jerseyLine(2)}

	c = c.AdjustQuantity("P1", 1)
	assert.Equal(t, 3, c[0].Quantity)

	c = c.AdjustQuantity("P1", -3)
	assert.Empty(t, c, "line dropping to zero is removed")

	c = c.AdjustQuantity("missing", 1)
	assert.Empty(t, c, "unknown product is a no-op")
}

func TestCart_Totals(t *testing.T) {
	c := Cart{jerseyLine(2)}

	subtotal, total := c.Totals(decimal.NewFromInt(115))
	assert.True(t, subtotal.Equal(decimal.NewFromInt(1000)))
	assert.True(t, total.Equal(decimal.NewFromInt(1115)))
}

type mapStore map[string][]byte

func (m mapStore) Get(key string) ([]byte, bool) {
	v, ok := m[key]
	return v, ok
}

func (m mapStore) Set(key string, value []byte) error {
	m[key] = value
	return nil
}

func (m mapStore) Delete(key string) error {
	delete(m, key)
	return nil
}

func TestCart_StoreRoundTrip(t *testing.T) {
	store := mapStore{}

	loaded, err := Load(store)
	require.NoError(t, err)
	assert.Empty(t, loaded, "missing entry reads as an empty cart")

	c := loaded.Add(jerseyLine(2))
	require.NoError(t, Save(store, c))

	again, err := Load(store)
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, "P1", again[0].ProductID)
	assert.True(t, again[0].Price.Equal(decimal.NewFromInt(500)))

	require.NoError(t, Clear(store))
	cleared, err := Load(store)
	require.NoError(t, err)
	assert.Empty(t, cleared)
}
