package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMergesQuantities(t *testing.T) {
	c := Cart{}
	c.Add(7, "Mug", 10.00, 2)
	c.Add(7, "Mug", 10.00, 3)

	require.Len(t, c, 1)
	entries, total := c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 5, entries[0].Qty)
	assert.Equal(t, 50.00, entries[0].Subtotal)
	assert.Equal(t, 50.00, total)
}

func TestAddKeepsOriginalPriceSnapshot(t *testing.T) {
	c := Cart{}
	c.Add(7, "Mug", 10.00, 1)
	// Admin changed the price between adds; first snapshot wins.
	c.Add(7, "Mug", 12.50, 1)

	entries, _ := c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 10.00, entries[0].Price)
	assert.Equal(t, 2, entries[0].Qty)
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	c := Cart{}
	c.Add(1, "Mug", 10.00, 1)
	c.Remove(99)

	assert.Len(t, c, 1)
	c.Remove(1)
	assert.True(t, c.Empty())
}

func TestEntriesTotal(t *testing.T) {
	c := Cart{}
	c.Add(1, "Mug", 10.00, 2)
	c.Add(2, "Coaster", 5.00, 1)

	entries, total := c.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, 25.00, total)
	// Ordered by product id.
	assert.Equal(t, 1, entries[0].ProductID)
	assert.Equal(t, 2, entries[1].ProductID)
	assert.Equal(t, 20.00, entries[0].Subtotal)
	assert.Equal(t, 5.00, entries[1].Subtotal)
}
